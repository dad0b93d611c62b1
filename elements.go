package dompa

import (
	"golang.org/x/net/html/atom"
)

var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// Elements whose content is never tokenized as markup.
var rawTextElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Textarea: true,
	atom.Title:    true,
	atom.Xmp:      true,
	atom.Iframe:   true,
	atom.Noembed:  true,
	atom.Noframes: true,
}

var (
	tableSections = []atom.Atom{atom.Thead, atom.Tbody, atom.Tfoot, atom.Tr, atom.Td, atom.Th}
	tableCells    = []atom.Atom{atom.Td, atom.Th}
)

// Opening the key element implicitly closes the innermost open element while
// it is one of the listed ones.
var implicitCloses = map[atom.Atom][]atom.Atom{
	atom.P:        {atom.P},
	atom.Li:       {atom.Li},
	atom.Dt:       {atom.Dt, atom.Dd},
	atom.Dd:       {atom.Dt, atom.Dd},
	atom.Option:   {atom.Option},
	atom.Optgroup: {atom.Optgroup, atom.Option},
	atom.Tr:       {atom.Tr, atom.Td, atom.Th},
	atom.Td:       tableCells,
	atom.Th:       tableCells,
	atom.Thead:    tableSections,
	atom.Tbody:    tableSections,
	atom.Tfoot:    tableSections,
}

// lookupAtom returns the atom for a lowercase tag name, or 0 for names that
// are not known HTML elements (e.g. custom elements).
func lookupAtom(name string) atom.Atom {
	return atom.Lookup([]byte(name))
}

// IsVoid reports whether the lowercase tag name is a void element.
func IsVoid(name string) bool {
	return voidElements[lookupAtom(name)]
}

func isRawText(a atom.Atom) bool {
	return rawTextElements[a]
}

// isRCDATA reports whether a is a raw-text element whose content may still
// hold character references.
func isRCDATA(a atom.Atom) bool {
	return a == atom.Title || a == atom.Textarea
}

func closesImplicitly(opening, open atom.Atom) bool {
	if opening == 0 || open == 0 {
		return false
	}
	for _, a := range implicitCloses[opening] {
		if a == open {
			return true
		}
	}
	return false
}
