package dompa

import (
	"strings"
)

// Attr is a single element attribute.  Bool attributes are valueless (e.g.
// <input disabled>) and render as a bare key; Val is ignored for them.
type Attr struct {
	Key  string
	Val  string
	Bool bool
}

// String returns the attribute as it appears inside a tag, without the
// leading space.
func (attr Attr) String() string {
	var b strings.Builder
	writeAttr(&b, attr)
	return b.String()
}

// Attrs is an ordered set of attributes with unique lowercase keys.
type Attrs []Attr

// Index returns the position of key, or -1.
func (attrs Attrs) Index(key string) int {
	key = lowerString(key)
	for i, attr := range attrs {
		if attr.Key == key {
			return i
		}
	}
	return -1
}

// Get returns the attribute named key.
func (attrs Attrs) Get(key string) (Attr, bool) {
	i := attrs.Index(key)
	if i < 0 {
		return Attr{}, false
	}
	return attrs[i], true
}

// Has reports whether key is present.
func (attrs Attrs) Has(key string) bool {
	return attrs.Index(key) >= 0
}

// set stores attr, replacing the value of an existing key in place so the
// original order is kept.  Reports whether the key already existed.
func (attrs *Attrs) set(attr Attr) bool {
	attr.Key = lowerString(attr.Key)
	if i := attrs.Index(attr.Key); i >= 0 {
		(*attrs)[i] = attr
		return true
	}
	*attrs = append(*attrs, attr)
	return false
}

func (attrs *Attrs) remove(key string) bool {
	i := attrs.Index(key)
	if i < 0 {
		return false
	}
	*attrs = append((*attrs)[:i], (*attrs)[i+1:]...)
	return true
}

// Map returns the attributes as a map of string values, with bool
// attributes mapped to true.
func (attrs Attrs) Map() map[string]any {
	m := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		if attr.Bool {
			m[attr.Key] = true
		} else {
			m[attr.Key] = attr.Val
		}
	}
	return m
}

func (attrs Attrs) clone() Attrs {
	if attrs == nil {
		return nil
	}
	return append(make(Attrs, 0, len(attrs)), attrs...)
}
