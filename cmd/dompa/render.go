package main

import (
	"github.com/spf13/cobra"
)

func renderCmd(parse parseFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "render [file]",
		Short: "Parse HTML and write it back as HTML",
		Long: `Parse an HTML document and render the resulting tree back to HTML.

Well-formed input is reproduced exactly; malformed input comes out with
unclosed tags closed and stray closing tags dropped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := parse(cmd, args)
			if err != nil {
				return err
			}
			return doc.Render(cmd.OutOrStdout())
		},
	}
}
