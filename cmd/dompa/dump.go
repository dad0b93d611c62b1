package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dompa"
)

func dumpCmd(parse parseFunc) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Parse HTML and dump the node tree",
		Long: `Parse an HTML document and write its node tree as JSON or YAML.

Every node carries a type key: textNode {value}, node {name, attributes,
children}, voidNode {name, attributes}, fragmentNode {children},
commentNode {comment} and doctypeNode {doctype}.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var encode func(...*dompa.Node) ([]byte, error)
			switch format {
			case "json":
				encode = dompa.ToJSON
			case "yaml":
				encode = dompa.ToYAML
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}

			doc, err := parse(cmd, args)
			if err != nil {
				return err
			}

			out, err := encode(doc.Root())
			if err != nil {
				return fmt.Errorf("dump: %w", err)
			}
			if format == "json" {
				out = append(out, '\n')
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")

	return cmd
}
