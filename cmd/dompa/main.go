package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"dompa"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var warnings bool

	rootCmd := &cobra.Command{
		Use:   "dompa",
		Short: "Parse HTML into a tree and render it back",
		Long: `dompa parses an HTML document into a node tree and writes it back out,
either as HTML (byte for byte identical for well-formed input) or as a
JSON or YAML dump of the tree.

Input is read from the file named on the command line, or stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&warnings, "warnings", "w", false, "Log recovered parse warnings to stderr")

	parse := func(cmd *cobra.Command, args []string) (*dompa.Document, error) {
		data, err := readInput(cmd, args)
		if err != nil {
			return nil, err
		}

		var opts []dompa.Option
		if warnings {
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
			opts = append(opts, dompa.WithLogger(logger))
		}

		return dompa.Parse(data, opts...)
	}

	rootCmd.AddCommand(
		renderCmd(parse),
		dumpCmd(parse),
		versionCmd(),
	)

	return rootCmd
}

type parseFunc func(cmd *cobra.Command, args []string) (*dompa.Document, error)

// readInput reads the file named by args[0], or stdin when there is none or
// it is "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
