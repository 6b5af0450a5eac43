// Command classcify is the front end's CLI driver: it reads a source
// file and runs it through the lexer, parser, and type checker,
// printing either a debugging dump or the pass/fail verdict described
// by the front end's external interface.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"classcify/internal/checker"
	"classcify/internal/diag"
	"classcify/internal/lexer"
	"classcify/internal/parser"
	"classcify/internal/printer"
)

// exitDataError is the non-zero status returned for any diagnostic,
// following the teacher's os.Exit(65) convention for compile-time
// failures (sysexits EX_DATAERR).
const exitDataError = 65

func main() {
	root := &cobra.Command{
		Use:           "classcify",
		Short:         "Front end for the ClassCify class-based S-expression language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(tokenizeCmd(), parseCmd(), checkCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readSource(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func tokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Print the classified token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			lx := lexer.New(src)
			for lx.PeekHasMore() {
				tok := lx.Next()
				fmt.Fprintln(cmd.OutOrStdout(), tok.String())
			}
			return nil
		},
	}
}

func parseCmd() *cobra.Command {
	var print bool
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a source file and optionally pretty-print the AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			p := parser.New(lexer.New(src))
			prog, err := p.Parse()
			if err != nil {
				diag.PrintFailure(cmd.ErrOrStderr(), err)
				os.Exit(exitDataError)
			}
			if print {
				printer.Print(cmd.OutOrStdout(), prog)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&print, "print", false, "pretty-print the parsed AST")
	return cmd
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and type-check a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			p := parser.New(lexer.New(src))
			prog, err := p.Parse()
			if err != nil {
				diag.PrintFailure(cmd.ErrOrStderr(), err)
				os.Exit(exitDataError)
			}
			if err := checker.Check(prog); err != nil {
				diag.PrintFailure(cmd.ErrOrStderr(), err)
				os.Exit(exitDataError)
			}
			diag.PrintSuccess(cmd.OutOrStdout())
			return nil
		},
	}
}
