package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/npillmayer/tmgrammar/compare"
	"github.com/npillmayer/tmgrammar/grammar"
	"github.com/npillmayer/tmgrammar/grammars/matlab"
)

func newCompareCmd() *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "compare <file> <node-cmd> [node-args...]",
		Short: "Diff this engine's tokenization of a file against an external reference tokenizer",
		Long: `Runs <node-cmd> [node-args...] <scope> as a subprocess, feeding it the
file's content on stdin, and expects a JSON array of token dicts on its
stdout in the same shape this engine's own ToDict() produces. Reports
whether the two token trees are structurally equal.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			lang, err := grammar.NewLanguage(matlab.GRAMMAR)
			if err != nil {
				return fmt.Errorf("build grammar: %w", err)
			}
			ref := compare.Reference{Command: args[1], Args: args[2:]}
			report, err := compare.Run(context.Background(), lang, ref, scope, string(source))
			if err != nil {
				return err
			}
			if report.Equal {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: match\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: mismatch\n%s\n", args[0], strings.TrimSpace(report.Diff))
			return fmt.Errorf("tokenization mismatch")
		},
	}
	cmd.Flags().StringVar(&scope, "scope", "source.matlab", "grammar scope name passed to the reference tokenizer")
	return cmd
}
