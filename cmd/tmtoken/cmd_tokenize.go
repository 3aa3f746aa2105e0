package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/npillmayer/tmgrammar/grammar"
	"github.com/npillmayer/tmgrammar/grammars/matlab"
)

func newTokenizeCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Tokenize a MATLAB source file and print its element tree as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			lang, err := grammar.NewLanguage(matlab.GRAMMAR)
			if err != nil {
				return fmt.Errorf("build grammar: %w", err)
			}
			elements := lang.Tokenize(string(source))
			dicts := make([]map[string]any, 0, len(elements))
			for _, el := range elements {
				dicts = append(dicts, el.ToDict(true))
			}
			enc := json.NewEncoder(os.Stdout)
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(dicts)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}
