// Command tmtoken drives the tmgrammar engine from the command line: it can
// tokenize a MATLAB source file to JSON, run a small interactive REPL over
// snippets, or diff this engine's tokenization against an external
// reference tokenizer.
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

func main() {
	gtrace.SyntaxTracer = gologadapter.New()

	var traceLevel string

	rootCmd := &cobra.Command{
		Use:   "tmtoken",
		Short: "Tokenize MATLAB source with the tmgrammar engine",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			tracer().SetTraceLevel(traceLevelFromString(traceLevel))
		},
	}
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace", "Error", "Trace level [Debug|Info|Error]")

	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newCompareCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func tracer() tracing.Trace {
	return gtrace.SyntaxTracer
}

func traceLevelFromString(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
