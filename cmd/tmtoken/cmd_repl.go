package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/npillmayer/tmgrammar/grammar"
	"github.com/npillmayer/tmgrammar/grammars/matlab"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively tokenize MATLAB snippets, one line at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}
}

func runRepl() error {
	lang, err := grammar.NewLanguage(matlab.GRAMMAR)
	if err != nil {
		return fmt.Errorf("build grammar: %w", err)
	}

	rl, err := readline.New("tmtoken> ")
	if err != nil {
		return fmt.Errorf("start readline: %w", err)
	}
	defer rl.Close()

	pterm.Info.Println("Welcome to tmtoken. Enter a line of MATLAB source; <ctrl>D to quit.")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on <ctrl>D
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		elements := lang.Tokenize(line)
		if len(elements) == 0 {
			pterm.Warning.Println("no tokens produced")
			continue
		}
		root := pterm.TreeNode{Text: line}
		for _, el := range elements {
			root.Children = append(root.Children, elementTree(el))
		}
		pterm.DefaultTree.WithRoot(root).Render()
	}
	pterm.Info.Println("Good bye!")
	return nil
}

func elementTree(el grammar.Element) pterm.TreeNode {
	d := el.ToDict(true)
	node := pterm.TreeNode{Text: fmt.Sprintf("%s %q", el.TokenName(), d["content"])}
	if captures, ok := d["captures"].([]map[string]any); ok {
		for _, c := range captures {
			node.Children = append(node.Children, dictTree(c))
		}
	}
	if begin, ok := d["begin"].([]map[string]any); ok {
		for _, b := range begin {
			node.Children = append(node.Children, dictTree(b))
		}
	}
	if end, ok := d["end"].([]map[string]any); ok {
		for _, e := range end {
			node.Children = append(node.Children, dictTree(e))
		}
	}
	return node
}

func dictTree(d map[string]any) pterm.TreeNode {
	node := pterm.TreeNode{Text: fmt.Sprintf("%v %q", d["token"], d["content"])}
	if captures, ok := d["captures"].([]map[string]any); ok {
		for _, c := range captures {
			node.Children = append(node.Children, dictTree(c))
		}
	}
	return node
}
