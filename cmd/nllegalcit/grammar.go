package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mastaal/nllegalcit/internal/grammar"
)

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Inspect and validate citation grammars",
}

var grammarCheckCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Validate grammar files",
	Long: `Check loads each grammar file with its includes, validates it, and
compiles it. Without arguments it checks the built-in grammar.`,
	RunE: runGrammarCheck,
}

func runGrammarCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		g, err := grammar.Default()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "ok:     %s (built-in, %d productions)\n", g.Source, len(g.Productions))
		return nil
	}

	failed := 0
	for _, path := range args {
		g, err := grammar.LoadFile(path)
		if err != nil {
			fmt.Fprintf(out, "failed: %s (%v)\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "ok:     %s (%d productions)\n", path, len(g.Productions))
	}
	if failed > 0 {
		return fmt.Errorf("%d grammar file(s) invalid", failed)
	}
	return nil
}

var grammarDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the compiled grammar productions",
	Long: `Dump prints the BNF productions compiled from the grammar selected with
--grammar (or the built-in grammar), one per line, with helper rules for
repetitions and groups.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		return eng.Grammar().Dump(cmd.OutOrStdout())
	},
}

func init() {
	grammarCmd.AddCommand(grammarCheckCmd)
	grammarCmd.AddCommand(grammarDumpCmd)

	rootCmd.AddCommand(grammarCmd)
}
