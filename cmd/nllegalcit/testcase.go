package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var testcaseCmd = &cobra.Command{
	Use:   "testcase [files...]",
	Short: "Print extracted citations as Go test table entries",
	Long: `Testcase extracts citations like parse and prints each one as a Go
composite literal, ready to paste into a table-driven test as the expected
result for the same input.`,
	RunE: runTestcase,
}

func init() {
	rootCmd.AddCommand(testcaseCmd)
}

func runTestcase(cmd *cobra.Command, args []string) error {
	names, texts, err := readInputs(cmd, args)
	if err != nil {
		return err
	}
	eng, err := newEngine()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, text := range texts {
		cits := eng.CitationsMode(text, cfg.Engine.Mode)
		fmt.Fprintf(out, "// %s\n", names[i])
		fmt.Fprintf(out, "{\n\ttext: %q,\n\twant: []types.Citation{\n", text)
		for _, c := range cits {
			fmt.Fprintf(out, "\t\t%#v,\n", c)
		}
		fmt.Fprintln(out, "\t},\n},")
	}
	return nil
}
