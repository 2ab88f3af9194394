package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Extract citations from text files or stdin",
	Long: `Parse reads plain text from the given files (or stdin when none are
given, or for "-") and prints every Kamerstuk and ECLI citation it finds, in
the order they occur.

Use --tree to print the parse tree of each citation occurrence instead.`,
	RunE: runParse,
}

func init() {
	addFormatFlag(parseCmd)
	parseCmd.Flags().Bool("tree", false, "print the parse tree of each occurrence")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	names, texts, err := readInputs(cmd, args)
	if err != nil {
		return err
	}
	eng, err := newEngine()
	if err != nil {
		return err
	}

	if tree, _ := cmd.Flags().GetBool("tree"); tree {
		out := cmd.OutOrStdout()
		for i, text := range texts {
			t := eng.Parse(text)
			fmt.Fprintf(out, "# %s: %d occurrence(s)\n", names[i], len(t.Occurrences()))
			if err := t.Root.Format(out); err != nil {
				return err
			}
		}
		return nil
	}

	cw, err := formatWriter(cmd)
	if err != nil {
		return err
	}
	for i, text := range texts {
		if err := cw.Write(names[i], eng.CitationsMode(text, cfg.Engine.Mode)); err != nil {
			return err
		}
	}
	return cw.Flush()
}
