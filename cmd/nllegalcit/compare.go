package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mastaal/nllegalcit/internal/compare"
	"github.com/mastaal/nllegalcit/internal/fetch"
	"github.com/mastaal/nllegalcit/pkg/types"
)

var compareCmd = &cobra.Command{
	Use:   "compare [ecli...]",
	Short: "Compare extracted case law citations with LiDO",
	Long: `Compare fetches each decision from the rechtspraak.nl document API,
extracts the ECLI citations from its text, and compares them with the
decisions LiDO (linkeddata.overheid.nl) records as linked from it.

Citations found only by nllegalcit are marked "+", citations only LiDO
knows are marked "-". The command fails when any decision differs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	eng, err := newEngine()
	if err != nil {
		return err
	}
	client := fetch.New(cfg.HTTP, logger)
	out := cmd.OutOrStdout()

	differ := 0
	for _, arg := range args {
		id, err := types.ParseECLI(arg)
		if err != nil {
			return err
		}
		ecli := id.String()

		text, err := client.Uitspraak(ctx, ecli)
		if err != nil {
			return err
		}
		var found []types.EcliCitation
		for _, c := range eng.CitationsMode(text, types.ModeAll) {
			if e, ok := c.(types.EcliCitation); ok {
				found = append(found, e)
			}
		}

		links, err := client.LidoLinks(ctx, ecli)
		if err != nil {
			return err
		}

		result := compare.Diff(found, links)
		compare.Report(out, ecli, result)
		logger.Debug("compared with LiDO",
			zap.String("ecli", ecli),
			zap.Int("found", len(found)),
			zap.Int("lido", len(links)),
		)
		if !result.Agree() {
			differ++
		}
	}
	if differ > 0 {
		return fmt.Errorf("%d of %d decision(s) differ from LiDO", differ, len(args))
	}
	return nil
}
