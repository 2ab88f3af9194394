package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mastaal/nllegalcit/internal/convert"
	"github.com/mastaal/nllegalcit/internal/fetch"
)

var urlCmd = &cobra.Command{
	Use:   "url [urls...]",
	Short: "Download documents and extract their citations",
	Long: `Url downloads each document, converts it to text by content type
(PDF, HTML, or plain text) and extracts its citations. Requests are rate
limited per host and retried on 429 and 5xx gateway errors.

An argument starting with "ECLI:" is fetched as a decision from the
rechtspraak.nl document API.`,
	RunE: runURL,
}

func init() {
	addFormatFlag(urlCmd)
	rootCmd.AddCommand(urlCmd)
}

func runURL(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more URLs")
	}
	ctx := cmd.Context()

	eng, err := newEngine()
	if err != nil {
		return err
	}
	cw, err := formatWriter(cmd)
	if err != nil {
		return err
	}
	client := fetch.New(cfg.HTTP, logger)

	// The PDF converter is only built when a PDF shows up.
	var conv convert.Converter
	failed := 0
	for _, u := range args {
		text, err := fetchText(ctx, client, &conv, u)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed:    %s (%v)\n", u, err)
			failed++
			continue
		}
		cits := eng.CitationsMode(text, cfg.Engine.Mode)
		if err := cw.Write(u, cits); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "converted: %s (%d citations)\n", u, len(cits))
	}
	if err := cw.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d URL(s) failed", failed)
	}
	return nil
}

func fetchText(ctx context.Context, client *fetch.Client, conv *convert.Converter, u string) (string, error) {
	if strings.HasPrefix(strings.ToUpper(u), "ECLI:") {
		return client.Uitspraak(ctx, u)
	}

	resp, err := client.Get(ctx, u)
	if err != nil {
		return "", err
	}
	if *conv == nil && strings.Contains(resp.ContentType, "pdf") {
		c, err := convert.New(ctx, cfg.Conversion.Backend)
		if err != nil {
			return "", err
		}
		*conv = c
		logger.Debug("pdf converter ready", zap.String("backend", string(cfg.Conversion.Backend)))
	}
	return convert.Content(ctx, *conv, resp.ContentType, resp.Body)
}
