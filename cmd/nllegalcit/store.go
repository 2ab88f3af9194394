// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mastaal/nllegalcit/internal/convert"
	"github.com/mastaal/nllegalcit/internal/store"
	"github.com/mastaal/nllegalcit/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the local citation store (ingest, list, export)",
	Long: `Store keeps extraction runs and their citations in a local SQLite
database. Use subcommands to ingest documents, list stored citations, or
export them.`,
}

// --- ingest subcommand ---

var storeIngestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Extract citations from documents and record them",
	Long: `Ingest converts each file to text, extracts its citations, and records
them as one run per file. Ingesting a file again replaces its earlier run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStoreIngest,
}

func runStoreIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	eng, err := newEngine()
	if err != nil {
		return err
	}
	conv, err := pdfConverter(ctx, args)
	if err != nil {
		return err
	}

	mode := cfg.Engine.Mode
	result := convert.Batch(ctx, conv, args, func(doc convert.Document) (string, error) {
		cits := eng.CitationsMode(doc.Text, mode)
		run, replaced, err := st.SaveRun(ctx, doc.Source, mode, cits)
		if err != nil {
			return "", err
		}
		note := fmt.Sprintf("%d citations, run %s", run.Citations, run.ID)
		if replaced {
			note += ", replaced earlier run"
		}
		return note, nil
	}, cmd.OutOrStdout())

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed ingestion", result.Failed)
	}
	return nil
}

// --- list subcommand ---

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored citations or runs",
	Long: `List prints stored citations, filtered by kind, chamber, dossier
number, ECLI court, or source document. With --runs it lists the recorded
extraction runs instead.`,
	RunE: runStoreList,
}

func runStoreList(cmd *cobra.Command, args []string) error {
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	if runs, _ := cmd.Flags().GetBool("runs"); runs {
		list, err := st.Runs(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		}
		fmt.Fprintf(out, "%-36s  %-20s  %-9s  %-9s  %s\n", "Run", "Created", "Mode", "Citations", "Source")
		fmt.Fprintln(out, strings.Repeat("-", 100))
		for _, r := range list {
			fmt.Fprintf(out, "%-36s  %-20s  %-9s  %-9d  %s\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Mode, r.Citations, r.Source)
		}
		fmt.Fprintf(out, "\n%d runs\n", len(list))
		return nil
	}

	opts, err := queryOptsFromFlags(cmd)
	if err != nil {
		return err
	}
	records, err := st.Query(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if jsonOutput {
		entries := make([]store.ExportEntry, len(records))
		for i, r := range records {
			entries[i] = store.ExportEntry{RunID: r.RunID, Source: r.Source, Position: r.Position, Citation: types.Wrap(r.Citation)}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No citations found.")
		return nil
	}
	fmt.Fprintf(out, "%-9s  %-30s  %s\n", "Kind", "Source", "Citation")
	fmt.Fprintln(out, strings.Repeat("-", 100))
	for _, r := range records {
		source := r.Source
		if len(source) > 30 {
			source = "..." + source[len(source)-27:]
		}
		fmt.Fprintf(out, "%-9s  %-30s  %s\n", r.Citation.Kind(), source, r.Citation)
	}
	fmt.Fprintf(out, "\n%d citations\n", len(records))
	return nil
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored citations to YAML, JSON or CSL",
	Long: `Export writes the stored citations (or a filtered subset) to
export.yaml or export.json in the store directory. With --format csl it
writes bibliography.yaml, a CSL-YAML list of the distinct cited sources
for use with Pandoc. Supports the same filter flags as list.`,
	RunE: runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	opts, err := queryOptsFromFlags(cmd)
	if err != nil {
		return err
	}

	var path string
	switch format {
	case "yaml", "":
		path, err = st.ExportYAML(cmd.Context(), opts)
	case "json":
		path, err = st.ExportJSON(cmd.Context(), opts)
	case "csl":
		path, err = st.ExportCSL(cmd.Context(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml, json, or csl", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command) (store.QueryOptions, error) {
	kind, _ := cmd.Flags().GetString("kind")
	kamer, _ := cmd.Flags().GetString("kamer")
	dossier, _ := cmd.Flags().GetString("dossier")
	court, _ := cmd.Flags().GetString("court")
	source, _ := cmd.Flags().GetString("source")
	limit, _ := cmd.Flags().GetInt("limit")

	switch types.Kind(kind) {
	case "", types.KindEcli, types.KindKamerstuk:
	default:
		return store.QueryOptions{}, fmt.Errorf("unknown kind %q: use %s or %s", kind, types.KindEcli, types.KindKamerstuk)
	}
	k := types.Kamer(strings.ToUpper(kamer))
	if kamer != "" && !k.Valid() {
		return store.QueryOptions{}, fmt.Errorf("unknown kamer %q: use I, II, or VV", kamer)
	}

	return store.QueryOptions{
		Kind:          types.Kind(kind),
		Kamer:         k,
		Dossiernummer: strings.ReplaceAll(dossier, " ", ""),
		Court:         court,
		Source:        source,
		MaxResults:    limit,
	}, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("kind", "", "filter by citation kind: ecli or kamerstuk")
	cmd.Flags().String("kamer", "", "filter by chamber: I, II, or VV")
	cmd.Flags().String("dossier", "", "filter by dossier number, e.g. 31700 or 31700-VIII")
	cmd.Flags().String("court", "", "filter by ECLI court code, e.g. HR")
	cmd.Flags().String("source", "", "filter by source document")
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	storeCmd.PersistentFlags().String("store-dir", ".nllegalcit", "directory holding citations.db and exports")
	storeCmd.PersistentFlags().Int("max-results", 50, "maximum number of listed citations")
	viper.BindPFlag("store.dir", storeCmd.PersistentFlags().Lookup("store-dir"))
	viper.BindPFlag("store.max_results", storeCmd.PersistentFlags().Lookup("max-results"))

	// List flags.
	addFilterFlags(storeListCmd)
	storeListCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	storeListCmd.Flags().Bool("runs", false, "list extraction runs instead of citations")
	storeListCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	addFilterFlags(storeExportCmd)
	storeExportCmd.Flags().String("format", "yaml", "export format: yaml, json, or csl")

	// Wire subcommands.
	storeCmd.AddCommand(storeIngestCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}
