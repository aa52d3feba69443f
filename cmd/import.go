package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fanbe-group/leads-cli/internal/importer"
)

var (
	importFilePath string
	importOutput   string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import leads from a CSV, TSV, or XLSX export",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		imp := importer.New(st, importer.Config{
			DefaultSource: cfg.Import.DefaultSource,
			InsertRate:    cfg.Import.InsertRate,
		})

		result, err := imp.ImportFile(ctx, importFilePath)
		if err != nil {
			return eris.Wrapf(err, "import %s", importFilePath)
		}

		switch importOutput {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		case "yaml":
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(result)
		case "text":
			fmt.Fprint(cmd.OutOrStdout(), importer.FormatResult(result))
			return nil
		default:
			return eris.Errorf("unknown output format %q (want text, json, or yaml)", importOutput)
		}
	},
}

func init() {
	importCmd.Flags().StringVar(&importFilePath, "file", "", "path to import file (required)")
	importCmd.Flags().StringVar(&importOutput, "output", "text", "output format: text, json, or yaml")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
