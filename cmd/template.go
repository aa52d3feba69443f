package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var templatePath string

const sampleTemplate = `lead_name,phone,email,date,lead_source,call_attempt,call_status,interest_level,buyer_feedback,next_followup_date,site_visit_status,final_status,budget,assigned_to_email,project_name,notes
Ravi Kumar,9876543210,ravi@example.com,15/01/2026,Website,1st,Connected,hot,Interested in 3BHK,20/01/2026,planned,follow up,75L,agent@example.com,Green Meadows,Prefers east facing
Priya Sharma,08851481867,,2026-01-16,,,,warm,,,,new,,,Sunrise Towers,
`

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write a sample import CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := os.WriteFile(templatePath, []byte(sampleTemplate), 0o644); err != nil {
			return eris.Wrapf(err, "write template %s", templatePath)
		}
		zap.L().Info("template written", zap.String("path", templatePath))
		return nil
	},
}

func init() {
	templateCmd.Flags().StringVar(&templatePath, "out", "sample_leads_import.csv", "output path")
	rootCmd.AddCommand(templateCmd)
}
