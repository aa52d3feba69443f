package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/fanbe-group/leads-cli/internal/model"
	"github.com/fanbe-group/leads-cli/internal/store"
)

var (
	leadsStatus string
	leadsLimit  int
	leadsOffset int
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Inspect imported leads",
}

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		leads, err := st.ListLeads(ctx, store.LeadFilter{
			Status: model.LeadStatus(leadsStatus),
			Limit:  leadsLimit,
			Offset: leadsOffset,
		})
		if err != nil {
			return eris.Wrap(err, "list leads")
		}

		for _, lead := range leads {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n",
				lead.ID, lead.Name, lead.Phone, lead.Status, lead.Date)
		}
		return nil
	},
}

func init() {
	leadsListCmd.Flags().StringVar(&leadsStatus, "status", "", "filter by status")
	leadsListCmd.Flags().IntVar(&leadsLimit, "limit", 50, "maximum rows to print")
	leadsListCmd.Flags().IntVar(&leadsOffset, "offset", 0, "rows to skip")

	leadsCmd.AddCommand(leadsListCmd)
	rootCmd.AddCommand(leadsCmd)
}
