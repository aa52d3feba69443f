package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fanbe-group/leads-cli/internal/model"
	"github.com/fanbe-group/leads-cli/internal/tabular"
)

func TestRowFromTabular_Aliases(t *testing.T) {
	src := tabular.Row{
		"name":    "Ravi Kumar",
		"mobile":  "9876543210",
		"source":  "Walk-in",
		"remarks": "call later",
		"city":    "Pune",
	}

	row := rowFromTabular(2, src)

	assert.Equal(t, 2, row.Number)
	assert.Equal(t, "Ravi Kumar", row.Name)
	assert.Equal(t, "9876543210", row.Phone)
	assert.Equal(t, "Walk-in", row.Source)
	assert.Equal(t, "call later", row.Notes)
	assert.Equal(t, map[string]string{"city": "Pune"}, row.Extra)
}

func TestRowFromTabular_PrimaryColumnWins(t *testing.T) {
	src := tabular.Row{
		"lead_name": "Primary",
		"name":      "Alias",
		"phone":     "9876543210",
	}

	row := rowFromTabular(2, src)
	assert.Equal(t, "Primary", row.Name)
	assert.Nil(t, row.Extra)
}

func TestNormalizeRow(t *testing.T) {
	row := normalizeRow(ImportRow{
		Number:           3,
		Name:             "ravi kumar",
		Phone:            "09876543210",
		Email:            " Ravi@Example.COM ",
		Date:             "31/01/2026",
		CallAttempt:      "1st",
		CallStatus:       "No Answer",
		InterestLevel:    "Hot",
		NextFollowupDate: "05/02/2026",
		SiteVisitStatus:  "Planned",
		FinalStatus:      "Follow Up",
	})

	assert.Equal(t, 3, row.Number)
	assert.Equal(t, "Ravi Kumar", row.Name)
	assert.Equal(t, "+919876543210", row.Phone)
	assert.Equal(t, "ravi@example.com", row.Email)
	assert.Equal(t, "2026-01-31", row.Date)
	assert.True(t, row.HasCallAttempt)
	assert.Equal(t, model.CallNotAnswered, row.CallStatus)
	assert.Equal(t, model.InterestHot, row.InterestLevel)
	assert.Equal(t, "2026-02-05", row.FollowupDate)
	assert.Equal(t, "planned", row.SiteVisitStatus)
	assert.Equal(t, model.LeadStatusFollowUp, row.FinalStatus)
}

func TestNormalizeRow_UnparseableFollowupYieldsNoTaskDate(t *testing.T) {
	row := normalizeRow(ImportRow{
		Name:             "Ravi Kumar",
		Phone:            "9876543210",
		NextFollowupDate: "soonish",
	})
	assert.Equal(t, "", row.FollowupDate)
}
