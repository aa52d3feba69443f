// Package importer implements the bulk lead ingestion pipeline: parsing,
// normalization, validation, duplicate resolution, derived record synthesis,
// and result aggregation.
package importer

import (
	"strings"

	"github.com/fanbe-group/leads-cli/internal/model"
	"github.com/fanbe-group/leads-cli/internal/normalize"
	"github.com/fanbe-group/leads-cli/internal/tabular"
)

// ImportRow is the raw view of one data line, keyed off the known import
// columns. Columns we do not recognize land in Extra. Number is the 1-based
// file row number, where the header line is row 1.
type ImportRow struct {
	Number int

	Name             string
	Phone            string
	Email            string
	Date             string
	Source           string
	CallAttempt      string
	CallStatus       string
	InterestLevel    string
	BuyerFeedback    string
	NextFollowupDate string
	SiteVisitStatus  string
	FinalStatus      string
	Budget           string
	AssignedToEmail  string
	ProjectName      string
	Notes            string

	Extra map[string]string
}

// columnAliases maps each ImportRow field to the header names that feed it,
// in priority order.
var columnAliases = map[string][]string{
	"name":           {"lead_name", "name", "customer_name"},
	"phone":          {"phone", "mobile", "phone_number"},
	"email":          {"email", "email_id"},
	"date":           {"date", "lead_date"},
	"source":         {"lead_source", "source"},
	"call_attempt":   {"call_attempt", "attempt"},
	"call_status":    {"call_status"},
	"interest_level": {"interest_level", "interest"},
	"buyer_feedback": {"buyer_feedback", "feedback"},
	"next_followup":  {"next_followup_date", "next_followup", "followup_date"},
	"site_visit":     {"site_visit_status", "site_visit"},
	"final_status":   {"final_status", "status"},
	"budget":         {"budget"},
	"assigned_to":    {"assigned_to_email", "assigned_to"},
	"project_name":   {"project_name", "project"},
	"notes":          {"notes", "remarks"},
}

func rowFromTabular(number int, src tabular.Row) ImportRow {
	used := make(map[string]bool, len(src))
	pick := func(field string) string {
		val := ""
		for _, key := range columnAliases[field] {
			if v, ok := src[key]; ok {
				used[key] = true
				if val == "" {
					val = v
				}
			}
		}
		return val
	}

	row := ImportRow{
		Number:           number,
		Name:             pick("name"),
		Phone:            pick("phone"),
		Email:            pick("email"),
		Date:             pick("date"),
		Source:           pick("source"),
		CallAttempt:      pick("call_attempt"),
		CallStatus:       pick("call_status"),
		InterestLevel:    pick("interest_level"),
		BuyerFeedback:    pick("buyer_feedback"),
		NextFollowupDate: pick("next_followup"),
		SiteVisitStatus:  pick("site_visit"),
		FinalStatus:      pick("final_status"),
		Budget:           pick("budget"),
		AssignedToEmail:  pick("assigned_to"),
		ProjectName:      pick("project_name"),
		Notes:            pick("notes"),
	}

	for key, val := range src {
		if !used[key] && val != "" {
			if row.Extra == nil {
				row.Extra = make(map[string]string)
			}
			row.Extra[key] = val
		}
	}
	return row
}

// NormalizedRow is the canonicalized, immutable view of an ImportRow that the
// duplicate resolver and synthesizer operate on.
type NormalizedRow struct {
	Number int

	Name  string
	Phone string
	Email string

	// Date is YYYY-MM-DD, or empty when the source row carried no date.
	Date string

	Source          string
	HasCallAttempt  bool
	CallStatus      model.CallStatus
	InterestLevel   model.InterestLevel
	BuyerFeedback   string
	FollowupDate    string
	SiteVisitStatus string
	FinalStatus     model.LeadStatus
	Budget          string
	AssignedToEmail string
	ProjectName     string
	Notes           string
}

// normalizeRow canonicalizes a validated ImportRow. Fields that failed to
// normalize would already have been rejected by the validator, except the
// follow-up date, which is best-effort: an unparseable value simply yields
// no Task later.
func normalizeRow(raw ImportRow) NormalizedRow {
	norm := NormalizedRow{
		Number:          raw.Number,
		Name:            normalize.Name(raw.Name),
		Phone:           normalize.Phone(raw.Phone),
		Email:           strings.ToLower(strings.TrimSpace(raw.Email)),
		Source:          strings.TrimSpace(raw.Source),
		BuyerFeedback:   strings.TrimSpace(raw.BuyerFeedback),
		SiteVisitStatus: normalize.Collapse(raw.SiteVisitStatus),
		Budget:          strings.TrimSpace(raw.Budget),
		AssignedToEmail: strings.ToLower(strings.TrimSpace(raw.AssignedToEmail)),
		ProjectName:     strings.TrimSpace(raw.ProjectName),
		Notes:           strings.TrimSpace(raw.Notes),
	}

	if date, ok := normalize.Date(raw.Date); ok {
		norm.Date = date
	}
	if followup, ok := normalize.Date(raw.NextFollowupDate); ok {
		norm.FollowupDate = followup
	}
	if strings.TrimSpace(raw.CallAttempt) != "" {
		norm.HasCallAttempt = true
	}
	if strings.TrimSpace(raw.CallStatus) != "" {
		norm.CallStatus = model.CallStatus(normalize.CallStatus(raw.CallStatus))
	}
	if level := normalize.Collapse(raw.InterestLevel); level != "" {
		norm.InterestLevel = model.InterestLevel(level)
	}
	if status := normalize.Collapse(raw.FinalStatus); status != "" {
		norm.FinalStatus = model.LeadStatus(status)
	}
	return norm
}
