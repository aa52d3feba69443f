package importer

import (
	"fmt"
	"strings"

	"github.com/fanbe-group/leads-cli/internal/model"
	"github.com/fanbe-group/leads-cli/internal/normalize"
)

var validFinalStatuses = map[model.LeadStatus]bool{
	model.LeadStatusNew:           true,
	model.LeadStatusFollowUp:      true,
	model.LeadStatusSiteVisit:     true,
	model.LeadStatusBooked:        true,
	model.LeadStatusLost:          true,
	model.LeadStatusNotInterested: true,
}

var validInterestLevels = map[model.InterestLevel]bool{
	model.InterestHot:  true,
	model.InterestWarm: true,
	model.InterestCold: true,
}

// validateRow checks every rule and reports all failures together. An empty
// result means the row is acceptable.
func validateRow(row ImportRow) []string {
	var errs []string

	if name := strings.TrimSpace(row.Name); len(name) < 2 {
		errs = append(errs, "name is required and must be at least 2 characters")
	}
	if phone := strings.TrimSpace(row.Phone); len(phone) < 10 {
		errs = append(errs, "phone is required and must be at least 10 characters")
	}
	if date := strings.TrimSpace(row.Date); date != "" {
		if _, ok := normalize.Date(date); !ok {
			errs = append(errs, fmt.Sprintf("unrecognized date %q", date))
		}
	}
	if level := normalize.Collapse(row.InterestLevel); level != "" {
		if !validInterestLevels[model.InterestLevel(level)] {
			errs = append(errs, fmt.Sprintf("interest level must be hot, warm, or cold, got %q", row.InterestLevel))
		}
	}
	if status := strings.TrimSpace(row.CallStatus); status != "" {
		if !normalize.KnownCallStatus(normalize.CallStatus(status)) {
			errs = append(errs, fmt.Sprintf("unrecognized call status %q", status))
		}
	}
	if status := normalize.Collapse(row.FinalStatus); status != "" {
		if !validFinalStatuses[model.LeadStatus(status)] {
			errs = append(errs, fmt.Sprintf("unrecognized final status %q", row.FinalStatus))
		}
	}

	return errs
}
