package importer

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/fanbe-group/leads-cli/internal/model"
	"github.com/fanbe-group/leads-cli/internal/store"
)

// connectedCallDuration is the nominal duration recorded for an imported
// connected call; the source export carries no duration column.
const connectedCallDuration = 120

// Records is the output of synthesizing one accepted row: the Lead plus
// whatever derived records the row carried enough data for.
type Records struct {
	Lead      model.Lead
	Call      *model.Call
	SiteVisit *model.SiteVisit
	Task      *model.Task
}

// Synthesizer turns accepted rows into persistable records.
type Synthesizer struct {
	store         store.Store
	defaultSource string
	runDate       string // YYYY-MM-DD, applied when a row carries no date
}

func NewSynthesizer(st store.Store, defaultSource, runDate string) *Synthesizer {
	return &Synthesizer{
		store:         st,
		defaultSource: defaultSource,
		runDate:       runDate,
	}
}

// Build produces the Lead and optional derived records for a validated,
// non-duplicate row. A non-nil error rejects the whole row; in particular an
// assignee email that does not resolve against the employee directory is a
// row error, never a silently dropped assignment.
func (s *Synthesizer) Build(ctx context.Context, row NormalizedRow) (*Records, error) {
	var employee *model.Employee
	if row.AssignedToEmail != "" {
		var err error
		employee, err = s.store.GetEmployeeByEmail(ctx, row.AssignedToEmail)
		if err != nil {
			return nil, eris.Wrapf(err, "importer: resolve employee %s", row.AssignedToEmail)
		}
		if employee == nil {
			// Surfaces verbatim in the row's error detail.
			return nil, eris.Errorf("no employee found with email %s", row.AssignedToEmail)
		}
	}

	date := row.Date
	if date == "" {
		date = s.runDate
	}
	status := row.FinalStatus
	if status == "" {
		status = model.LeadStatusNew
	}
	source := row.Source
	if source == "" {
		source = s.defaultSource
	}

	recs := &Records{
		Lead: model.Lead{
			Name:          row.Name,
			Phone:         row.Phone,
			Email:         row.Email,
			Source:        source,
			Status:        status,
			InterestLevel: row.InterestLevel,
			ProjectName:   row.ProjectName,
			Budget:        row.Budget,
			Notes:         joinNotes(row.BuyerFeedback, row.Notes),
			Date:          date,
		},
	}
	if employee != nil {
		recs.Lead.AssignedTo = employee.ID
	}

	if row.HasCallAttempt && row.CallStatus != "" {
		duration := 0
		if row.CallStatus == model.CallConnected {
			duration = connectedCallDuration
		}
		call := &model.Call{
			Status:   row.CallStatus,
			Duration: duration,
			Feedback: row.BuyerFeedback,
			CallDate: date,
		}
		if employee != nil {
			call.EmployeeID = employee.ID
		}
		recs.Call = call
	}

	switch row.SiteVisitStatus {
	case "visited":
		recs.SiteVisit = &model.SiteVisit{
			VisitDate:     date,
			Status:        model.VisitCompleted,
			Feedback:      row.BuyerFeedback,
			InterestLevel: row.InterestLevel,
		}
	case "planned":
		recs.SiteVisit = &model.SiteVisit{
			VisitDate:     date,
			Status:        model.VisitScheduled,
			InterestLevel: row.InterestLevel,
		}
	}

	if row.FollowupDate != "" {
		priority := model.PriorityMedium
		if row.InterestLevel == model.InterestHot {
			priority = model.PriorityHigh
		}
		recs.Task = &model.Task{
			Title:    fmt.Sprintf("Follow up with %s", row.Name),
			DueDate:  row.FollowupDate,
			Priority: priority,
			Status:   model.TaskPending,
		}
	}

	return recs, nil
}

func joinNotes(feedback, notes string) string {
	switch {
	case feedback == "":
		return notes
	case notes == "":
		return feedback
	default:
		return feedback + "\n" + notes
	}
}
