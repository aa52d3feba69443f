package model

import "time"

// LeadStatus represents the sales funnel position of a lead.
type LeadStatus string

const (
	LeadStatusNew           LeadStatus = "new"
	LeadStatusFollowUp      LeadStatus = "follow_up"
	LeadStatusSiteVisit     LeadStatus = "site_visit"
	LeadStatusBooked        LeadStatus = "booked"
	LeadStatusLost          LeadStatus = "lost"
	LeadStatusNotInterested LeadStatus = "not_interested"
)

// InterestLevel classifies how warm a lead is.
type InterestLevel string

const (
	InterestHot  InterestLevel = "hot"
	InterestWarm InterestLevel = "warm"
	InterestCold InterestLevel = "cold"
)

// CallStatus is the outcome of a call attempt.
type CallStatus string

const (
	CallConnected   CallStatus = "connected"
	CallNotAnswered CallStatus = "not_answered"
	CallBackLater   CallStatus = "call_back_requested"
	CallBusy        CallStatus = "busy"
	CallSwitchedOff CallStatus = "switched_off"
)

// KnownCallStatuses lists the canonical call-status vocabulary.
var KnownCallStatuses = []CallStatus{
	CallConnected,
	CallNotAnswered,
	CallBackLater,
	CallBusy,
	CallSwitchedOff,
}

// VisitStatus is the state of a site visit.
type VisitStatus string

const (
	VisitScheduled VisitStatus = "scheduled"
	VisitCompleted VisitStatus = "completed"
)

// TaskPriority is the urgency of a follow-up task.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
)

// TaskStatus is the completion state of a task.
type TaskStatus string

const (
	TaskPending TaskStatus = "pending"
)

// Lead is the central CRM entity. Phone is the natural key used for
// duplicate detection; the importer never mutates a Lead after creation.
type Lead struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email,omitempty"`
	Source        string        `json:"source,omitempty"`
	Status        LeadStatus    `json:"status"`
	InterestLevel InterestLevel `json:"interest_level,omitempty"`
	ProjectName   string        `json:"project_name,omitempty"`
	Budget        string        `json:"budget,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	AssignedTo    string        `json:"assigned_to,omitempty"` // employee ID
	Date          string        `json:"date"`                  // YYYY-MM-DD
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Call is a call-attempt log owned by a Lead.
type Call struct {
	ID         string     `json:"id"`
	LeadID     string     `json:"lead_id"`
	EmployeeID string     `json:"employee_id,omitempty"`
	Status     CallStatus `json:"status"`
	Duration   int        `json:"duration"` // seconds
	Feedback   string     `json:"feedback,omitempty"`
	CallDate   string     `json:"call_date"` // YYYY-MM-DD
	CreatedAt  time.Time  `json:"created_at"`
}

// SiteVisit records a planned or completed project visit by a Lead.
type SiteVisit struct {
	ID            string        `json:"id"`
	LeadID        string        `json:"lead_id"`
	VisitDate     string        `json:"visit_date"` // YYYY-MM-DD
	Status        VisitStatus   `json:"status"`
	Feedback      string        `json:"feedback,omitempty"`
	InterestLevel InterestLevel `json:"interest_level,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Task is a follow-up reminder derived from an import row.
type Task struct {
	ID        string       `json:"id"`
	LeadID    string       `json:"lead_id"`
	Title     string       `json:"title"`
	DueDate   string       `json:"due_date"` // YYYY-MM-DD
	Priority  TaskPriority `json:"priority"`
	Status    TaskStatus   `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

// Employee is a directory entry leads can be assigned to.
type Employee struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ImportResult aggregates the outcome of one import run. Details holds at
// most MaxErrorDetails formatted row errors; overflow is counted but not
// listed.
type ImportResult struct {
	Success    int      `json:"success" yaml:"success"`
	Errors     int      `json:"errors" yaml:"errors"`
	Duplicates int      `json:"duplicates" yaml:"duplicates"`
	Details    []string `json:"details,omitempty" yaml:"details,omitempty"`
}

// MaxErrorDetails caps the ImportResult error list.
const MaxErrorDetails = 20

// AddDetail records a formatted row error, respecting the cap.
func (r *ImportResult) AddDetail(msg string) {
	if len(r.Details) < MaxErrorDetails {
		r.Details = append(r.Details, msg)
	}
}

// Processed returns the total number of rows that reached a terminal state.
func (r *ImportResult) Processed() int {
	return r.Success + r.Errors
}
