// Package store persists leads and their derived records. Two backends are
// provided: Postgres for shared deployments and SQLite for single-user
// installs and tests.
package store

import (
	"context"

	"github.com/fanbe-group/leads-cli/internal/model"
)

// LeadFilter specifies criteria for listing leads.
type LeadFilter struct {
	Status model.LeadStatus `json:"status,omitempty"`
	Limit  int              `json:"limit,omitempty"`
	Offset int              `json:"offset,omitempty"`
}

// Store defines the persistence interface the import pipeline consumes.
// FindLeadByPhone and GetEmployeeByEmail return (nil, nil) when no record
// matches.
type Store interface {
	// Leads
	FindLeadByPhone(ctx context.Context, phone string) (*model.Lead, error)
	InsertLead(ctx context.Context, lead model.Lead) (*model.Lead, error)
	ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error)

	// Derived records
	InsertCall(ctx context.Context, call model.Call) error
	InsertSiteVisit(ctx context.Context, visit model.SiteVisit) error
	InsertTask(ctx context.Context, task model.Task) error

	// Employee directory
	GetEmployeeByEmail(ctx context.Context, email string) (*model.Employee, error)
	InsertEmployee(ctx context.Context, emp model.Employee) (*model.Employee, error)
	ListEmployees(ctx context.Context) ([]model.Employee, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
