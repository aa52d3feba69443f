package importer

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanbe-group/leads-cli/internal/model"
	"github.com/fanbe-group/leads-cli/internal/store"
)

// memStore is an in-memory Store for pipeline tests. Failure toggles let
// tests exercise the per-row error paths.
type memStore struct {
	leads     map[string]model.Lead // keyed by phone
	employees map[string]model.Employee
	calls     []model.Call
	visits    []model.SiteVisit
	tasks     []model.Task

	failLeadPhone  string // InsertLead fails for this phone
	failSiteVisits bool
}

func newMemStore() *memStore {
	return &memStore{
		leads:     make(map[string]model.Lead),
		employees: make(map[string]model.Employee),
	}
}

func (m *memStore) FindLeadByPhone(_ context.Context, phone string) (*model.Lead, error) {
	if lead, ok := m.leads[phone]; ok {
		return &lead, nil
	}
	return nil, nil
}

func (m *memStore) InsertLead(_ context.Context, lead model.Lead) (*model.Lead, error) {
	if lead.Phone == m.failLeadPhone {
		return nil, eris.New("insert failed")
	}
	if lead.ID == "" {
		lead.ID = fmt.Sprintf("lead-%d", len(m.leads)+1)
	}
	m.leads[lead.Phone] = lead
	return &lead, nil
}

func (m *memStore) ListLeads(_ context.Context, _ store.LeadFilter) ([]model.Lead, error) {
	var leads []model.Lead
	for _, lead := range m.leads {
		leads = append(leads, lead)
	}
	return leads, nil
}

func (m *memStore) InsertCall(_ context.Context, call model.Call) error {
	m.calls = append(m.calls, call)
	return nil
}

func (m *memStore) InsertSiteVisit(_ context.Context, visit model.SiteVisit) error {
	if m.failSiteVisits {
		return eris.New("site visit insert failed")
	}
	m.visits = append(m.visits, visit)
	return nil
}

func (m *memStore) InsertTask(_ context.Context, task model.Task) error {
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *memStore) GetEmployeeByEmail(_ context.Context, email string) (*model.Employee, error) {
	if emp, ok := m.employees[email]; ok {
		return &emp, nil
	}
	return nil, nil
}

func (m *memStore) InsertEmployee(_ context.Context, emp model.Employee) (*model.Employee, error) {
	m.employees[emp.Email] = emp
	return &emp, nil
}

func (m *memStore) ListEmployees(_ context.Context) ([]model.Employee, error) { return nil, nil }
func (m *memStore) Migrate(_ context.Context) error                           { return nil }
func (m *memStore) Close() error                                              { return nil }

func newTestImporter(st store.Store) *Importer {
	return New(st, Config{
		DefaultSource: "CSV Import",
		Now:           func() time.Time { return time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC) },
	})
}

func TestImport_EndToEnd(t *testing.T) {
	st := newMemStore()
	imp := newTestImporter(st)

	input := "lead_name,phone,date\nA Singh,8851481867,31/01/2026\nA Singh,8851481867,01/02/2026\n"
	result, err := imp.Import(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, 1, result.Errors)

	require.Len(t, st.leads, 1)
	lead, ok := st.leads["+918851481867"]
	require.True(t, ok)
	assert.Equal(t, "A Singh", lead.Name)
	assert.Equal(t, "2026-01-31", lead.Date)
	assert.Equal(t, model.LeadStatusNew, lead.Status)
	assert.Equal(t, "CSV Import", lead.Source)
}

func TestImport_Idempotent(t *testing.T) {
	st := newMemStore()
	imp := newTestImporter(st)
	input := "lead_name,phone\nRavi Kumar,9876543210\nPriya Sharma,9876543211\n"

	first, err := imp.Import(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Success)
	assert.Equal(t, 0, first.Duplicates)

	second, err := imp.Import(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Success)
	assert.Equal(t, 2, second.Duplicates)
	assert.Equal(t, 2, second.Errors)
	assert.Len(t, st.leads, 2)
}

func TestImport_InBatchDedup_NormalizedVariants(t *testing.T) {
	st := newMemStore()
	imp := newTestImporter(st)

	// Three spellings of the same number; only the first row wins.
	input := "lead_name,phone\nRavi,9876543210\nRavi,09876543210\nRavi,919876543210\n"
	result, err := imp.Import(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 2, result.Duplicates)
	assert.Equal(t, 2, result.Errors)
	assert.Len(t, st.leads, 1)
}

func TestImport_PartialFailureIsolation(t *testing.T) {
	st := newMemStore()
	imp := newTestImporter(st)

	var b strings.Builder
	b.WriteString("lead_name,phone\n")
	for i := 0; i < 100; i++ {
		if i == 49 {
			b.WriteString("X,9876540049\n") // name too short
			continue
		}
		fmt.Fprintf(&b, "Lead %d,98765%05d\n", i, i)
	}

	result, err := imp.Import(context.Background(), b.String())
	require.NoError(t, err)

	assert.Equal(t, 99, result.Success)
	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 0, result.Duplicates)
	assert.Len(t, st.leads, 99)
}

func TestImport_DerivedRecordsBestEffort(t *testing.T) {
	st := newMemStore()
	st.failSiteVisits = true
	imp := newTestImporter(st)

	input := "lead_name,phone,site_visit_status\nRavi Kumar,9876543210,visited\n"
	result, err := imp.Import(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 0, result.Errors)
	assert.Len(t, st.leads, 1)
	assert.Empty(t, st.visits)
}

func TestImport_LeadInsertFailureIsRowError(t *testing.T) {
	st := newMemStore()
	st.failLeadPhone = "+919876543210"
	imp := newTestImporter(st)

	input := "lead_name,phone\nRavi Kumar,9876543210\nPriya Sharma,9876543211\n"
	result, err := imp.Import(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 1, result.Errors)
	require.Len(t, result.Details, 1)
	assert.Contains(t, result.Details[0], "Row 2")
	assert.Contains(t, result.Details[0], "failed to save lead")
}

func TestImport_UnknownAssigneeRejectsRow(t *testing.T) {
	st := newMemStore()
	imp := newTestImporter(st)

	input := "lead_name,phone,assigned_to_email\nRavi Kumar,9876543210,ghost@example.com\n"
	result, err := imp.Import(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Success)
	assert.Equal(t, 1, result.Errors)
	assert.Empty(t, st.leads)
	require.Len(t, result.Details, 1)
	assert.Contains(t, result.Details[0], "ghost@example.com")
}

func TestImport_ResolvedAssigneeOnRecords(t *testing.T) {
	st := newMemStore()
	st.employees["agent@example.com"] = model.Employee{ID: "emp-1", Email: "agent@example.com"}
	imp := newTestImporter(st)

	input := "lead_name,phone,assigned_to_email,call_attempt,call_status\n" +
		"Ravi Kumar,9876543210,Agent@Example.com,1st,Connected\n"
	result, err := imp.Import(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Success)
	lead := st.leads["+919876543210"]
	assert.Equal(t, "emp-1", lead.AssignedTo)

	require.Len(t, st.calls, 1)
	assert.Equal(t, "emp-1", st.calls[0].EmployeeID)
	assert.Equal(t, lead.ID, st.calls[0].LeadID)
	assert.Equal(t, model.CallConnected, st.calls[0].Status)
	assert.Equal(t, 120, st.calls[0].Duration)
}

func TestImport_FullRowSynthesis(t *testing.T) {
	st := newMemStore()
	imp := newTestImporter(st)

	input := "lead_name,phone,date,interest_level,next_followup_date,site_visit_status,final_status,buyer_feedback,notes\n" +
		"Ravi Kumar,9876543210,15/01/2026,hot,20/01/2026,planned,follow up,Liked the layout,Call after 6pm\n"
	result, err := imp.Import(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, 1, result.Success)

	lead := st.leads["+919876543210"]
	assert.Equal(t, model.LeadStatusFollowUp, lead.Status)
	assert.Equal(t, model.InterestHot, lead.InterestLevel)
	assert.Equal(t, "Liked the layout\nCall after 6pm", lead.Notes)

	require.Len(t, st.visits, 1)
	assert.Equal(t, model.VisitScheduled, st.visits[0].Status)
	assert.Equal(t, "2026-01-15", st.visits[0].VisitDate)

	require.Len(t, st.tasks, 1)
	assert.Equal(t, model.PriorityHigh, st.tasks[0].Priority)
	assert.Equal(t, "2026-01-20", st.tasks[0].DueDate)
	assert.Equal(t, model.TaskPending, st.tasks[0].Status)
	assert.Equal(t, "Follow up with Ravi Kumar", st.tasks[0].Title)
}

func TestImport_MissingDateDefaultsToRunDate(t *testing.T) {
	st := newMemStore()
	imp := newTestImporter(st)

	input := "lead_name,phone\nRavi Kumar,9876543210\n"
	result, err := imp.Import(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, 1, result.Success)

	assert.Equal(t, "2026-01-15", st.leads["+919876543210"].Date)
}

func TestImport_InvalidDateRejected(t *testing.T) {
	st := newMemStore()
	imp := newTestImporter(st)

	input := "lead_name,phone,date\nRavi Kumar,9876543210,31/02/2026\n"
	result, err := imp.Import(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Success)
	assert.Equal(t, 1, result.Errors)
	assert.Empty(t, st.leads)
}

func TestImport_ErrorDetailCap(t *testing.T) {
	st := newMemStore()
	imp := newTestImporter(st)

	var b strings.Builder
	b.WriteString("lead_name,phone\n")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "X,98765%05d\n", i) // every name too short
	}

	result, err := imp.Import(context.Background(), b.String())
	require.NoError(t, err)

	assert.Equal(t, 25, result.Errors)
	assert.Len(t, result.Details, model.MaxErrorDetails)
}

func TestImport_RowNumbersStartAtTwo(t *testing.T) {
	st := newMemStore()
	imp := newTestImporter(st)

	input := "lead_name,phone\nX,9876543210\n"
	result, err := imp.Import(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, result.Details, 1)
	assert.True(t, strings.HasPrefix(result.Details[0], "Row 2 (X): "), result.Details[0])
}

func TestImport_ParseErrorAbortsBatch(t *testing.T) {
	st := newMemStore()
	imp := newTestImporter(st)

	_, err := imp.Import(context.Background(), "")
	assert.Error(t, err)
	assert.Empty(t, st.leads)
}
