package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/fanbe-group/leads-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	phone          TEXT NOT NULL UNIQUE,
	email          TEXT NOT NULL DEFAULT '',
	source         TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL DEFAULT 'new',
	interest_level TEXT NOT NULL DEFAULT '',
	project_name   TEXT NOT NULL DEFAULT '',
	budget         TEXT NOT NULL DEFAULT '',
	notes          TEXT NOT NULL DEFAULT '',
	assigned_to    TEXT,
	lead_date      TEXT NOT NULL,
	created_at     DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS calls (
	id          TEXT PRIMARY KEY,
	lead_id     TEXT NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
	employee_id TEXT,
	status      TEXT NOT NULL,
	duration    INTEGER NOT NULL DEFAULT 0,
	feedback    TEXT NOT NULL DEFAULT '',
	call_date   TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS site_visits (
	id             TEXT PRIMARY KEY,
	lead_id        TEXT NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
	visit_date     TEXT NOT NULL,
	status         TEXT NOT NULL,
	feedback       TEXT NOT NULL DEFAULT '',
	interest_level TEXT NOT NULL DEFAULT '',
	created_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS tasks (
	id         TEXT PRIMARY KEY,
	lead_id    TEXT NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
	title      TEXT NOT NULL,
	due_date   TEXT NOT NULL,
	priority   TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'pending',
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS employees (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE COLLATE NOCASE,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);
CREATE INDEX IF NOT EXISTS idx_calls_lead_id ON calls(lead_id);
CREATE INDEX IF NOT EXISTS idx_site_visits_lead_id ON site_visits(lead_id);
CREATE INDEX IF NOT EXISTS idx_tasks_lead_id ON tasks(lead_id);
CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) FindLeadByPhone(ctx context.Context, phone string) (*model.Lead, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, phone, email, source, status, interest_level, project_name, budget, notes, assigned_to, lead_date, created_at, updated_at FROM leads WHERE phone = ?`,
		phone,
	)
	lead, err := scanSQLiteLead(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: find lead by phone")
	}
	return lead, nil
}

func (s *SQLiteStore) InsertLead(ctx context.Context, lead model.Lead) (*model.Lead, error) {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = now
	}
	lead.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (id, name, phone, email, source, status, interest_level, project_name, budget, notes, assigned_to, lead_date, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lead.ID, lead.Name, lead.Phone, lead.Email, lead.Source, string(lead.Status),
		string(lead.InterestLevel), lead.ProjectName, lead.Budget, lead.Notes,
		nullable(lead.AssignedTo), lead.Date, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert lead %s", lead.Phone)
	}
	return &lead, nil
}

func (s *SQLiteStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error) {
	query := `SELECT id, name, phone, email, source, status, interest_level, project_name, budget, notes, assigned_to, lead_date, created_at, updated_at FROM leads`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		lead, err := scanSQLiteLead(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan lead")
		}
		leads = append(leads, *lead)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: list leads iterate")
}

func (s *SQLiteStore) InsertCall(ctx context.Context, call model.Call) error {
	if call.ID == "" {
		call.ID = uuid.New().String()
	}
	if call.CreatedAt.IsZero() {
		call.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO calls (id, lead_id, employee_id, status, duration, feedback, call_date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		call.ID, call.LeadID, nullable(call.EmployeeID), string(call.Status),
		call.Duration, call.Feedback, call.CallDate, call.CreatedAt,
	)
	return eris.Wrapf(err, "sqlite: insert call for lead %s", call.LeadID)
}

func (s *SQLiteStore) InsertSiteVisit(ctx context.Context, visit model.SiteVisit) error {
	if visit.ID == "" {
		visit.ID = uuid.New().String()
	}
	if visit.CreatedAt.IsZero() {
		visit.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO site_visits (id, lead_id, visit_date, status, feedback, interest_level, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		visit.ID, visit.LeadID, visit.VisitDate, string(visit.Status),
		visit.Feedback, string(visit.InterestLevel), visit.CreatedAt,
	)
	return eris.Wrapf(err, "sqlite: insert site visit for lead %s", visit.LeadID)
}

func (s *SQLiteStore) InsertTask(ctx context.Context, task model.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, lead_id, title, due_date, priority, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.LeadID, task.Title, task.DueDate,
		string(task.Priority), string(task.Status), task.CreatedAt,
	)
	return eris.Wrapf(err, "sqlite: insert task for lead %s", task.LeadID)
}

func (s *SQLiteStore) GetEmployeeByEmail(ctx context.Context, email string) (*model.Employee, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, created_at FROM employees WHERE lower(email) = lower(?)`,
		email,
	)
	var emp model.Employee
	err := row.Scan(&emp.ID, &emp.Name, &emp.Email, &emp.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get employee by email")
	}
	return &emp, nil
}

func (s *SQLiteStore) InsertEmployee(ctx context.Context, emp model.Employee) (*model.Employee, error) {
	if emp.ID == "" {
		emp.ID = uuid.New().String()
	}
	if emp.CreatedAt.IsZero() {
		emp.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (id, name, email, created_at) VALUES (?, ?, ?, ?)`,
		emp.ID, emp.Name, emp.Email, emp.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert employee %s", emp.Email)
	}
	return &emp, nil
}

func (s *SQLiteStore) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, created_at FROM employees ORDER BY name`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list employees")
	}
	defer rows.Close()

	var emps []model.Employee
	for rows.Next() {
		var emp model.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Email, &emp.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan employee")
		}
		emps = append(emps, emp)
	}
	return emps, eris.Wrap(rows.Err(), "sqlite: list employees iterate")
}

func scanSQLiteLead(row scannable) (*model.Lead, error) {
	var lead model.Lead
	var assignedTo sql.NullString
	err := row.Scan(&lead.ID, &lead.Name, &lead.Phone, &lead.Email, &lead.Source,
		&lead.Status, &lead.InterestLevel, &lead.ProjectName, &lead.Budget,
		&lead.Notes, &assignedTo, &lead.Date, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if assignedTo.Valid {
		lead.AssignedTo = assignedTo.String
	}
	return &lead, nil
}
