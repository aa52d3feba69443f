package store

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/fanbe-group/leads-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// in unit tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists the per-row import queries to prepare on each new
// connection; a large batch hits these thousands of times.
var preparedStatements = map[string]string{
	"find_lead_by_phone": `SELECT id, name, phone, email, source, status, interest_level, project_name, budget, notes, assigned_to, lead_date, created_at, updated_at FROM leads WHERE phone = $1`,
	"insert_lead":        `INSERT INTO leads (id, name, phone, email, source, status, interest_level, project_name, budget, notes, assigned_to, lead_date, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
	"insert_call":        `INSERT INTO calls (id, lead_id, employee_id, status, duration, feedback, call_date, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
	"insert_site_visit":  `INSERT INTO site_visits (id, lead_id, visit_date, status, feedback, interest_level, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
	"insert_task":        `INSERT INTO tasks (id, lead_id, title, due_date, priority, status, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
	"employee_by_email":  `SELECT id, name, email, created_at FROM employees WHERE lower(email) = lower($1)`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id             TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
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
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS calls (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	lead_id     TEXT NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
	employee_id TEXT,
	status      TEXT NOT NULL,
	duration    INTEGER NOT NULL DEFAULT 0,
	feedback    TEXT NOT NULL DEFAULT '',
	call_date   TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS site_visits (
	id             TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	lead_id        TEXT NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
	visit_date     TEXT NOT NULL,
	status         TEXT NOT NULL,
	feedback       TEXT NOT NULL DEFAULT '',
	interest_level TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tasks (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	lead_id    TEXT NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
	title      TEXT NOT NULL,
	due_date   TEXT NOT NULL,
	priority   TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS employees (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);
CREATE INDEX IF NOT EXISTS idx_calls_lead_id ON calls(lead_id);
CREATE INDEX IF NOT EXISTS idx_site_visits_lead_id ON site_visits(lead_id);
CREATE INDEX IF NOT EXISTS idx_tasks_lead_id ON tasks(lead_id);
CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) FindLeadByPhone(ctx context.Context, phone string) (*model.Lead, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, phone, email, source, status, interest_level, project_name, budget, notes, assigned_to, lead_date, created_at, updated_at FROM leads WHERE phone = $1`,
		phone,
	)
	lead, err := scanLead(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: find lead by phone")
	}
	return lead, nil
}

func (s *PostgresStore) InsertLead(ctx context.Context, lead model.Lead) (*model.Lead, error) {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = now
	}
	lead.UpdatedAt = now

	_, err := s.pool.Exec(ctx,
		`INSERT INTO leads (id, name, phone, email, source, status, interest_level, project_name, budget, notes, assigned_to, lead_date, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		lead.ID, lead.Name, lead.Phone, lead.Email, lead.Source, string(lead.Status),
		string(lead.InterestLevel), lead.ProjectName, lead.Budget, lead.Notes,
		nullable(lead.AssignedTo), lead.Date, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert lead %s", lead.Phone)
	}
	return &lead, nil
}

func (s *PostgresStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error) {
	query := `SELECT id, name, phone, email, source, status, interest_level, project_name, budget, notes, assigned_to, lead_date, created_at, updated_at FROM leads`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan lead")
		}
		leads = append(leads, *lead)
	}
	return leads, eris.Wrap(rows.Err(), "postgres: list leads iterate")
}

func (s *PostgresStore) InsertCall(ctx context.Context, call model.Call) error {
	if call.ID == "" {
		call.ID = uuid.New().String()
	}
	if call.CreatedAt.IsZero() {
		call.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO calls (id, lead_id, employee_id, status, duration, feedback, call_date, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		call.ID, call.LeadID, nullable(call.EmployeeID), string(call.Status),
		call.Duration, call.Feedback, call.CallDate, call.CreatedAt,
	)
	return eris.Wrapf(err, "postgres: insert call for lead %s", call.LeadID)
}

func (s *PostgresStore) InsertSiteVisit(ctx context.Context, visit model.SiteVisit) error {
	if visit.ID == "" {
		visit.ID = uuid.New().String()
	}
	if visit.CreatedAt.IsZero() {
		visit.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO site_visits (id, lead_id, visit_date, status, feedback, interest_level, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		visit.ID, visit.LeadID, visit.VisitDate, string(visit.Status),
		visit.Feedback, string(visit.InterestLevel), visit.CreatedAt,
	)
	return eris.Wrapf(err, "postgres: insert site visit for lead %s", visit.LeadID)
}

func (s *PostgresStore) InsertTask(ctx context.Context, task model.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tasks (id, lead_id, title, due_date, priority, status, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		task.ID, task.LeadID, task.Title, task.DueDate,
		string(task.Priority), string(task.Status), task.CreatedAt,
	)
	return eris.Wrapf(err, "postgres: insert task for lead %s", task.LeadID)
}

func (s *PostgresStore) GetEmployeeByEmail(ctx context.Context, email string) (*model.Employee, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, email, created_at FROM employees WHERE lower(email) = lower($1)`,
		email,
	)
	var emp model.Employee
	err := row.Scan(&emp.ID, &emp.Name, &emp.Email, &emp.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get employee by email")
	}
	return &emp, nil
}

func (s *PostgresStore) InsertEmployee(ctx context.Context, emp model.Employee) (*model.Employee, error) {
	if emp.ID == "" {
		emp.ID = uuid.New().String()
	}
	if emp.CreatedAt.IsZero() {
		emp.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO employees (id, name, email, created_at) VALUES ($1, $2, $3, $4)`,
		emp.ID, emp.Name, emp.Email, emp.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert employee %s", emp.Email)
	}
	return &emp, nil
}

func (s *PostgresStore) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, created_at FROM employees ORDER BY name`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list employees")
	}
	defer rows.Close()

	var emps []model.Employee
	for rows.Next() {
		var emp model.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Email, &emp.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan employee")
		}
		emps = append(emps, emp)
	}
	return emps, eris.Wrap(rows.Err(), "postgres: list employees iterate")
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanLead(row scannable) (*model.Lead, error) {
	var lead model.Lead
	var assignedTo *string
	err := row.Scan(&lead.ID, &lead.Name, &lead.Phone, &lead.Email, &lead.Source,
		&lead.Status, &lead.InterestLevel, &lead.ProjectName, &lead.Budget,
		&lead.Notes, &assignedTo, &lead.Date, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if assignedTo != nil {
		lead.AssignedTo = *assignedTo
	}
	return &lead, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
