package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS patients (
    id            INTEGER PRIMARY KEY,
    name          TEXT NOT NULL,
    dob           TEXT NOT NULL,
    insurance     TEXT NOT NULL,
    policy_number TEXT NOT NULL,
    status        TEXT NOT NULL,
    phone         TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS claims (
    id           INTEGER PRIMARY KEY,
    patient_name TEXT NOT NULL,
    claim_number TEXT NOT NULL,
    service_date TEXT NOT NULL,
    amount       TEXT NOT NULL,
    status       TEXT NOT NULL,
    days_pending INTEGER NOT NULL,
    reason       TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS care_tasks (
    id             INTEGER PRIMARY KEY,
    patient_name   TEXT NOT NULL,
    task_type      TEXT NOT NULL,
    priority       TEXT NOT NULL,
    due_date       TEXT NOT NULL,
    status         TEXT NOT NULL,
    contact_method TEXT NOT NULL,
    phone          TEXT NOT NULL,
    email          TEXT NOT NULL,
    address        TEXT NOT NULL,
    notes          TEXT NOT NULL
)`

const (
	patientCols  = `id, name, dob, insurance, policy_number, status, phone`
	claimCols    = `id, patient_name, claim_number, service_date, amount, status, days_pending, reason`
	careTaskCols = `id, patient_name, task_type, priority, due_date, status, contact_method, phone, email, address, notes`
)

// PGSource reads the catalogs from Postgres. The three tables are read
// concurrently, once; the resulting Store does not observe later writes.
type PGSource struct {
	pool *pgxpool.Pool
}

func NewPGSource(pool *pgxpool.Pool) *PGSource {
	return &PGSource{pool: pool}
}

func (s *PGSource) Load(ctx context.Context) (*Store, error) {
	return load(ctx, s.pool)
}

// load needs a q that allows concurrent queries, such as a pool.
func load(ctx context.Context, q queryable) (*Store, error) {
	var (
		patients []Patient
		claims   []Claim
		tasks    []CareTask
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		patients, err = collect[Patient](egCtx, q, `SELECT `+patientCols+` FROM patients ORDER BY id`)
		if err != nil {
			return fmt.Errorf("load patients: %w", err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		claims, err = collect[Claim](egCtx, q, `SELECT `+claimCols+` FROM claims ORDER BY id`)
		if err != nil {
			return fmt.Errorf("load claims: %w", err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		tasks, err = collect[CareTask](egCtx, q, `SELECT `+careTaskCols+` FROM care_tasks ORDER BY id`)
		if err != nil {
			return fmt.Errorf("load care tasks: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return New(patients, claims, tasks)
}

func collect[T any](ctx context.Context, q queryable, sql string) ([]T, error) {
	rows, err := q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

// Seed creates the catalog tables when missing and upserts every record of
// store in a single transaction. It returns the number of rows written.
func Seed(ctx context.Context, pool *pgxpool.Pool, store *Store) (int, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback(ctx)

	n, err := seed(ctx, tx, store)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return n, nil
}

func seed(ctx context.Context, q queryable, store *Store) (int, error) {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return 0, fmt.Errorf("create catalog tables: %w", err)
	}

	b := &pgx.Batch{}
	for _, p := range store.Patients() {
		b.Queue(`INSERT INTO patients (`+patientCols+`) VALUES ($1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, dob = EXCLUDED.dob,
				insurance = EXCLUDED.insurance, policy_number = EXCLUDED.policy_number,
				status = EXCLUDED.status, phone = EXCLUDED.phone`,
			p.ID, p.Name, p.DOB, p.Insurance, p.PolicyNumber, p.Status, p.Phone)
	}
	for _, c := range store.Claims() {
		b.Queue(`INSERT INTO claims (`+claimCols+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			ON CONFLICT (id) DO UPDATE SET patient_name = EXCLUDED.patient_name,
				claim_number = EXCLUDED.claim_number, service_date = EXCLUDED.service_date,
				amount = EXCLUDED.amount, status = EXCLUDED.status,
				days_pending = EXCLUDED.days_pending, reason = EXCLUDED.reason`,
			c.ID, c.PatientName, c.ClaimNumber, c.ServiceDate, c.Amount, string(c.Status), c.DaysPending, c.Reason)
	}
	for _, t := range store.CareTasks() {
		b.Queue(`INSERT INTO care_tasks (`+careTaskCols+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			ON CONFLICT (id) DO UPDATE SET patient_name = EXCLUDED.patient_name,
				task_type = EXCLUDED.task_type, priority = EXCLUDED.priority,
				due_date = EXCLUDED.due_date, status = EXCLUDED.status,
				contact_method = EXCLUDED.contact_method, phone = EXCLUDED.phone,
				email = EXCLUDED.email, address = EXCLUDED.address, notes = EXCLUDED.notes`,
			t.ID, t.PatientName, t.TaskType, string(t.Priority), t.DueDate, t.Status,
			string(t.ContactMethod), t.Phone, t.Email, t.Address, t.Notes)
	}

	n := b.Len()
	if err := q.SendBatch(ctx, b).Close(); err != nil {
		return 0, fmt.Errorf("upsert catalog rows: %w", err)
	}
	return n, nil
}
