// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/mitplan/internal/plan"
)

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// SQLite implements plan.Repository using SQLite.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps the foreign_keys pragma in effect.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// SavePlan inserts or replaces a plan and all of its placements atomically.
// LastModified is set to the save time.
func (s *SQLite) SavePlan(ctx context.Context, p *plan.Plan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = plan.GeneratePlanID(p.BossID, p.Name, s.now())
	}

	party, err := json.Marshal(p.Party)
	if err != nil {
		return fmt.Errorf("encoding party: %w", err)
	}
	modified := s.now().UTC().Truncate(time.Microsecond)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsert := `
		INSERT INTO plans (id, name, boss_id, party, last_modified)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			boss_id = excluded.boss_id,
			party = excluded.party,
			last_modified = excluded.last_modified
	`
	if _, err := tx.ExecContext(ctx, upsert, p.ID, p.Name, p.BossID, string(party), modified.Format(timeLayout)); err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM placements WHERE plan_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clearing placements: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO placements (id, plan_id, slot, ability_id, job_id, start_time)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range p.Placements {
		pl := &p.Placements[i]
		if pl.ID == "" {
			pl.ID = uuid.NewString()
		}
		if _, err := stmt.ExecContext(ctx, pl.ID, p.ID, pl.Slot, pl.AbilityID, pl.JobID, pl.Start); err != nil {
			return fmt.Errorf("inserting placement %s: %w", pl.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	p.LastModified = modified
	return nil
}

// GetPlan retrieves a plan by ID.
func (s *SQLite) GetPlan(ctx context.Context, id string) (*plan.Plan, error) {
	query := `
		SELECT id, name, boss_id, party, last_modified
		FROM plans
		WHERE id = ?
	`

	var (
		p        plan.Plan
		party    string
		modified string
	)

	err := s.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.BossID, &party, &modified)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}

	if err := json.Unmarshal([]byte(party), &p.Party); err != nil {
		return nil, fmt.Errorf("decoding party: %w", err)
	}
	if p.Party == nil {
		p.Party = map[string]string{}
	}

	p.LastModified, err = time.Parse(timeLayout, modified)
	if err != nil {
		return nil, fmt.Errorf("parsing last modified: %w", err)
	}

	p.Placements, err = s.listPlacements(ctx, id)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *SQLite) listPlacements(ctx context.Context, planID string) ([]plan.Placement, error) {
	query := `
		SELECT id, slot, ability_id, job_id, start_time
		FROM placements
		WHERE plan_id = ?
		ORDER BY start_time, slot, id
	`

	rows, err := s.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("querying placements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []plan.Placement
	for rows.Next() {
		var pl plan.Placement
		if err := rows.Scan(&pl.ID, &pl.Slot, &pl.AbilityID, &pl.JobID, &pl.Start); err != nil {
			return nil, fmt.Errorf("scanning placement: %w", err)
		}
		out = append(out, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating placements: %w", err)
	}

	return out, nil
}

// ListPlans returns every plan, most recently modified first.
func (s *SQLite) ListPlans(ctx context.Context) ([]plan.Summary, error) {
	return s.listSummaries(ctx, "", nil)
}

// ListPlansByBoss returns the plans for one boss timeline.
func (s *SQLite) ListPlansByBoss(ctx context.Context, bossID string) ([]plan.Summary, error) {
	return s.listSummaries(ctx, "WHERE p.boss_id = ?", []any{bossID})
}

func (s *SQLite) listSummaries(ctx context.Context, where string, args []any) ([]plan.Summary, error) {
	query := `
		SELECT p.id, p.name, p.boss_id, p.last_modified, COUNT(pl.id)
		FROM plans p
		LEFT JOIN placements pl ON pl.plan_id = p.id
		` + where + `
		GROUP BY p.id
		ORDER BY p.last_modified DESC, p.id
	`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []plan.Summary
	for rows.Next() {
		var (
			sum      plan.Summary
			modified string
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.BossID, &modified, &sum.Placements); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		sum.LastModified, err = time.Parse(timeLayout, modified)
		if err != nil {
			return nil, fmt.Errorf("parsing last modified: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}

	return out, nil
}

// DeletePlan removes a plan and its placements.
func (s *SQLite) DeletePlan(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM placements WHERE plan_id = ?`, id); err != nil {
		return fmt.Errorf("deleting placements: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", plan.ErrPlanNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
