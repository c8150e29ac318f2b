package plan

import (
	"context"
	"time"
)

// Summary is a plan listing entry.
type Summary struct {
	ID           string
	Name         string
	BossID       string
	Placements   int
	LastModified time.Time
}

// Repository defines the storage interface for plans.
type Repository interface {
	// SavePlan inserts or replaces a plan and its placements.
	// LastModified is stamped by the repository.
	SavePlan(ctx context.Context, p *Plan) error

	// GetPlan retrieves a plan by ID. It returns nil, nil when missing.
	GetPlan(ctx context.Context, id string) (*Plan, error)

	// ListPlans returns every plan, most recently modified first.
	ListPlans(ctx context.Context) ([]Summary, error)

	// ListPlansByBoss returns the plans for one boss timeline.
	ListPlansByBoss(ctx context.Context, bossID string) ([]Summary, error)

	// DeletePlan removes a plan. Returns ErrPlanNotFound if missing.
	DeletePlan(ctx context.Context, id string) error

	// Close releases any resources held by the repository.
	Close() error
}
