package database

import (
	"context"

	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/types"
)

// ColumnRepository defines operations for pipeline columns.
type ColumnRepository interface {
	ListColumns(ctx context.Context) ([]models.Column, error)
	InsertColumn(ctx context.Context, col models.Column) (models.Column, error)
	DeleteColumn(ctx context.Context, key string) error
	CountLeadsInStage(ctx context.Context, key string) (int, error)
}

// LeadRepository defines operations for leads.
type LeadRepository interface {
	ListLeads(ctx context.Context) ([]*models.Lead, error)
	GetLead(ctx context.Context, id types.LeadID) (*models.Lead, error)
	InsertLead(ctx context.Context, lead *models.Lead) (*models.Lead, error)
	UpdateLead(ctx context.Context, lead *models.Lead) error
	UpdateLeadStage(ctx context.Context, id types.LeadID, stage string) error
	DeleteLead(ctx context.Context, id types.LeadID) error
}

// ActivityRepository defines the append-only activity log.
type ActivityRepository interface {
	InsertActivity(ctx context.Context, a models.Activity) (models.Activity, error)
	ListActivity(ctx context.Context, limit int) ([]models.Activity, error)
}

// UserRepository defines role lookups.
type UserRepository interface {
	CreateUser(ctx context.Context, name string, role models.Role) (*models.User, error)
	GetUserByID(ctx context.Context, id types.UserID) (*models.User, error)
	GetUserByName(ctx context.Context, name string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// DataStore is the full persistence gateway, composed of the smaller
// interfaces so consumers can depend on only what they use.
type DataStore interface {
	ColumnRepository
	LeadRepository
	ActivityRepository
	UserRepository
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)
