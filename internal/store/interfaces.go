package store

import (
	"context"
	"errors"

	"adflow.app/tracker/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert collides with a unique constraint.
var ErrConflict = errors.New("conflict")

// OrganizationStore defines the contract for organization data access
type OrganizationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	// Lock reads the organization with a row lock held until the surrounding
	// transaction ends. Quota checks take it before counting usage.
	Lock(ctx context.Context, id int64) (*model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	CountBrands(ctx context.Context, orgID int64) (int64, error)
	CountCreatives(ctx context.Context, orgID int64) (int64, error)
}

// BrandStore defines the contract for brand data access
type BrandStore interface {
	GetByID(ctx context.Context, id int64) (*model.Brand, error)
	Create(ctx context.Context, brand *model.Brand) error
	// List returns brands of the given organizations; nil means all.
	List(ctx context.Context, orgIDs []int64) ([]model.Brand, error)
}

type ProjectFilter struct {
	OrganizationIDs []int64 // nil means all organizations
	Status          *model.ProjectStatus
	BrandID         *int64
	Limit           int32
	Offset          int32
}

// ProjectStore defines the contract for project data access.
// Returned projects carry the owning organization id.
type ProjectStore interface {
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	// Lock reads the project with a row lock held until the surrounding
	// transaction ends. Callers that also lock the organization must lock it first.
	Lock(ctx context.Context, id int64) (*model.Project, error)
	Create(ctx context.Context, project *model.Project) error
	UpdateStatus(ctx context.Context, project *model.Project) error
	// SyncTotalCreatives sets total_creatives to the live creative count.
	SyncTotalCreatives(ctx context.Context, project *model.Project) error
	List(ctx context.Context, filter ProjectFilter) ([]model.Project, error)
}

// CreativeStore defines the contract for creative and creative batch data access
type CreativeStore interface {
	GetByID(ctx context.Context, id int64) (*model.Creative, error)
	Create(ctx context.Context, creative *model.Creative) error
	Delete(ctx context.Context, id int64) error
	ListByProject(ctx context.Context, projectID int64) ([]model.Creative, error)
	ListByBatch(ctx context.Context, batchID int64) ([]model.Creative, error)
	// Earliest returns the first creative delivered to the project, ties
	// broken by id. ErrNotFound when the project has none.
	Earliest(ctx context.Context, projectID int64) (*model.Creative, error)
	CountByProject(ctx context.Context, projectID int64) (int64, error)
	GetBatch(ctx context.Context, projectID int64, idempotencyKey string) (*model.CreativeBatch, error)
	CreateBatch(ctx context.Context, batch *model.CreativeBatch) error
}

// TemplateStore defines the contract for template data access
type TemplateStore interface {
	GetByID(ctx context.Context, id int64) (*model.Template, error)
	Create(ctx context.Context, template *model.Template) error
	ListActiveByBrand(ctx context.Context, brandID int64) ([]model.Template, error)
}

// CommentStore defines the contract for project comment data access
type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByProject(ctx context.Context, projectID int64) ([]model.Comment, error)
}

// ActivityLogStore is append-only: there is no update or delete.
type ActivityLogStore interface {
	Create(ctx context.Context, log *model.ActivityLog) error
	ListByOrganization(ctx context.Context, orgID int64, limit, offset int32) ([]model.ActivityLog, error)
}
