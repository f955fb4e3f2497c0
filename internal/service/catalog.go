package service

import (
	"context"
	"errors"
	"fmt"

	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/store"
)

type ListProjectsParams struct {
	Status  *model.ProjectStatus
	BrandID *int64
	Limit   int32
	Offset  int32
}

// CatalogService serves tenant-scoped reads. Nothing here takes locks.
type CatalogService interface {
	GetProject(ctx context.Context, caller model.Caller, projectID int64) (*model.Project, error)
	ListProjects(ctx context.Context, caller model.Caller, params ListProjectsParams) ([]model.Project, error)
	ListCreatives(ctx context.Context, caller model.Caller, projectID int64) ([]model.Creative, error)
	ListComments(ctx context.Context, caller model.Caller, projectID int64) ([]model.Comment, error)
	ListBrands(ctx context.Context, caller model.Caller) ([]model.Brand, error)
	ListTemplates(ctx context.Context, caller model.Caller, brandID int64) ([]model.Template, error)
	ListActivity(ctx context.Context, caller model.Caller, orgID int64, limit, offset int32) ([]model.ActivityLog, error)
	GetQuota(ctx context.Context, caller model.Caller, orgID int64) (model.Usage, error)
}

type catalogService struct {
	stores StoreProvider
	quota  QuotaEnforcer
}

func NewCatalogService(stores StoreProvider, quota QuotaEnforcer) CatalogService {
	return &catalogService{stores: stores, quota: quota}
}

func (s *catalogService) GetProject(ctx context.Context, caller model.Caller, projectID int64) (*model.Project, error) {
	p, err := s.stores.Projects().GetByID(ctx, projectID)
	if err != nil {
		return nil, classify(projectLookupError(err))
	}
	if !caller.CanAccess(p.OrganizationID) {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *catalogService) ListProjects(ctx context.Context, caller model.Caller, params ListProjectsParams) ([]model.Project, error) {
	if params.Status != nil && !params.Status.IsValid() {
		return nil, invalidField("status", "unknown project status")
	}
	if params.Limit < 0 || params.Offset < 0 {
		return nil, invalidField("limit", "limit and offset must not be negative")
	}

	projects, err := s.stores.Projects().List(ctx, store.ProjectFilter{
		OrganizationIDs: caller.Scope(),
		Status:          params.Status,
		BrandID:         params.BrandID,
		Limit:           params.Limit,
		Offset:          params.Offset,
	})
	if err != nil {
		return nil, classify(fmt.Errorf("listing projects: %w", err))
	}
	return projects, nil
}

func (s *catalogService) ListCreatives(ctx context.Context, caller model.Caller, projectID int64) ([]model.Creative, error) {
	if _, err := s.GetProject(ctx, caller, projectID); err != nil {
		return nil, err
	}
	creatives, err := s.stores.Creatives().ListByProject(ctx, projectID)
	if err != nil {
		return nil, classify(fmt.Errorf("listing creatives: %w", err))
	}
	return creatives, nil
}

func (s *catalogService) ListComments(ctx context.Context, caller model.Caller, projectID int64) ([]model.Comment, error) {
	if _, err := s.GetProject(ctx, caller, projectID); err != nil {
		return nil, err
	}
	comments, err := s.stores.Comments().ListByProject(ctx, projectID)
	if err != nil {
		return nil, classify(fmt.Errorf("listing comments: %w", err))
	}
	return comments, nil
}

func (s *catalogService) ListBrands(ctx context.Context, caller model.Caller) ([]model.Brand, error) {
	brands, err := s.stores.Brands().List(ctx, caller.Scope())
	if err != nil {
		return nil, classify(fmt.Errorf("listing brands: %w", err))
	}
	return brands, nil
}

func (s *catalogService) ListTemplates(ctx context.Context, caller model.Caller, brandID int64) ([]model.Template, error) {
	if _, err := accessibleBrand(ctx, s.stores, caller, brandID); err != nil {
		return nil, classify(err)
	}
	templates, err := s.stores.Templates().ListActiveByBrand(ctx, brandID)
	if err != nil {
		return nil, classify(fmt.Errorf("listing templates: %w", err))
	}
	return templates, nil
}

func (s *catalogService) ListActivity(ctx context.Context, caller model.Caller, orgID int64, limit, offset int32) ([]model.ActivityLog, error) {
	if !caller.CanAccess(orgID) {
		return nil, ErrForbidden
	}
	if limit < 0 || offset < 0 {
		return nil, invalidField("limit", "limit and offset must not be negative")
	}
	logs, err := s.stores.ActivityLogs().ListByOrganization(ctx, orgID, limit, offset)
	if err != nil {
		return nil, classify(fmt.Errorf("listing activity: %w", err))
	}
	return logs, nil
}

func (s *catalogService) GetQuota(ctx context.Context, caller model.Caller, orgID int64) (model.Usage, error) {
	if !caller.CanAccess(orgID) {
		return model.Usage{}, ErrForbidden
	}
	org, err := s.stores.Organizations().GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Usage{}, notFound("organization")
		}
		return model.Usage{}, classify(fmt.Errorf("loading organization: %w", err))
	}
	usage, err := s.quota.Usage(ctx, s.stores, org)
	if err != nil {
		return model.Usage{}, classify(err)
	}
	return usage, nil
}
