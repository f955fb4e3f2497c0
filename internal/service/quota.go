package service

import (
	"context"
	"fmt"

	"adflow.app/tracker/internal/model"
)

// QuotaEnforcer compares organization usage with plan limits. Counts are read
// through the caller's stores, so inside a transaction that holds the
// organization row lock the answer stays true until commit.
type QuotaEnforcer interface {
	// CheckCreativeQuota returns the creatives left after requested are added,
	// or a *QuotaError.
	CheckCreativeQuota(ctx context.Context, sp StoreProvider, org *model.Organization, requested int) (int64, error)
	// CheckBrandQuota returns the brands left after one more is added, or a *QuotaError.
	CheckBrandQuota(ctx context.Context, sp StoreProvider, org *model.Organization) (int64, error)
	Usage(ctx context.Context, sp StoreProvider, org *model.Organization) (model.Usage, error)
}

type quotaEnforcer struct{}

func NewQuotaEnforcer() QuotaEnforcer {
	return quotaEnforcer{}
}

func (quotaEnforcer) CheckCreativeQuota(ctx context.Context, sp StoreProvider, org *model.Organization, requested int) (int64, error) {
	used, err := sp.Organizations().CountCreatives(ctx, org.ID)
	if err != nil {
		return 0, fmt.Errorf("counting creatives: %w", err)
	}
	return checkQuota(QuotaResourceCreatives, int64(org.MaxCreatives), used, int64(requested))
}

func (quotaEnforcer) CheckBrandQuota(ctx context.Context, sp StoreProvider, org *model.Organization) (int64, error) {
	used, err := sp.Organizations().CountBrands(ctx, org.ID)
	if err != nil {
		return 0, fmt.Errorf("counting brands: %w", err)
	}
	return checkQuota(QuotaResourceBrands, int64(org.MaxBrands), used, 1)
}

func (quotaEnforcer) Usage(ctx context.Context, sp StoreProvider, org *model.Organization) (model.Usage, error) {
	creatives, err := sp.Organizations().CountCreatives(ctx, org.ID)
	if err != nil {
		return model.Usage{}, fmt.Errorf("counting creatives: %w", err)
	}
	brands, err := sp.Organizations().CountBrands(ctx, org.ID)
	if err != nil {
		return model.Usage{}, fmt.Errorf("counting brands: %w", err)
	}
	return model.Usage{
		OrganizationID: org.ID,
		Creatives:      creatives,
		MaxCreatives:   org.MaxCreatives,
		Brands:         brands,
		MaxBrands:      org.MaxBrands,
	}, nil
}

func checkQuota(resource QuotaResource, limit, used, requested int64) (int64, error) {
	available := limit - used
	if available < 0 {
		available = 0
	}
	if requested > available {
		return 0, &QuotaError{Resource: resource, Available: available, Requested: requested}
	}
	return available - requested, nil
}
