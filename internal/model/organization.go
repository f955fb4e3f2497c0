package model

import "time"

type Plan string

const (
	PlanStarter      Plan = "starter"
	PlanProfessional Plan = "professional"
	PlanAgency       Plan = "agency"
)

type PaymentStatus string

const (
	PaymentStatusActive    PaymentStatus = "active"
	PaymentStatusOverdue   PaymentStatus = "overdue"
	PaymentStatusSuspended PaymentStatus = "suspended"
)

// PlanLimits holds the default quotas granted by each plan tier. An
// organization row stores its own copy so limits can be raised per tenant.
var PlanLimits = map[Plan]struct {
	MaxCreatives int32
	MaxBrands    int32
}{
	PlanStarter:      {MaxCreatives: 300, MaxBrands: 1},
	PlanProfessional: {MaxCreatives: 750, MaxBrands: 3},
	PlanAgency:       {MaxCreatives: 2000, MaxBrands: 10},
}

type Organization struct {
	ID            int64         `json:"id,string"`
	Name          string        `json:"name"`
	Plan          Plan          `json:"plan"`
	MaxCreatives  int32         `json:"max_creatives"`
	MaxBrands     int32         `json:"max_brands"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Usage reports how much of an organization's quota is consumed.
type Usage struct {
	OrganizationID int64 `json:"organization_id,string"`
	Creatives      int64 `json:"creatives"`
	MaxCreatives   int32 `json:"max_creatives"`
	Brands         int64 `json:"brands"`
	MaxBrands      int32 `json:"max_brands"`
}

func (u Usage) RemainingCreatives() int64 {
	return remaining(int64(u.MaxCreatives), u.Creatives)
}

func (u Usage) RemainingBrands() int64 {
	return remaining(int64(u.MaxBrands), u.Brands)
}

func remaining(limit, used int64) int64 {
	if used >= limit {
		return 0
	}
	return limit - used
}
