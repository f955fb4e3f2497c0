package model

import "slices"

// Caller is the identity asserted by the upstream identity gateway.
// Operators act on every organization; members only on the organizations
// listed in OrganizationIDs.
type Caller struct {
	ActorID         int64
	Operator        bool
	OrganizationIDs []int64
}

func (c Caller) CanAccess(organizationID int64) bool {
	return c.Operator || slices.Contains(c.OrganizationIDs, organizationID)
}

// Scope returns the organization filter for list queries. A nil result means
// unrestricted.
func (c Caller) Scope() []int64 {
	if c.Operator {
		return nil
	}
	if c.OrganizationIDs == nil {
		return []int64{}
	}
	return c.OrganizationIDs
}
