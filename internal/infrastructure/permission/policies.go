package permission

import (
	"fmt"

	"github.com/assetflow/assetflow/internal/shared/authorization"
)

// Resources and actions referenced by route guards.
const (
	ResourceAssignment     = "asset_assignment"
	ResourceQAAssetList    = "qa_asset_list"
	ResourceAllocationList = "allocation_list"
	ResourceAssetStatus    = "asset_status"
	ResourceSharedReview   = "shared_review"

	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// DefaultPolicies is the baseline role matrix. Row-level checks (list owner,
// invitation creator, asset responsibility) happen in the use cases.
func DefaultPolicies() [][]string {
	admin := authorization.RoleAdmin.String()
	modeler := authorization.RoleModeler.String()
	qa := authorization.RoleQA.String()
	client := authorization.RoleClient.String()

	return [][]string{
		{admin, ResourceAssignment, ActionCreate},
		{admin, ResourceAssignment, ActionDelete},
		{admin, ResourceQAAssetList, ActionRead},
		{admin, ResourceAllocationList, ActionRead},
		{admin, ResourceAssetStatus, ActionRead},
		{admin, ResourceAssetStatus, ActionUpdate},
		{admin, ResourceSharedReview, ActionCreate},
		{admin, ResourceSharedReview, ActionDelete},

		{modeler, ResourceAllocationList, ActionRead},
		{modeler, ResourceAssetStatus, ActionRead},
		{modeler, ResourceAssetStatus, ActionUpdate},

		{qa, ResourceQAAssetList, ActionRead},
		{qa, ResourceAllocationList, ActionRead},
		{qa, ResourceAssetStatus, ActionRead},
		{qa, ResourceAssetStatus, ActionUpdate},

		{client, ResourceAssetStatus, ActionRead},
		{client, ResourceAssetStatus, ActionUpdate},
		{client, ResourceSharedReview, ActionDelete},
	}
}

// SeedDefaultPolicies adds any missing baseline policy. Existing rows,
// including ones added by operators, are left alone.
func (e *Enforcer) SeedDefaultPolicies() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	added := 0
	for _, policy := range DefaultPolicies() {
		ok, err := e.enforcer.AddPolicy(policy[0], policy[1], policy[2])
		if err != nil {
			e.logger.Errorw("failed to add permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
		if ok {
			added++
		}
	}

	e.logger.Infow("permission policies seeded", "added", added)
	return nil
}
