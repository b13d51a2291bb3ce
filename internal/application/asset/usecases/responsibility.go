package usecases

import (
	"context"

	"github.com/assetflow/assetflow/internal/domain/allocation"
	"github.com/assetflow/assetflow/internal/domain/asset"
	"github.com/assetflow/assetflow/internal/shared/authorization"
)

// responsibility decides which assets a platform actor works on. Admins and
// client users are not bound to assignments; modelers need the modeler
// assignment; QA users need to see the asset under the override rule.
type responsibility struct {
	assignments allocation.AssignmentRepository
}

func (r responsibility) responsibleFor(ctx context.Context, actor asset.Actor, assetIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(assetIDs))
	switch actor.Role {
	case authorization.RoleModeler, authorization.RoleQA:
	default:
		for _, id := range assetIDs {
			out[id] = true
		}
		return out, nil
	}

	rows, err := r.assignments.ListByAssetIDs(ctx, assetIDs)
	if err != nil {
		return nil, err
	}

	if actor.Role == authorization.RoleModeler {
		for _, a := range rows {
			if a.Role() == allocation.RoleModeler && a.UserID() == actor.UserID {
				out[a.AssetID()] = true
			}
		}
		return out, nil
	}

	candidates, err := r.assignments.ListQACandidates(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	decided := map[uint]bool{}
	for _, c := range candidates {
		decided[c.AssetID] = true
		if c.VisibleTo(actor.UserID) {
			out[c.AssetID] = true
		}
	}
	// Assets without a modeler are reviewed by whoever holds a QA row.
	for _, a := range rows {
		if !decided[a.AssetID()] && a.Role() == allocation.RoleQA && a.UserID() == actor.UserID {
			out[a.AssetID()] = true
		}
	}
	return out, nil
}
