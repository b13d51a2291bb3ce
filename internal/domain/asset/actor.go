package asset

import (
	vo "github.com/assetflow/assetflow/internal/domain/asset/valueobjects"
	"github.com/assetflow/assetflow/internal/shared/authorization"
)

// Actor is whoever asks for a status change. External actors come in through
// a share token; their UserID is the invitation creator.
type Actor struct {
	UserID   uint
	Role     authorization.UserRole
	External bool
}

func PlatformActor(userID uint, role authorization.UserRole) Actor {
	return Actor{UserID: userID, Role: role}
}

func ExternalReviewer(invitationCreatorID uint) Actor {
	return Actor{UserID: invitationCreatorID, Role: authorization.RoleClient, External: true}
}

var roleTargets = map[authorization.UserRole]map[vo.AssetStatus]bool{
	authorization.RoleModeler: {
		vo.StatusInProduction:      true,
		vo.StatusDeliveredByArtist: true,
	},
	authorization.RoleQA: {
		vo.StatusApproved:  true,
		vo.StatusRevisions: true,
	},
	authorization.RoleClient: {
		vo.StatusApprovedByClient: true,
		vo.StatusClientRevision:   true,
	},
}

// MayReach reports whether the actor is allowed to move an asset into target.
// Graph reachability is checked separately.
func (a Actor) MayReach(target vo.AssetStatus) bool {
	if a.External {
		return target.IsClientDecision()
	}
	if a.Role.IsAdmin() {
		return true
	}
	return roleTargets[a.Role][target]
}
