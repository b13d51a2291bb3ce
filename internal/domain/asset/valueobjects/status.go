package valueobjects

import "fmt"

type AssetStatus string

const (
	StatusNotStarted        AssetStatus = "not_started"
	StatusInProduction      AssetStatus = "in_production"
	StatusDeliveredByArtist AssetStatus = "delivered_by_artist"
	StatusApproved          AssetStatus = "approved"
	StatusRevisions         AssetStatus = "revisions"
	StatusClientRevision    AssetStatus = "client_revision"
	StatusApprovedByClient  AssetStatus = "approved_by_client"
)

var validAssetStatuses = map[AssetStatus]bool{
	StatusNotStarted:        true,
	StatusInProduction:      true,
	StatusDeliveredByArtist: true,
	StatusApproved:          true,
	StatusRevisions:         true,
	StatusClientRevision:    true,
	StatusApprovedByClient:  true,
}

// approved_by_client <-> client_revision lets a client correct a decision
// before the asset goes back to production.
var assetStatusTransitions = map[AssetStatus][]AssetStatus{
	StatusNotStarted: {
		StatusInProduction,
	},
	StatusInProduction: {
		StatusDeliveredByArtist,
	},
	StatusDeliveredByArtist: {
		StatusApproved,
		StatusRevisions,
	},
	StatusRevisions: {
		StatusInProduction,
	},
	StatusApproved: {
		StatusApprovedByClient,
		StatusClientRevision,
	},
	StatusClientRevision: {
		StatusInProduction,
		StatusApprovedByClient,
	},
	StatusApprovedByClient: {
		StatusClientRevision,
	},
}

func (s AssetStatus) String() string {
	return string(s)
}

func (s AssetStatus) IsValid() bool {
	return validAssetStatuses[s]
}

func (s AssetStatus) CanTransitionTo(newStatus AssetStatus) bool {
	for _, allowed := range assetStatusTransitions[s] {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable in one step.
func (s AssetStatus) AllowedTransitions() []AssetStatus {
	allowed := assetStatusTransitions[s]
	out := make([]AssetStatus, len(allowed))
	copy(out, allowed)
	return out
}

// EntersRevision reports whether moving into s starts a new revision cycle.
func (s AssetStatus) EntersRevision() bool {
	return s == StatusRevisions || s == StatusClientRevision
}

// IsClientDecision reports whether s is a status a client may set.
func (s AssetStatus) IsClientDecision() bool {
	return s == StatusApprovedByClient || s == StatusClientRevision
}

func NewAssetStatus(s string) (AssetStatus, error) {
	as := AssetStatus(s)
	if !as.IsValid() {
		return "", fmt.Errorf("invalid asset status: %s", s)
	}
	return as, nil
}

// AllStatuses lists every status in pipeline order.
func AllStatuses() []AssetStatus {
	return []AssetStatus{
		StatusNotStarted,
		StatusInProduction,
		StatusDeliveredByArtist,
		StatusApproved,
		StatusRevisions,
		StatusClientRevision,
		StatusApprovedByClient,
	}
}
