package dto

import (
	"time"

	"github.com/assetflow/assetflow/internal/domain/asset"
)

type StatusHistoryEntryDTO struct {
	ID             uint           `json:"id"`
	AssetID        uint           `json:"assetId"`
	PreviousStatus string         `json:"previousStatus"`
	NewStatus      string         `json:"newStatus"`
	ActionType     string         `json:"actionType"`
	ChangedBy      uint           `json:"changedBy"`
	ActorRole      string         `json:"actorRole"`
	RevisionNumber int            `json:"revisionNumber"`
	Reason         string         `json:"reason,omitempty"`
	Comments       string         `json:"comments,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

type StatusChangeResultDTO struct {
	AssetID        uint   `json:"assetId"`
	PreviousStatus string `json:"previousStatus"`
	NewStatus      string `json:"newStatus"`
	RevisionCount  int    `json:"revisionCount"`
	// Changed is false when the asset already had the requested status.
	Changed bool `json:"changed"`
}

type BatchItemResultDTO struct {
	AssetID uint   `json:"assetId"`
	Success bool   `json:"success"`
	Status  string `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}

type BatchStatusResultDTO struct {
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
	Results   []BatchItemResultDTO `json:"results"`
}

func ToStatusHistoryEntryDTO(e *asset.StatusHistoryEntry) StatusHistoryEntryDTO {
	return StatusHistoryEntryDTO{
		ID:             e.ID(),
		AssetID:        e.AssetID(),
		PreviousStatus: e.PreviousStatus().String(),
		NewStatus:      e.NewStatus().String(),
		ActionType:     string(e.ActionType()),
		ChangedBy:      e.ChangedBy(),
		ActorRole:      e.ActorRole(),
		RevisionNumber: e.RevisionNumber(),
		Reason:         e.Reason(),
		Comments:       e.Comments(),
		Metadata:       e.Metadata(),
		CreatedAt:      e.CreatedAt(),
	}
}

func ToStatusHistoryEntryDTOs(entries []*asset.StatusHistoryEntry) []StatusHistoryEntryDTO {
	out := make([]StatusHistoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToStatusHistoryEntryDTO(e))
	}
	return out
}
