package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/assetflow/assetflow/internal/domain/asset"
	vo "github.com/assetflow/assetflow/internal/domain/asset/valueobjects"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/models"
)

// AssetMapper converts between asset aggregates and their persistence models.
type AssetMapper interface {
	ToEntity(model *models.AssetModel) (*asset.Asset, error)
	ToEntities(models []*models.AssetModel) ([]*asset.Asset, error)
	ToModel(entity *asset.Asset) *models.AssetModel

	HistoryToEntity(model *models.StatusHistoryModel) *asset.StatusHistoryEntry
	HistoryToModel(entry *asset.StatusHistoryEntry) *models.StatusHistoryModel
}

type AssetMapperImpl struct{}

func NewAssetMapper() AssetMapper {
	return &AssetMapperImpl{}
}

func (m *AssetMapperImpl) ToEntity(model *models.AssetModel) (*asset.Asset, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := asset.ReconstructAsset(
		model.ID,
		model.Name,
		vo.AssetStatus(model.Status),
		model.RevisionCount,
		model.Client,
		model.Batch,
		model.Priority,
		model.DeliveryDate,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct asset %d: %w", model.ID, err)
	}
	return entity, nil
}

func (m *AssetMapperImpl) ToEntities(models []*models.AssetModel) ([]*asset.Asset, error) {
	entities := make([]*asset.Asset, 0, len(models))
	for _, model := range models {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (m *AssetMapperImpl) ToModel(entity *asset.Asset) *models.AssetModel {
	return &models.AssetModel{
		ID:            entity.ID(),
		Name:          entity.Name(),
		Status:        entity.Status().String(),
		RevisionCount: entity.RevisionCount(),
		Client:        entity.Client(),
		Batch:         entity.Batch(),
		Priority:      entity.Priority(),
		DeliveryDate:  entity.DeliveryDate(),
		Version:       entity.Version(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}
}

func (m *AssetMapperImpl) HistoryToEntity(model *models.StatusHistoryModel) *asset.StatusHistoryEntry {
	return asset.ReconstructStatusHistoryEntry(
		model.ID,
		model.AssetID,
		vo.AssetStatus(model.PreviousStatus),
		vo.AssetStatus(model.NewStatus),
		vo.ActionType(model.ActionType),
		model.ChangedBy,
		model.ActorRole,
		model.RevisionNumber,
		model.Reason,
		model.Comments,
		normalizeMetadata(model.Metadata),
		model.CreatedAt,
	)
}

// normalizeMetadata turns the json.Number values a JSON column decodes into
// int64 or float64, so metadata reads back with plain Go number types.
func normalizeMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		return normalizeMetadata(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}

func (m *AssetMapperImpl) HistoryToModel(entry *asset.StatusHistoryEntry) *models.StatusHistoryModel {
	return &models.StatusHistoryModel{
		ID:             entry.ID(),
		AssetID:        entry.AssetID(),
		PreviousStatus: entry.PreviousStatus().String(),
		NewStatus:      entry.NewStatus().String(),
		ActionType:     entry.ActionType().String(),
		ChangedBy:      entry.ChangedBy(),
		ActorRole:      entry.ActorRole(),
		RevisionNumber: entry.RevisionNumber(),
		Reason:         entry.Reason(),
		Comments:       entry.Comments(),
		Metadata:       entry.Metadata(),
		CreatedAt:      entry.CreatedAt(),
	}
}
