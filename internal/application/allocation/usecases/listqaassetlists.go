package usecases

import (
	"context"
	"sort"

	"github.com/assetflow/assetflow/internal/application/allocation/dto"
	"github.com/assetflow/assetflow/internal/domain/allocation"
	apperrors "github.com/assetflow/assetflow/internal/shared/errors"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

type ListQAAssetListsQuery struct {
	QAUserID uint
}

// ListQAAssetListsUseCase returns the allocation lists a QA user reviews,
// restricted to the assets they can see under the provisional override rule.
type ListQAAssetListsUseCase struct {
	lists       allocation.ListRepository
	assignments allocation.AssignmentRepository
	logger      logger.Interface
}

func NewListQAAssetListsUseCase(
	lists allocation.ListRepository,
	assignments allocation.AssignmentRepository,
	log logger.Interface,
) *ListQAAssetListsUseCase {
	return &ListQAAssetListsUseCase{
		lists:       lists,
		assignments: assignments,
		logger:      log,
	}
}

func (uc *ListQAAssetListsUseCase) Execute(ctx context.Context, query ListQAAssetListsQuery) ([]dto.QAAssetListDTO, error) {
	log := logger.FromContext(ctx, uc.logger)

	if query.QAUserID == 0 {
		return nil, apperrors.NewValidationError("QA user is required")
	}

	candidates, err := uc.assignments.ListQACandidates(ctx, query.QAUserID)
	if err != nil {
		log.Errorw("failed to load QA candidates", "qa_user_id", query.QAUserID, "error", err)
		return nil, apperrors.NewInternalError("failed to load QA asset lists").WithCause(err)
	}

	type bucket struct {
		assetIDs       []uint
		provisionalIDs []uint
	}
	byList := map[uint]*bucket{}
	var listIDs []uint
	for _, c := range candidates {
		if !c.VisibleTo(query.QAUserID) {
			continue
		}
		b, ok := byList[c.ListID]
		if !ok {
			b = &bucket{}
			byList[c.ListID] = b
			listIDs = append(listIDs, c.ListID)
		}
		b.assetIDs = append(b.assetIDs, c.AssetID)
		if c.ProvisionalFor(query.QAUserID) {
			b.provisionalIDs = append(b.provisionalIDs, c.AssetID)
		}
	}

	out := make([]dto.QAAssetListDTO, 0, len(listIDs))
	if len(listIDs) == 0 {
		return out, nil
	}

	lists, err := uc.lists.GetByIDs(ctx, listIDs)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load QA asset lists").WithCause(err)
	}
	for _, l := range lists {
		b := byList[l.ID()]
		provisional := b.provisionalIDs
		if provisional == nil {
			provisional = []uint{}
		}
		out = append(out, dto.QAAssetListDTO{
			ListID:              l.ID(),
			Name:                l.Name(),
			ModelerID:           l.UserID(),
			Deadline:            l.Deadline(),
			Bonus:               l.Bonus(),
			AssetIDs:            b.assetIDs,
			ProvisionalAssetIDs: provisional,
			CreatedAt:           l.CreatedAt(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ListID < out[j].ListID })

	log.Debugw("QA asset lists resolved", "qa_user_id", query.QAUserID, "lists", len(out))
	return out, nil
}
