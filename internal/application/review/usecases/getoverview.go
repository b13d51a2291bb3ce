package usecases

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/assetflow/assetflow/internal/application/review/dto"
	"github.com/assetflow/assetflow/internal/domain/asset"
	"github.com/assetflow/assetflow/internal/domain/review"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

// GetReviewOverviewUseCase backs the review page: the in-scope assets with
// their current status and any decision already recorded.
type GetReviewOverviewUseCase struct {
	resolver  *Resolver
	assets    asset.Repository
	responses review.ResponseRepository
	logger    logger.Interface
}

func NewGetReviewOverviewUseCase(resolver *Resolver, assets asset.Repository, responses review.ResponseRepository, log logger.Interface) *GetReviewOverviewUseCase {
	return &GetReviewOverviewUseCase{
		resolver:  resolver,
		assets:    assets,
		responses: responses,
		logger:    log,
	}
}

func (uc *GetReviewOverviewUseCase) Execute(ctx context.Context, token string) (*dto.ReviewOverviewDTO, error) {
	inv, err := uc.resolver.Resolve(ctx, token)
	if err != nil {
		return nil, toAppError(err, "failed to load review")
	}

	var (
		found     []*asset.Asset
		responses []*review.Response
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		found, err = uc.assets.GetByIDs(gctx, inv.AssetIDs())
		return err
	})
	g.Go(func() error {
		var err error
		responses, err = uc.responses.ListByInvitation(gctx, inv.ID())
		return err
	})
	if err := g.Wait(); err != nil {
		logger.FromContext(ctx, uc.logger).Errorw("failed to load review overview", "invitation_id", inv.ID(), "error", err)
		return nil, toAppError(err, "failed to load review")
	}

	byAsset := make(map[uint]*review.Response, len(responses))
	for _, r := range responses {
		byAsset[r.AssetID()] = r
	}
	byID := make(map[uint]*asset.Asset, len(found))
	for _, a := range found {
		byID[a.ID()] = a
	}

	out := &dto.ReviewOverviewDTO{
		RecipientEmail: inv.RecipientEmail(),
		Message:        inv.Message(),
		ExpiresAt:      inv.ExpiresAt(),
		Assets:         make([]dto.ReviewAssetDTO, 0, len(found)),
	}
	// Keep the order the invitation was created with; deleted assets drop out.
	for _, id := range inv.AssetIDs() {
		a, ok := byID[id]
		if !ok {
			continue
		}
		item := dto.ReviewAssetDTO{
			ID:            a.ID(),
			Name:          a.Name(),
			Status:        a.Status().String(),
			RevisionCount: a.RevisionCount(),
			Client:        a.Client(),
			DeliveryDate:  a.DeliveryDate(),
		}
		if r, ok := byAsset[id]; ok {
			item.Response = dto.ToResponseDTO(r)
			out.Responded++
		}
		out.Assets = append(out.Assets, item)
	}
	return out, nil
}
