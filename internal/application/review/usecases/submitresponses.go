package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/assetflow/assetflow/internal/application/common"
	"github.com/assetflow/assetflow/internal/application/lifecycle"
	"github.com/assetflow/assetflow/internal/application/review/dto"
	"github.com/assetflow/assetflow/internal/domain/asset"
	"github.com/assetflow/assetflow/internal/domain/review"
	"github.com/assetflow/assetflow/internal/domain/shared/events"
	"github.com/assetflow/assetflow/internal/shared/biztime"
	"github.com/assetflow/assetflow/internal/shared/db"
	apperrors "github.com/assetflow/assetflow/internal/shared/errors"
	"github.com/assetflow/assetflow/internal/shared/logger"
	"github.com/assetflow/assetflow/internal/shared/utils"
)

const maxCommentLength = 5000

type ResponseInput struct {
	AssetID uint
	Action  string
	Comment string
}

type SubmitResponsesCommand struct {
	Token     string
	Responses []ResponseInput
}

// SubmitResponsesUseCase records an external reviewer's decisions and drives
// the matching status transitions.
type SubmitResponsesUseCase struct {
	resolver  *Resolver
	assets    asset.Repository
	responses review.ResponseRepository
	invites   review.InvitationRepository
	machine   *lifecycle.StateMachine
	renderer  ContentRenderer
	txMgr     db.Transactor
	publisher events.EventPublisher
	clock     biztime.Clock
	logger    logger.Interface
}

func NewSubmitResponsesUseCase(
	resolver *Resolver,
	assets asset.Repository,
	responses review.ResponseRepository,
	invites review.InvitationRepository,
	machine *lifecycle.StateMachine,
	renderer ContentRenderer,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	clock biztime.Clock,
	log logger.Interface,
) *SubmitResponsesUseCase {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &SubmitResponsesUseCase{
		resolver:  resolver,
		assets:    assets,
		responses: responses,
		invites:   invites,
		machine:   machine,
		renderer:  renderer,
		txMgr:     txMgr,
		publisher: publisher,
		clock:     clock,
		logger:    log,
	}
}

type decision struct {
	assetID uint
	action  review.Action
	comment string
}

// Execute runs in one transaction holding the invitation row lock, so the
// token check, the writes and the completion check see one consistent state.
// Each response is stored first, then the status change runs in its own
// savepoint; a refused change is reported per item and keeps the response.
func (uc *SubmitResponsesUseCase) Execute(ctx context.Context, cmd SubmitResponsesCommand) (*dto.SubmitResultDTO, error) {
	log := logger.FromContext(ctx, uc.logger).With("token", utils.MaskToken(cmd.Token))

	decisions, err := uc.parse(cmd.Responses)
	if err != nil {
		return nil, err
	}

	var (
		inv         *review.Invitation
		rejected    error
		results     []dto.SubmitItemDTO
		entries     []*asset.StatusHistoryEntry
		completed   bool
		recorded    int
		approved    []uint
		revisions   []uint
		failedItems []uint
	)

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		results, entries, approved, revisions, failedItems = nil, nil, nil, nil, nil
		completed, recorded = false, 0

		var err error
		inv, err = uc.resolver.ResolveForUpdate(txCtx, cmd.Token)
		if err != nil {
			if isTokenRejection(err) {
				// Commit so a lazy expiry flip is kept.
				rejected = err
				return nil
			}
			return err
		}

		ids := make([]uint, 0, len(decisions))
		for _, d := range decisions {
			ids = append(ids, d.assetID)
		}
		if err := inv.CheckScope(ids); err != nil {
			rejected = err
			return nil
		}

		loaded, err := uc.assets.GetByIDsForUpdate(txCtx, ids)
		if err != nil {
			return fmt.Errorf("failed to load assets: %w", err)
		}
		byID := make(map[uint]*asset.Asset, len(loaded))
		for _, a := range loaded {
			byID[a.ID()] = a
		}

		now := uc.clock()
		actor := asset.ExternalReviewer(inv.CreatedBy())
		for _, d := range decisions {
			item := dto.SubmitItemDTO{AssetID: d.assetID}
			a, ok := byID[d.assetID]
			if !ok {
				item.Error = "asset not found"
				results = append(results, item)
				failedItems = append(failedItems, d.assetID)
				continue
			}

			resp, err := review.NewResponse(inv.ID(), d.assetID, d.action, d.comment, now)
			if err == nil {
				err = uc.txMgr.RunInTransaction(txCtx, func(itemCtx context.Context) error {
					if err := uc.responses.Upsert(itemCtx, resp); err != nil {
						return fmt.Errorf("failed to store response: %w", err)
					}
					return nil
				})
			}
			if err != nil {
				item.Error = itemError(err)
				results = append(results, item)
				failedItems = append(failedItems, d.assetID)
				log.Warnw("review response not stored",
					"invitation_id", inv.ID(),
					"asset_id", d.assetID,
					"error", err,
				)
				continue
			}
			item.Recorded = true
			recorded++

			// The stored response stands even when the status change is refused.
			before := a.Status()
			var res lifecycle.TransitionResult
			err = uc.txMgr.RunInTransaction(txCtx, func(itemCtx context.Context) error {
				var err error
				res, err = uc.machine.Apply(itemCtx, a, lifecycle.TransitionCommand{
					Target: d.action.TargetStatus(),
					Actor:  actor,
					Details: asset.HistoryDetails{
						Reason:   reasonFor(d.action),
						Comments: d.comment,
						Metadata: map[string]any{
							asset.MetaReviewerEmail: inv.RecipientEmail(),
							asset.MetaInvitationID:  inv.ID(),
							asset.MetaSource:        asset.SourceSharedReview,
						},
					},
				})
				return err
			})
			if err != nil {
				item.Status = before.String()
				item.Error = itemError(err)
				results = append(results, item)
				failedItems = append(failedItems, d.assetID)
				log.Warnw("review decision not applied",
					"invitation_id", inv.ID(),
					"asset_id", d.assetID,
					"action", d.action,
					"status", before,
					"error", err,
				)
				continue
			}

			item.Success = true
			item.Status = res.Change.New.String()
			results = append(results, item)
			if res.Entry != nil {
				entries = append(entries, res.Entry)
			}
			if d.action == review.ActionApprove {
				approved = append(approved, d.assetID)
			} else {
				revisions = append(revisions, d.assetID)
			}
		}

		scope := inv.AssetIDs()
		responded, err := uc.responses.CountRespondedAssets(txCtx, inv.ID(), scope)
		if err != nil {
			return fmt.Errorf("failed to count responses: %w", err)
		}
		if responded == int64(len(scope)) {
			ok, err := uc.invites.MarkCompleted(txCtx, inv.ID(), now)
			if err != nil {
				return fmt.Errorf("failed to complete invitation: %w", err)
			}
			if ok {
				// inv was resolved pending under the row lock, so Complete cannot fail here.
				if err := inv.Complete(now); err != nil {
					log.Debugw("invitation completion not applied in memory", "invitation_id", inv.ID(), "error", err)
				}
				completed = true
			}
		}
		return nil
	})
	if err != nil {
		log.Errorw("review submission failed", "error", err)
		return nil, toAppError(err, "failed to submit review")
	}
	if rejected != nil {
		log.Infow("review submission rejected", "reason", rejected)
		return nil, toAppError(rejected, "failed to submit review")
	}

	now := uc.clock()
	evts := make([]events.DomainEvent, 0, len(entries)+2)
	for _, e := range entries {
		evts = append(evts, asset.NewStatusChangedEvent(e, now))
	}
	if len(approved)+len(revisions) > 0 {
		evts = append(evts, review.NewReviewSubmittedEvent(inv, approved, revisions, failedItems, now))
	}
	if completed {
		evts = append(evts, review.NewReviewCompletedEvent(inv, now))
	}
	common.PublishAll(uc.publisher, log, evts...)

	applied := len(approved) + len(revisions)
	out := &dto.SubmitResultDTO{
		Success:   len(failedItems) == 0,
		Completed: completed,
		Results:   results,
	}
	switch {
	case len(failedItems) == 0:
		out.Message = fmt.Sprintf("%d response(s) recorded", recorded)
	default:
		out.Message = fmt.Sprintf("%d of %d response(s) recorded, %d not applied", recorded, len(decisions), len(failedItems))
	}
	if completed {
		out.Message += "; review completed"
	}

	log.Infow("review responses submitted",
		"invitation_id", inv.ID(),
		"recorded", recorded,
		"applied", applied,
		"failed", len(failedItems),
		"completed", completed,
	)
	return out, nil
}

// parse validates the payload before anything is touched. A repeated asset
// keeps its last decision.
func (uc *SubmitResponsesUseCase) parse(inputs []ResponseInput) ([]decision, error) {
	if len(inputs) == 0 {
		return nil, apperrors.NewValidationError("responses must not be empty")
	}

	index := map[uint]int{}
	var out []decision
	for i, in := range inputs {
		if in.AssetID == 0 {
			return nil, apperrors.NewValidationError("assetId is required", fmt.Sprintf("responses[%d]", i))
		}
		action, err := review.NewAction(strings.TrimSpace(in.Action))
		if err != nil {
			return nil, apperrors.NewValidationError("action must be approve or revision", fmt.Sprintf("responses[%d]", i))
		}
		comment := uc.renderer.Sanitize(strings.TrimSpace(in.Comment))
		if len(comment) > maxCommentLength {
			return nil, apperrors.NewValidationError("comment is too long", fmt.Sprintf("responses[%d]", i))
		}

		d := decision{assetID: in.AssetID, action: action, comment: comment}
		if pos, ok := index[in.AssetID]; ok {
			out[pos] = d
			continue
		}
		index[in.AssetID] = len(out)
		out = append(out, d)
	}
	return out, nil
}

func reasonFor(a review.Action) string {
	if a == review.ActionRevision {
		return "client requested revision"
	}
	return "client approved"
}

func itemError(err error) string {
	if appErr := apperrors.GetAppError(toAppError(err, "failed to apply decision")); appErr != nil {
		return appErr.Message
	}
	return "failed to apply decision"
}
