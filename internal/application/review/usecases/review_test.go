package usecases

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetflow/assetflow/internal/application/lifecycle"
	"github.com/assetflow/assetflow/internal/domain/asset"
	vo "github.com/assetflow/assetflow/internal/domain/asset/valueobjects"
	"github.com/assetflow/assetflow/internal/domain/review"
	"github.com/assetflow/assetflow/internal/shared/authorization"
	apperrors "github.com/assetflow/assetflow/internal/shared/errors"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

const creatorID uint = 3

type env struct {
	now         time.Time
	assets      *mockAssetRepository
	history     *mockHistoryRepository
	invitations *mockInvitationRepository
	responses   *mockResponseRepository
	annotations *mockAnnotationRepository
	tokens      *fakeTokens
	publisher   *mockPublisher
	resolver    *Resolver
}

func newEnv(t *testing.T, statuses map[uint]vo.AssetStatus) *env {
	t.Helper()
	e := &env{
		now:         time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
		assets:      &mockAssetRepository{assets: map[uint]*asset.Asset{}},
		history:     &mockHistoryRepository{},
		invitations: newMockInvitationRepository(),
		responses:   newMockResponseRepository(),
		annotations: newMockAnnotationRepository(),
		tokens:      &fakeTokens{next: "rv_plain"},
		publisher:   &mockPublisher{},
	}
	for id, st := range statuses {
		a, err := asset.ReconstructAsset(id, "asset", st, 0, "Acme", "B1", 1, nil, 1, e.now, e.now)
		require.NoError(t, err)
		e.assets.assets[id] = a
	}
	e.resolver = NewResolver(e.invitations, e.tokens, e.clock, logger.NewNopLogger())
	return e
}

func (e *env) clock() time.Time { return e.now }

func (e *env) settings() Settings {
	return Settings{BaseURL: "https://studio.test/", DefaultTTL: 72 * time.Hour, MaxTTL: 30 * 24 * time.Hour}
}

func (e *env) create(t *testing.T, assetIDs ...uint) string {
	t.Helper()
	uc := NewCreateInvitationUseCase(e.invitations, e.assets, e.tokens, fakeRenderer{}, e.publisher, e.settings(), e.clock, logger.NewNopLogger())
	res, err := uc.Execute(context.Background(), CreateInvitationCommand{
		CreatedBy:      creatorID,
		RecipientEmail: "buyer@client.test",
		AssetIDs:       assetIDs,
	})
	require.NoError(t, err)
	return res.Token
}

func (e *env) submitter() *SubmitResponsesUseCase {
	machine := lifecycle.NewStateMachine(e.assets, e.history, e.clock, logger.NewNopLogger())
	return NewSubmitResponsesUseCase(e.resolver, e.assets, e.responses, e.invitations, machine, fakeRenderer{}, mockTx{}, e.publisher, e.clock, logger.NewNopLogger())
}

func (e *env) stored(t *testing.T) *review.Invitation {
	t.Helper()
	inv, err := e.invitations.GetByID(context.Background(), 1)
	require.NoError(t, err)
	return inv
}

func errType(t *testing.T, err error) apperrors.ErrorType {
	t.Helper()
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr, err.Error())
	return appErr.Type
}

func TestCreateInvitation_ReturnsTokenOnceAndStoresHash(t *testing.T) {
	e := newEnv(t, map[uint]vo.AssetStatus{1: vo.StatusApproved, 2: vo.StatusApproved})
	uc := NewCreateInvitationUseCase(e.invitations, e.assets, e.tokens, fakeRenderer{}, e.publisher, e.settings(), e.clock, logger.NewNopLogger())

	res, err := uc.Execute(context.Background(), CreateInvitationCommand{
		CreatedBy:      creatorID,
		RecipientEmail: " buyer@client.test ",
		AssetIDs:       []uint{2, 1, 2},
		ExpiresInHours: 24 * 365,
		Message:        "Please review <script>x</script>",
	})
	require.NoError(t, err)

	assert.Equal(t, "rv_plain", res.Token)
	assert.Equal(t, "https://studio.test/review/rv_plain", res.ReviewURL)
	assert.Equal(t, []uint{2, 1}, res.AssetIDs)
	assert.Equal(t, e.now.Add(30*24*time.Hour), res.ExpiresAt)
	assert.Equal(t, "pending", res.Status)

	stored := e.stored(t)
	assert.Equal(t, "h:rv_plain", stored.TokenHash())
	assert.Equal(t, "buyer@client.test", stored.RecipientEmail())
	assert.Equal(t, "Please review x", stored.Message())
	assert.Equal(t, []string{review.EventTypeInvitationCreated}, e.publisher.types())
}

func TestCreateInvitation_Validation(t *testing.T) {
	e := newEnv(t, map[uint]vo.AssetStatus{1: vo.StatusApproved})
	uc := NewCreateInvitationUseCase(e.invitations, e.assets, e.tokens, fakeRenderer{}, e.publisher, e.settings(), e.clock, logger.NewNopLogger())
	ctx := context.Background()

	_, err := uc.Execute(ctx, CreateInvitationCommand{CreatedBy: creatorID, RecipientEmail: "a@b.test"})
	assert.Equal(t, apperrors.ErrorTypeValidation, errType(t, err))

	_, err = uc.Execute(ctx, CreateInvitationCommand{CreatedBy: creatorID, RecipientEmail: "not-an-email", AssetIDs: []uint{1}})
	assert.Equal(t, apperrors.ErrorTypeValidation, errType(t, err))

	_, err = uc.Execute(ctx, CreateInvitationCommand{CreatedBy: creatorID, RecipientEmail: "a@b.test", AssetIDs: []uint{1, 9}})
	assert.Equal(t, apperrors.ErrorTypeNotFound, errType(t, err))

	assert.Empty(t, e.invitations.byID)
}

// Respond to A only, then to B; the invitation completes on the second call
// and only the revision bumps the counter.
func TestSubmit_CompletesOnceEveryAssetHasAResponse(t *testing.T) {
	e := newEnv(t, map[uint]vo.AssetStatus{1: vo.StatusApproved, 2: vo.StatusApproved})
	token := e.create(t, 1, 2)
	ctx := context.Background()

	res, err := e.submitter().Execute(ctx, SubmitResponsesCommand{Token: token, Responses: []ResponseInput{
		{AssetID: 1, Action: "approve"},
	}})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.False(t, res.Completed)
	assert.Equal(t, review.InvitationPending, e.stored(t).Status())

	res, err = e.submitter().Execute(ctx, SubmitResponsesCommand{Token: token, Responses: []ResponseInput{
		{AssetID: 2, Action: "revision", Comment: "the handle is too thin"},
	}})
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Contains(t, res.Message, "review completed")

	inv := e.stored(t)
	assert.Equal(t, review.InvitationCompleted, inv.Status())
	require.NotNil(t, inv.CompletedAt())

	assert.Equal(t, vo.StatusApprovedByClient, e.assets.assets[1].Status())
	assert.Equal(t, 0, e.assets.assets[1].RevisionCount())
	assert.Equal(t, vo.StatusClientRevision, e.assets.assets[2].Status())
	assert.Equal(t, 1, e.assets.assets[2].RevisionCount())

	require.Len(t, e.history.entries, 2)
	entry := e.history.entries[1]
	assert.Equal(t, creatorID, entry.ChangedBy())
	assert.Equal(t, "client", entry.ActorRole())
	assert.Equal(t, "the handle is too thin", entry.Comments())
	assert.Equal(t, "buyer@client.test", entry.Metadata()[asset.MetaReviewerEmail])
	assert.Equal(t, asset.SourceSharedReview, entry.Metadata()[asset.MetaSource])

	assert.Contains(t, e.publisher.types(), review.EventTypeReviewCompleted)

	// The token is spent.
	_, err = e.submitter().Execute(ctx, SubmitResponsesCommand{Token: token, Responses: []ResponseInput{{AssetID: 1, Action: "approve"}}})
	assert.Equal(t, apperrors.ErrorTypeForbidden, errType(t, err))
}

func TestSubmit_ResubmissionOverwrites(t *testing.T) {
	e := newEnv(t, map[uint]vo.AssetStatus{1: vo.StatusApproved, 2: vo.StatusApproved})
	token := e.create(t, 1, 2)
	ctx := context.Background()

	_, err := e.submitter().Execute(ctx, SubmitResponsesCommand{Token: token, Responses: []ResponseInput{{AssetID: 1, Action: "revision"}}})
	require.NoError(t, err)
	_, err = e.submitter().Execute(ctx, SubmitResponsesCommand{Token: token, Responses: []ResponseInput{{AssetID: 1, Action: "approve", Comment: "fixed on call"}}})
	require.NoError(t, err)

	rows, err := e.responses.ListByInvitation(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, review.ActionApprove, rows[0].Action())
	assert.Equal(t, vo.StatusApprovedByClient, e.assets.assets[1].Status())
	assert.Equal(t, 1, e.assets.assets[1].RevisionCount())
	assert.Equal(t, review.InvitationPending, e.stored(t).Status())
}

func TestSubmit_SameDecisionTwiceIsIdempotent(t *testing.T) {
	e := newEnv(t, map[uint]vo.AssetStatus{1: vo.StatusApproved, 2: vo.StatusApproved})
	token := e.create(t, 1, 2)
	cmd := SubmitResponsesCommand{Token: token, Responses: []ResponseInput{{AssetID: 1, Action: "revision"}}}

	_, err := e.submitter().Execute(context.Background(), cmd)
	require.NoError(t, err)
	_, err = e.submitter().Execute(context.Background(), cmd)
	require.NoError(t, err)

	assert.Len(t, e.responses.rows, 1)
	assert.Len(t, e.history.entries, 1)
	assert.Equal(t, 1, e.assets.assets[1].RevisionCount())
}

func TestSubmit_PastExpiryFlipsToExpired(t *testing.T) {
	e := newEnv(t, map[uint]vo.AssetStatus{1: vo.StatusApproved})
	token := e.create(t, 1)
	e.now = e.now.Add(73 * time.Hour)

	_, err := e.submitter().Execute(context.Background(), SubmitResponsesCommand{Token: token, Responses: []ResponseInput{{AssetID: 1, Action: "approve"}}})
	assert.Equal(t, apperrors.ErrorTypeGone, errType(t, err))

	assert.Equal(t, review.InvitationExpired, e.stored(t).Status())
	assert.Equal(t, vo.StatusApproved, e.assets.assets[1].Status())
	assert.Empty(t, e.responses.rows)
}

func TestSubmit_OutOfScopeRejectsWholeRequest(t *testing.T) {
	e := newEnv(t, map[uint]vo.AssetStatus{1: vo.StatusApproved, 2: vo.StatusApproved})
	token := e.create(t, 1)

	_, err := e.submitter().Execute(context.Background(), SubmitResponsesCommand{Token: token, Responses: []ResponseInput{
		{AssetID: 1, Action: "approve"},
		{AssetID: 2, Action: "approve"},
	}})
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	assert.Equal(t, "asset not found in this review", appErr.Message)

	assert.Empty(t, e.responses.rows)
	assert.Equal(t, vo.StatusApproved, e.assets.assets[1].Status())
}

// A refused status change keeps the client's decision, so the invitation
// still completes once every asset has one.
func TestSubmit_RefusedTransitionKeepsResponse(t *testing.T) {
	e := newEnv(t, map[uint]vo.AssetStatus{1: vo.StatusApproved, 2: vo.StatusDeliveredByArtist})
	token := e.create(t, 1, 2)

	res, err := e.submitter().Execute(context.Background(), SubmitResponsesCommand{Token: token, Responses: []ResponseInput{
		{AssetID: 2, Action: "approve"},
		{AssetID: 1, Action: "approve"},
	}})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.True(t, res.Completed)
	require.Len(t, res.Results, 2)
	assert.True(t, res.Results[0].Recorded)
	assert.False(t, res.Results[0].Success)
	assert.Equal(t, "delivered_by_artist", res.Results[0].Status)
	assert.Equal(t, "invalid status transition", res.Results[0].Error)
	assert.True(t, res.Results[1].Recorded)
	assert.True(t, res.Results[1].Success)
	assert.Equal(t, "2 of 2 response(s) recorded, 1 not applied; review completed", res.Message)

	assert.Len(t, e.responses.rows, 2)
	assert.Equal(t, vo.StatusDeliveredByArtist, e.assets.assets[2].Status())
	assert.Equal(t, vo.StatusApprovedByClient, e.assets.assets[1].Status())
	assert.Equal(t, review.InvitationCompleted, e.stored(t).Status())
}

func TestSubmit_UnstoredResponseIsNotApplied(t *testing.T) {
	e := newEnv(t, map[uint]vo.AssetStatus{1: vo.StatusApproved, 2: vo.StatusApproved})
	token := e.create(t, 1, 2)
	e.responses.UpsertErr = map[uint]error{2: assert.AnError}

	res, err := e.submitter().Execute(context.Background(), SubmitResponsesCommand{Token: token, Responses: []ResponseInput{
		{AssetID: 1, Action: "approve"},
		{AssetID: 2, Action: "approve"},
	}})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.False(t, res.Completed)
	assert.True(t, res.Results[0].Success)
	assert.False(t, res.Results[1].Recorded)
	assert.False(t, res.Results[1].Success)
	assert.Equal(t, "1 of 2 response(s) recorded, 1 not applied", res.Message)
	assert.Equal(t, vo.StatusApproved, e.assets.assets[2].Status())
	assert.Equal(t, review.InvitationPending, e.stored(t).Status())
}

func TestSubmit_Validation(t *testing.T) {
	e := newEnv(t, map[uint]vo.AssetStatus{1: vo.StatusApproved})
	token := e.create(t, 1)
	uc := e.submitter()

	for _, responses := range [][]ResponseInput{
		nil,
		{{AssetID: 0, Action: "approve"}},
		{{AssetID: 1, Action: "maybe"}},
	} {
		_, err := uc.Execute(context.Background(), SubmitResponsesCommand{Token: token, Responses: responses})
		assert.Equal(t, apperrors.ErrorTypeValidation, errType(t, err))
	}

	_, err := uc.Execute(context.Background(), SubmitResponsesCommand{Token: "rv_unknown", Responses: []ResponseInput{{AssetID: 1, Action: "approve"}}})
	assert.Equal(t, apperrors.ErrorTypeNotFound, errType(t, err))
}

func TestResolve_TerminalStatesWinOverExpiry(t *testing.T) {
	e := newEnv(t, map[uint]vo.AssetStatus{1: vo.StatusApproved})
	token := e.create(t, 1)
	ctx := context.Background()

	cancel := NewCancelInvitationUseCase(e.invitations, e.clock, logger.NewNopLogger())
	_, err := cancel.Execute(ctx, CancelInvitationCommand{InvitationID: 1, RequesterID: creatorID, RequesterRole: authorization.RoleAdmin})
	require.NoError(t, err)

	e.now = e.now.Add(100 * time.Hour)
	_, err = e.resolver.Resolve(ctx, token)
	assert.ErrorIs(t, err, review.ErrInvitationCancelled)
	assert.Equal(t, review.InvitationCancelled, e.stored(t).Status())
}

func TestCancelInvitation_Permissions(t *testing.T) {
	e := newEnv(t, map[uint]vo.AssetStatus{1: vo.StatusApproved})
	e.create(t, 1)
	uc := NewCancelInvitationUseCase(e.invitations, e.clock, logger.NewNopLogger())
	ctx := context.Background()

	_, err := uc.Execute(ctx, CancelInvitationCommand{InvitationID: 1, RequesterID: 99, RequesterRole: authorization.RoleQA})
	assert.Equal(t, apperrors.ErrorTypeForbidden, errType(t, err))

	res, err := uc.Execute(ctx, CancelInvitationCommand{InvitationID: 1, RequesterID: creatorID, RequesterRole: authorization.RoleQA})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", res.Status)

	_, err = uc.Execute(ctx, CancelInvitationCommand{InvitationID: 1, RequesterID: creatorID, RequesterRole: authorization.RoleQA})
	assert.Equal(t, apperrors.ErrorTypeForbidden, errType(t, err))

	_, err = uc.Execute(ctx, CancelInvitationCommand{InvitationID: 7, RequesterID: creatorID, RequesterRole: authorization.RoleAdmin})
	assert.Equal(t, apperrors.ErrorTypeNotFound, errType(t, err))
}

func TestGetReviewOverview(t *testing.T) {
	e := newEnv(t, map[uint]vo.AssetStatus{1: vo.StatusApproved, 2: vo.StatusApproved})
	token := e.create(t, 2, 1)
	_, err := e.submitter().Execute(context.Background(), SubmitResponsesCommand{Token: token, Responses: []ResponseInput{{AssetID: 1, Action: "approve", Comment: "ok"}}})
	require.NoError(t, err)

	uc := NewGetReviewOverviewUseCase(e.resolver, e.assets, e.responses, logger.NewNopLogger())
	res, err := uc.Execute(context.Background(), token)
	require.NoError(t, err)

	require.Len(t, res.Assets, 2)
	assert.Equal(t, uint(2), res.Assets[0].ID)
	assert.Nil(t, res.Assets[0].Response)
	require.NotNil(t, res.Assets[1].Response)
	assert.Equal(t, "approve", res.Assets[1].Response.Action)
	assert.Equal(t, "approved_by_client", res.Assets[1].Status)
	assert.Equal(t, 1, res.Responded)
}

func TestAnnotations_ScopedCRUD(t *testing.T) {
	e := newEnv(t, map[uint]vo.AssetStatus{1: vo.StatusApproved, 2: vo.StatusApproved})
	token := e.create(t, 1)
	uc := NewAnnotationsUseCase(e.resolver, e.annotations, fakeRenderer{}, mockTx{}, e.clock, logger.NewNopLogger())
	ctx := context.Background()

	created, err := uc.Create(ctx, CreateAnnotationCommand{Token: token, AssetID: 1, Content: "**seam** here", Position: json.RawMessage(`{"x":1,"y":2,"z":0}`)})
	require.NoError(t, err)
	assert.Equal(t, "buyer@client.test", created.AuthorEmail)
	assert.Equal(t, "<p>**seam** here</p>", created.ContentHTML)

	_, err = uc.Create(ctx, CreateAnnotationCommand{Token: token, AssetID: 2, Content: "outside"})
	assert.Equal(t, apperrors.ErrorTypeNotFound, errType(t, err))

	_, err = uc.Create(ctx, CreateAnnotationCommand{Token: token, AssetID: 1, Content: "   "})
	assert.Equal(t, apperrors.ErrorTypeValidation, errType(t, err))

	updated, err := uc.Update(ctx, UpdateAnnotationCommand{Token: token, AnnotationID: created.ID, Content: "seam fixed?"})
	require.NoError(t, err)
	assert.Equal(t, "seam fixed?", updated.Content)
	assert.JSONEq(t, `{"x":1,"y":2,"z":0}`, string(updated.Position))

	assetID := uint(1)
	list, err := uc.List(ctx, token, &assetID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, token, created.ID))
	err = uc.Delete(ctx, token, created.ID)
	assert.Equal(t, apperrors.ErrorTypeNotFound, errType(t, err))

	assert.Zero(t, e.annotations.writesOutsideTx)
}

func TestAnnotations_WritesHoldInvitationLock(t *testing.T) {
	e := newEnv(t, map[uint]vo.AssetStatus{1: vo.StatusApproved})
	token := e.create(t, 1)
	uc := NewAnnotationsUseCase(e.resolver, e.annotations, fakeRenderer{}, mockTx{}, e.clock, logger.NewNopLogger())
	ctx := context.Background()

	created, err := uc.Create(ctx, CreateAnnotationCommand{Token: token, AssetID: 1, Content: "scratch on lid"})
	require.NoError(t, err)
	_, err = uc.Update(ctx, UpdateAnnotationCommand{Token: token, AnnotationID: created.ID, Content: "deep scratch on lid"})
	require.NoError(t, err)
	assert.Equal(t, 2, e.invitations.lockedReads)

	cancel := NewCancelInvitationUseCase(e.invitations, e.clock, logger.NewNopLogger())
	_, err = cancel.Execute(ctx, CancelInvitationCommand{InvitationID: 1, RequesterID: creatorID, RequesterRole: authorization.RoleAdmin})
	require.NoError(t, err)

	_, err = uc.Create(ctx, CreateAnnotationCommand{Token: token, AssetID: 1, Content: "too late"})
	assert.Equal(t, apperrors.ErrorTypeForbidden, errType(t, err))
	err = uc.Delete(ctx, token, created.ID)
	assert.Equal(t, apperrors.ErrorTypeForbidden, errType(t, err))

	assert.Len(t, e.annotations.rows, 1)
	assert.Zero(t, e.annotations.writesOutsideTx)
}

func TestAnnotations_ExpiredTokenFlipsInvitation(t *testing.T) {
	e := newEnv(t, map[uint]vo.AssetStatus{1: vo.StatusApproved})
	token := e.create(t, 1)
	uc := NewAnnotationsUseCase(e.resolver, e.annotations, fakeRenderer{}, mockTx{}, e.clock, logger.NewNopLogger())

	e.now = e.now.Add(80 * time.Hour)
	_, err := uc.Create(context.Background(), CreateAnnotationCommand{Token: token, AssetID: 1, Content: "late note"})
	assert.Equal(t, apperrors.ErrorTypeGone, errType(t, err))
	assert.Equal(t, review.InvitationExpired, e.stored(t).Status())
	assert.Empty(t, e.annotations.rows)
}

func TestExpireInvitations_Sweep(t *testing.T) {
	e := newEnv(t, map[uint]vo.AssetStatus{1: vo.StatusApproved})
	e.create(t, 1)
	uc := NewExpireInvitationsUseCase(e.invitations, e.clock, logger.NewNopLogger())

	n, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	e.now = e.now.Add(80 * time.Hour)
	n, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, review.InvitationExpired, e.stored(t).Status())
}
