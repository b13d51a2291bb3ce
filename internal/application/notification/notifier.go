// Package notification turns committed domain events into emails and live
// status pushes. Every handler is best effort: failures are logged by the
// event dispatcher and never reach the operation that raised the event.
package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/assetflow/assetflow/internal/domain/allocation"
	"github.com/assetflow/assetflow/internal/domain/asset"
	"github.com/assetflow/assetflow/internal/domain/review"
	"github.com/assetflow/assetflow/internal/domain/shared/events"
	"github.com/assetflow/assetflow/internal/domain/user"
	"github.com/assetflow/assetflow/internal/shared/logger"
	"github.com/assetflow/assetflow/internal/shared/utils"
)

const defaultDedupWindow = 10 * time.Minute

var errUnexpectedEvent = errors.New("unexpected event payload")

type Notifier struct {
	users       user.Repository
	mailer      Mailer
	dedup       Deduplicator
	broadcaster StatusBroadcaster
	dedupWindow time.Duration
	logger      logger.Interface
}

// NewNotifier wires the handlers. dedup and broadcaster may be nil; without a
// deduplicator every review submission is mailed.
func NewNotifier(
	users user.Repository,
	mailer Mailer,
	dedup Deduplicator,
	broadcaster StatusBroadcaster,
	dedupWindow time.Duration,
	log logger.Interface,
) *Notifier {
	if dedupWindow <= 0 {
		dedupWindow = defaultDedupWindow
	}
	return &Notifier{
		users:       users,
		mailer:      mailer,
		dedup:       dedup,
		broadcaster: broadcaster,
		dedupWindow: dedupWindow,
		logger:      log,
	}
}

// Register subscribes every handler on d.
func (n *Notifier) Register(d events.EventDispatcher) error {
	handlers := map[string]func(context.Context, events.DomainEvent) error{
		allocation.EventTypeListCreated:           n.onListCreated,
		allocation.EventTypeProvisionalQAAssigned: n.onProvisionalQAAssigned,
		review.EventTypeInvitationCreated:         n.onInvitationCreated,
		review.EventTypeReviewSubmitted:           n.onReviewSubmitted,
		review.EventTypeReviewCompleted:           n.onReviewCompleted,
	}
	if n.broadcaster != nil {
		handlers[asset.EventTypeStatusChanged] = n.onStatusChanged
	}
	for eventType, fn := range handlers {
		if err := d.Subscribe(eventType, events.NewSimpleEventHandler(eventType, fn)); err != nil {
			return fmt.Errorf("failed to subscribe %s: %w", eventType, err)
		}
	}
	return nil
}

func (n *Notifier) onListCreated(ctx context.Context, evt events.DomainEvent) error {
	e, ok := evt.(allocation.ListCreatedEvent)
	if !ok {
		return errUnexpectedEvent
	}
	u, err := n.users.GetByID(ctx, e.UserID)
	if err != nil {
		return fmt.Errorf("failed to load modeler %d: %w", e.UserID, err)
	}
	return n.send(ctx, listCreatedMessage(u.Email(), u.DisplayName(), e))
}

func (n *Notifier) onProvisionalQAAssigned(ctx context.Context, evt events.DomainEvent) error {
	e, ok := evt.(allocation.ProvisionalQAAssignedEvent)
	if !ok {
		return errUnexpectedEvent
	}
	u, err := n.users.GetByID(ctx, e.QAUserID)
	if err != nil {
		return fmt.Errorf("failed to load QA user %d: %w", e.QAUserID, err)
	}
	return n.send(ctx, provisionalQAMessage(u.Email(), u.DisplayName(), e))
}

func (n *Notifier) onInvitationCreated(ctx context.Context, evt events.DomainEvent) error {
	e, ok := evt.(review.InvitationCreatedEvent)
	if !ok {
		return errUnexpectedEvent
	}
	inviter := "A producer"
	if u, err := n.users.GetByID(ctx, e.CreatedBy); err == nil {
		inviter = u.DisplayName()
	} else {
		n.logger.Debugw("inviter lookup failed, using generic name", "user_id", e.CreatedBy, "error", err)
	}
	return n.send(ctx, invitationMessage(inviter, e))
}

// onReviewSubmitted mails the creator at most once per invitation per window,
// since a reviewer often submits in several small batches.
func (n *Notifier) onReviewSubmitted(ctx context.Context, evt events.DomainEvent) error {
	e, ok := evt.(review.ReviewSubmittedEvent)
	if !ok {
		return errUnexpectedEvent
	}
	key := fmt.Sprintf("review_submitted:%d", e.InvitationID)
	held := false
	if n.dedup != nil {
		acquired, err := n.dedup.TryAcquire(ctx, key, n.dedupWindow)
		switch {
		case err != nil:
			n.logger.Warnw("notification dedup unavailable, sending anyway", "key", key, "error", err)
		case !acquired:
			n.logger.Debugw("review submission mail suppressed", "invitation_id", e.InvitationID)
			return nil
		default:
			held = true
		}
	}

	err := n.notifyCreator(ctx, e)
	if err != nil && held {
		// Let the next submission retry.
		if relErr := n.dedup.Release(ctx, key); relErr != nil {
			n.logger.Warnw("failed to release notification lock", "key", key, "error", relErr)
		}
	}
	return err
}

func (n *Notifier) notifyCreator(ctx context.Context, e review.ReviewSubmittedEvent) error {
	u, err := n.users.GetByID(ctx, e.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to load invitation creator %d: %w", e.CreatedBy, err)
	}
	return n.send(ctx, reviewSubmittedMessage(u.Email(), e))
}

func (n *Notifier) onReviewCompleted(ctx context.Context, evt events.DomainEvent) error {
	e, ok := evt.(review.ReviewCompletedEvent)
	if !ok {
		return errUnexpectedEvent
	}
	u, err := n.users.GetByID(ctx, e.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to load invitation creator %d: %w", e.CreatedBy, err)
	}
	return n.send(ctx, reviewCompletedMessage(u.Email(), e))
}

func (n *Notifier) onStatusChanged(_ context.Context, evt events.DomainEvent) error {
	e, ok := evt.(asset.StatusChangedEvent)
	if !ok {
		return errUnexpectedEvent
	}
	n.broadcaster.BroadcastStatusChange(e)
	return nil
}

func (n *Notifier) send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("no recipient for %q", msg.Subject)
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		return err
	}
	n.logger.Infow("notification sent", "to", utils.MaskEmail(msg.To), "subject", msg.Subject)
	return nil
}
