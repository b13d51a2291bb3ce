package notification

import (
	"context"
	"time"

	"github.com/assetflow/assetflow/internal/domain/asset"
)

type Message struct {
	To        string
	Subject   string
	HTMLBody  string
	PlainBody string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Deduplicator grants a key at most once per ttl across instances.
type Deduplicator interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// StatusBroadcaster pushes applied transitions to live dashboard clients.
type StatusBroadcaster interface {
	BroadcastStatusChange(evt asset.StatusChangedEvent)
}
