// Package common holds helpers shared by application use cases.
package common

import (
	"github.com/assetflow/assetflow/internal/domain/shared/events"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

// PublishAll hands side-effect intents to the dispatcher once the mutating
// transaction has committed. A publish failure is logged and never returned:
// the operation it describes already succeeded.
func PublishAll(pub events.EventPublisher, log logger.Interface, evts ...events.DomainEvent) {
	if pub == nil || len(evts) == 0 {
		return
	}
	for _, e := range evts {
		if err := pub.Publish(e); err != nil {
			log.Warnw("failed to publish event",
				"event_type", e.GetEventType(),
				"aggregate_id", e.GetAggregateID(),
				"error", err,
			)
		}
	}
}
