package compendium

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Event types published on the configured bus
const (
	EventDocumentParsed  = "compendium.document.parsed"
	EventDocumentSkipped = "compendium.document.skipped"
	EventRunCompleted    = "compendium.run.completed"
)

// Event context keys
const (
	KeyPath    = "path"
	KeyReason  = "reason"
	KeyCode    = "code"
	KeyRecord  = "record"
	KeySummary = "summary"
)

// Entity types carried by published events
const (
	EntityTypeRun      = "compendium_run"
	EntityTypeDocument = "rules_document"
)

// entity wraps a run or document so it can travel on the event bus
type entity struct {
	id         string
	entityType string
}

func (e *entity) GetID() string {
	return e.id
}

func (e *entity) GetType() string {
	return e.entityType
}

var _ core.Entity = (*entity)(nil)

func runEntity(runID string) core.Entity {
	return &entity{id: runID, entityType: EntityTypeRun}
}

func documentEntity(path string) core.Entity {
	return &entity{id: path, entityType: EntityTypeDocument}
}

// publish sends an event when a bus is configured. Handler failures are
// logged and never fail the run.
func (o *orchestrator) publish(ctx context.Context, eventType string, source, target core.Entity, data map[string]any) {
	if o.eventBus == nil {
		return
	}

	event := events.NewGameEvent(eventType, source, target)
	for k, v := range data {
		event.Context().Set(k, v)
	}

	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "event handler failed",
			"event", eventType,
			"error", err,
		)
	}
}
