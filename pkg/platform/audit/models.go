package audit

import (
	"context"
	"time"

	id "testament/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal significance for the estate.
	// Examples: will creation, ledger changes, lifecycle transitions, distributions.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers changes to who may act on or read a will.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity that can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	// Owner is the will the event belongs to.
	Owner    id.Identity
	Subject  string
	Action   string
	Decision string
	Reason   string
	// RequestID is the correlation ID from the HTTP request context.
	RequestID string
	// ActorID tracks who performed the action when different from Owner:
	// an editor, a funder, or the platform operator.
	ActorID string
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByOwner(ctx context.Context, owner id.Identity) ([]Event, error)
}

type AuditEvent string

const (
	// Ledger events
	EventWillCreated          AuditEvent = "will_created"
	EventResidualSet          AuditEvent = "residual_beneficiary_set"
	EventBeneficiariesAdded   AuditEvent = "beneficiaries_added"
	EventAllocationsUpdated   AuditEvent = "allocations_updated"
	EventBeneficiariesRemoved AuditEvent = "beneficiaries_removed"
	EventWillFunded           AuditEvent = "will_funded"

	// Access events
	EventEditorAdded   AuditEvent = "editor_added"
	EventEditorRemoved AuditEvent = "editor_removed"
	EventViewerAdded   AuditEvent = "viewer_added"
	EventViewerRemoved AuditEvent = "viewer_removed"

	// Asset events
	EventAssetCreated             AuditEvent = "asset_created"
	EventAssetBeneficiariesUpdate AuditEvent = "asset_beneficiaries_updated"

	// Lifecycle events
	EventDeathConfirmed      AuditEvent = "death_confirmed"
	EventProbateConfirmed    AuditEvent = "probate_confirmed"
	EventConfirmationSkipped AuditEvent = "confirmation_skipped"
	EventProbateForced       AuditEvent = "probate_forced"

	// Distribution events
	EventDigitalDistributed       AuditEvent = "digital_assets_distributed"
	EventAssetDistributed         AuditEvent = "asset_distributed"
	EventAssetDistributionSkipped AuditEvent = "asset_distribution_skipped"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	EventWillCreated:              CategoryCompliance,
	EventResidualSet:              CategoryCompliance,
	EventBeneficiariesAdded:       CategoryCompliance,
	EventAllocationsUpdated:       CategoryCompliance,
	EventBeneficiariesRemoved:     CategoryCompliance,
	EventAssetCreated:             CategoryCompliance,
	EventAssetBeneficiariesUpdate: CategoryCompliance,
	EventDeathConfirmed:           CategoryCompliance,
	EventProbateConfirmed:         CategoryCompliance,
	EventDigitalDistributed:       CategoryCompliance,
	EventAssetDistributed:         CategoryCompliance,

	EventEditorAdded:   CategorySecurity,
	EventEditorRemoved: CategorySecurity,
	EventViewerAdded:   CategorySecurity,
	EventViewerRemoved: CategorySecurity,
	EventProbateForced: CategorySecurity,

	EventWillFunded:               CategoryOperations,
	EventConfirmationSkipped:      CategoryOperations,
	EventAssetDistributionSkipped: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
