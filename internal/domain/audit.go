package domain

import "time"

const AuditServiceName = "catalog-service"

const (
	EventCategoryCreated      = "category_created"
	EventCategoryLabelUpdated = "category_label_updated"
	EventCategoryDeleted      = "category_deleted"
	EventProductCreated       = "product_created"
	EventProductUpdated       = "product_updated"
	EventProductDeleted       = "product_deleted"
)

type AuditEvent struct {
	Service    string                 `json:"service"`
	EventType  string                 `json:"event_type"`
	EntityID   string                 `json:"entity_id"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}
