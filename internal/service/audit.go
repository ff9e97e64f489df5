package service

import (
	"context"
	"time"

	"catalog-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

type AuditPublisher interface {
	Publish(ctx context.Context, event domain.AuditEvent) error
}

// AuditService records catalog mutations. A nil service or publisher turns
// every call into a no-op, and publish failures never fail the mutation.
type AuditService struct {
	publisher AuditPublisher
}

func NewAuditService(publisher AuditPublisher) *AuditService {
	return &AuditService{publisher: publisher}
}

func (s *AuditService) record(ctx context.Context, eventType, entityID string, payload map[string]interface{}) {
	if s == nil || s.publisher == nil {
		return
	}

	event := domain.AuditEvent{
		Service:    domain.AuditServiceName,
		EventType:  eventType,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"event_type": eventType,
			"entity_id":  entityID,
		}).Warn("Failed to publish audit event")
	}
}

func (s *AuditService) RecordCategoryCreated(ctx context.Context, cat *domain.ProductCategory) {
	if cat == nil {
		return
	}
	s.record(ctx, domain.EventCategoryCreated, cat.Name, map[string]interface{}{
		"id":    cat.ID,
		"label": cat.Label,
	})
}

func (s *AuditService) RecordCategoryLabelUpdated(ctx context.Context, name, label string) {
	s.record(ctx, domain.EventCategoryLabelUpdated, name, map[string]interface{}{
		"label": label,
	})
}

func (s *AuditService) RecordCategoryDeleted(ctx context.Context, name string) {
	s.record(ctx, domain.EventCategoryDeleted, name, nil)
}

func productPayload(p domain.Product) map[string]interface{} {
	return map[string]interface{}{
		"name":     p.Name,
		"category": p.Category,
		"price":    p.Price.String(),
		"stocks":   p.Stocks,
	}
}

func (s *AuditService) RecordProductCreated(ctx context.Context, p *domain.Product) {
	if p == nil {
		return
	}
	s.record(ctx, domain.EventProductCreated, p.ID, productPayload(*p))
}

func (s *AuditService) RecordProductUpdated(ctx context.Context, p domain.Product) {
	s.record(ctx, domain.EventProductUpdated, p.ID, productPayload(p))
}

func (s *AuditService) RecordProductDeleted(ctx context.Context, id string) {
	s.record(ctx, domain.EventProductDeleted, id, nil)
}
