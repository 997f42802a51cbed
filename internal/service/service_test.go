package service

import (
	"context"
	"testing"

	"geocatalog/internal/domain"
)

func TestCatalogServiceValidateRecord(t *testing.T) {
	svc := &CatalogService{}

	t.Run("record with XML passes validation", func(t *testing.T) {
		rec := &domain.Record{XML: "<rec/>"}
		if err := svc.validateRecord(rec); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("record without XML fails validation", func(t *testing.T) {
		rec := &domain.Record{Title: "No Document"}
		if err := svc.validateRecord(rec); err == nil {
			t.Error("expected error for missing XML document")
		}
	})
}

func TestCatalogServiceGuards(t *testing.T) {
	svc := &CatalogService{}

	t.Run("delete without constraint is rejected", func(t *testing.T) {
		_, err := svc.DeleteRecords(context.Background(), domain.Constraint{})
		if err == nil {
			t.Error("expected error for unconstrained delete")
		}
	})

	t.Run("property update without constraint is rejected", func(t *testing.T) {
		_, err := svc.UpdateRecordProperties(context.Background(), domain.Constraint{},
			[]domain.PropertyUpdate{{Name: "title", Value: "x"}})
		if err == nil {
			t.Error("expected error for unconstrained update")
		}
	})

	t.Run("property update without changes is rejected", func(t *testing.T) {
		_, err := svc.UpdateRecordProperties(context.Background(),
			domain.Constraint{Where: "identifier = ?", Values: []any{"x"}}, nil)
		if err == nil {
			t.Error("expected error for empty update list")
		}
	})

	t.Run("harvest lookup without source is rejected", func(t *testing.T) {
		_, err := svc.Harvested(context.Background(), "")
		if err == nil {
			t.Error("expected error for empty source")
		}
	})

	t.Run("update without identifier is rejected", func(t *testing.T) {
		err := svc.UpdateRecord(context.Background(), &domain.Record{XML: "<rec/>"})
		if err == nil {
			t.Error("expected error for missing identifier")
		}
	})
}

func TestEventBusPublishSubscribe(t *testing.T) {
	bus := NewEventBus()
	ch := make(chan Event, 1)
	bus.Subscribe(ch)

	bus.Publish(Event{Type: EventRecordInserted})

	select {
	case event := <-ch:
		if event.Type != EventRecordInserted {
			t.Errorf("expected %s, got %s", EventRecordInserted, event.Type)
		}
	default:
		t.Error("expected event to be delivered")
	}
}

func TestEventBusSkipsSlowSubscribers(t *testing.T) {
	bus := NewEventBus()
	ch := make(chan Event) // unbuffered, nobody reading

	bus.Subscribe(ch)
	bus.Publish(Event{Type: EventRecordUpdated}) // must not block
}
