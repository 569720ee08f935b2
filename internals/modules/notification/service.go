package notification

import (
	"context"

	"github.com/google/uuid"
)

type Store interface {
	Create(ctx context.Context, n Notification) (uuid.UUID, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	GetPreferences(ctx context.Context, userID uuid.UUID) (Preferences, error)
	UpsertPreferences(ctx context.Context, p Preferences) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Record(ctx context.Context, n Notification) (uuid.UUID, error) {
	return s.store.Create(ctx, n)
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Notification, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return s.store.MarkRead(ctx, userID, notificationID)
}

func (s *Service) GetPreferences(ctx context.Context, userID uuid.UUID) (Preferences, error) {
	return s.store.GetPreferences(ctx, userID)
}

func (s *Service) UpdatePreferences(ctx context.Context, p Preferences) error {
	return s.store.UpsertPreferences(ctx, p)
}
