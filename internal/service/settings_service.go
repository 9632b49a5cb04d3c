package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/atelierlabs/planner-api/internal/planner"
	"github.com/atelierlabs/planner-api/internal/repository"
)

// SettingsService wraps the generic configuration bag. The per-brand
// time-slot registry lives under one key as a JSON list of HH:MM strings.
type SettingsService interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	GetSlots(ctx context.Context, brandID int64) ([]string, error)
	AddSlot(ctx context.Context, brandID int64, slot string) ([]string, error)
	RemoveSlot(ctx context.Context, brandID int64, slot string) ([]string, error)
}

type settingsService struct {
	sr repository.SettingsRepository
}

func NewSettingsService(sr repository.SettingsRepository) SettingsService {
	return &settingsService{sr: sr}
}

func slotsKey(brandID int64) string {
	return fmt.Sprintf("labs_time_slots:%d", brandID)
}

func (s *settingsService) Get(ctx context.Context, key string) (string, bool, error) {
	return s.sr.Get(ctx, key)
}

func (s *settingsService) Set(ctx context.Context, key, value string) error {
	return s.sr.Set(ctx, key, value)
}

func (s *settingsService) GetSlots(ctx context.Context, brandID int64) ([]string, error) {
	value, ok, err := s.sr.Get(ctx, slotsKey(brandID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return planner.NewSlotSet(planner.DefaultSlots...).Sorted(), nil
	}

	var times []string
	if err := json.Unmarshal([]byte(value), &times); err != nil {
		slog.Info(fmt.Sprintf("malformed slot registry for brand %d: %v", brandID, err))
		return planner.NewSlotSet(planner.DefaultSlots...).Sorted(), nil
	}

	return planner.NewSlotSet(times...).Sorted(), nil
}

func (s *settingsService) AddSlot(ctx context.Context, brandID int64, slot string) ([]string, error) {
	slots, err := s.GetSlots(ctx, brandID)
	if err != nil {
		return nil, err
	}

	set := planner.NewSlotSet(slots...)
	if err := set.Add(slot); err != nil {
		return nil, err
	}

	return s.saveSlots(ctx, brandID, set)
}

func (s *settingsService) RemoveSlot(ctx context.Context, brandID int64, slot string) ([]string, error) {
	slots, err := s.GetSlots(ctx, brandID)
	if err != nil {
		return nil, err
	}

	set := planner.NewSlotSet(slots...)
	set.Remove(slot)

	return s.saveSlots(ctx, brandID, set)
}

func (s *settingsService) saveSlots(ctx context.Context, brandID int64, set *planner.SlotSet) ([]string, error) {
	sorted := set.Sorted()

	encoded, err := json.Marshal(sorted)
	if err != nil {
		return nil, err
	}
	if err := s.sr.Set(ctx, slotsKey(brandID), string(encoded)); err != nil {
		return nil, err
	}

	return sorted, nil
}
