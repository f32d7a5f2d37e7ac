package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"mariageBack/internal/availability"
	"mariageBack/internal/models"
	"mariageBack/internal/repositories"
)

const publicAvailabilityCacheTTL = 5 * time.Minute

type AvailabilityService struct {
	AvailabilityRepo *repositories.AvailabilityRepository
	PrestataireRepo  *repositories.PrestataireRepository
	Cache            *redis.Client
}

func (s *AvailabilityService) CreateSlot(ctx context.Context, slot models.AvailabilitySlot) (models.AvailabilitySlot, error) {
	created, err := s.AvailabilityRepo.CreateSlot(ctx, slot)
	if err != nil {
		return models.AvailabilitySlot{}, err
	}
	s.invalidateCache(ctx, slot.PrestataireID)
	return created, nil
}

func (s *AvailabilityService) UpdateSlot(ctx context.Context, slot models.AvailabilitySlot) error {
	existing, err := s.AvailabilityRepo.GetSlotByID(ctx, slot.ID)
	if err != nil {
		return err
	}
	if existing.PrestataireID != slot.PrestataireID {
		return models.ErrNotSlotOwner
	}
	if err := s.AvailabilityRepo.UpdateSlot(ctx, slot); err != nil {
		return err
	}
	s.invalidateCache(ctx, slot.PrestataireID)
	return nil
}

func (s *AvailabilityService) DeleteSlot(ctx context.Context, id, prestataireID int) error {
	existing, err := s.AvailabilityRepo.GetSlotByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.PrestataireID != prestataireID {
		return models.ErrNotSlotOwner
	}
	if err := s.AvailabilityRepo.DeleteSlot(ctx, id, prestataireID); err != nil {
		return err
	}
	s.invalidateCache(ctx, prestataireID)
	return nil
}

func (s *AvailabilityService) GetSlots(ctx context.Context, prestataireID int) ([]models.AvailabilitySlot, error) {
	return s.AvailabilityRepo.GetSlotsByPrestataire(ctx, prestataireID)
}

// GetCalendar returns the merged per-day occupancy for the prestataire's own
// dashboard, private slots included.
func (s *AvailabilityService) GetCalendar(ctx context.Context, prestataireID int) (map[string]models.SlotStatus, error) {
	slots, err := s.AvailabilityRepo.GetSlotsByPrestataire(ctx, prestataireID)
	if err != nil {
		return nil, err
	}
	return availability.BuildDateMap(slots), nil
}

// GetPublicAvailability serves the unauthenticated window query, fronted by
// an advisory redis cache. Cache failures fall through to the database.
func (s *AvailabilityService) GetPublicAvailability(ctx context.Context, prestataireID int, from, to string) (models.PublicAvailabilityResponse, error) {
	cacheKey := "availability:" + from + ":" + to + ":" + strconv.Itoa(prestataireID)
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached models.PublicAvailabilityResponse
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	prestataire, err := s.PrestataireRepo.GetPublicPrestataire(ctx, prestataireID)
	if err != nil {
		return models.PublicAvailabilityResponse{}, err
	}
	slots, err := s.AvailabilityRepo.GetPublicSlotsInWindow(ctx, prestataireID, from, to)
	if err != nil {
		return models.PublicAvailabilityResponse{}, err
	}

	public := make([]models.PublicAvailabilitySlot, 0, len(slots))
	for _, slot := range slots {
		public = append(public, models.PublicAvailabilitySlot{
			StartDate: slot.StartDate,
			EndDate:   slot.EndDate,
			Status:    slot.Status,
		})
	}

	resp := models.PublicAvailabilityResponse{
		Prestataire: prestataire,
		Slots:       public,
		Period:      models.AvailabilityPeriod{From: from, To: to},
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			s.Cache.Set(ctx, cacheKey, raw, publicAvailabilityCacheTTL)
		}
	}
	return resp, nil
}

// StatusOnDate answers "is this prestataire free on my wedding date".
func (s *AvailabilityService) StatusOnDate(ctx context.Context, prestataireID int, day string) (models.SlotStatus, bool, error) {
	slots, err := s.AvailabilityRepo.GetPublicSlotsInWindow(ctx, prestataireID, day, day)
	if err != nil {
		return "", false, err
	}
	status, covered := availability.StatusOn(slots, day)
	return status, covered, nil
}

func (s *AvailabilityService) invalidateCache(ctx context.Context, prestataireID int) {
	if s.Cache == nil {
		return
	}
	iter := s.Cache.Scan(ctx, 0, "availability:*:"+strconv.Itoa(prestataireID), 100).Iterator()
	for iter.Next(ctx) {
		s.Cache.Del(ctx, iter.Val())
	}
}
