package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	cabinserrors "refugio/internal/cabins/errors"
	cabinsrepo "refugio/internal/cabins/repository"
	"refugio/internal/reservations/availability"
	reservationserrors "refugio/internal/reservations/errors"
	"refugio/internal/reservations/events"
	"refugio/internal/reservations/lifecycle"
	"refugio/internal/reservations/repository"
	"refugio/internal/reservations/validator"
	"refugio/pkg/calendar"
	"refugio/pkg/config"
	apperrors "refugio/pkg/errors"
	"refugio/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type ReservationService interface {
	Create(ctx context.Context, req model.BookingRequest) (*model.Reservation, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	GetAll(ctx context.Context, status model.Status, limit int, offset int64) ([]*model.Reservation, int64, error)
	UpdateStatus(ctx context.Context, id string, update model.StatusUpdate) (*model.Reservation, error)
	CheckAvailability(ctx context.Context, cabinID, startDate, endDate string) (*model.AvailabilityResult, error)
	MonthView(ctx context.Context, cabinID string, year int, month time.Month, sel availability.Selection) ([]model.CalendarDay, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	lockRepo  repository.ReservationLockRepository
	cabinRepo cabinsrepo.CabinRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	lockRepo repository.ReservationLockRepository,
	cabinRepo cabinsrepo.CabinRepository,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		lockRepo:  lockRepo,
		cabinRepo: cabinRepo,
		validator: bookingValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *reservationService) Create(ctx context.Context, req model.BookingRequest) (*model.Reservation, error) {
	cabin, err := s.lookupCabin(ctx, req.CabinID)
	if err != nil {
		return nil, err
	}

	existing, err := s.existingReservations(ctx, req.CabinID)
	if err != nil {
		return nil, err
	}

	draft, err := s.validator.ValidateAndBuild(req, cabin, existing, calendar.Today())
	if err != nil {
		s.cfg.Log.Warn("Booking submission rejected",
			"cabin_id", req.CabinID,
			"error", err,
		)
		return nil, err
	}

	// Advisory lock per cabin: two guests racing for the same cabin
	// serialize here instead of both passing the conflict check.
	lockID, err := s.acquireCabinLock(ctx, draft.CabinID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseCabinLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release reservation lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		// Re-check inside the transaction; the first check ran before
		// the lock was held.
		blocking, err := s.repo.FindBlockingByCabin(sessCtx, draft.CabinID, draft.StartDate, draft.EndDate)
		if err != nil {
			return apperrors.Internal("Failed to check existing reservations", err)
		}
		if len(blocking) > 0 {
			return apperrors.DateConflict("requested dates overlap an existing reservation")
		}

		if err := s.repo.Create(sessCtx, &draft); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create reservation", "cabin_id", draft.CabinID, "error", err)
		return nil, err
	}

	s.publisher.ReservationCreated(ctx, &draft)

	s.cfg.Log.Info("Reservation created successfully",
		"id", draft.ID,
		"cabin_id", draft.CabinID,
		"start_date", draft.StartDate,
		"end_date", draft.EndDate,
		"total_price", draft.TotalPrice,
	)
	return &draft, nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reservationserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}

	return reservation, nil
}

func (s *reservationService) GetAll(ctx context.Context, status model.Status, limit int, offset int64) ([]*model.Reservation, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, apperrors.InvalidInput("status must be one of PENDING, CONFIRMED, REJECTED, CANCELLED")
	}

	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, status)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reservations", "error", errCount)
			errCount = apperrors.Internal("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.repo.FindAll(ctx, status, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list reservations", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, count, nil
}

func (s *reservationService) UpdateStatus(ctx context.Context, id string, update model.StatusUpdate) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}
	if err := s.validator.ValidateStatusUpdate(update); err != nil {
		return nil, err
	}

	var updated *model.Reservation
	var previous model.Status

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			if errors.Is(err, reservationserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Reservation", id)
			}
			if errors.Is(err, reservationserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid reservation ID format")
			}
			return apperrors.Internal("Failed to retrieve reservation", err)
		}

		previous = existing.Status
		if _, err := lifecycle.Transition(*existing, update.Status); err != nil {
			return err
		}

		updated, err = s.repo.UpdateStatus(sessCtx, id, update.Status)
		if err != nil {
			return apperrors.Internal("Failed to update reservation status", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update reservation status", "id", id, "status", update.Status, "error", err)
		return nil, err
	}

	s.publisher.ReservationStatusChanged(ctx, updated, previous)

	s.cfg.Log.Info("Reservation status updated",
		"id", id,
		"from", previous,
		"to", updated.Status,
	)
	return updated, nil
}

func (s *reservationService) CheckAvailability(ctx context.Context, cabinID, startDate, endDate string) (*model.AvailabilityResult, error) {
	if cabinID == "" {
		return nil, apperrors.InvalidInput("Cabin ID cannot be empty")
	}
	if startDate == "" || endDate == "" {
		return nil, apperrors.InvalidInput("start_date and end_date are required")
	}

	cabin, err := s.lookupCabin(ctx, cabinID)
	if err != nil {
		return nil, err
	}
	if cabin == nil || !cabin.IsActive {
		return nil, apperrors.UnitUnavailable(cabinID)
	}

	start := calendar.Parse(startDate, s.cfg.Log)
	end := calendar.Parse(endDate, s.cfg.Log)
	if end.Before(start) {
		return nil, apperrors.InvalidRange("end_date must not be before start_date")
	}

	blocking, err := s.repo.FindBlockingByCabin(ctx, cabinID, start, end)
	if err != nil {
		return nil, apperrors.Internal("Failed to check availability", err)
	}

	return &model.AvailabilityResult{
		CabinID:   cabinID,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Available: len(blocking) == 0,
	}, nil
}

// MonthView classifies every day of the requested month for the cabin.
func (s *reservationService) MonthView(ctx context.Context, cabinID string, year int, month time.Month, sel availability.Selection) ([]model.CalendarDay, error) {
	if cabinID == "" {
		return nil, apperrors.InvalidInput("Cabin ID cannot be empty")
	}
	if year < 1970 || year > 9999 {
		return nil, apperrors.InvalidInput("year is out of range")
	}

	cabin, err := s.lookupCabin(ctx, cabinID)
	if err != nil {
		return nil, err
	}
	if cabin == nil || !cabin.IsActive {
		return nil, apperrors.UnitUnavailable(cabinID)
	}

	records, err := s.repo.FindByCabin(ctx, cabinID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load reservations", err)
	}

	reservations := make([]model.Reservation, 0, len(records))
	for _, r := range records {
		reservations = append(reservations, *r)
	}

	today := calendar.Today()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	days := make([]model.CalendarDay, 0, 31)
	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		days = append(days, model.CalendarDay{
			Date:       day.Format("2006-01-02"),
			Status:     availability.ClassifyDay(day, cabinID, reservations, sel, today),
			Selectable: availability.IsSelectable(day, cabinID, reservations, sel, today),
		})
	}

	return days, nil
}

// --- Helpers ---

// lookupCabin resolves the cabin or returns nil when it does not exist;
// the validator turns a nil cabin into UNIT_UNAVAILABLE.
func (s *reservationService) lookupCabin(ctx context.Context, cabinID string) (*model.Cabin, error) {
	if cabinID == "" {
		return nil, nil
	}

	cabin, err := s.cabinRepo.FindByID(ctx, cabinID)
	if err != nil {
		if errors.Is(err, cabinserrors.ErrNotFound) || errors.Is(err, cabinserrors.ErrInvalidID) {
			return nil, nil
		}
		return nil, apperrors.Internal("Failed to retrieve cabin", err)
	}
	return cabin, nil
}

func (s *reservationService) existingReservations(ctx context.Context, cabinID string) ([]model.Reservation, error) {
	if cabinID == "" {
		return nil, nil
	}

	records, err := s.repo.FindByCabin(ctx, cabinID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load existing reservations", err)
	}

	reservations := make([]model.Reservation, 0, len(records))
	for _, r := range records {
		reservations = append(reservations, *r)
	}
	return reservations, nil
}

// acquireCabinLock creates an advisory lock to prevent concurrent reservation creation.
// Returns the lock ID if successful, or conflict error if lock already exists.
func (s *reservationService) acquireCabinLock(ctx context.Context, cabinID string) (string, error) {
	lockID := fmt.Sprintf("reservation_lock_%s", cabinID)

	lock := &model.ReservationLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.LockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.DateConflict("This cabin is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire reservation lock", err)
	}

	return lockID, nil
}

// releaseCabinLock removes the advisory lock
func (s *reservationService) releaseCabinLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
