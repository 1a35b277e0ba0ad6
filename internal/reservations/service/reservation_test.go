package service

import (
	"context"
	"testing"
	"time"

	cabinserrors "refugio/internal/cabins/errors"
	"refugio/internal/reservations/availability"
	reservationserrors "refugio/internal/reservations/errors"
	"refugio/internal/reservations/repository"
	"refugio/internal/reservations/validator"
	"refugio/pkg/calendar"
	"refugio/pkg/config"
	mongotx "refugio/pkg/db/mongo"
	apperrors "refugio/pkg/errors"
	"refugio/pkg/logger"
	"refugio/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

const cabinID = "64b7a1f0e4b0c83d2f9a1b2c"

// Mock repositories for testing

type mockReservationRepository struct {
	createFunc             func(ctx context.Context, reservation *model.Reservation) error
	findByIDFunc           func(ctx context.Context, id string) (*model.Reservation, error)
	findAllFunc            func(ctx context.Context, status model.Status, limit int, offset int64) ([]*model.Reservation, error)
	findByCabinFunc        func(ctx context.Context, cabinID string) ([]*model.Reservation, error)
	findBlockingFunc       func(ctx context.Context, cabinID string, start, end time.Time) ([]*model.Reservation, error)
	updateStatusFunc       func(ctx context.Context, id string, status model.Status) (*model.Reservation, error)
	countFunc              func(ctx context.Context, status model.Status) (int64, error)
	executeTransactionFunc func(ctx context.Context, fn mongotx.TransactionFunc) error
}

func (m *mockReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, reservation)
	}
	reservation.ID = "66f000000000000000000001"
	return nil
}

func (m *mockReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, reservationserrors.ErrNotFound
}

func (m *mockReservationRepository) FindAll(ctx context.Context, status model.Status, limit int, offset int64) ([]*model.Reservation, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, status, limit, offset)
	}
	return []*model.Reservation{}, nil
}

func (m *mockReservationRepository) FindByCabin(ctx context.Context, cabinID string) ([]*model.Reservation, error) {
	if m.findByCabinFunc != nil {
		return m.findByCabinFunc(ctx, cabinID)
	}
	return []*model.Reservation{}, nil
}

func (m *mockReservationRepository) FindBlockingByCabin(ctx context.Context, cabinID string, start, end time.Time) ([]*model.Reservation, error) {
	if m.findBlockingFunc != nil {
		return m.findBlockingFunc(ctx, cabinID, start, end)
	}
	return []*model.Reservation{}, nil
}

func (m *mockReservationRepository) UpdateStatus(ctx context.Context, id string, status model.Status) (*model.Reservation, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil, reservationserrors.ErrNotFound
}

func (m *mockReservationRepository) Count(ctx context.Context, status model.Status) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, status)
	}
	return 0, nil
}

func (m *mockReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	if m.executeTransactionFunc != nil {
		return m.executeTransactionFunc(ctx, fn)
	}
	return fn(nil)
}

var _ repository.ReservationRepository = (*mockReservationRepository)(nil)

type mockLockRepository struct {
	createFunc func(ctx context.Context, lock *model.ReservationLock) (*model.ReservationLock, error)
	deleted    []string
}

func (m *mockLockRepository) Create(ctx context.Context, lock *model.ReservationLock) (*model.ReservationLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockLockRepository) Delete(ctx context.Context, lockID string) error {
	m.deleted = append(m.deleted, lockID)
	return nil
}

var _ repository.ReservationLockRepository = (*mockLockRepository)(nil)

type mockCabinRepository struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Cabin, error)
}

func (m *mockCabinRepository) Create(ctx context.Context, cabin *model.Cabin) error { return nil }

func (m *mockCabinRepository) FindByID(ctx context.Context, id string) (*model.Cabin, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return activeCabin(), nil
}

func (m *mockCabinRepository) FindAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Cabin, error) {
	return []*model.Cabin{}, nil
}

func (m *mockCabinRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	return 0, nil
}

type mockPublisher struct {
	created       []*model.Reservation
	statusChanged []model.Status
}

func (m *mockPublisher) ReservationCreated(_ context.Context, r *model.Reservation) {
	m.created = append(m.created, r)
}

func (m *mockPublisher) ReservationStatusChanged(_ context.Context, r *model.Reservation, previous model.Status) {
	m.statusChanged = append(m.statusChanged, previous)
}

func (m *mockPublisher) Close() error { return nil }

// Helpers

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		LockTTL:      10 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func activeCabin() *model.Cabin {
	return &model.Cabin{
		ID:       cabinID,
		Name:     "Refugio del Bosque",
		Capacity: 4,
		Price:    120,
		IsActive: true,
	}
}

func futureDate(days int) string {
	return calendar.Today().AddDate(0, 0, days).Format("2006-01-02")
}

func validRequest() model.BookingRequest {
	return model.BookingRequest{
		CabinID:        cabinID,
		StartDate:      futureDate(5),
		EndDate:        futureDate(8),
		GuestName:      "Ana Rojas",
		GuestEmail:     "ana@example.com",
		GuestPhone:     "+56912345678",
		NumberOfGuests: 2,
	}
}

func newTestService(
	repo *mockReservationRepository,
	lockRepo *mockLockRepository,
	cabinRepo *mockCabinRepository,
	publisher *mockPublisher,
) ReservationService {
	cfg := testConfig()
	return NewReservationService(
		repo,
		lockRepo,
		cabinRepo,
		validator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
}

// Tests

func TestCreate_Success(t *testing.T) {
	repo := &mockReservationRepository{}
	lockRepo := &mockLockRepository{}
	publisher := &mockPublisher{}
	svc := newTestService(repo, lockRepo, &mockCabinRepository{}, publisher)

	reservation, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reservation.ID == "" {
		t.Error("expected reservation ID to be set")
	}
	if reservation.Status != model.StatusPending {
		t.Errorf("expected PENDING, got %s", reservation.Status)
	}
	if reservation.TotalPrice != 360 {
		t.Errorf("expected total price 360, got %v", reservation.TotalPrice)
	}
	if len(publisher.created) != 1 {
		t.Errorf("expected 1 created event, got %d", len(publisher.created))
	}
	if len(lockRepo.deleted) != 1 {
		t.Errorf("expected lock to be released once, got %d", len(lockRepo.deleted))
	}
}

func TestCreate_ConflictDetectedInsideTransaction(t *testing.T) {
	inserted := false
	repo := &mockReservationRepository{
		createFunc: func(ctx context.Context, r *model.Reservation) error {
			inserted = true
			return nil
		},
		findBlockingFunc: func(ctx context.Context, cabinID string, start, end time.Time) ([]*model.Reservation, error) {
			return []*model.Reservation{
				{CabinID: cabinID, StartDate: start, EndDate: end, Status: model.StatusPending},
			}, nil
		},
	}
	lockRepo := &mockLockRepository{}
	publisher := &mockPublisher{}
	svc := newTestService(repo, lockRepo, &mockCabinRepository{}, publisher)

	_, err := svc.Create(context.Background(), validRequest())
	if !apperrors.IsCode(err, apperrors.CodeDateConflict) {
		t.Fatalf("expected %s, got %v", apperrors.CodeDateConflict, err)
	}
	if inserted {
		t.Error("reservation must not be inserted when the re-check finds a conflict")
	}
	if len(publisher.created) != 0 {
		t.Error("no event must be published for a rejected submission")
	}
	if len(lockRepo.deleted) != 1 {
		t.Error("lock must be released even when the transaction fails")
	}
}

func TestCreate_LockAlreadyHeld(t *testing.T) {
	lockRepo := &mockLockRepository{
		createFunc: func(ctx context.Context, lock *model.ReservationLock) (*model.ReservationLock, error) {
			return nil, mongo.WriteException{
				WriteErrors: mongo.WriteErrors{{Code: 11000}},
			}
		},
	}
	svc := newTestService(&mockReservationRepository{}, lockRepo, &mockCabinRepository{}, &mockPublisher{})

	_, err := svc.Create(context.Background(), validRequest())
	if !apperrors.IsCode(err, apperrors.CodeDateConflict) {
		t.Fatalf("expected %s when the cabin lock is held, got %v", apperrors.CodeDateConflict, err)
	}
}

func TestCreate_ValidationFailuresDoNotTouchLock(t *testing.T) {
	lockAcquired := false
	lockRepo := &mockLockRepository{
		createFunc: func(ctx context.Context, lock *model.ReservationLock) (*model.ReservationLock, error) {
			lockAcquired = true
			return lock, nil
		},
	}
	cabinRepo := &mockCabinRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Cabin, error) {
			cabin := activeCabin()
			cabin.IsActive = false
			return cabin, nil
		},
	}
	svc := newTestService(&mockReservationRepository{}, lockRepo, cabinRepo, &mockPublisher{})

	_, err := svc.Create(context.Background(), validRequest())
	if !apperrors.IsCode(err, apperrors.CodeUnitUnavailable) {
		t.Fatalf("expected %s, got %v", apperrors.CodeUnitUnavailable, err)
	}
	if lockAcquired {
		t.Error("lock must not be acquired for submissions that fail validation")
	}
}

func TestUpdateStatus_Success(t *testing.T) {
	pending := &model.Reservation{
		ID:      "66f000000000000000000001",
		CabinID: cabinID,
		Status:  model.StatusPending,
	}
	repo := &mockReservationRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Reservation, error) {
			return pending, nil
		},
		updateStatusFunc: func(ctx context.Context, id string, status model.Status) (*model.Reservation, error) {
			updated := *pending
			updated.Status = status
			return &updated, nil
		},
	}
	publisher := &mockPublisher{}
	svc := newTestService(repo, &mockLockRepository{}, &mockCabinRepository{}, publisher)

	updated, err := svc.UpdateStatus(context.Background(), pending.ID, model.StatusUpdate{Status: model.StatusConfirmed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Status != model.StatusConfirmed {
		t.Errorf("expected CONFIRMED, got %s", updated.Status)
	}
	if len(publisher.statusChanged) != 1 || publisher.statusChanged[0] != model.StatusPending {
		t.Errorf("expected status changed event with previous PENDING, got %v", publisher.statusChanged)
	}
}

func TestUpdateStatus_TerminalReservationRejected(t *testing.T) {
	updateCalled := false
	repo := &mockReservationRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Reservation, error) {
			return &model.Reservation{ID: id, Status: model.StatusConfirmed}, nil
		},
		updateStatusFunc: func(ctx context.Context, id string, status model.Status) (*model.Reservation, error) {
			updateCalled = true
			return nil, nil
		},
	}
	publisher := &mockPublisher{}
	svc := newTestService(repo, &mockLockRepository{}, &mockCabinRepository{}, publisher)

	_, err := svc.UpdateStatus(context.Background(), "66f000000000000000000001", model.StatusUpdate{Status: model.StatusCancelled})
	if !apperrors.IsCode(err, apperrors.CodeInvalidTransition) {
		t.Fatalf("expected %s, got %v", apperrors.CodeInvalidTransition, err)
	}
	if updateCalled {
		t.Error("repository update must not run for an invalid transition")
	}
	if len(publisher.statusChanged) != 0 {
		t.Error("no event must be published for a rejected transition")
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc := newTestService(&mockReservationRepository{}, &mockLockRepository{}, &mockCabinRepository{}, &mockPublisher{})

	_, err := svc.UpdateStatus(context.Background(), "66f000000000000000000009", model.StatusUpdate{Status: model.StatusConfirmed})
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected %s, got %v", apperrors.CodeNotFound, err)
	}
}

func TestGetAll_InvalidStatusFilter(t *testing.T) {
	svc := newTestService(&mockReservationRepository{}, &mockLockRepository{}, &mockCabinRepository{}, &mockPublisher{})

	_, _, err := svc.GetAll(context.Background(), model.Status("ARCHIVED"), 10, 0)
	if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected %s, got %v", apperrors.CodeInvalidInput, err)
	}
}

func TestGetAll_ReturnsCountAndPage(t *testing.T) {
	repo := &mockReservationRepository{
		countFunc: func(ctx context.Context, status model.Status) (int64, error) {
			return 42, nil
		},
		findAllFunc: func(ctx context.Context, status model.Status, limit int, offset int64) ([]*model.Reservation, error) {
			return []*model.Reservation{{ID: "66f000000000000000000001"}}, nil
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, &mockCabinRepository{}, &mockPublisher{})

	reservations, count, err := svc.GetAll(context.Background(), model.StatusPending, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 42 {
		t.Errorf("expected count 42, got %d", count)
	}
	if len(reservations) != 1 {
		t.Errorf("expected 1 reservation, got %d", len(reservations))
	}
}

func TestCheckAvailability(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		svc := newTestService(&mockReservationRepository{}, &mockLockRepository{}, &mockCabinRepository{}, &mockPublisher{})

		result, err := svc.CheckAvailability(context.Background(), cabinID, futureDate(5), futureDate(8))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Available {
			t.Error("expected available")
		}
	})

	t.Run("blocked", func(t *testing.T) {
		repo := &mockReservationRepository{
			findBlockingFunc: func(ctx context.Context, cabinID string, start, end time.Time) ([]*model.Reservation, error) {
				return []*model.Reservation{{CabinID: cabinID, Status: model.StatusConfirmed}}, nil
			},
		}
		svc := newTestService(repo, &mockLockRepository{}, &mockCabinRepository{}, &mockPublisher{})

		result, err := svc.CheckAvailability(context.Background(), cabinID, futureDate(5), futureDate(8))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Available {
			t.Error("expected unavailable")
		}
	})

	t.Run("unknown cabin", func(t *testing.T) {
		cabinRepo := &mockCabinRepository{
			findByIDFunc: func(ctx context.Context, id string) (*model.Cabin, error) {
				return nil, cabinserrors.ErrNotFound
			},
		}
		svc := newTestService(&mockReservationRepository{}, &mockLockRepository{}, cabinRepo, &mockPublisher{})

		_, err := svc.CheckAvailability(context.Background(), cabinID, futureDate(5), futureDate(8))
		if !apperrors.IsCode(err, apperrors.CodeUnitUnavailable) {
			t.Errorf("expected %s, got %v", apperrors.CodeUnitUnavailable, err)
		}
	})
}

func TestMonthView(t *testing.T) {
	start := calendar.Today().AddDate(0, 1, 0)
	year, month := start.Year(), start.Month()

	repo := &mockReservationRepository{
		findByCabinFunc: func(ctx context.Context, id string) ([]*model.Reservation, error) {
			return []*model.Reservation{
				{
					CabinID:   cabinID,
					StartDate: time.Date(year, month, 10, 0, 0, 0, 0, time.UTC),
					EndDate:   time.Date(year, month, 12, 0, 0, 0, 0, time.UTC),
					Status:    model.StatusConfirmed,
				},
			}, nil
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, &mockCabinRepository{}, &mockPublisher{})

	sel := availability.Selection{
		Start: time.Date(year, month, 20, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, month, 22, 0, 0, 0, 0, time.UTC),
	}

	days, err := svc.MonthView(context.Background(), cabinID, year, month, sel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if len(days) != daysInMonth {
		t.Fatalf("expected %d days, got %d", daysInMonth, len(days))
	}

	for _, d := range days {
		switch d.Date {
		case time.Date(year, month, 10, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			time.Date(year, month, 11, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			time.Date(year, month, 12, 0, 0, 0, 0, time.UTC).Format("2006-01-02"):
			if d.Status != model.DateConfirmed {
				t.Errorf("day %s: expected confirmed, got %s", d.Date, d.Status)
			}
			if d.Selectable {
				t.Errorf("day %s: confirmed day must not be selectable", d.Date)
			}
		case time.Date(year, month, 20, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			time.Date(year, month, 21, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			time.Date(year, month, 22, 0, 0, 0, 0, time.UTC).Format("2006-01-02"):
			if d.Status != model.DateSelected {
				t.Errorf("day %s: expected selected, got %s", d.Date, d.Status)
			}
			if d.Selectable {
				t.Errorf("day %s: day inside the tentative selection must not be selectable", d.Date)
			}
		}
	}
}
