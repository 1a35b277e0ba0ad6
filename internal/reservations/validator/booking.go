package validator

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"refugio/internal/reservations/availability"
	"refugio/internal/reservations/pricing"
	"refugio/pkg/calendar"
	"refugio/pkg/errors"
	"refugio/pkg/logger"
	"refugio/pkg/model"
	"refugio/pkg/sanitizer"
)

const maxSpecialRequestsLen = 1000

// BookingValidator turns a raw guest submission into a persistable
// PENDING reservation, or rejects it with a single stable reason code.
// Rules run in a fixed order and the first failure wins.
type BookingValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		log:      log,
	}
}

// ValidateAndBuild checks a submission against the cabin and its
// existing reservations as of today. On success it returns the PENDING
// draft with the total price fixed at the cabin's current rate.
//
// cabin is nil when the requested cabin does not exist; existing must
// hold every reservation of that cabin regardless of status.
func (v *BookingValidator) ValidateAndBuild(
	req model.BookingRequest,
	cabin *model.Cabin,
	existing []model.Reservation,
	today time.Time,
) (model.Reservation, error) {
	req.GuestName = sanitizer.NormalizeGuestName(req.GuestName)
	req.GuestEmail = sanitizer.NormalizeEmail(req.GuestEmail)
	req.GuestPhone = sanitizer.NormalizePhone(req.GuestPhone)
	req.SpecialRequests = sanitizer.NormalizeSpecialRequests(req.SpecialRequests, maxSpecialRequestsLen)

	if err := checkRequiredFields(req); err != nil {
		return model.Reservation{}, err
	}

	start := calendar.Parse(req.StartDate, v.log)
	end := calendar.Parse(req.EndDate, v.log)

	if end.Before(start) {
		return model.Reservation{}, errors.InvalidRange("end_date must not be before start_date")
	}

	if pricing.Nights(start, end) == 0 {
		return model.Reservation{}, errors.InvalidRange("stay must cover at least one night")
	}

	if !start.After(today) {
		return model.Reservation{}, errors.PastOrTodayStart()
	}

	if cabin == nil || !cabin.IsActive {
		return model.Reservation{}, errors.UnitUnavailable(req.CabinID)
	}

	if req.NumberOfGuests < 1 || req.NumberOfGuests > cabin.Capacity {
		return model.Reservation{}, errors.CapacityExceeded(req.NumberOfGuests, cabin.Capacity)
	}

	if availability.HasConflict(start, end, cabin.ID, existing) {
		return model.Reservation{}, errors.DateConflict("requested dates overlap an existing reservation")
	}

	draft := model.Reservation{
		CabinID:         cabin.ID,
		StartDate:       start,
		EndDate:         end,
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		NumberOfGuests:  req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests,
		TotalPrice:      pricing.Total(start, end, cabin.Price),
		Status:          model.StatusPending,
		CreatedAt:       time.Now().UTC(),
	}

	if err := v.validate.Struct(&draft); err != nil {
		var validationErrs validator.ValidationErrors
		if stderrors.As(err, &validationErrs) {
			return model.Reservation{}, translateValidationErrors(validationErrs)
		}
		return model.Reservation{}, errors.Internal("reservation validation failed", err)
	}

	return draft, nil
}

// ValidateStatusUpdate checks an admin transition payload.
func (v *BookingValidator) ValidateStatusUpdate(update model.StatusUpdate) error {
	if update.Status == "" {
		return errors.MissingField("status")
	}
	if !update.Status.Valid() {
		return errors.InvalidInput("status must be one of PENDING, CONFIRMED, REJECTED, CANCELLED")
	}
	return nil
}

// checkRequiredFields rejects on the first absent field, in the order
// fields appear in the submission payload.
func checkRequiredFields(req model.BookingRequest) error {
	if req.CabinID == "" {
		return errors.MissingField("cabin_id")
	}
	if req.StartDate == "" {
		return errors.MissingField("start_date")
	}
	if req.EndDate == "" {
		return errors.MissingField("end_date")
	}
	if req.GuestName == "" {
		return errors.MissingField("guest_name")
	}
	if req.GuestEmail == "" {
		return errors.MissingField("guest_email")
	}
	if req.GuestPhone == "" {
		return errors.MissingField("guest_phone")
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) error {
	details := make(map[string]any, len(errs))
	for _, fieldErr := range errs {
		details[fieldErr.Field()] = fmt.Sprintf("failed on '%s' rule", fieldErr.Tag())
	}
	return errors.Validation("reservation payload is invalid", details)
}
