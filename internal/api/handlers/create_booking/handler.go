package create_booking

import (
	"errors"
	"net/http"

	"github.com/intunemindset/IM-BookingService/internal/api/handlers"
	confirmBooking "github.com/intunemindset/IM-BookingService/internal/usecase/confirm_booking"
)

const (
	msgInvalidBody          = "invalid request body"
	msgInvalidDate          = "invalid date format, expected YYYY-MM-DD"
	msgPractitionerNotFound = "practitioner not found"
	msgBookingNotFound      = "booking not found"
	msgSlotTaken            = "this time slot has just been taken, please choose another"
	msgInvalidInput         = "invalid booking details"
	msgPaymentRetryable     = "payment could not be completed, please try again"
	msgStorageUnavailable   = "booking could not be saved, please try again"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrPractitionerNotFound):
			h.logger.Warn("POST /bookings - Practitioner not found: practitioner_id=%s", req.PractitionerID)
			handlers.RespondNotFound(w, msgPractitionerNotFound)

		case errors.Is(err, confirmBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings - Booking not found for retry: booking_id=%s", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, confirmBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: practitioner_id=%s, date=%s, time=%s",
				req.PractitionerID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, confirmBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, confirmBooking.ErrPaymentRetryable):
			// Запись осталась pending: в теле отдается ее bookingId,
			// повторный запрос с ним переиспользует запись
			retry := PaymentRetryResponse{Error: msgPaymentRetryable}
			if result != nil {
				retry.BookingID = result.BookingID
			}
			h.logger.Error("POST /bookings - Retryable payment failure: booking_id=%s: %v", retry.BookingID, err)
			handlers.RespondJSON(w, http.StatusBadGateway, retry)

		case errors.Is(err, confirmBooking.ErrPersistence):
			h.logger.Error("POST /bookings - Storage failure: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: practitioner_id=%s, error=%v",
				req.PractitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking processed: booking_id=%s, outcome=%s",
		result.BookingID, result.Outcome)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
