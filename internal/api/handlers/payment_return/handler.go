package payment_return

import (
	"errors"
	"net/http"

	"github.com/intunemindset/IM-BookingService/internal/api/handlers"
	bookingsService "github.com/intunemindset/IM-BookingService/internal/service/bookings"
)

const (
	// Query-параметры совпадают с return/cancel ссылками платежного ордера
	paramSuccess   = "booking_success"
	paramCancelled = "booking_cancelled"

	msgMissingBookingID = "booking reference is missing"
	msgBookingNotFound  = "booking not found"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/payments/return
// Query params: booking_success=<id> или booking_cancelled=<id>
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	bookingID := query.Get(paramSuccess)
	kind := bookingsService.ReturnSuccess
	if bookingID == "" {
		bookingID = query.Get(paramCancelled)
		kind = bookingsService.ReturnCancelled
	}

	if bookingID == "" {
		h.logger.Warn("GET /payments/return - Missing booking reference")
		handlers.RespondBadRequest(w, msgMissingBookingID)
		return
	}

	result, err := h.service.FinishPaymentReturn(r.Context(), bookingID, kind)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("GET /payments/return - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("GET /payments/return - Failed to process return: booking_id=%s, kind=%s, error=%v",
				bookingID, kind, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /payments/return - Return processed: booking_id=%s, kind=%s, status=%s",
		bookingID, kind, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
