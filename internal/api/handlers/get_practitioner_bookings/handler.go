package get_practitioner_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/intunemindset/IM-BookingService/internal/api/handlers"
	"github.com/intunemindset/IM-BookingService/internal/domain"
	bookingsService "github.com/intunemindset/IM-BookingService/internal/service/bookings"
	"github.com/intunemindset/IM-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidDate          = "invalid date format, expected YYYY-MM-DD"
	msgInvalidIncludeFlag   = "invalid includeCancelled value, expected true or false"
	msgInvalidStatus        = "invalid payment status filter"
	msgPractitionerNotFound = "practitioner not found"
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

// Handle GET /api/v1/practitioners/{practitionerId}/bookings
// Query params: date (optional, YYYY-MM-DD), status (optional),
// includeCancelled (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	practitionerID := vars["practitionerId"]

	req := &models.GetPractitionerBookingsRequest{
		PractitionerID: practitionerID,
	}

	query := r.URL.Query()

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /practitioners/{id}/bookings - Invalid date format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	if includeStr := query.Get("includeCancelled"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			h.logger.Warn("GET /practitioners/{id}/bookings - Invalid includeCancelled value: %v", err)
			handlers.RespondBadRequest(w, msgInvalidIncludeFlag)
			return
		}
		req.IncludeCancelled = include
	}

	result, err := h.service.GetPractitionerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrPractitionerNotFound):
			h.logger.Warn("GET /practitioners/{id}/bookings - Practitioner not found: practitioner_id=%s", practitionerID)
			handlers.RespondNotFound(w, msgPractitionerNotFound)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /practitioners/{id}/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /practitioners/{id}/bookings - Failed to get bookings: practitioner_id=%s, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /practitioners/{id}/bookings - Bookings retrieved successfully: practitioner_id=%s, count=%d",
		practitionerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
