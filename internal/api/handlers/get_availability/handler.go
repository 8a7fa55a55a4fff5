package get_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/intunemindset/IM-BookingService/internal/api/handlers"
	getAvailability "github.com/intunemindset/IM-BookingService/internal/usecase/get_availability"
)

const (
	msgMissingDate            = "date is required"
	msgInvalidDate            = "invalid date format, expected YYYY-MM-DD"
	msgPractitionerNotFound   = "practitioner not found"
	msgDateNotSelectable      = "bookings are not available on the selected date"
	msgAvailabilityUnknown    = "availability is temporarily unknown, please try again"
	msgInvalidPractitionerReq = "invalid availability request"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/practitioners/{practitionerId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	practitionerID := vars["practitionerId"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /practitioners/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(practitionerID, dateStr)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrPractitionerNotFound):
			h.logger.Warn("GET /practitioners/{id}/available-slots - Practitioner not found: practitioner_id=%s", practitionerID)
			handlers.RespondNotFound(w, msgPractitionerNotFound)

		case errors.Is(err, getAvailability.ErrDateNotSelectable):
			h.logger.Warn("GET /practitioners/{id}/available-slots - Date not selectable: practitioner_id=%s, date=%s",
				practitionerID, dateStr)
			handlers.RespondBadRequest(w, msgDateNotSelectable)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /practitioners/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPractitionerReq)

		case errors.Is(err, getAvailability.ErrAvailabilityUnknown):
			// Занятость неизвестна: отдаем 503, а не пустой список свободных слотов
			h.logger.Error("GET /practitioners/{id}/available-slots - Availability unknown: practitioner_id=%s, date=%s, error=%v",
				practitionerID, dateStr, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgAvailabilityUnknown)

		default:
			h.logger.Error("GET /practitioners/{id}/available-slots - Failed to get slots: practitioner_id=%s, date=%s, error=%v",
				practitionerID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /practitioners/{id}/available-slots - Slots retrieved successfully: practitioner_id=%s, date=%s, slots_count=%d",
		practitionerID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
