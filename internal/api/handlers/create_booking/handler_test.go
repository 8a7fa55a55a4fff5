package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	confirmBooking "github.com/intunemindset/IM-BookingService/internal/usecase/confirm_booking"
)

type fakeUseCase struct {
	resp *confirmBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(context.Context, *confirmBooking.Request) (*confirmBooking.Response, error) {
	return f.resp, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"practitionerId": "sandra",
	"date": "2026-03-09",
	"time": "10:00 AM",
	"customerName": "Alex Walker",
	"customerEmail": "alex@example.com",
	"customerPhone": "0400123456",
	"customerAddress": "12 Ocean St, Sydney"
}`

func doRequest(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, noopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &confirmBooking.Response{
		BookingID: "11111111-2222-3333-4444-555555555555",
		Outcome:   confirmBooking.OutcomeConfirmed,
	}}

	rec := doRequest(t, uc, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", resp.BookingID)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestHandle_RetryableCarriesBookingID(t *testing.T) {
	// Fallback-подтверждение не записалось: 502 несет bookingId
	// pending-записи, иначе клиенту не с чем идти на повтор
	uc := &fakeUseCase{
		resp: &confirmBooking.Response{BookingID: "11111111-2222-3333-4444-555555555555"},
		err: fmt.Errorf("%w: booking_id=%s: connection reset",
			confirmBooking.ErrPaymentRetryable, "11111111-2222-3333-4444-555555555555"),
	}

	rec := doRequest(t, uc, validBody)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp PaymentRetryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", resp.BookingID)
	assert.NotEmpty(t, resp.Error)
}

func TestHandle_SlotTakenConflict(t *testing.T) {
	uc := &fakeUseCase{err: confirmBooking.ErrSlotTaken}

	rec := doRequest(t, uc, validBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandle_PersistenceFailureIsRetryable(t *testing.T) {
	uc := &fakeUseCase{err: fmt.Errorf("%w: transaction failed: pq: could not serialize access",
		confirmBooking.ErrPersistence)}

	rec := doRequest(t, uc, validBody)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandle_InvalidDate(t *testing.T) {
	uc := &fakeUseCase{}

	rec := doRequest(t, uc, strings.Replace(validBody, "2026-03-09", "09/03/2026", 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
