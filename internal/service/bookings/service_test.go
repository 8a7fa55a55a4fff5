package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intunemindset/IM-BookingService/internal/domain"
	bookingRepo "github.com/intunemindset/IM-BookingService/internal/infra/storage/booking"
	"github.com/intunemindset/IM-BookingService/internal/service/bookings/models"
	"github.com/intunemindset/IM-BookingService/pkg/ptr"
	"github.com/intunemindset/IM-BookingService/pkg/types"
)

type fakeRepo struct {
	bookings map[string]*domain.Booking

	updateStatusErr error
	updatedID       string
	updatedStatus   domain.PaymentStatus

	filterResult []*domain.Booking
	gotFilter    domain.PractitionerBookingsFilter
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	if b, ok := f.bookings[id]; ok {
		found := *b
		return &found, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeRepo) GetTakenTimes(_ context.Context, _ string, _ time.Time) ([]types.TimeLabel, error) {
	return nil, nil
}

func (f *fakeRepo) GetByPractitionerWithFilter(_ context.Context, filter domain.PractitionerBookingsFilter) ([]*domain.Booking, error) {
	f.gotFilter = filter
	return f.filterResult, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, status domain.PaymentStatus) error {
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedID = id
	f.updatedStatus = status
	f.bookings[id].Status = status
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testPractitioners = domain.Practitioners{
	{ID: "sandra", Name: "Sandra"},
	{ID: "brett", Name: "Brett"},
}

const testID = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, testPractitioners, noopLogger{})
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:           testID,
		Practitioner: "sandra",
		BookingDate:  time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		BookingTime:  "10:00 AM",
		Status:       domain.StatusPending,
	}
}

func TestFinishPaymentReturn_SuccessConfirms(t *testing.T) {
	repo := &fakeRepo{bookings: map[string]*domain.Booking{testID: pendingBooking()}}
	svc := newTestService(repo)

	resp, err := svc.FinishPaymentReturn(context.Background(), testID, ReturnSuccess)
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus)
}

func TestFinishPaymentReturn_SuccessIsIdempotent(t *testing.T) {
	confirmed := pendingBooking()
	confirmed.Status = domain.StatusConfirmed
	repo := &fakeRepo{bookings: map[string]*domain.Booking{testID: confirmed}}
	svc := newTestService(repo)

	resp, err := svc.FinishPaymentReturn(context.Background(), testID, ReturnSuccess)
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	// Повторный заход не пишет в хранилище
	assert.Empty(t, repo.updatedID)
}

func TestFinishPaymentReturn_CancelledStaysPending(t *testing.T) {
	repo := &fakeRepo{bookings: map[string]*domain.Booking{testID: pendingBooking()}}
	svc := newTestService(repo)

	resp, err := svc.FinishPaymentReturn(context.Background(), testID, ReturnCancelled)
	require.NoError(t, err)

	// Отказ от оплаты - не отмена бронирования: ячейка остается за клиентом
	assert.Equal(t, "pending", resp.Status)
	assert.Empty(t, repo.updatedID)
}

func TestFinishPaymentReturn_UnknownBooking(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.FinishPaymentReturn(context.Background(), testID, ReturnSuccess)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel(t *testing.T) {
	repo := &fakeRepo{bookings: map[string]*domain.Booking{testID: pendingBooking()}}
	svc := newTestService(repo)

	require.NoError(t, svc.Cancel(context.Background(), testID))
	assert.Equal(t, domain.StatusCancelled, repo.updatedStatus)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	cancelled := pendingBooking()
	cancelled.Status = domain.StatusCancelled
	repo := &fakeRepo{bookings: map[string]*domain.Booking{testID: cancelled}}
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), testID)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	err := svc.Cancel(context.Background(), testID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetPractitionerBookings_FilterConversion(t *testing.T) {
	repo := &fakeRepo{filterResult: []*domain.Booking{pendingBooking()}}
	svc := newTestService(repo)

	resp, err := svc.GetPractitionerBookings(context.Background(), &models.GetPractitionerBookingsRequest{
		PractitionerID: "sandra",
		Date:           ptr.Ptr(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)),
		Status:         ptr.Ptr("pending"),
	})
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "sandra", repo.gotFilter.PractitionerID)
	require.NotNil(t, repo.gotFilter.Status)
	assert.Equal(t, domain.StatusPending, *repo.gotFilter.Status)
}

func TestGetPractitionerBookings_UnknownPractitioner(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.GetPractitionerBookings(context.Background(), &models.GetPractitionerBookingsRequest{
		PractitionerID: "nobody",
	})
	assert.ErrorIs(t, err, ErrPractitionerNotFound)
}

func TestGetPractitionerBookings_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.GetPractitionerBookings(context.Background(), &models.GetPractitionerBookingsRequest{
		PractitionerID: "sandra",
		Status:         ptr.Ptr("paid"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID(t *testing.T) {
	repo := &fakeRepo{bookings: map[string]*domain.Booking{testID: pendingBooking()}}
	svc := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), testID)
	require.NoError(t, err)

	assert.Equal(t, testID, resp.ID)
	assert.Equal(t, "10:00 AM", resp.BookingTime)
	assert.Equal(t, "2026-03-09", resp.BookingDate)
}
