package confirm_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intunemindset/IM-BookingService/internal/domain"
	bookingRepo "github.com/intunemindset/IM-BookingService/internal/infra/storage/booking"
	"github.com/intunemindset/IM-BookingService/internal/integrations/paypal"
	"github.com/intunemindset/IM-BookingService/pkg/types"
)

type fakeRepo struct {
	takenTimes []types.TimeLabel
	existing   map[string]*domain.Booking

	createErr       error
	takenErr        error
	updateStatusErr error

	created       *domain.Booking
	updatedID     string
	updatedStatus domain.PaymentStatus
}

func (f *fakeRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *b
	created.ID = "11111111-2222-3333-4444-555555555555"
	f.created = &created
	return &created, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	if b, ok := f.existing[id]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeRepo) GetTakenTimes(_ context.Context, _ string, _ time.Time) ([]types.TimeLabel, error) {
	return f.takenTimes, f.takenErr
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, status domain.PaymentStatus) error {
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	f.updatedID = id
	f.updatedStatus = status
	return nil
}

type fakeGateway struct {
	result *paypal.OrderResult
	err    error

	gotReq *paypal.OrderRequest
}

func (f *fakeGateway) CreateOrder(_ context.Context, req *paypal.OrderRequest) (*paypal.OrderResult, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testPractitioners = domain.Practitioners{
	{ID: "sandra", Name: "Sandra", SessionPrice: 110.00, Currency: "AUD"},
	{ID: "brett", Name: "Brett", SessionPrice: 110.00, Currency: "AUD"},
}

var testMonday = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

func validRequest() *Request {
	return &Request{
		PractitionerID:  "sandra",
		Date:            testMonday,
		Time:            "10:00 AM",
		CustomerName:    "Alex Walker",
		CustomerEmail:   "alex@example.com",
		CustomerPhone:   "0400123456",
		CustomerAddress: "12 Ocean St, Sydney",
	}
}

func newTestUseCase(repo *fakeRepo, gateway *fakeGateway) *UseCase {
	return NewUseCase(repo, gateway, testPractitioners, passthroughTxManager{}, noopLogger{})
}

func TestExecute_ApprovalPathStaysPending(t *testing.T) {
	repo := &fakeRepo{}
	gateway := &fakeGateway{
		result: &paypal.OrderResult{
			OrderID:     "ORDER-1",
			ApprovalURL: "https://sandbox.paypal.com/approve/ORDER-1",
		},
	}
	uc := newTestUseCase(repo, gateway)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, OutcomeApproved, resp.Outcome)
	assert.Equal(t, "https://sandbox.paypal.com/approve/ORDER-1", resp.ApprovalURL)
	assert.NotEmpty(t, resp.BookingID)

	// Запись создана pending и не трогалась после получения ссылки
	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusPending, repo.created.Status)
	assert.Empty(t, repo.updatedID)

	// Ордер на точную сумму и с ID записи
	require.NotNil(t, gateway.gotReq)
	assert.Equal(t, "110.00", gateway.gotReq.Amount)
	assert.Equal(t, "AUD", gateway.gotReq.Currency)
	assert.Equal(t, resp.BookingID, gateway.gotReq.BookingID)
}

func TestExecute_FallbackConfirmWhenNotConfigured(t *testing.T) {
	repo := &fakeRepo{}
	gateway := &fakeGateway{err: paypal.ErrNotConfigured}
	uc := newTestUseCase(repo, gateway)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, OutcomeConfirmed, resp.Outcome)
	assert.NotEmpty(t, resp.FallbackReason)
	assert.Empty(t, resp.ApprovalURL)

	// Запись подтверждена напрямую
	assert.Equal(t, resp.BookingID, repo.updatedID)
	assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus)
}

func TestExecute_FallbackConfirmWhenProcessorFails(t *testing.T) {
	repo := &fakeRepo{}
	gateway := &fakeGateway{err: paypal.ErrUnavailable}
	uc := newTestUseCase(repo, gateway)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, OutcomeConfirmed, resp.Outcome)
	assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus)
}

func TestExecute_FallbackConfirmWhenNoApprovalURL(t *testing.T) {
	repo := &fakeRepo{}
	gateway := &fakeGateway{result: &paypal.OrderResult{OrderID: "ORDER-2"}}
	uc := newTestUseCase(repo, gateway)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, OutcomeConfirmed, resp.Outcome)
	assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus)
}

func TestExecute_RetryableWhenFallbackUpdateFails(t *testing.T) {
	repo := &fakeRepo{updateStatusErr: errors.New("connection reset")}
	gateway := &fakeGateway{err: paypal.ErrUnavailable}
	uc := newTestUseCase(repo, gateway)

	resp, err := uc.Execute(context.Background(), validRequest())

	// Запись создана и осталась pending, оплату можно повторить
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPaymentRetryable)
	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusPending, repo.created.Status)

	// ID pending-записи отдается вместе с ошибкой: повтор пойдет
	// с ним и не споткнется о собственную запись как о занятый слот
	require.NotNil(t, resp)
	assert.Equal(t, repo.created.ID, resp.BookingID)
}

type failingTxManager struct {
	err error
}

func (f failingTxManager) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return f.err
}

func TestExecute_TxManagerFailureIsPersistence(t *testing.T) {
	// Ошибка begin/commit (включая serialization conflict) приходит не из
	// callback и не несет сентинелов use case - она должна стать ErrPersistence
	uc := NewUseCase(&fakeRepo{}, &fakeGateway{}, testPractitioners,
		failingTxManager{err: errors.New("pq: could not serialize access")}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.NotErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_SlotTakenBeforeCreate(t *testing.T) {
	repo := &fakeRepo{takenTimes: []types.TimeLabel{"10:00 AM"}}
	gateway := &fakeGateway{}
	uc := newTestUseCase(repo, gateway)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, repo.created)
	assert.Nil(t, gateway.gotReq)
}

func TestExecute_SlotTakenOnUniqueViolation(t *testing.T) {
	// Гонка: проверка прошла, вставка уперлась в уникальный индекс
	repo := &fakeRepo{createErr: bookingRepo.ErrSlotTaken}
	gateway := &fakeGateway{}
	uc := newTestUseCase(repo, gateway)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, gateway.gotReq)
}

func TestExecute_RetryReusesPendingRecord(t *testing.T) {
	pending := &domain.Booking{
		ID:           "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
		Practitioner: "sandra",
		BookingDate:  testMonday,
		BookingTime:  "10:00 AM",
		Amount:       110.00,
		Currency:     "AUD",
		Status:       domain.StatusPending,
	}
	repo := &fakeRepo{existing: map[string]*domain.Booking{pending.ID: pending}}
	gateway := &fakeGateway{
		result: &paypal.OrderResult{OrderID: "ORDER-3", ApprovalURL: "https://sandbox.paypal.com/approve/ORDER-3"},
	}
	uc := newTestUseCase(repo, gateway)

	req := validRequest()
	req.BookingID = pending.ID

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, pending.ID, resp.BookingID)
	assert.Nil(t, repo.created, "retry must not create a second record")
	assert.Equal(t, pending.ID, gateway.gotReq.BookingID)
}

func TestExecute_RetryOnConfirmedIsIdempotent(t *testing.T) {
	confirmed := &domain.Booking{
		ID:     "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
		Status: domain.StatusConfirmed,
	}
	repo := &fakeRepo{existing: map[string]*domain.Booking{confirmed.ID: confirmed}}
	gateway := &fakeGateway{}
	uc := newTestUseCase(repo, gateway)

	req := validRequest()
	req.BookingID = confirmed.ID

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, OutcomeConfirmed, resp.Outcome)
	assert.Nil(t, gateway.gotReq, "no new order for an already confirmed booking")
}

func TestExecute_RetryUnknownBooking(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, &fakeGateway{})

	req := validRequest()
	req.BookingID = "99999999-8888-7777-6666-555555555555"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_UnknownPractitioner(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, &fakeGateway{})

	req := validRequest()
	req.PractitionerID = "nobody"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPractitionerNotFound)
}

func TestExecute_ValidationFailures(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, &fakeGateway{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "empty name", mutate: func(r *Request) { r.CustomerName = "   " }},
		{name: "empty email", mutate: func(r *Request) { r.CustomerEmail = "" }},
		{name: "short phone", mutate: func(r *Request) { r.CustomerPhone = "123" }},
		{name: "empty address", mutate: func(r *Request) { r.CustomerAddress = "" }},
		{name: "unknown slot", mutate: func(r *Request) { r.Time = "5:00 PM" }},
		{name: "missing date", mutate: func(r *Request) { r.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_PersistenceFailure(t *testing.T) {
	repo := &fakeRepo{takenErr: errors.New("db down")}
	uc := newTestUseCase(repo, &fakeGateway{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPersistence)
}
