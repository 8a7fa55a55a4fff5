package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intunemindset/IM-BookingService/internal/domain"
	"github.com/intunemindset/IM-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	takenTimes []types.TimeLabel
	err        error

	gotPractitionerID string
	gotDate           time.Time
}

func (f *fakeBookingRepo) GetTakenTimes(_ context.Context, practitionerID string, date time.Time) ([]types.TimeLabel, error) {
	f.gotPractitionerID = practitionerID
	f.gotDate = date
	return f.takenTimes, f.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testPractitioners = domain.Practitioners{
	{ID: "sandra", Name: "Sandra"},
	{ID: "brett", Name: "Brett"},
}

// 2026-03-09 - понедельник
var testMonday = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

func newTestUseCase(repo *fakeBookingRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, testPractitioners, time.UTC, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_AllSlotsFree(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, testMonday)

	resp, err := uc.Execute(context.Background(), &Request{PractitionerID: "sandra", Date: testMonday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 8)
	for _, slot := range resp.Slots {
		assert.False(t, slot.Taken, "slot %s must be free", slot.Label)
	}
	assert.Equal(t, "sandra", repo.gotPractitionerID)
}

func TestExecute_TakenSlotsMarked(t *testing.T) {
	repo := &fakeBookingRepo{
		takenTimes: []types.TimeLabel{"10:00 AM", "2:00 PM"},
	}
	uc := newTestUseCase(repo, testMonday)

	resp, err := uc.Execute(context.Background(), &Request{PractitionerID: "brett", Date: testMonday})
	require.NoError(t, err)

	// Полное множество возвращается всегда, занятые помечены флагом
	require.Len(t, resp.Slots, 8)

	taken := map[types.TimeLabel]bool{}
	for _, slot := range resp.Slots {
		taken[slot.Label] = slot.Taken
	}
	assert.True(t, taken["10:00 AM"])
	assert.True(t, taken["2:00 PM"])
	assert.False(t, taken["9:00 AM"])
	assert.False(t, taken["4:00 PM"])
}

func TestExecute_Idempotent(t *testing.T) {
	repo := &fakeBookingRepo{takenTimes: []types.TimeLabel{"11:00 AM"}}
	uc := newTestUseCase(repo, testMonday)

	req := &Request{PractitionerID: "sandra", Date: testMonday}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_WeekendRejected(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, testMonday)

	saturday := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{PractitionerID: "sandra", Date: saturday})
	assert.ErrorIs(t, err, ErrDateNotSelectable)

	sunday := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	_, err = uc.Execute(context.Background(), &Request{PractitionerID: "sandra", Date: sunday})
	assert.ErrorIs(t, err, ErrDateNotSelectable)

	// До хранилища дело не дошло
	assert.Empty(t, repo.gotPractitionerID)
}

func TestExecute_PastDateRejected(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, testMonday)

	friday := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{PractitionerID: "sandra", Date: friday})
	assert.ErrorIs(t, err, ErrDateNotSelectable)
}

func TestExecute_TodayIsSelectable(t *testing.T) {
	repo := &fakeBookingRepo{}
	// Запрос вечером того же дня: дата сегодняшняя, не прошедшая
	uc := newTestUseCase(repo, testMonday.Add(19*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{PractitionerID: "sandra", Date: testMonday})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 8)
}

func TestExecute_UnknownPractitioner(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, testMonday)

	_, err := uc.Execute(context.Background(), &Request{PractitionerID: "nobody", Date: testMonday})
	assert.ErrorIs(t, err, ErrPractitionerNotFound)
}

func TestExecute_StoreFailureIsUnknownAvailability(t *testing.T) {
	repo := &fakeBookingRepo{err: errors.New("connection refused")}
	uc := newTestUseCase(repo, testMonday)

	resp, err := uc.Execute(context.Background(), &Request{PractitionerID: "sandra", Date: testMonday})

	// Недоступное хранилище не должно выглядеть как свободный день
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAvailabilityUnknown)
	assert.Nil(t, resp)
}

func TestExecute_MissingInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, testMonday)

	_, err := uc.Execute(context.Background(), &Request{Date: testMonday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{PractitionerID: "sandra"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
