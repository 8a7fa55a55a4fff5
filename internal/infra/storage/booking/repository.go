package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/intunemindset/IM-BookingService/internal/domain"
	"github.com/intunemindset/IM-BookingService/pkg/dbmetrics"
	"github.com/intunemindset/IM-BookingService/pkg/psqlbuilder"
	"github.com/intunemindset/IM-BookingService/pkg/types"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = pq.ErrorCode("23505")

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование со статусом из booking.Status
// ID генерируется на стороне клиента (UUID), если не задан.
// Если в контексте передана активная транзакция, использует её.
//
// Нарушение частичного уникального индекса (ячейка занята неотмененным
// бронированием) возвращается как ErrSlotTaken - это единственный
// надежный механизм разрешения гонки между чтением доступности
// и конкурентной вставкой другого пользователя.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"practitioner",
			"booking_date",
			"booking_time",
			"customer_name",
			"customer_email",
			"customer_phone",
			"customer_address",
			"amount",
			"currency",
			"payment_status",
		).
		Values(
			booking.ID,
			booking.Practitioner,
			booking.BookingDate,
			booking.BookingTime,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.CustomerAddress,
			booking.Amount,
			booking.Currency,
			booking.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookingColumns().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetTakenTimes получает подписи занятых слотов практикующего на дату
// Занятыми считаются только неотмененные бронирования.
// Если вызов происходит внутри транзакции, строки блокируются (FOR UPDATE) -
// используется usecase'ом создания бронирования
func (r *Repository) GetTakenTimes(ctx context.Context, practitionerID string, date time.Time) ([]types.TimeLabel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("booking_time").
		From("bookings").
		Where(squirrel.Eq{"practitioner": practitionerID}).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.NotEq{"payment_status": domain.InactiveStatuses}).
		OrderBy("booking_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTakenTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTakenTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	taken := make([]types.TimeLabel, 0)
	for rows.Next() {
		var label types.TimeLabel
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("%w: GetTakenTimes - scan booking_time: %v", ErrScanRow, err)
		}
		taken = append(taken, label)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTakenTimes - rows error: %v", ErrScanRow, err)
	}

	return taken, nil
}

// GetByPractitionerWithFilter получает бронирования практикующего с фильтрацией
// Поддерживает фильтрацию по дате, статусу и включению отмененных записей
func (r *Repository) GetByPractitionerWithFilter(ctx context.Context, filter domain.PractitionerBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectBookingColumns().
		Where(squirrel.Eq{"practitioner": filter.PractitionerID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"payment_status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"payment_status": domain.InactiveStatuses})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date DESC, booking_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPractitionerWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPractitionerWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус оплаты бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// selectBookingColumns возвращает SELECT со всеми колонками бронирования
func selectBookingColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"practitioner",
		"booking_date",
		"booking_time",
		"customer_name",
		"customer_email",
		"customer_phone",
		"customer_address",
		"amount",
		"currency",
		"payment_status",
		"created_at",
		"updated_at",
	).From("bookings")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в доменную модель
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Practitioner,
		&booking.BookingDate,
		&booking.BookingTime,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.CustomerAddress,
		&booking.Amount,
		&booking.Currency,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// isUniqueViolation проверяет, что ошибка - нарушение уникального индекса
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
