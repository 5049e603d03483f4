package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const uniqueViolationCode = "23505"

var bookingColumns = []string{
	"reference",
	"customer_name",
	"customer_email",
	"customer_phone",
	"travelers",
	"trip_ref",
	"start_date",
	"end_date",
	"base_amount",
	"discount_amount",
	"service_fee",
	"final_amount",
	"currency",
	"total_paid",
	"payment_status",
	"status",
	"source_channel",
	"appointment_ref",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями и их платежами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"customer_name",
			"customer_email",
			"customer_phone",
			"travelers",
			"trip_ref",
			"start_date",
			"end_date",
			"base_amount",
			"discount_amount",
			"service_fee",
			"final_amount",
			"currency",
			"total_paid",
			"payment_status",
			"status",
			"source_channel",
			"appointment_ref",
		).
		Values(
			booking.Reference,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.Travelers,
			booking.TripRef,
			booking.StartDate,
			booking.EndDate,
			booking.Pricing.BaseAmount,
			booking.Pricing.DiscountAmount,
			booking.Pricing.ServiceFee,
			booking.Pricing.FinalAmount,
			booking.Pricing.Currency,
			booking.TotalPaid,
			booking.PaymentStatus,
			booking.Status,
			booking.SourceChannel,
			booking.AppointmentRef,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return nil, ErrDuplicateReference
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByReference получает бронирование по reference коду
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"reference": reference})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает список бронирований с фильтрацией
// По умолчанию отменённые бронирования исключаются
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("created_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.BookingCancelled)})
	}

	if filter.TripRef != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"trip_ref": *filter.TripRef})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"end_date": *filter.EndDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateStatus обновляет статус бронирования при условии, что сохранённый
// статус совпадает с ожидаемым (optimistic concurrency)
func (r *Repository) UpdateStatus(ctx context.Context, reference string, expected, next domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", next).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reference": reference, "status": expected}).
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
		return ErrStaleStatus
	}

	return nil
}

// AddPayment добавляет запись в журнал платежей бронирования
// Журнал append-only: записи никогда не редактируются и не удаляются
func (r *Repository) AddPayment(ctx context.Context, payment *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_payments").
		Columns(
			"booking_ref",
			"amount",
			"method",
			"transaction_id",
			"note",
		).
		Values(
			payment.BookingRef,
			payment.Amount,
			payment.Method,
			payment.TransactionID,
			payment.Note,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddPayment - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&payment.ID, &createdAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return nil, ErrDuplicateTransaction
		}
		return nil, fmt.Errorf("%w: AddPayment - execute insert: %v", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time

	return payment, nil
}

// GetPaymentByTransactionID получает платёж по transaction_id
// Используется для идемпотентности записи платежей
func (r *Repository) GetPaymentByTransactionID(ctx context.Context, bookingRef, transactionID string) (*domain.PaymentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_ref",
		"amount",
		"method",
		"transaction_id",
		"note",
		"created_at",
	).
		From("booking_payments").
		Where(squirrel.Eq{"booking_ref": bookingRef, "transaction_id": transactionID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPaymentByTransactionID - build select query: %v", ErrBuildQuery, err)
	}

	payment, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPaymentByTransactionID - scan payment: %v", ErrScanRow, err)
	}

	return payment, nil
}

// ListPayments получает журнал платежей бронирования в порядке записи
func (r *Repository) ListPayments(ctx context.Context, bookingRef string) ([]*domain.PaymentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_ref",
		"amount",
		"method",
		"transaction_id",
		"note",
		"created_at",
	).
		From("booking_payments").
		Where(squirrel.Eq{"booking_ref": bookingRef}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListPayments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPayments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.PaymentRecord, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPayments - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPayments - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}

// UpdatePaymentTotals обновляет денормализованные суммы платежей бронирования
// Вызывается в одной транзакции с AddPayment
func (r *Repository) UpdatePaymentTotals(ctx context.Context, reference string, totalPaid float64, status domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("total_paid", totalPaid).
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reference": reference}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentTotals - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentTotals - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentTotals - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку результата в доменную модель
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.Reference,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.Travelers,
		&booking.TripRef,
		&booking.StartDate,
		&booking.EndDate,
		&booking.Pricing.BaseAmount,
		&booking.Pricing.DiscountAmount,
		&booking.Pricing.ServiceFee,
		&booking.Pricing.FinalAmount,
		&booking.Pricing.Currency,
		&booking.TotalPaid,
		&booking.PaymentStatus,
		&booking.Status,
		&booking.SourceChannel,
		&booking.AppointmentRef,
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

// scanPayment сканирует строку результата в запись платежа
func scanPayment(row rowScanner) (*domain.PaymentRecord, error) {
	var payment domain.PaymentRecord
	var createdAt sql.NullTime

	err := row.Scan(
		&payment.ID,
		&payment.BookingRef,
		&payment.Amount,
		&payment.Method,
		&payment.TransactionID,
		&payment.Note,
		&createdAt,
	)

	if err != nil {
		return nil, err
	}

	payment.CreatedAt = createdAt.Time

	return &payment, nil
}
