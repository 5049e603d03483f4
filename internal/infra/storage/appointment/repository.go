package appointment

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

var appointmentColumns = []string{
	"reference",
	"customer_name",
	"customer_email",
	"customer_phone",
	"travelers",
	"trip_ref",
	"preferred_date",
	"preferred_time",
	"estimated_price",
	"status",
	"source_channel",
	"converted_booking_ref",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заявками на консультацию
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку
func (r *Repository) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"reference",
			"customer_name",
			"customer_email",
			"customer_phone",
			"travelers",
			"trip_ref",
			"preferred_date",
			"preferred_time",
			"estimated_price",
			"status",
			"source_channel",
		).
		Values(
			apt.Reference,
			apt.CustomerName,
			apt.CustomerEmail,
			apt.CustomerPhone,
			apt.Travelers,
			apt.TripRef,
			apt.PreferredDate,
			apt.PreferredTime,
			apt.EstimatedPrice,
			apt.Status,
			apt.SourceChannel,
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

	apt.CreatedAt = createdAt.Time
	apt.UpdatedAt = updatedAt.Time

	return apt, nil
}

// GetByReference получает заявку по reference коду
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы параллельные
// операции над одной заявкой выполнялись последовательно
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"reference": reference})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - build select query: %v", ErrBuildQuery, err)
	}

	apt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - scan appointment: %v", ErrScanRow, err)
	}

	return apt, nil
}

// List получает список заявок с фильтрацией по статусу, туру и каналу
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		OrderBy("created_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.TripRef != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"trip_ref": *filter.TripRef})
	}
	if filter.SourceChannel != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"source_channel": *filter.SourceChannel})
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

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		apt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, apt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// UpdateStatus обновляет статус заявки при условии, что сохранённый статус
// совпадает с ожидаемым (optimistic concurrency)
// При несовпадении возвращает ErrStaleStatus - параллельный актор успел
// изменить заявку первым
func (r *Repository) UpdateStatus(ctx context.Context, reference string, expected, next domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
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

// MarkConverted переводит заявку в статус converted и записывает ссылку
// на созданное бронирование
// Условие (status = completed AND converted_booking_ref IS NULL) гарантирует,
// что заявка конвертируется не больше одного раза
func (r *Repository) MarkConverted(ctx context.Context, reference string, bookingRef string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.AppointmentConverted).
		Set("converted_booking_ref", bookingRef).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"reference": reference,
			"status":    domain.AppointmentCompleted,
		}).
		Where("converted_booking_ref IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkConverted - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkConverted - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkConverted - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStaleStatus
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAppointment сканирует строку результата в доменную модель
func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var apt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&apt.Reference,
		&apt.CustomerName,
		&apt.CustomerEmail,
		&apt.CustomerPhone,
		&apt.Travelers,
		&apt.TripRef,
		&apt.PreferredDate,
		&apt.PreferredTime,
		&apt.EstimatedPrice,
		&apt.Status,
		&apt.SourceChannel,
		&apt.ConvertedBookingRef,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	apt.CreatedAt = createdAt.Time
	apt.UpdatedAt = updatedAt.Time

	return &apt, nil
}
