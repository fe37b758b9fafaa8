package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityService/pkg/psqlbuilder"
)

// bookingColumns колонки таблицы facility_bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"resource_id",
	"title",
	"description",
	"start_time",
	"end_time",
	"status",
	"created_by",
	"created_by_name",
	"created_by_email",
	"participants",
	"metadata",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её -
// создание с проверкой пересечений обязано выполняться в одной транзакции
func (r *Repository) Create(ctx context.Context, b *domain.FacilityBooking) (*domain.FacilityBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	participants, metadata, err := encodeJSONFields(b)
	if err != nil {
		return nil, err
	}

	b.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert("facility_bookings").
		Columns(
			"id",
			"resource_id",
			"title",
			"description",
			"start_time",
			"end_time",
			"status",
			"created_by",
			"created_by_name",
			"created_by_email",
			"participants",
			"metadata",
		).
		Values(
			b.ID,
			b.ResourceID,
			b.Title,
			b.Description,
			b.StartTime,
			b.EndTime,
			b.Status,
			b.CreatedBy,
			b.CreatedByName,
			b.CreatedByEmail,
			participants,
			metadata,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
// В транзакции блокирует строку (FOR UPDATE) - для read-modify-write операций
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.FacilityBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("facility_bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// FindOverlapping находит бронирования ресурса в указанных статусах,
// пересекающиеся с интервалом [start, end)
// Пересечение: existing.start_time < end AND existing.end_time > start
// В транзакции блокирует строки (FOR UPDATE) для предотвращения гонки
// при конкурентном создании бронирований одного ресурса
func (r *Repository) FindOverlapping(ctx context.Context, resourceID string, start, end time.Time, statuses []domain.BookingStatus) ([]*domain.FacilityBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("facility_bookings").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"status": statusStrings}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetWithFilter получает бронирования с гибкой фильтрацией
// Поддерживает фильтры по ресурсу, статусу и границам интервала
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.FacilityBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("facility_bookings").
		OrderBy("start_time DESC")

	if filter.ResourceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": *filter.ResourceID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartBefore != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.StartBefore})
	}
	if filter.EndAfter != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *filter.EndAfter})
	}
	if filter.Limit != nil {
		selectBuilder = selectBuilder.Limit(*filter.Limit)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Update сохраняет изменённые статус и метаданные бронирования
// Поля расписания (resource_id, start_time, end_time) неизменяемы после создания
func (r *Repository) Update(ctx context.Context, b *domain.FacilityBooking) (*domain.FacilityBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	metadata, err := json.Marshal(b.Metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: metadata: %v", ErrEncodeJSON, err)
	}

	query, args, err := psqlbuilder.Update("facility_bookings").
		Set("status", b.Status).
		Set("metadata", metadata).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в доменную модель
func scanBooking(row rowScanner) (*domain.FacilityBooking, error) {
	var b domain.FacilityBooking
	var createdAt, updatedAt sql.NullTime
	var participants, metadata []byte

	err := row.Scan(
		&b.ID,
		&b.ResourceID,
		&b.Title,
		&b.Description,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.CreatedBy,
		&b.CreatedByName,
		&b.CreatedByEmail,
		&participants,
		&metadata,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(participants) > 0 {
		if err := json.Unmarshal(participants, &b.Participants); err != nil {
			return nil, err
		}
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &b.Metadata); err != nil {
			return nil, err
		}
	}

	b.StartTime = b.StartTime.UTC()
	b.EndTime = b.EndTime.UTC()
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.FacilityBooking, error) {
	bookings := make([]*domain.FacilityBooking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// encodeJSONFields сериализует JSONB-поля бронирования
func encodeJSONFields(b *domain.FacilityBooking) (participants, metadata []byte, err error) {
	if b.Participants == nil {
		b.Participants = []string{}
	}
	participants, err = json.Marshal(b.Participants)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: participants: %v", ErrEncodeJSON, err)
	}

	metadata, err = json.Marshal(b.Metadata)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: metadata: %v", ErrEncodeJSON, err)
	}

	return participants, metadata, nil
}
