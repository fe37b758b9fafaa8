package resource

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityService/pkg/psqlbuilder"
)

// resourceColumns колонки таблицы facility_resources в порядке сканирования
var resourceColumns = []string{
	"id",
	"type",
	"name",
	"location",
	"capacity",
	"description",
	"tags",
	"availability",
	"approval_policy",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с ресурсами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый ресурс
// Идентификатор генерируется на стороне репозитория (uuid v4)
func (r *Repository) Create(ctx context.Context, res *domain.FacilityResource) (*domain.FacilityResource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	tags, availability, policy, err := encodeJSONFields(res)
	if err != nil {
		return nil, err
	}

	res.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert("facility_resources").
		Columns(
			"id",
			"type",
			"name",
			"location",
			"capacity",
			"description",
			"tags",
			"availability",
			"approval_policy",
		).
		Values(
			res.ID,
			res.Type,
			res.Name,
			res.Location,
			res.Capacity,
			res.Description,
			tags,
			availability,
			policy,
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

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает ресурс по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.FacilityResource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(resourceColumns...).
		From("facility_resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanResource(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan resource: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetAll получает все ресурсы, отсортированные по имени
func (r *Repository) GetAll(ctx context.Context) ([]*domain.FacilityResource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(resourceColumns...).
		From("facility_resources").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	resources := make([]*domain.FacilityResource, 0)
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		resources = append(resources, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return resources, nil
}

// Update обновляет ресурс
// Удаление не поддерживается - ресурс существует, пока его явно не обновят
func (r *Repository) Update(ctx context.Context, res *domain.FacilityResource) (*domain.FacilityResource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	tags, availability, policy, err := encodeJSONFields(res)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Update("facility_resources").
		Set("type", res.Type).
		Set("name", res.Name).
		Set("location", res.Location).
		Set("capacity", res.Capacity).
		Set("description", res.Description).
		Set("tags", tags).
		Set("availability", availability).
		Set("approval_policy", policy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanResource сканирует одну строку в доменную модель
func scanResource(row rowScanner) (*domain.FacilityResource, error) {
	var res domain.FacilityResource
	var createdAt, updatedAt sql.NullTime
	var tags, availability, policy []byte

	err := row.Scan(
		&res.ID,
		&res.Type,
		&res.Name,
		&res.Location,
		&res.Capacity,
		&res.Description,
		&tags,
		&availability,
		&policy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &res.Tags); err != nil {
			return nil, err
		}
	}
	if len(availability) > 0 {
		if err := json.Unmarshal(availability, &res.Availability); err != nil {
			return nil, err
		}
	}
	if len(policy) > 0 {
		var p domain.ApprovalPolicy
		if err := json.Unmarshal(policy, &p); err != nil {
			return nil, err
		}
		res.ApprovalPolicy = &p
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// encodeJSONFields сериализует JSONB-поля ресурса
// approval_policy хранится как NULL при отсутствии политики
func encodeJSONFields(res *domain.FacilityResource) (tags, availability, policy []byte, err error) {
	if res.Tags == nil {
		res.Tags = []string{}
	}
	tags, err = json.Marshal(res.Tags)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: tags: %v", ErrEncodeJSON, err)
	}

	if res.Availability == nil {
		res.Availability = []domain.AvailabilitySlot{}
	}
	availability, err = json.Marshal(res.Availability)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: availability: %v", ErrEncodeJSON, err)
	}

	if res.ApprovalPolicy != nil {
		policy, err = json.Marshal(res.ApprovalPolicy)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: approval_policy: %v", ErrEncodeJSON, err)
		}
	}

	return tags, availability, policy, nil
}
