package resources

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	Create(ctx context.Context, res *domain.FacilityResource) (*domain.FacilityResource, error)
	GetByID(ctx context.Context, id string) (*domain.FacilityResource, error)
	GetAll(ctx context.Context) ([]*domain.FacilityResource, error)
	Update(ctx context.Context, res *domain.FacilityResource) (*domain.FacilityResource, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
