package resources

import (
	"context"
	"errors"
	"fmt"

	resourceRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-FacilityService/internal/service/resources/models"
)

// Service сервис реестра ресурсов
type Service struct {
	resourceRepo ResourceRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса ресурсов
func NewService(resourceRepo ResourceRepository, logger Logger) *Service {
	return &Service{
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

// List получает все ресурсы реестра
func (s *Service) List(ctx context.Context) (*models.ResourceListResponse, error) {
	s.logger.Info("List: fetching all resources")

	resources, err := s.resourceRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d resources", len(resources))
	return models.FromDomainResourceList(resources), nil
}

// Upsert создает или обновляет ресурс
// Без ID создается новый ресурс, с ID обновляется существующий.
// Удаление ресурсов не поддерживается
func (s *Service) Upsert(ctx context.Context, req *models.UpsertResourceRequest) (*models.ResourceResponse, error) {
	if err := req.Validate(); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	res := req.ToDomainResource()

	// Обновление существующего ресурса
	if res.ID != "" {
		s.logger.Info("Upsert: updating resource id=%s", res.ID)

		updated, err := s.resourceRepo.Update(ctx, res)
		if err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				s.logger.Warn("Upsert: resource id=%s not found", res.ID)
				return nil, ErrResourceNotFound
			}
			s.logger.Error("Upsert: repository error for resource id=%s: %v", res.ID, err)
			return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Upsert: successfully updated resource id=%s", updated.ID)
		return models.FromDomainResource(updated), nil
	}

	// Создание нового ресурса
	s.logger.Info("Upsert: creating resource name=%s", res.Name)

	created, err := s.resourceRepo.Create(ctx, res)
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully created resource id=%s", created.ID)
	return models.FromDomainResource(created), nil
}
