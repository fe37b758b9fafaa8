package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/pkg/types"
)

var (
	// ErrInvalidType возвращается при некорректном типе ресурса
	ErrInvalidType = errors.New("invalid resource type")

	// ErrEmptyName возвращается, когда название ресурса не указано
	ErrEmptyName = errors.New("resource name is required")
)

// Request модели

// AvailabilitySlotPayload еженедельное окно доступности в запросе
type AvailabilitySlotPayload struct {
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM"
}

// ApprovalPolicyPayload политика согласования в запросе
type ApprovalPolicyPayload struct {
	RequiresApproval         bool     `json:"requiresApproval"`
	ApproverEmails           []string `json:"approverEmails,omitempty"`
	AutoApproveDurationHours *float64 `json:"autoApproveDurationHours,omitempty"`
	AutoApproveEmails        []string `json:"autoApproveEmails,omitempty"`
}

// UpsertResourceRequest запрос на создание или обновление ресурса
// ID пустой - создание, ID указан - обновление существующего ресурса
type UpsertResourceRequest struct {
	ID             *string                   `json:"id,omitempty"`
	Type           string                    `json:"type"`
	Name           string                    `json:"name"`
	Location       *string                   `json:"location,omitempty"`
	Capacity       *int                      `json:"capacity,omitempty"`
	Description    *string                   `json:"description,omitempty"`
	Tags           []string                  `json:"tags,omitempty"`
	Availability   []AvailabilitySlotPayload `json:"availability,omitempty"`
	ApprovalPolicy *ApprovalPolicyPayload    `json:"approvalPolicy,omitempty"`
}

// Validate проверяет обязательные поля запроса
func (r *UpsertResourceRequest) Validate() error {
	if r.Name == "" {
		return ErrEmptyName
	}
	if !domain.ResourceType(r.Type).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, r.Type)
	}
	return nil
}

// ToDomainResource конвертирует request в domain модель.
// Списки email политики нормализуются к нижнему регистру
func (r *UpsertResourceRequest) ToDomainResource() *domain.FacilityResource {
	res := &domain.FacilityResource{
		Type:        domain.ResourceType(r.Type),
		Name:        r.Name,
		Location:    r.Location,
		Capacity:    r.Capacity,
		Description: r.Description,
		Tags:        r.Tags,
	}

	if r.ID != nil {
		res.ID = *r.ID
	}

	for _, slot := range r.Availability {
		res.Availability = append(res.Availability, domain.AvailabilitySlot{
			DayOfWeek: slot.DayOfWeek,
			StartTime: types.TimeString(slot.StartTime),
			EndTime:   types.TimeString(slot.EndTime),
		})
	}

	if r.ApprovalPolicy != nil {
		policy := &domain.ApprovalPolicy{
			RequiresApproval:         r.ApprovalPolicy.RequiresApproval,
			ApproverEmails:           r.ApprovalPolicy.ApproverEmails,
			AutoApproveDurationHours: r.ApprovalPolicy.AutoApproveDurationHours,
			AutoApproveEmails:        r.ApprovalPolicy.AutoApproveEmails,
		}
		policy.Normalize()
		res.ApprovalPolicy = policy
	}

	return res
}

// Response модели

// ResourceResponse ответ с данными ресурса
type ResourceResponse struct {
	ID             string                    `json:"id"`
	Type           string                    `json:"type"`
	Name           string                    `json:"name"`
	Location       *string                   `json:"location,omitempty"`
	Capacity       *int                      `json:"capacity,omitempty"`
	Description    *string                   `json:"description,omitempty"`
	Tags           []string                  `json:"tags,omitempty"`
	Availability   []AvailabilitySlotPayload `json:"availability,omitempty"`
	ApprovalPolicy *ApprovalPolicyPayload    `json:"approvalPolicy,omitempty"`
	CreatedAt      time.Time                 `json:"createdAt"`
	UpdatedAt      time.Time                 `json:"updatedAt"`
}

// ResourceListResponse ответ со списком ресурсов
type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
}

// Методы конвертации

// FromDomainResource конвертирует domain модель в DTO
func FromDomainResource(res *domain.FacilityResource) *ResourceResponse {
	if res == nil {
		return nil
	}

	resp := &ResourceResponse{
		ID:          res.ID,
		Type:        string(res.Type),
		Name:        res.Name,
		Location:    res.Location,
		Capacity:    res.Capacity,
		Description: res.Description,
		Tags:        res.Tags,
		CreatedAt:   res.CreatedAt,
		UpdatedAt:   res.UpdatedAt,
	}

	for _, slot := range res.Availability {
		resp.Availability = append(resp.Availability, AvailabilitySlotPayload{
			DayOfWeek: slot.DayOfWeek,
			StartTime: string(slot.StartTime),
			EndTime:   string(slot.EndTime),
		})
	}

	if res.ApprovalPolicy != nil {
		resp.ApprovalPolicy = &ApprovalPolicyPayload{
			RequiresApproval:         res.ApprovalPolicy.RequiresApproval,
			ApproverEmails:           res.ApprovalPolicy.ApproverEmails,
			AutoApproveDurationHours: res.ApprovalPolicy.AutoApproveDurationHours,
			AutoApproveEmails:        res.ApprovalPolicy.AutoApproveEmails,
		}
	}

	return resp
}

// FromDomainResourceList конвертирует список domain моделей в DTO
func FromDomainResourceList(resources []*domain.FacilityResource) *ResourceListResponse {
	if resources == nil {
		return &ResourceListResponse{
			Resources: []ResourceResponse{},
		}
	}

	resp := &ResourceListResponse{
		Resources: make([]ResourceResponse, len(resources)),
	}

	for i, res := range resources {
		if resResp := FromDomainResource(res); resResp != nil {
			resp.Resources[i] = *resResp
		}
	}

	return resp
}
