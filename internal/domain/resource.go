package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-FacilityService/pkg/types"
)

// ResourceType represents the kind of a bookable facility resource
type ResourceType string

const (
	TypeMeetingRoom ResourceType = "meeting_room"
	TypeLab         ResourceType = "lab"
	TypeEquipment   ResourceType = "equipment"
	TypeOther       ResourceType = "other"
)

// IsValid returns true if the resource type is one of the known values
func (t ResourceType) IsValid() bool {
	switch t {
	case TypeMeetingRoom, TypeLab, TypeEquipment, TypeOther:
		return true
	default:
		return false
	}
}

// AvailabilitySlot еженедельное окно доступности ресурса
// Времена задаются как локальные часы в формате "HH:MM"
type AvailabilitySlot struct {
	DayOfWeek string           `json:"dayOfWeek"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// FacilityResource represents a bookable resource (room, lab, equipment)
type FacilityResource struct {
	ID          string
	Type        ResourceType
	Name        string
	Location    *string
	Capacity    *int
	Description *string
	Tags        []string

	// Еженедельные окна доступности. Окна одного дня могут пересекаться -
	// при подсчёте доступных часов пересечения не дедуплицируются
	Availability []AvailabilitySlot

	ApprovalPolicy *ApprovalPolicy

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequiresApproval returns true if bookings of this resource go through manual review
func (r *FacilityResource) RequiresApproval() bool {
	return r.ApprovalPolicy != nil && r.ApprovalPolicy.RequiresApproval
}

// ApprovalPolicy per-resource configuration of the booking approval workflow
type ApprovalPolicy struct {
	RequiresApproval         bool     `json:"requiresApproval"`
	ApproverEmails           []string `json:"approverEmails,omitempty"`
	AutoApproveDurationHours *float64 `json:"autoApproveDurationHours,omitempty"`
	AutoApproveEmails        []string `json:"autoApproveEmails,omitempty"`
}

// Допуск при сравнении длительности с порогом автоподтверждения
// Длительность ровно на границе порога должна проходить проверку,
// но превышение даже на микросекунду - уже нет
const autoApproveEpsilon = 1e-12

// Normalize приводит списки email к нижнему регистру
func (p *ApprovalPolicy) Normalize() {
	for i, email := range p.ApproverEmails {
		p.ApproverEmails[i] = strings.ToLower(strings.TrimSpace(email))
	}
	for i, email := range p.AutoApproveEmails {
		p.AutoApproveEmails[i] = strings.ToLower(strings.TrimSpace(email))
	}
}

// CanReview проверяет, что актор имеет право рассматривать заявки по этой политике
// Если список approverEmails пуст, ограничений нет
func (p *ApprovalPolicy) CanReview(email string) bool {
	if len(p.ApproverEmails) == 0 {
		return true
	}
	return containsEmail(p.ApproverEmails, email)
}

// AllowsAutoApprove проверяет условия автоподтверждения бронирования:
// email актора в списке autoApproveEmails ИЛИ длительность не превышает
// autoApproveDurationHours (включительно)
func (p *ApprovalPolicy) AllowsAutoApprove(durationHours float64, email string) bool {
	if containsEmail(p.AutoApproveEmails, email) {
		return true
	}
	if p.AutoApproveDurationHours != nil && durationHours <= *p.AutoApproveDurationHours+autoApproveEpsilon {
		return true
	}
	return false
}

func containsEmail(list []string, email string) bool {
	if email == "" {
		return false
	}
	normalized := strings.ToLower(strings.TrimSpace(email))
	for _, item := range list {
		if item == normalized {
			return true
		}
	}
	return false
}
