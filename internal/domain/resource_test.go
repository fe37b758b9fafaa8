package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-FacilityService/pkg/ptr"
)

func TestApprovalPolicy_CanReview(t *testing.T) {
	policy := &ApprovalPolicy{
		RequiresApproval: true,
		ApproverEmails:   []string{"lead@corp.io", "ops@corp.io"},
	}

	assert.True(t, policy.CanReview("lead@corp.io"))
	assert.True(t, policy.CanReview("LEAD@corp.io"))
	assert.False(t, policy.CanReview("intruder@corp.io"))
	assert.False(t, policy.CanReview(""))

	// Пустой список согласующих - ограничений нет
	open := &ApprovalPolicy{RequiresApproval: true}
	assert.True(t, open.CanReview("anyone@corp.io"))
}

func TestApprovalPolicy_AllowsAutoApprove(t *testing.T) {
	policy := &ApprovalPolicy{
		RequiresApproval:         true,
		AutoApproveDurationHours: ptr.Ptr(1.0),
		AutoApproveEmails:        []string{"trusted@corp.io"},
	}

	// Порог включительный: ровно час проходит
	assert.True(t, policy.AllowsAutoApprove(1.0, "other@corp.io"))
	assert.True(t, policy.AllowsAutoApprove(0.5, "other@corp.io"))

	// Чуть длиннее порога - уже нет
	assert.False(t, policy.AllowsAutoApprove(1.0+1.0/3600.0/1000.0, "other@corp.io"))

	// Доверенный email проходит независимо от длительности
	assert.True(t, policy.AllowsAutoApprove(8.0, "trusted@corp.io"))
	assert.True(t, policy.AllowsAutoApprove(8.0, "TRUSTED@corp.io"))

	// Без порога и без email - нет
	bare := &ApprovalPolicy{RequiresApproval: true}
	assert.False(t, bare.AllowsAutoApprove(0.1, "other@corp.io"))
}

func TestApprovalPolicy_Normalize(t *testing.T) {
	policy := &ApprovalPolicy{
		ApproverEmails:    []string{" Lead@Corp.IO "},
		AutoApproveEmails: []string{"TRUSTED@corp.io"},
	}

	policy.Normalize()

	assert.Equal(t, []string{"lead@corp.io"}, policy.ApproverEmails)
	assert.Equal(t, []string{"trusted@corp.io"}, policy.AutoApproveEmails)
}

func TestResourceType_IsValid(t *testing.T) {
	assert.True(t, TypeMeetingRoom.IsValid())
	assert.True(t, TypeLab.IsValid())
	assert.True(t, TypeEquipment.IsValid())
	assert.True(t, TypeOther.IsValid())
	assert.False(t, ResourceType("warehouse").IsValid())
}
