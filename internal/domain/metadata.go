package domain

import (
	"encoding/json"
	"time"
)

// ApprovalDecision запись в истории решений по заявке
type ApprovalDecision struct {
	Decision   string    `json:"decision"`
	DecidedAt  time.Time `json:"decidedAt"`
	ActorID    string    `json:"actorId"`
	ActorName  *string   `json:"actorName,omitempty"`
	ActorEmail *string   `json:"actorEmail,omitempty"`
	Note       *string   `json:"note,omitempty"`
	Reason     *string   `json:"reason,omitempty"`
}

// ApprovalState снимок состояния согласования бронирования
// Записывается при создании, если у ресурса есть политика согласования
type ApprovalState struct {
	Status       string             `json:"status"`
	RequestedBy  string             `json:"requestedBy"`
	RequestedAt  time.Time          `json:"requestedAt"`
	Approvers    []string           `json:"approvers"`
	AutoApproved bool               `json:"autoApproved"`
	History      []ApprovalDecision `json:"history"`
}

// CancellationRecord запись об отмене бронирования
type CancellationRecord struct {
	Reason      string    `json:"reason"`
	CancelledBy string    `json:"cancelledBy"`
	CancelledAt time.Time `json:"cancelledAt"`
}

// BookingMetadata метаданные бронирования: типизированные записи сервиса
// (approval, cancellation) плюс произвольные ключи вызывающей стороны.
// Неизвестные ключи сохраняются при сериализации без изменений
type BookingMetadata struct {
	Approval     *ApprovalState
	Cancellation *CancellationRecord
	Extra        map[string]json.RawMessage
}

// Ключи метаданных, принадлежащие сервису
const (
	metadataKeyApproval     = "approval"
	metadataKeyCancellation = "cancellation"
)

// IsEmpty возвращает true, если метаданные не содержат ни одной записи
func (m BookingMetadata) IsEmpty() bool {
	return m.Approval == nil && m.Cancellation == nil && len(m.Extra) == 0
}

// MarshalJSON сериализует метаданные в плоский JSON-объект
func (m BookingMetadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(m.Extra)+2)

	for key, value := range m.Extra {
		if key == metadataKeyApproval || key == metadataKeyCancellation {
			continue
		}
		out[key] = value
	}

	if m.Approval != nil {
		raw, err := json.Marshal(m.Approval)
		if err != nil {
			return nil, err
		}
		out[metadataKeyApproval] = raw
	}

	if m.Cancellation != nil {
		raw, err := json.Marshal(m.Cancellation)
		if err != nil {
			return nil, err
		}
		out[metadataKeyCancellation] = raw
	}

	return json.Marshal(out)
}

// UnmarshalJSON разбирает плоский JSON-объект, извлекая типизированные записи
// и сохраняя остальные ключи в Extra
func (m *BookingMetadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = BookingMetadata{}

	if approvalRaw, ok := raw[metadataKeyApproval]; ok {
		var approval ApprovalState
		if err := json.Unmarshal(approvalRaw, &approval); err != nil {
			return err
		}
		m.Approval = &approval
		delete(raw, metadataKeyApproval)
	}

	if cancellationRaw, ok := raw[metadataKeyCancellation]; ok {
		var cancellation CancellationRecord
		if err := json.Unmarshal(cancellationRaw, &cancellation); err != nil {
			return err
		}
		m.Cancellation = &cancellation
		delete(raw, metadataKeyCancellation)
	}

	if len(raw) > 0 {
		m.Extra = raw
	}

	return nil
}
