package domain

// Default analytics policy values
const (
	// DefaultAvailableHoursPerDay количество доступных часов в день для ресурсов
	// без валидных окон доступности. Политика по умолчанию, не вычисляется из
	// данных - переопределяется конфигурацией деплоймента
	DefaultAvailableHoursPerDay = 10.0

	// DefaultAnalyticsRangeDays длина окна аналитики по умолчанию (end - 29 дней)
	DefaultAnalyticsRangeDays = 29

	// IdleUtilisationThreshold порог загрузки, ниже которого ресурс считается простаивающим
	IdleUtilisationThreshold = 0.2

	// TopBusiestResources количество ресурсов в списке самых загруженных
	TopBusiestResources = 3

	// TopIdleResources количество ресурсов в списке простаивающих
	TopIdleResources = 5

	// TopPeakHours количество часов в списке пиковой нагрузки
	TopPeakHours = 5
)

// Approval decision values записываемые в историю решений
const (
	DecisionApproved     = "approved"
	DecisionRejected     = "rejected"
	DecisionAutoApproved = "auto-approved"
)

// Approval status values
const (
	ApprovalStatusPending  = "pending"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"
)

// DefaultRejectionReason причина отмены при отклонении заявки без указания причины
const DefaultRejectionReason = "Rejected by approver"

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	HourFormat = "%02d:00"    // "HH:00" для пиковых часов аналитики
)

// LiveStatuses статусы бронирований, удерживающих временной слот
// Используются при проверке пересечений
var LiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// UtilisedStatuses статусы бронирований, учитываемых аналитикой загрузки
var UtilisedStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
}
