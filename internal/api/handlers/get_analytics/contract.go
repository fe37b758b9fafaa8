package get_analytics

import (
	"context"

	getAnalytics "github.com/m04kA/SMC-FacilityService/internal/usecase/get_analytics"
)

type GetAnalyticsUseCase interface {
	Execute(ctx context.Context, req *getAnalytics.Request) (*getAnalytics.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
