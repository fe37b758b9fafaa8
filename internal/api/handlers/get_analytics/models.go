package get_analytics

import (
	"math"
	"net/url"
	"time"

	getAnalytics "github.com/m04kA/SMC-FacilityService/internal/usecase/get_analytics"
)

// ParseQuery разбирает опциональные границы окна аналитики (RFC3339)
func ParseQuery(query url.Values) (*getAnalytics.Request, error) {
	req := &getAnalytics.Request{}

	if raw := query.Get("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		req.Start = &t
	}
	if raw := query.Get("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		req.End = &t
	}

	return req, nil
}

// ResourceSummaryResponse сводка загрузки ресурса в HTTP ответе
type ResourceSummaryResponse struct {
	ResourceID          string  `json:"resourceId"`
	ResourceName        string  `json:"resourceName"`
	TotalBookings       int     `json:"totalBookings"`
	TotalBookedHours    float64 `json:"totalBookedHours"`
	TotalAvailableHours float64 `json:"totalAvailableHours"`
	IdleHours           float64 `json:"idleHours"`
	UtilisationRate     float64 `json:"utilisationRate"`
	AverageBookingHours float64 `json:"averageBookingHours"`
	PeakUsageHour       *string `json:"peakUsageHour,omitempty"`
}

// PeakHourResponse глобальный пиковый час в HTTP ответе
type PeakHourResponse struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

// UtilisationResponse HTTP ответ аналитики загрузки
type UtilisationResponse struct {
	RangeStart       string                    `json:"rangeStart"` // ISO 8601 UTC
	RangeEnd         string                    `json:"rangeEnd"`   // ISO 8601 UTC
	Summaries        []ResourceSummaryResponse `json:"summaries"`
	BusiestResources []ResourceSummaryResponse `json:"busiestResources"`
	IdleResources    []ResourceSummaryResponse `json:"idleResources"`
	PeakHours        []PeakHourResponse        `json:"peakHours"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// Часы округляются до двух знаков, rate - до четырёх
func FromUseCaseResponse(resp *getAnalytics.Response) *UtilisationResponse {
	out := &UtilisationResponse{
		RangeStart:       resp.RangeStart.UTC().Format(time.RFC3339),
		RangeEnd:         resp.RangeEnd.UTC().Format(time.RFC3339),
		Summaries:        fromSummaries(resp.Summaries),
		BusiestResources: fromSummaries(resp.BusiestResources),
		IdleResources:    fromSummaries(resp.IdleResources),
		PeakHours:        make([]PeakHourResponse, len(resp.PeakHours)),
	}

	for i, peak := range resp.PeakHours {
		out.PeakHours[i] = PeakHourResponse{Hour: peak.Hour, Count: peak.Count}
	}

	return out
}

func fromSummaries(summaries []getAnalytics.ResourceSummary) []ResourceSummaryResponse {
	out := make([]ResourceSummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = ResourceSummaryResponse{
			ResourceID:          s.ResourceID,
			ResourceName:        s.ResourceName,
			TotalBookings:       s.TotalBookings,
			TotalBookedHours:    round2(s.TotalBookedHours),
			TotalAvailableHours: round2(s.TotalAvailableHours),
			IdleHours:           round2(s.IdleHours),
			UtilisationRate:     round4(s.UtilisationRate),
			AverageBookingHours: round2(s.AverageBookingHours),
			PeakUsageHour:       s.PeakUsageHour,
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
