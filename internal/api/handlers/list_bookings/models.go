package list_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/service/bookings/models"
)

// ParseQuery разбирает query-параметры запроса списка бронирований:
// resourceId, status, startBefore, endAfter (RFC3339), limit
func ParseQuery(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if resourceID := query.Get("resourceId"); resourceID != "" {
		req.ResourceID = &resourceID
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("startBefore"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		req.StartBefore = &t
	}
	if raw := query.Get("endAfter"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		req.EndAfter = &t
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Limit = &limit
	}

	return req, nil
}
