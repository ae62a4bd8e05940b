package http

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlink/internal/entity"
)

const (
	statusError = "error"
	dateLayout  = time.DateOnly
)

// urlRequest represents the structure for a request to shorten a URL.
type urlRequest struct {
	OriginalURL string `json:"original_url" validate:"required,url"`
}

// urlResponse represents the structure for a response containing shortened URL information.
type urlResponse struct {
	ID          int64     `json:"id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// toURLResponse converts an entity.URL to a urlResponse.
func toURLResponse(url *entity.URL) urlResponse {
	return urlResponse{
		ID:          url.ID,
		ShortCode:   url.ShortCode,
		OriginalURL: url.OriginalURL,
		OwnerID:     url.OwnerID,
		CreatedAt:   url.CreatedAt,
	}
}

func toURLResponses(urls []*entity.URL) []urlResponse {
	resp := make([]urlResponse, 0, len(urls))
	for _, url := range urls {
		resp = append(resp, toURLResponse(url))
	}
	return resp
}

// urlStatsResponse represents the structure for a response containing URL statistics.
type urlStatsResponse struct {
	urlResponse
	Stats urlStats `json:"stats"`
}

// urlStats represents the statistics for a URL.
type urlStats struct {
	ClickCount int64 `json:"click_count"`
}

// toURLStatsResponse converts an entity.URL to a urlStatsResponse.
func toURLStatsResponse(url *entity.URL) urlStatsResponse {
	return urlStatsResponse{
		urlResponse: toURLResponse(url),
		Stats: urlStats{
			ClickCount: url.ClickCount,
		},
	}
}

type dailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// urlAnalyticsResponse holds the daily clicks of one short code, ascending by date.
type urlAnalyticsResponse struct {
	ShortCode string       `json:"short_code"`
	Start     string       `json:"start"`
	End       string       `json:"end"`
	Clicks    []dailyCount `json:"clicks"`
}

func toURLAnalyticsResponse(shortCode string, start, end time.Time, counts []entity.DailyCount) urlAnalyticsResponse {
	clicks := make([]dailyCount, 0, len(counts))
	for _, c := range counts {
		clicks = append(clicks, dailyCount{
			Date:  c.Date.Format(dateLayout),
			Count: c.Count,
		})
	}

	return urlAnalyticsResponse{
		ShortCode: shortCode,
		Start:     start.Format(dateLayout),
		End:       end.Format(dateLayout),
		Clicks:    clicks,
	}
}

// ownerTotalsResponse maps each date with clicks to the owner's total for that date.
type ownerTotalsResponse struct {
	OwnerID string           `json:"owner_id"`
	Start   string           `json:"start"`
	End     string           `json:"end"`
	Totals  map[string]int64 `json:"totals"`
}

func toOwnerTotalsResponse(ownerID string, start, end time.Time, counts []entity.DailyCount) ownerTotalsResponse {
	totals := make(map[string]int64, len(counts))
	for _, c := range counts {
		totals[c.Date.Format(dateLayout)] += c.Count
	}

	return ownerTotalsResponse{
		OwnerID: ownerID,
		Start:   start.Format(dateLayout),
		End:     end.Format(dateLayout),
		Totals:  totals,
	}
}

// validationError represents an individual validation error.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse represents a structured error response.
type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []validationError `json:"errors,omitempty"`
}

func newErrorResponse(message string) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: message,
	}
}

// Predefined error responses for common scenarios.
var (
	emptyRequestBodyResponse   = newErrorResponse("empty request body")
	invalidRequestBodyResponse = newErrorResponse("invalid request body")
	invalidURLResponse         = newErrorResponse("invalid url")
	invalidRangeResponse       = newErrorResponse("start date is after end date")
	unauthenticatedResponse    = newErrorResponse("missing or invalid bearer token")
	forbiddenResponse          = newErrorResponse("access denied")
	urlNotFoundResponse        = newErrorResponse("url not found")
	exhaustedResponse          = newErrorResponse("no free short code, try again later")
	unavailableResponse        = newErrorResponse("storage unavailable")
	serverErrorResponse        = newErrorResponse("server error occurred")
)

// messageForTag returns a user-friendly message based on the validation tag.
func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "url":
		return "invalid url"
	case "datetime":
		return "invalid date, expected YYYY-MM-DD"
	default:
		return "invalid value"
	}
}

// getValidationErrors processes validation errors and returns a list of validationError.
func getValidationErrors(err error) []validationError {
	var validationErrs []validationError

	errs, ok := err.(validator.ValidationErrors)
	if ok {
		for _, e := range errs {
			validationErrs = append(validationErrs, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	return validationErrs
}

// validationErrorResponse constructs an errorResponse for validation errors.
func validationErrorResponse(err error) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "validation error",
		Errors:  getValidationErrors(err),
	}
}
