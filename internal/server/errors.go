package server

import (
	"errors"
	"net/http"
	"strings"

	batterydomain "github.com/fieldops/meterwatch/internal/battery/domain"
	fielddomain "github.com/fieldops/meterwatch/internal/field/domain"
	historydomain "github.com/fieldops/meterwatch/internal/history/domain"
	importerdomain "github.com/fieldops/meterwatch/internal/importer/domain"
	meterdomain "github.com/fieldops/meterwatch/internal/meter/domain"
	stationdomain "github.com/fieldops/meterwatch/internal/station/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, fielddomain.ErrDuplicateName):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isFieldValidationError(err),
		isBatteryValidationError(err),
		isMeterValidationError(err),
		isHistoryValidationError(err),
		isStationValidationError(err),
		isImportValidationError(err):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, fielddomain.ErrNotFound),
		errors.Is(err, batterydomain.ErrNotFound),
		errors.Is(err, meterdomain.ErrNotFound),
		errors.Is(err, historydomain.ErrNotFound),
		errors.Is(err, stationdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isFieldValidationError(err error) bool {
	switch err {
	case fielddomain.ErrInvalidName,
		fielddomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isBatteryValidationError(err error) bool {
	switch err {
	case batterydomain.ErrInvalidField,
		batterydomain.ErrInvalidName,
		batterydomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isMeterValidationError(err error) bool {
	switch err {
	case meterdomain.ErrInvalidBattery,
		meterdomain.ErrInvalidName,
		meterdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isHistoryValidationError(err error) bool {
	switch err {
	case historydomain.ErrInvalidMeter,
		historydomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isStationValidationError(err error) bool {
	switch err {
	case stationdomain.ErrInvalidStation,
		stationdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isImportValidationError(err error) bool {
	switch err {
	case importerdomain.ErrInvalidStation,
		importerdomain.ErrEmptyFile,
		importerdomain.ErrUnreadableFile:
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "empty_file":
		return "no file uploaded"
	case "unreadable_file":
		return "could not read workbook"
	default:
		return "invalid value"
	}
}
