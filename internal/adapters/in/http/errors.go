package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request. Amount mismatches also
// name the field and the amounts involved.
type ErrorResponse struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	Expected   string `json:"expected,omitempty"`
	Received   string `json:"received,omitempty"`
	Difference string `json:"difference,omitempty"`
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errs.IsValidationFailed(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrPreconditionFailed):
		return http.StatusPreconditionFailed
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrImmutableStateConflict),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorHandler maps domain errors onto status codes. Unknown errors are
// logged and hidden behind a 500.
func NewErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var contractErr *openapi3filter.RequestError
		if errors.As(err, &contractErr) {
			body := requestErrorResponse(contractErr)
			_ = c.JSON(body.Code, body)
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg, ok := he.Message.(string)
			if !ok {
				msg = http.StatusText(he.Code)
			}
			_ = c.JSON(he.Code, ErrorResponse{Code: he.Code, Message: msg})
			return
		}

		status := statusOf(err)
		body := ErrorResponse{Code: status, Message: err.Error()}
		if status == http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("route", c.Path()),
				zap.Error(err),
			)
			body.Message = http.StatusText(status)
		}

		var mismatch *errs.AmountMismatchError
		if errors.As(err, &mismatch) {
			body.Field = mismatch.ParamName
			body.Expected = mismatch.Expected.String()
			body.Received = mismatch.Received.String()
			body.Difference = mismatch.Difference.String()
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}
