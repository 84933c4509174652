package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// LoadOpenAPI parses the API contract served under /api/v1.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// ValidateRequests rejects requests that break the contract before a handler
// decodes them. Paths the contract does not know pass through to echo.
func ValidateRequests(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("openapi router: %w", err)
	}
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, params, err := router.FindRoute(req)
			if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
				return next(c)
			}
			if err != nil {
				return err
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: params,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return err
			}
			return next(c)
		}
	}, nil
}

// requestErrorResponse answers 422 naming the field when a body value breaks
// its schema. Unreadable bodies and malformed path parameters get a 400.
func requestErrorResponse(err *openapi3filter.RequestError) ErrorResponse {
	var schemaErr *openapi3.SchemaError
	switch {
	case err.RequestBody != nil && errors.As(err.Err, &schemaErr):
		return ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: schemaErr.Reason,
			Field:   strings.Join(schemaErr.JSONPointer(), "."),
		}
	case err.Parameter != nil:
		return ErrorResponse{Code: http.StatusBadRequest, Message: "invalid " + err.Parameter.Name}
	case err.RequestBody != nil && errors.Is(err.Err, openapi3filter.ErrInvalidRequired):
		return ErrorResponse{Code: http.StatusBadRequest, Message: "request body is required"}
	default:
		return ErrorResponse{Code: http.StatusBadRequest, Message: "invalid request body"}
	}
}
