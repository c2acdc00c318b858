package driver

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	nethttpmiddleware "github.com/oapi-codegen/nethttp-middleware"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// LoadOpenAPISpec parses and validates the embedded API description.
func LoadOpenAPISpec() (*openapi3.T, error) {
	spec, err := openapi3.NewLoader().LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("loading openapi spec: %w", err)
	}
	if err := spec.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validating openapi spec: %w", err)
	}
	return spec, nil
}

// NewDocumentationHandler serves spec as JSON.
func NewDocumentationHandler(spec *openapi3.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, spec)
	})
}

// requestValidator rejects requests that do not match spec. Routes must be
// registered on the router as well as in spec.
func requestValidator(spec *openapi3.T) func(http.Handler) http.Handler {
	return nethttpmiddleware.OapiRequestValidatorWithOptions(spec, &nethttpmiddleware.Options{
		ErrorHandler: func(w http.ResponseWriter, message string, statusCode int) {
			writeError(w, statusCode, message)
		},
		SilenceServersWarning: true,
	})
}

// bufferBody reads at most limit bytes of the request body ahead of the
// validator, which reads bodies without a bound, and replays them to the
// handler.
func bufferBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
			if err != nil {
				var maxBytesErr *http.MaxBytesError
				if errors.As(err, &maxBytesErr) {
					writeError(w, http.StatusRequestEntityTooLarge, err.Error())
					return
				}
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(data))
			next.ServeHTTP(w, r)
		})
	}
}
