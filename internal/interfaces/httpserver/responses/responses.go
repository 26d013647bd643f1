// Package responses maps domain errors onto the boundary's failure envelope.
package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chapter-api/internal/domain/domainerrors"
	"chapter-api/internal/interfaces/httpserver/dto"
)

// HandleErrorWithStatus writes the failure envelope with an explicit status.
func HandleErrorWithStatus(c *gin.Context, status int, message string) {
	c.JSON(status, dto.NewErrorResponse(message))
}

// HandleError picks the HTTP status from the error's domain type and writes
// the failure envelope carrying the error's own message.
func HandleError(c *gin.Context, err error) {
	c.JSON(statusFor(err), dto.NewErrorResponse(err.Error()))
}

func statusFor(err error) int {
	var validation *domainerrors.ValidationError
	var precondition *domainerrors.PreconditionError
	var credential *domainerrors.CredentialError
	var unsupported *domainerrors.UnsupportedProviderError
	var invalidResponse *domainerrors.InvalidResponseError
	var blocked *domainerrors.ContentBlockedError
	var provider *domainerrors.ProviderError
	var storage *domainerrors.StorageError

	switch {
	case errors.As(err, &validation), errors.As(err, &precondition), errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.As(err, &credential):
		return http.StatusUnauthorized
	case errors.As(err, &invalidResponse), errors.As(err, &blocked):
		return http.StatusBadGateway
	case errors.As(err, &provider):
		return statusForProvider(provider)
	case errors.As(err, &storage):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func statusForProvider(err *domainerrors.ProviderError) int {
	switch err.Category {
	case domainerrors.ProviderErrorInvalidKey:
		return http.StatusUnauthorized
	case domainerrors.ProviderErrorForbidden:
		return http.StatusForbidden
	case domainerrors.ProviderErrorRateLimited:
		return http.StatusTooManyRequests
	case domainerrors.ProviderErrorBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
