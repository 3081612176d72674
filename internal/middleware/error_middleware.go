package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
)

// HandleAPIError maps a service error to its HTTP status and writes the error envelope
func HandleAPIError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, dto.ErrorCodeInternalServer
	switch apperrors.Kind(err) {
	case apperrors.KindInvalidArgument:
		status, code = http.StatusBadRequest, dto.ErrorCodeValidationFailed
	case apperrors.KindUnknownReference:
		status, code = http.StatusBadRequest, dto.ErrorCodeUnknownReference
	case apperrors.KindNotFound:
		status, code = http.StatusNotFound, dto.ErrorCodeResourceNotFound
	case apperrors.KindDuplicateKey:
		status, code = http.StatusConflict, dto.ErrorCodeResourceAlreadyExists
	case apperrors.KindDuplicateEnrollment:
		status, code = http.StatusConflict, dto.ErrorCodeDuplicateEnrollment
	}

	if status == http.StatusInternalServerError {
		// Never leak backend details to the client
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("Unhandled error")
		abortWithError(c, status, dto.NewErrorDetail(code, "Internal server error"))
		return
	}

	detail := dto.NewErrorDetail(code, err.Error())
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Details != nil {
		if field, ok := customErr.Details["field"].(string); ok {
			detail = detail.WithField(field)
		} else {
			detail = detail.WithDetails(customErr.Details)
		}
	}
	abortWithError(c, status, detail)
}

// HandleBindingError writes a 400 for a request body that failed to bind or validate
func HandleBindingError(c *gin.Context, err error) {
	abortWithError(c, http.StatusBadRequest, dto.HandleValidationError(err))
}

// HandleInvalidParam writes a 400 for a malformed path or query parameter
func HandleInvalidParam(c *gin.Context, name string) {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, name+" must be a positive integer").WithField(name)
	abortWithError(c, http.StatusBadRequest, detail)
}

func abortWithError(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}
