package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
	"github.com/yigit/growthpath/internal/pkg/auth"
	"github.com/yigit/growthpath/internal/pkg/logger"
)

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetailFor(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Unhandled API error")
	}
	c.JSON(status, dto.APIResponse{Error: detail})
}

func errorDetailFor(err error) (int, *dto.ErrorDetail) {
	var verrs validator.ValidationErrors

	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest, dto.HandleValidationError(verrs)
	case errors.Is(err, apperrors.ErrInvalidPoints):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message(err)).WithField("points")
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(err.Error())
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, message(err))
	case apperrors.IsNotFound(err):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message(err))
	case errors.Is(err, apperrors.ErrNotWorkOwner), errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, message(err))
	case errors.Is(err, apperrors.ErrAlreadyApproved):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeAlreadyApproved, message(err))
	case errors.Is(err, apperrors.ErrTaskAlreadyClosed), errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, message(err))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message(err))
	case errors.Is(err, apperrors.ErrTokenExpired), errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// message prefers a CustomError's text, falling back to the sentinel's.
func message(err error) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		return custom.Error()
	}
	for _, sentinel := range []error{
		apperrors.ErrWorkNotFound, apperrors.ErrProfileNotFound, apperrors.ErrTaskNotFound,
		apperrors.ErrObservationNotFound, apperrors.ErrMentorNotFound, apperrors.ErrNotWorkOwner,
		apperrors.ErrAlreadyApproved, apperrors.ErrTaskAlreadyClosed, apperrors.ErrInvalidPoints,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
