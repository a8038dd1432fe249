package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/squadran/buildforge/internal/app/models/dto"
	"github.com/squadran/buildforge/internal/pkg/apperrors"
)

// respondError maps a service error onto the HTTP error envelope.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse("NOT_FOUND", err.Error()))
	case errors.Is(err, apperrors.ErrInvalidAccessKey):
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("INVALID_ACCESS_KEY", err.Error()))
	case errors.Is(err, apperrors.ErrAccountBlocked):
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse("ACCOUNT_BLOCKED", err.Error()))
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse("DUPLICATE_EMAIL", err.Error()))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse("PERMISSION_DENIED", err.Error()))
	case errors.Is(err, apperrors.ErrConflict):
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse("CONFLICT", err.Error()))
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse("STORAGE_UNAVAILABLE", "persistence provider unavailable"))
	case errors.Is(err, apperrors.ErrBadRequest):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("BAD_REQUEST", err.Error()))
	default:
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse("INTERNAL", "internal server error"))
	}
}

// respondBindError maps a request binding failure onto a 400 response.
func respondBindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("VALIDATION_FAILED", err.Error()))
}
