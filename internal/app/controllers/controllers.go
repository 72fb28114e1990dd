// Package controllers binds HTTP requests to the services.
package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/growthpath/internal/app/models/dto"
)

// parseIDParam parses a positive integer ID from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	idStr := ctx.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive", paramName)
	}
	return id, nil
}

// parseUserIDParam parses a uuid user id from the request path
func parseUserIDParam(ctx *gin.Context, paramName string) (string, error) {
	id, err := uuid.Parse(ctx.Param(paramName))
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.APIResponse{
		Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, message),
	})
}
