package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/labspace/praktikum/internal/app/models"
)

// parseIDParam parses a positive integer ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, bool) {
	idStr := ctx.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// currentUserID returns the authenticated user's id set by the JWT middleware
func currentUserID(ctx *gin.Context) int64 {
	if v, ok := ctx.Get("userID"); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// currentRole returns the authenticated user's role set by the JWT middleware
func currentRole(ctx *gin.Context) models.RoleType {
	if v, ok := ctx.Get("roleType"); ok {
		if role, ok := v.(string); ok {
			return models.RoleType(role)
		}
	}
	return ""
}
