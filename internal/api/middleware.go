package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Andrej19990506/supboard-booking-backend/internal/auth"
	"github.com/Andrej19990506/supboard-booking-backend/internal/staff"
)

// RequireAdmin ensures the authenticated staff member has the admin flag.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin(staffService staff.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		staffID := auth.GetStaffID(c)
		if staffID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		member, err := staffService.GetByID(c.Request.Context(), staffID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "staff member not found"})
			return
		}

		if !member.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}

		c.Next()
	}
}
