package handler

import (
	"net/http"

	"finance-ledger/internal/models"
	"finance-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetMe returns the current authenticated user.
func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"is_admin":   user.IsAdmin,
			"created_at": user.CreatedAt,
		},
	})
}

// ListUsers returns every user. Admin only.
func ListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		if !user.IsAdmin {
			util.Error(c, http.StatusForbidden, util.CodeForbidden, "admin only")
			return
		}

		var users []models.User
		if err := db.Order("id ASC").Find(&users).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list users")
			return
		}

		items := make([]gin.H, 0, len(users))
		for i := range users {
			items = append(items, gin.H{
				"id":       users[i].ID,
				"name":     users[i].Name,
				"email":    users[i].Email,
				"is_admin": users[i].IsAdmin,
			})
		}
		util.Success(c, util.Response{"users": items})
	}
}
