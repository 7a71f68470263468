package handler

import (
	"net/http"
	"strings"

	"asset-inventory/internal/middleware"
	"asset-inventory/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateProfileReq 更新基本资料请求
type UpdateProfileReq struct {
	Name  string `json:"name" binding:"max=128"`
	Email string `json:"email" binding:"omitempty,email,max=255"`
}

// ChangePasswordReq 修改密码请求
type ChangePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// UpdateProfile 更新当前用户的姓名和邮箱
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
			return
		}

		var req UpdateProfileReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
			return
		}

		name := optional(strings.TrimSpace(req.Name))
		email := optional(strings.TrimSpace(req.Email))

		if err := db.WithContext(c.Request.Context()).Model(user).Updates(map[string]any{
			"name":  name,
			"email": email,
		}).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update failed")
			return
		}

		user.Name, user.Email = name, email

		util.Success(c, util.Response{
			"user": gin.H{
				"id":       user.ID,
				"username": user.Username,
				"name":     user.Name,
				"email":    user.Email,
			},
		})
	}
}

// ChangePassword 修改当前用户密码，并注销该用户的其他会话
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
		return
	}

	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	if !util.CheckPassword(req.OldPassword, user.PasswordHash) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "current password is incorrect")
		return
	}

	hash, err := util.HashPassword(req.NewPassword)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "hash password failed")
		return
	}

	ctx := c.Request.Context()
	if err := h.DB.WithContext(ctx).Model(user).Update("password_hash", hash).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update password failed")
		return
	}

	current, _ := c.Cookie(h.Cookie.Name)
	if err := h.Store.InvalidateOthers(ctx, user.ID, current); err != nil {
		h.Log.Error(ctx, "drop sessions after password change failed", "user_id", user.ID, "error", err)
	}

	util.Success(c, util.Response{
		"message": "password changed",
	})
}
