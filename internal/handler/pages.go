package handler

import (
	"net/http"
	"strings"

	"asset-inventory/internal/middleware"

	"github.com/gin-gonic/gin"
)

// LoginPage 登录页面
func LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title":      "Asset Inventory - Sign in",
		"redirectTo": safeRedirect(c.Query(middleware.RedirectParam)),
	})
}

// Page renders a signed-in page template.
func Page(tmpl, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := ""
		if user, ok := middleware.CurrentUser(c); ok {
			username = user.Username
		}
		c.HTML(http.StatusOK, tmpl, gin.H{
			"title":    "Asset Inventory - " + title,
			"username": username,
		})
	}
}

// safeRedirect only lets local paths through so the login page cannot be
// used to bounce users to another site.
func safeRedirect(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, `\`) {
		return "/"
	}
	return p
}
