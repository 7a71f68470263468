package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"asset-inventory/internal/logging"
	"asset-inventory/internal/middleware"
	"asset-inventory/internal/models"
	"asset-inventory/internal/session"
	"asset-inventory/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	Name   string
	Secure bool // true when APP_ENV=production
	MaxAge time.Duration
}

// AuthHandler 负责登录/登出/会话查询接口
type AuthHandler struct {
	DB     *gorm.DB
	Store  *session.Store
	Cookie CookieConfig
	Log    logging.Logger
}

// NewAuthHandler 构造函数
func NewAuthHandler(db *gorm.DB, store *session.Store, cookie CookieConfig, log logging.Logger) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "session"
	}
	if cookie.MaxAge <= 0 {
		cookie.MaxAge = store.TTL()
	}
	return &AuthHandler{
		DB:     db,
		Store:  store,
		Cookie: cookie,
		Log:    log.With("component", "auth"),
	}
}

// setCookie writes the value verbatim; gin's SetCookie would query-escape
// the ':' separating iv and ciphertext.
func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   h.Cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ---------- 登录 ----------

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	_ = c.ShouldBindJSON(&req)

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username and password are required"})
		return
	}

	var user models.User
	if err := h.DB.WithContext(c.Request.Context()).
		Where("username = ?", req.Username).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		} else {
			h.Log.Error(c.Request.Context(), "login: find user", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred during login"})
		}
		return
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		h.Log.Info(c.Request.Context(), "login rejected", "username", user.Username, "ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := h.Store.Issue(c.Request.Context(), user.ID)
	if err != nil {
		h.Log.Error(c.Request.Context(), "login: issue session", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred during login"})
		return
	}

	h.setCookie(c, token, int(h.Cookie.MaxAge.Seconds()))
	h.Log.Info(c.Request.Context(), "login", "user_id", user.ID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ---------- 登出 ----------

// Logout removes the session and always clears the cookie, even when the
// cookie no longer decrypts.
func (h *AuthHandler) Logout(c *gin.Context) {
	if enc, err := c.Cookie(h.Cookie.Name); err == nil && enc != "" {
		if err := h.Store.Invalidate(c.Request.Context(), enc); err != nil {
			h.Log.Error(c.Request.Context(), "logout: invalidate session", "error", err)
		}
	}
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ---------- 会话查询 ----------

type sessionUser struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
}

// Session reports whether the caller is signed in. It reads the user the
// session gate already resolved for this request.
func (h *AuthHandler) Session(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"isLoggedIn": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"isLoggedIn": true,
		"user": sessionUser{
			ID:       user.ID,
			Username: user.Username,
			Name:     user.Name,
			Email:    user.Email,
		},
	})
}
