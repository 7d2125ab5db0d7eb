package handlers

import (
	"net/http"
	"time"

	"findthem_backend/internal/middleware"
	"findthem_backend/internal/services"
	"findthem_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	userService services.UserService
	jwtSecret   []byte
	sessionTTL  time.Duration
	secureMode  bool
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, userService services.UserService, jwtSecret []byte, sessionTTL time.Duration, secureMode bool) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		userService: userService,
		jwtSecret:   jwtSecret,
		sessionTTL:  sessionTTL,
		secureMode:  secureMode,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.GET("/verify", h.VerifyEmail)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}

	me := rg.Group("/auth")
	me.Use(middleware.AuthMiddleware(h.jwtSecret))
	{
		me.GET("/me", h.Me)
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Please check your email to verify your account.",
		"user":    user,
	})
}

// VerifyEmail consumes the token from the emailed link. A second visit
// with the same token gets an error.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")

	user, err := h.authService.VerifyEmail(c.Request.Context(), token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email verified successfully. You can now log in.",
		"user":    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// setSessionCookie issues the HTTP-only session cookie. Cross-site
// frontends need SameSite=None, which browsers only accept over HTTPS.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	if h.secureMode {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(middleware.SessionCookieName, token, int(h.sessionTTL.Seconds()), "/", "", h.secureMode, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	if h.secureMode {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.secureMode, true)
}
