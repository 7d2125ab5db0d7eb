package handlers

import (
	"net/http"

	"findthem_backend/internal/middleware"
	"findthem_backend/internal/services"
	"findthem_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
	jwtSecret   []byte
}

func NewUserHandler(base *BaseHandler, userService services.UserService, jwtSecret []byte) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		jwtSecret:   jwtSecret,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(h.jwtSecret))
	{
		users.PATCH("/:id/role", h.AssignRole)
	}
}

// AssignRole changes a user's role. The service decides whether the
// caller is allowed to.
func (h *UserHandler) AssignRole(c *gin.Context) {
	var req dto.AssignRoleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	user, err := h.userService.AssignRole(c.Request.Context(), claims, c.Param("id"), req.Role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
