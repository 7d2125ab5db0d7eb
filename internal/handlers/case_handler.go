package handlers

import (
	"net/http"

	"findthem_backend/internal/logger"
	"findthem_backend/internal/middleware"
	"findthem_backend/internal/services"
	"findthem_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CaseHandler struct {
	*BaseHandler
	caseService   services.CaseService
	uploadService services.UploadService
	jwtSecret     []byte
}

func NewCaseHandler(base *BaseHandler, caseService services.CaseService, uploadService services.UploadService, jwtSecret []byte) *CaseHandler {
	return &CaseHandler{
		BaseHandler:   base,
		caseService:   caseService,
		uploadService: uploadService,
		jwtSecret:     jwtSecret,
	}
}

func (h *CaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cases := rg.Group("/cases")
	cases.Use(middleware.OptionalAuthMiddleware(h.jwtSecret))
	{
		cases.POST("", h.Submit)
		cases.GET("", h.List)
		cases.GET("/pending", h.ListPending)
		cases.GET("/:id", h.Get)
		cases.PATCH("/:id/status", h.UpdateStatus)
		cases.PATCH("/:id/approve", h.Approve)
		cases.PATCH("/:id/comment", h.AddComment)
	}
}

// Submit accepts a multipart report with an optional photo. The new
// case always lands in the moderation queue.
func (h *CaseHandler) Submit(c *gin.Context) {
	var req dto.SubmitCaseRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	ctx := c.Request.Context()

	if fh, err := c.FormFile("photo"); err == nil && fh != nil {
		ref, err := h.uploadService.StoreCasePhoto(ctx, fh)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		req.PhotoRef = ref
	}

	claims := middleware.GetClaims(c)
	created, err := h.caseService.Submit(ctx, claims, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(ctx, "case submitted", "case_id", created.ID)
	c.JSON(http.StatusCreated, created)
}

// List returns published cases, optionally filtered by a name search.
func (h *CaseHandler) List(c *gin.Context) {
	cases, err := h.caseService.ListPublished(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cases)
}

func (h *CaseHandler) ListPending(c *gin.Context) {
	claims := middleware.GetClaims(c)
	cases, err := h.caseService.ListPending(c.Request.Context(), claims)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cases)
}

func (h *CaseHandler) Get(c *gin.Context) {
	found, err := h.caseService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *CaseHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	updated, err := h.caseService.UpdateStatus(c.Request.Context(), claims, c.Param("id"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Approve publishes a pending case.
func (h *CaseHandler) Approve(c *gin.Context) {
	claims := middleware.GetClaims(c)
	approved, err := h.caseService.Approve(c.Request.Context(), claims, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, approved)
}

func (h *CaseHandler) AddComment(c *gin.Context) {
	var req dto.AddCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	updated, err := h.caseService.AddComment(c.Request.Context(), claims, c.Param("id"), req.Text)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
