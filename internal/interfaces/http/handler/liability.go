package handler

import (
	liabilityapp "github.com/bizops/ledger/internal/application/liability"
	"github.com/gin-gonic/gin"
)

// LiabilityHandler handles liability endpoints
type LiabilityHandler struct {
	BaseHandler
	liabilityService *liabilityapp.LiabilityService
}

// NewLiabilityHandler creates a new LiabilityHandler
func NewLiabilityHandler(liabilityService *liabilityapp.LiabilityService) *LiabilityHandler {
	return &LiabilityHandler{liabilityService: liabilityService}
}

// Create godoc
// @ID           createLiability
// @Summary      Record a liability
// @Tags         liabilities
// @Accept       json
// @Produce      json
// @Param        request body liabilityapp.CreateLiabilityRequest true "Liability"
// @Success      201 {object} APIResponse[liabilityapp.LiabilityResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /liabilities [post]
func (h *LiabilityHandler) Create(c *gin.Context) {
	var req liabilityapp.CreateLiabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := h.liabilityService.Create(c.Request.Context(), req, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get godoc
// @ID           getLiability
// @Summary      Get a liability with its paid and remaining amounts
// @Tags         liabilities
// @Produce      json
// @Param        id path string true "Liability ID"
// @Success      200 {object} APIResponse[liabilityapp.LiabilityResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /liabilities/{id} [get]
func (h *LiabilityHandler) Get(c *gin.Context) {
	resp, err := h.liabilityService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listLiabilities
// @Summary      List liabilities
// @Tags         liabilities
// @Produce      json
// @Param        vendor_id query string false "Lender"
// @Param        search    query string false "Name search"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]liabilityapp.LiabilityResponse]
// @Security     BearerAuth
// @Router       /liabilities [get]
func (h *LiabilityHandler) List(c *gin.Context) {
	var filter liabilityapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	paging(&filter.Page, &filter.PageSize)

	items, total, err := h.liabilityService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}
