package handler

import (
	assetapp "github.com/bizops/ledger/internal/application/asset"
	"github.com/gin-gonic/gin"
)

// AssetHandler handles asset register endpoints
type AssetHandler struct {
	BaseHandler
	assetService *assetapp.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *assetapp.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// Get godoc
// @ID           getAsset
// @Summary      Get an asset
// @Description  Returns the asset, re-evaluating its lifecycle status first
// @Tags         assets
// @Produce      json
// @Param        id path string true "Asset ID" example(AST-00001)
// @Success      200 {object} APIResponse[assetapp.AssetResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id} [get]
func (h *AssetHandler) Get(c *gin.Context) {
	resp, err := h.assetService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listAssets
// @Summary      List assets
// @Tags         assets
// @Produce      json
// @Param        status        query string false "Lifecycle status"
// @Param        type          query string false "Asset type"
// @Param        assignment    query string false "Assigned or Unassigned"
// @Param        department_id query string false "Department"
// @Param        reference_id  query string false "Purchase reference id"
// @Param        search        query string false "Name search"
// @Param        page          query int    false "Page number" default(1)
// @Param        page_size     query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]assetapp.AssetResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets [get]
func (h *AssetHandler) List(c *gin.Context) {
	var filter assetapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	paging(&filter.Page, &filter.PageSize)

	assets, total, err := h.assetService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, assets, total, filter.Page, filter.PageSize)
}

// ScheduleMaintenance godoc
// @ID           scheduleAssetMaintenance
// @Summary      Schedule maintenance or repair
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id      path string                              true "Asset ID"
// @Param        request body assetapp.ScheduleMaintenanceRequest true "Service window"
// @Success      201 {object} APIResponse[assetapp.AssetResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id}/maintenance [post]
func (h *AssetHandler) ScheduleMaintenance(c *gin.Context) {
	var req assetapp.ScheduleMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := h.assetService.ScheduleMaintenance(c.Request.Context(), c.Param("id"), req, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// RequestDisposal godoc
// @ID           requestAssetDisposal
// @Summary      Mark an asset for disposal
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "Asset ID"
// @Param        request body assetapp.DisposalRequest true "Disposal reason"
// @Success      200 {object} APIResponse[assetapp.AssetResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id}/disposal [post]
func (h *AssetHandler) RequestDisposal(c *gin.Context) {
	var req assetapp.DisposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := h.assetService.RequestDisposal(c.Request.Context(), c.Param("id"), req, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddDepreciation godoc
// @ID           addAssetDepreciation
// @Summary      Record the next year of depreciation
// @Description  Computes one period with the chosen method, resuming from the last recorded closing value
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id      path string                       true "Asset ID"
// @Param        request body assetapp.DepreciationRequest true "Method and parameters"
// @Success      201 {object} APIResponse[assetapp.DepreciationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id}/depreciation [post]
func (h *AssetHandler) AddDepreciation(c *gin.Context) {
	var req assetapp.DepreciationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := h.assetService.AddDepreciation(c.Request.Context(), c.Param("id"), req, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListDepreciation godoc
// @ID           listAssetDepreciation
// @Summary      List depreciation history
// @Tags         assets
// @Produce      json
// @Param        id path string true "Asset ID"
// @Success      200 {object} APIResponse[[]assetapp.DepreciationResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id}/depreciation [get]
func (h *AssetHandler) ListDepreciation(c *gin.Context) {
	resp, err := h.assetService.ListDepreciation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Assign godoc
// @ID           assignAsset
// @Summary      Assign an asset to an employee
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id      path string                 true "Asset ID"
// @Param        request body assetapp.AssignRequest true "Department and employee"
// @Success      200 {object} APIResponse[assetapp.AssetResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id}/assignment [put]
func (h *AssetHandler) Assign(c *gin.Context) {
	var req assetapp.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := h.assetService.Assign(c.Request.Context(), c.Param("id"), req, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Unassign godoc
// @ID           unassignAsset
// @Summary      Return an asset to the pool
// @Tags         assets
// @Produce      json
// @Param        id path string true "Asset ID"
// @Success      200 {object} APIResponse[assetapp.AssetResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id}/assignment [delete]
func (h *AssetHandler) Unassign(c *gin.Context) {
	resp, err := h.assetService.Unassign(c.Request.Context(), c.Param("id"), actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
