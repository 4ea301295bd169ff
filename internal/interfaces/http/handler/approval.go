package handler

import (
	"context"

	approvalapp "github.com/bizops/ledger/internal/application/approval"
	"github.com/gin-gonic/gin"
)

// ApprovalHandler handles approval endpoints
type ApprovalHandler struct {
	BaseHandler
	approvalService *approvalapp.ApprovalService
}

// NewApprovalHandler creates a new ApprovalHandler
func NewApprovalHandler(approvalService *approvalapp.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

// Create godoc
// @ID           createApproval
// @Summary      Request an approval
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        request body approvalapp.CreateApprovalRequest true "Approval"
// @Success      201 {object} APIResponse[approvalapp.ApprovalResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /approvals [post]
func (h *ApprovalHandler) Create(c *gin.Context) {
	var req approvalapp.CreateApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := h.approvalService.Create(c.Request.Context(), req, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

type decideFunc func(context.Context, string, approvalapp.DecisionRequest, string) (*approvalapp.ApprovalResponse, error)

func (h *ApprovalHandler) decide(c *gin.Context, decide decideFunc) {
	var req approvalapp.DecisionRequest
	// remarks are optional, so an empty body is fine
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}
	resp, err := decide(c.Request.Context(), c.Param("id"), req, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Approve godoc
// @ID           approveApproval
// @Summary      Approve a pending approval
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        id      path string                      true  "Approval ID"
// @Param        request body approvalapp.DecisionRequest false "Remarks"
// @Success      200 {object} APIResponse[approvalapp.ApprovalResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /approvals/{id}/approve [post]
func (h *ApprovalHandler) Approve(c *gin.Context) {
	h.decide(c, h.approvalService.Approve)
}

// Reject godoc
// @ID           rejectApproval
// @Summary      Reject a pending approval
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        id      path string                      true  "Approval ID"
// @Param        request body approvalapp.DecisionRequest false "Remarks"
// @Success      200 {object} APIResponse[approvalapp.ApprovalResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /approvals/{id}/reject [post]
func (h *ApprovalHandler) Reject(c *gin.Context) {
	h.decide(c, h.approvalService.Reject)
}

// Get godoc
// @ID           getApproval
// @Summary      Get an approval
// @Tags         approvals
// @Produce      json
// @Param        id path string true "Approval ID"
// @Success      200 {object} APIResponse[approvalapp.ApprovalResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /approvals/{id} [get]
func (h *ApprovalHandler) Get(c *gin.Context) {
	resp, err := h.approvalService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
