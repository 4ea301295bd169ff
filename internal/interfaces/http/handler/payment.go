package handler

import (
	"context"

	paymentapp "github.com/bizops/ledger/internal/application/payment"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles vendor and customer payment record endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *paymentapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *paymentapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type createPaymentFunc func(context.Context, paymentapp.CreatePaymentRequest, string) (*paymentapp.PaymentResponse, error)

func (h *PaymentHandler) create(c *gin.Context, create createPaymentFunc) {
	var req paymentapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := create(c.Request.Context(), req, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// CreateVendor godoc
// @ID           createVendorPayment
// @Summary      Open a vendor payment record
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body paymentapp.CreatePaymentRequest true "Payment record"
// @Success      201 {object} APIResponse[paymentapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/vendor [post]
func (h *PaymentHandler) CreateVendor(c *gin.Context) {
	h.create(c, h.paymentService.CreateVendor)
}

// CreateCustomer godoc
// @ID           createCustomerPayment
// @Summary      Open a customer payment record
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body paymentapp.CreatePaymentRequest true "Payment record"
// @Success      201 {object} APIResponse[paymentapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/customer [post]
func (h *PaymentHandler) CreateCustomer(c *gin.Context) {
	h.create(c, h.paymentService.CreateCustomer)
}

// Get godoc
// @ID           getPayment
// @Summary      Get a payment record
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" example(VEN_PAY-00001)
// @Success      200 {object} APIResponse[paymentapp.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	resp, err := h.paymentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
