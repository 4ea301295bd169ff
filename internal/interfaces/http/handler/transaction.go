package handler

import (
	"context"
	"strings"

	txnapp "github.com/bizops/ledger/internal/application/transaction"
	"github.com/bizops/ledger/internal/domain/transaction"
	"github.com/bizops/ledger/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles purchase, sale and internal transaction endpoints
type TransactionHandler struct {
	BaseHandler
	transactionService *txnapp.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *txnapp.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

type createTransactionFunc func(context.Context, txnapp.CreateTransactionRequest, string, string) (*txnapp.TransactionResponse, error)

func (h *TransactionHandler) create(c *gin.Context, create createTransactionFunc) {
	var req txnapp.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	key := strings.TrimSpace(c.GetHeader(middleware.IdempotencyKeyHeader))
	resp, err := create(c.Request.Context(), req, key, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// CreatePurchase godoc
// @ID           createPurchaseTransaction
// @Summary      Record a purchase
// @Description  Validates approval, vendor and payment record, then records the purchase and reconciles it (payment progress, asset creation) atomically
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string                          false "Client retry key"
// @Param        request         body   txnapp.CreateTransactionRequest true  "Purchase"
// @Success      201 {object} APIResponse[txnapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/purchase [post]
func (h *TransactionHandler) CreatePurchase(c *gin.Context) {
	h.create(c, h.transactionService.CreatePurchase)
}

// CreateSale godoc
// @ID           createSaleTransaction
// @Summary      Record a sale
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string                          false "Client retry key"
// @Param        request         body   txnapp.CreateTransactionRequest true  "Sale"
// @Success      201 {object} APIResponse[txnapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/sale [post]
func (h *TransactionHandler) CreateSale(c *gin.Context) {
	h.create(c, h.transactionService.CreateSale)
}

// CreateInternal godoc
// @ID           createInternalTransaction
// @Summary      Record an internal transaction
// @Description  Salary, liability repayment, refund, investment, maintenance or repair
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string                          false "Client retry key"
// @Param        request         body   txnapp.CreateTransactionRequest true  "Internal transaction"
// @Success      201 {object} APIResponse[txnapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/internal [post]
func (h *TransactionHandler) CreateInternal(c *gin.Context) {
	h.create(c, h.transactionService.CreateInternal)
}

// Get godoc
// @ID           getTransaction
// @Summary      Get a transaction
// @Tags         transactions
// @Produce      json
// @Param        kind path string true "purchase, sale or internal"
// @Param        id   path string true "Transaction ID" example(PUR_TXN-00001)
// @Success      200 {object} APIResponse[txnapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/{kind}/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	kind := transaction.Kind(c.Param("kind"))
	resp, err := h.transactionService.Get(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listTransactions
// @Summary      List transactions of one kind
// @Tags         transactions
// @Produce      json
// @Param        kind            path  string true  "purchase, sale or internal"
// @Param        status          query string false "Status"
// @Param        reference_type  query string false "Reference type"
// @Param        counterparty_id query string false "Vendor or customer"
// @Param        approval_id     query string false "Approval"
// @Param        from_date       query string false "From date (YYYY-MM-DD)"
// @Param        to_date         query string false "To date (YYYY-MM-DD)"
// @Param        page            query int    false "Page number" default(1)
// @Param        page_size       query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]txnapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/{kind} [get]
func (h *TransactionHandler) List(c *gin.Context) {
	var filter txnapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	paging(&filter.Page, &filter.PageSize)

	kind := transaction.Kind(c.Param("kind"))
	items, total, err := h.transactionService.List(c.Request.Context(), kind, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}
