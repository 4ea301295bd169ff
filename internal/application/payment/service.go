package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/bizops/ledger/internal/application/scope"
	"github.com/bizops/ledger/internal/domain/payment"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/domain/shared/valueobject"
	"github.com/bizops/ledger/internal/infrastructure/logger"
	"github.com/bizops/ledger/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService opens vendor and customer payment records. Their paid
// amounts move only through purchase and sale transactions.
type PaymentService struct {
	repos   scope.Repositories
	txScope scope.TransactionScope
	metrics *telemetry.LedgerMetrics
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(repos scope.Repositories, txScope scope.TransactionScope) *PaymentService {
	return &PaymentService{repos: repos, txScope: txScope}
}

// SetMetrics sets the ledger metrics collector
func (s *PaymentService) SetMetrics(m *telemetry.LedgerMetrics) {
	s.metrics = m
}

// CreateVendor opens a VEN_PAY- record owed to a vendor
func (s *PaymentService) CreateVendor(ctx context.Context, req CreatePaymentRequest, by string) (*PaymentResponse, error) {
	return s.create(ctx, payment.DirectionVendor, req, by)
}

// CreateCustomer opens a CUST-PAY- record owed by a customer
func (s *PaymentService) CreateCustomer(ctx context.Context, req CreatePaymentRequest, by string) (*PaymentResponse, error) {
	return s.create(ctx, payment.DirectionCustomer, req, by)
}

func (s *PaymentService) create(ctx context.Context, direction payment.Direction, req CreatePaymentRequest, by string) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "Create")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrCounterpartyID, req.CounterpartyID)

	domainReq := payment.Request{
		Direction:      direction,
		CounterpartyID: strings.TrimSpace(req.CounterpartyID),
		Amount:         req.Amount,
		Currency:       valueobject.Currency(strings.ToUpper(req.Currency)),
		ExchangeRate:   decimal.NewFromInt(1),
		Description:    req.Description,
		DueDate:        req.DueDate,
	}
	if domainReq.Currency == "" {
		domainReq.Currency = valueobject.DefaultCurrency
	}
	if req.ExchangeRate != nil {
		domainReq.ExchangeRate = *req.ExchangeRate
	}
	if err := domainReq.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkCounterparty(ctx, direction, domainReq.CounterpartyID); err != nil {
		return nil, err
	}

	var p *payment.Payment
	err := s.txScope.Execute(ctx, func(repos scope.Repositories) error {
		paymentID, err := scope.NextCode(ctx, repos, s.metrics, direction.Kind())
		if err != nil {
			return err
		}
		p, err = payment.NewPayment(paymentID, domainReq, by)
		if err != nil {
			return err
		}
		return repos.Payments().Save(ctx, p)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrPaymentID, p.PaymentID)
	logger.L(ctx).Info("payment record created",
		zap.String("payment_id", p.PaymentID),
		zap.String("direction", string(direction)),
		zap.String("amount_local", p.AmountLocal.StringFixed(2)),
	)
	resp := ToPaymentResponse(p)
	return &resp, nil
}

func (s *PaymentService) checkCounterparty(ctx context.Context, direction payment.Direction, id string) error {
	dir := s.repos.Directory()
	exists, kind := dir.CustomerExists, "Customer"
	if direction == payment.DirectionVendor {
		exists, kind = dir.VendorExists, "Vendor"
	}
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewNotFoundError(fmt.Sprintf("%s %s", kind, id))
	}
	return nil
}

// Get returns a payment record by code
func (s *PaymentService) Get(ctx context.Context, paymentID string) (*PaymentResponse, error) {
	p, err := s.repos.Payments().FindByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(p)
	return &resp, nil
}
