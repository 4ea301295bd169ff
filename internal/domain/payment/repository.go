package payment

import "context"

// Repository defines the interface for payment record persistence
type Repository interface {
	FindByPaymentID(ctx context.Context, paymentID string) (*Payment, error)

	// FindByPaymentIDForUpdate locks the row until the surrounding transaction ends
	FindByPaymentIDForUpdate(ctx context.Context, paymentID string) (*Payment, error)

	Save(ctx context.Context, p *Payment) error
}
