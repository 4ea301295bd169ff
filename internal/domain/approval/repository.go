package approval

import "context"

// Repository defines the interface for approval persistence
type Repository interface {
	FindByApprovalID(ctx context.Context, approvalID string) (*Approval, error)
	Save(ctx context.Context, a *Approval) error
}
