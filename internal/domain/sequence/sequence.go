// Package sequence defines the human-readable identifier namespaces of the
// ledger and the allocator contract that issues their numbers.
package sequence

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Kind is one identifier namespace: a persistent counter and the prefix its
// codes are printed with.
type Kind struct {
	Counter string
	Prefix  string
}

var (
	Asset               = Kind{Counter: "asset_Id", Prefix: "AST"}
	Liability           = Kind{Counter: "liability_Id", Prefix: "LIAB"}
	Disposal            = Kind{Counter: "disposal_Id", Prefix: "DISP"}
	Maintenance         = Kind{Counter: "maintenance_Id", Prefix: "MAINT"}
	Depreciation        = Kind{Counter: "depreciation_Id", Prefix: "DEP"}
	PurchaseTransaction = Kind{Counter: "purchase_transaction", Prefix: "PUR_TXN"}
	SaleTransaction     = Kind{Counter: "sale_transaction", Prefix: "SAL"}
	InternalTransaction = Kind{Counter: "internal_transaction", Prefix: "INT_TXN"}
	Reference           = Kind{Counter: "reference_Id", Prefix: "REF"}
	VendorPayment       = Kind{Counter: "vendor_payment", Prefix: "VEN_PAY"}
	CustomerPayment     = Kind{Counter: "customer_payment", Prefix: "CUST-PAY"}
	Approval            = Kind{Counter: "approval_Id", Prefix: "APR"}
)

// PurchaseBatchCounter numbers asset batches created from one purchase.
const PurchaseBatchCounter = "purchase_batch"

// Width is the minimum number of digits in a formatted code.
const Width = 5

// Allocator hands out strictly increasing values per counter name.
// No two callers ever observe the same value for the same counter, and a
// counter is created on first use starting at 1.
type Allocator interface {
	NextValue(ctx context.Context, counter string) (int64, error)
}

// Format renders PREFIX-NNNNN. Values wider than Width are not truncated.
func Format(prefix string, n int64) string {
	return fmt.Sprintf("%s-%0*d", prefix, Width, n)
}

// NextCode allocates the next value for kind and formats it.
func NextCode(ctx context.Context, a Allocator, kind Kind) (string, error) {
	n, err := a.NextValue(ctx, kind.Counter)
	if err != nil {
		return "", fmt.Errorf("allocate %s: %w", kind.Counter, err)
	}
	return Format(kind.Prefix, n), nil
}

// Numeric returns the numeric part of a code produced by Format.
func Numeric(code string) (int64, bool) {
	i := strings.LastIndex(code, "-")
	if i < 0 || i == len(code)-1 {
		return 0, false
	}
	n, err := strconv.ParseInt(code[i+1:], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Suffix returns the digits after the last dash, as printed.
func Suffix(code string) string {
	i := strings.LastIndex(code, "-")
	if i < 0 {
		return ""
	}
	return code[i+1:]
}

// HasPrefix reports whether code was issued for kind.
func (k Kind) HasPrefix(code string) bool {
	return strings.HasPrefix(code, k.Prefix+"-")
}
