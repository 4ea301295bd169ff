package persistence

import (
	"strings"

	"github.com/bizops/ledger/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// AssetSortFields contains allowed sort fields for assets
var AssetSortFields = map[string]bool{
	"created_at":        true,
	"updated_at":        true,
	"asset_id":          true,
	"name":              true,
	"type":              true,
	"status":            true,
	"assignment_status": true,
	"purchase_cost":     true,
	"purchase_date":     true,
}

// LiabilitySortFields contains allowed sort fields for liabilities
var LiabilitySortFields = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"liability_id": true,
	"name":         true,
	"principal":    true,
	"start_date":   true,
	"due_date":     true,
	"paid_amount":  true,
}

// TransactionSortFields contains allowed sort fields for transactions
var TransactionSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"transaction_id": true,
	"date":           true,
	"amount":         true,
	"status":         true,
	"reference_type": true,
}

// paginate applies whitelisted ordering and the page window. Count must be
// taken before calling it.
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}
