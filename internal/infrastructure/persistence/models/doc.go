// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities carry no GORM tags
// 2. Persistence models contain all GORM annotations and table mappings
// 3. ToDomain / FromDomain mappers convert between the two
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: shared columns (id, timestamps, version, created_by)
// - counter.go: sequence counters
// - asset.go: assets with maintenance and depreciation child rows
// - liability.go, payment.go, approval.go, transaction.go: ledger records
// - masterdata.go: read-only master data tables
package models
