package transaction

import (
	"slices"
	"strings"
)

// Mode is how money moved
type Mode string

const (
	ModeCash         Mode = "Cash"
	ModeBankTransfer Mode = "Bank Transfer"
	ModeCheque       Mode = "Cheque"
	ModeUPI          Mode = "UPI"
	ModeCard         Mode = "Card"
)

var submodes = map[Mode][]string{
	ModeCash:         {"Petty Cash", "Cash Counter"},
	ModeBankTransfer: {"NEFT", "RTGS", "IMPS", "Wire"},
	ModeCheque:       {"Account Payee", "Bearer"},
	ModeUPI:          {"UPI"},
	ModeCard:         {"Credit Card", "Debit Card"},
}

// IsValid checks if the mode is known
func (m Mode) IsValid() bool {
	_, ok := submodes[m]
	return ok
}

// HasSubmode reports whether submode belongs to m
func (m Mode) HasSubmode(submode string) bool {
	return slices.Contains(submodes[m], submode)
}

// Submodes returns the fixed submode set of m
func (m Mode) Submodes() []string {
	return slices.Clone(submodes[m])
}

// IsNA reports whether an account reference is the "not applicable"
// sentinel. Both spellings are in circulation.
func IsNA(account string) bool {
	switch strings.ToUpper(strings.TrimSpace(account)) {
	case "NA", "N/A":
		return true
	}
	return false
}
