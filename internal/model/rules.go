package model

import "github.com/shopspring/decimal"

// Rules содержит параметры правил выдачи: срок, продление, штраф и сбор за продление.
type Rules struct {
	LoanDays      int
	ExtensionDays int
	FinePerDay    decimal.Decimal
	ExtensionFee  decimal.Decimal
}

// DefaultRules возвращает правила выдачи по умолчанию.
func DefaultRules() Rules {
	return Rules{
		LoanDays:      14,
		ExtensionDays: 7,
		FinePerDay:    decimal.RequireFromString("0.50"),
		ExtensionFee:  decimal.RequireFromString("2.50"),
	}
}
