package types

// LiquidationType is the closed set of liquidation kinds. Periodic keeps the
// member active; exit deactivates the member and its users.
type LiquidationType string

const (
	LiquidationPeriodic LiquidationType = "periodic"
	LiquidationExit     LiquidationType = "exit"
)

func (t LiquidationType) Valid() bool {
	return t == LiquidationPeriodic || t == LiquidationExit
}

// Continues reports whether the member remains active after a liquidation of
// this type. It is derived from the type and never independently settable.
func (t LiquidationType) Continues() bool {
	return t == LiquidationPeriodic
}

// Label is the display label printed on receipts.
func (t LiquidationType) Label() string {
	switch t {
	case LiquidationPeriodic:
		return "Periódica"
	case LiquidationExit:
		return "Retiro"
	default:
		return string(t)
	}
}

type AccountKind = string

var (
	AccountSavings       AccountKind = "savings"
	AccountContributions AccountKind = "contributions"
	AccountSurplus       AccountKind = "surplus"
)

func AccountKinds() []AccountKind {
	return []AccountKind{AccountSavings, AccountContributions, AccountSurplus}
}

func ValidAccountKind(kind AccountKind) bool {
	for _, k := range AccountKinds() {
		if k == kind {
			return true
		}
	}

	return false
}

type OrderBy = string

var (
	OrderByAsc  OrderBy = "asc"
	OrderByDesc OrderBy = "desc"
)

type ReceiptKind = string

var (
	ReceiptLiquidation ReceiptKind = "liquidation"
	ReceiptDeposit     ReceiptKind = "deposit"
	ReceiptWithdrawal  ReceiptKind = "withdrawal"
)

type PayoutMethod = string

var (
	PayoutCash     PayoutMethod = "cash"
	PayoutTransfer PayoutMethod = "transfer"
	PayoutSinpe    PayoutMethod = "sinpe"
)

func ValidPayoutMethod(method PayoutMethod) bool {
	return method == PayoutCash || method == PayoutTransfer || method == PayoutSinpe
}
