package models

// Reference ties a ledger operation or receipt back to the record that caused
// it (a liquidation, deposit or withdrawal).
type Reference struct {
	ID   int64
	Type string
}
