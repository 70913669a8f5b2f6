package receipts

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/coopetico/coopex/controllers/entities"
	"github.com/coopetico/coopex/types"
)

const line = "================================================"
const rule = "------------------------------------------------"

// ReceiptData is everything the printable liquidation receipt shows. Notes,
// ReceiptNumber and LiquidationID are optional; absent values render as an
// omitted section, never as an error.
type ReceiptData struct {
	CooperativeName string
	MemberCode      string
	MemberName      string
	Type            types.LiquidationType
	Savings         decimal.Decimal
	Contributions   decimal.Decimal
	Surplus         decimal.Decimal
	Total           decimal.Decimal
	Notes           string
	ReceiptNumber   string
	LiquidationID   string
	IssuedAt        time.Time
	CurrencySymbol  string
}

// FromLiquidation builds the printable data for an executed liquidation.
func FromLiquidation(liquidation entities.LiquidationEntity, member_code, member_name string) ReceiptData {
	var liquidation_id string
	if liquidation.UUID != uuid.Nil {
		liquidation_id = liquidation.UUID.String()
	}

	return ReceiptData{
		MemberCode:    member_code,
		MemberName:    member_name,
		Type:          liquidation.Type,
		Savings:       liquidation.Savings,
		Contributions: liquidation.Contributions,
		Surplus:       liquidation.Surplus,
		Total:         liquidation.Total,
		Notes:         liquidation.Notes,
		ReceiptNumber: liquidation.ReceiptNumber,
		LiquidationID: liquidation_id,
		IssuedAt:      liquidation.CreatedAt,
	}
}

// Render formats a human-readable liquidation receipt. Pure formatting, no
// business logic.
func Render(data ReceiptData) string {
	symbol := data.CurrencySymbol
	if len(symbol) == 0 {
		symbol = DefaultSymbol
	}

	issued_at := data.IssuedAt
	if issued_at.IsZero() {
		issued_at = time.Now()
	}

	var b strings.Builder

	b.WriteString(line + "\n")
	if len(data.CooperativeName) > 0 {
		b.WriteString(center(data.CooperativeName) + "\n")
	}
	b.WriteString(center("RECIBO DE LIQUIDACIÓN") + "\n")
	b.WriteString(line + "\n")

	if len(data.ReceiptNumber) > 0 {
		b.WriteString(fmt.Sprintf("%-14s%s\n", "Recibo N°:", data.ReceiptNumber))
	}
	if len(data.LiquidationID) > 0 {
		b.WriteString(fmt.Sprintf("%-14s%s\n", "Liquidación:", data.LiquidationID))
	}
	b.WriteString(fmt.Sprintf("%-14s%s\n", "Fecha:", issued_at.Format("02/01/2006 15:04")))
	b.WriteString(rule + "\n")

	member := strings.TrimSpace(data.MemberCode + "  " + data.MemberName)
	if len(member) > 0 {
		b.WriteString(fmt.Sprintf("%-14s%s\n", "Miembro:", member))
	}
	b.WriteString(fmt.Sprintf("%-14s%s\n", "Tipo:", data.Type.Label()))
	b.WriteString(rule + "\n")

	b.WriteString(amountRow("Ahorros:", symbol, data.Savings))
	b.WriteString(amountRow("Aportaciones:", symbol, data.Contributions))
	b.WriteString(amountRow("Excedentes:", symbol, data.Surplus))
	b.WriteString(amountRow("TOTAL:", symbol, data.Total))

	if len(data.Notes) > 0 {
		b.WriteString(rule + "\n")
		b.WriteString("Notas: " + data.Notes + "\n")
	}

	b.WriteString(line + "\n")

	return b.String()
}

func amountRow(label, symbol string, amount decimal.Decimal) string {
	return fmt.Sprintf("%-14s%18s\n", label, FormatAmount(symbol, amount))
}

func center(s string) string {
	width := len(line)
	pad := (width - len([]rune(s))) / 2
	if pad < 0 {
		pad = 0
	}

	return strings.Repeat(" ", pad) + s
}
