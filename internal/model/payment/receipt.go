package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReceiptStudent struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ReceiptDetails struct {
	TypeInfo
	Method string `json:"method"`
}

type ReceiptAmounts struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Fee      decimal.Decimal `json:"fee"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

// Institution identifies the issuer printed on receipts.
type Institution struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Website string `json:"website,omitempty"`
}

type Receipt struct {
	ReceiptNumber  string         `json:"receipt_number"`
	TransactionID  string         `json:"transaction_id"`
	Date           time.Time      `json:"date"`
	DateFormatted  string         `json:"date_formatted"`
	Student        ReceiptStudent `json:"student"`
	PaymentDetails ReceiptDetails `json:"payment_details"`
	Amounts        ReceiptAmounts `json:"amounts"`
	Status         Status         `json:"status"`
	Institution    Institution    `json:"institution"`
}

// BuildReceipt assembles the receipt of p for its payer.
func BuildReceipt(p *Payment, student ReceiptStudent, institution Institution, now time.Time) Receipt {
	quote := CalculateFees(p.Amount, p.Method(), DefaultCurrency)

	txn := ""
	if p.TransactionID != nil {
		txn = *p.TransactionID
	}

	return Receipt{
		ReceiptNumber: NewReference(p.UserID, p.Amount, p.PaymentType, now),
		TransactionID: txn,
		Date:          p.CreatedAt,
		DateFormatted: p.CreatedAt.Format("02/01/2006"),
		Student:       student,
		PaymentDetails: ReceiptDetails{
			TypeInfo: p.PaymentType.Info(),
			Method:   p.Method().Label(),
		},
		Amounts: ReceiptAmounts{
			Subtotal: quote.Amount,
			Fee:      quote.Fee,
			Total:    quote.Total,
			Currency: quote.Currency,
		},
		Status:      p.Status,
		Institution: institution,
	}
}
