// Package payment models student payments, transaction fees and receipts.
package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "en_attente"
	StatusComplete  Status = "complete"
	StatusFailed    Status = "échoué"
	StatusRefunded  Status = "remboursé"
	DefaultCurrency        = "EUR"
)

var Statuses = []string{string(StatusPending), string(StatusComplete), string(StatusFailed), string(StatusRefunded)}

type Type string

const (
	TypeTuition     Type = "frais_scolarite"
	TypeApplication Type = "frais_dossier"
	TypeDiploma     Type = "frais_diplome"
	TypeLibrary     Type = "frais_bibliotheque"
	TypeOther       Type = "autres"
)

// TypeInfo describes a payment type on receipts.
type TypeInfo struct {
	Name        string `json:"type"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

var typeInfos = map[Type]TypeInfo{
	TypeTuition:     {"Frais de scolarité", "Paiement des frais de scolarité", "tuition"},
	TypeApplication: {"Frais de dossier", "Frais de dossier d'admission", "admission"},
	TypeDiploma:     {"Frais de diplôme", "Frais d'édition et d'envoi du diplôme", "certificate"},
	TypeLibrary:     {"Frais de bibliothèque", "Abonnement annuel à la bibliothèque", "library"},
	TypeOther:       {"Autres frais", "Autres frais divers", "other"},
}

// Info returns the receipt description of t, falling back to "autres".
func (t Type) Info() TypeInfo {
	if info, ok := typeInfos[t]; ok {
		return info
	}
	return typeInfos[TypeOther]
}

type Method string

const (
	MethodCard         Method = "card"
	MethodMobile       Method = "mobile"
	MethodBankTransfer Method = "bank_transfer"
	MethodCash         Method = "cash"
)

// Label is the display name of the method.
func (m Method) Label() string {
	switch m {
	case MethodCard:
		return "Carte bancaire"
	case MethodMobile:
		return "Mobile money"
	case MethodBankTransfer:
		return "Virement bancaire"
	case MethodCash:
		return "Espèces"
	default:
		return "Non spécifié"
	}
}

type Payment struct {
	ID            int64           `json:"id" db:"id"`
	UserID        int64           `json:"user_id" db:"user_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	PaymentType   Type            `json:"payment_type" db:"payment_type"`
	PaymentMethod *Method         `json:"payment_method" db:"payment_method"`
	TransactionID *string         `json:"transaction_id" db:"transaction_id"`
	Status        Status          `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// Method returns the payment method, defaulting to card.
func (p *Payment) Method() Method {
	if p.PaymentMethod == nil || *p.PaymentMethod == "" {
		return MethodCard
	}
	return *p.PaymentMethod
}

// MonthBucket aggregates payments created in one calendar month.
type MonthBucket struct {
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// DailyTotal is one day of the monthly summary.
type DailyTotal struct {
	Day   time.Time       `json:"day" db:"day"`
	Count int64           `json:"count" db:"count"`
	Total decimal.Decimal `json:"total" db:"total"`
}

// MonthlyRow is the raw per-month aggregate read from the database.
type MonthlyRow struct {
	Month  string          `db:"month"`
	Count  int64           `db:"count"`
	Amount decimal.Decimal `db:"amount"`
}

type CurrentMonth struct {
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type Stats struct {
	TotalAmount    decimal.Decimal        `json:"totalAmount"`
	TotalCount     int64                  `json:"totalCount"`
	ByStatus       map[string]int64       `json:"byStatus"`
	ByPaymentType  map[string]int64       `json:"byPaymentType"`
	ByMonth        map[string]MonthBucket `json:"byMonth"`
	CurrentMonth   CurrentMonth           `json:"currentMonth"`
	MonthlyAverage decimal.Decimal        `json:"monthlyAverage"`
}

// MonthlyAverage divides the completed total by the number of months that
// saw at least one payment.
func MonthlyAverage(total decimal.Decimal, months int) decimal.Decimal {
	if months == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(months))).Round(2)
}
