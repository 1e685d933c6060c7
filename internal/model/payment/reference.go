package payment

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NewTransactionID returns TXN_<base36 unix ms>_<8 random hex>, upper-cased.
func NewTransactionID(now time.Time) (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	id := fmt.Sprintf("TXN_%s_%s", strconv.FormatInt(now.UnixMilli(), 36), hex.EncodeToString(buf))
	return strings.ToUpper(id), nil
}

// NewReference returns the receipt number PAY<yymmdd><8 hex>. The hex part
// is derived from the payer, the amount, the type and the time.
func NewReference(userID int64, amount decimal.Decimal, t Type, now time.Time) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%d%s%s%d", userID, amount.String(), t, now.UnixNano())))
	hash := strings.ToUpper(hex.EncodeToString(sum[:])[:8])
	return "PAY" + now.Format("060102") + hash
}
