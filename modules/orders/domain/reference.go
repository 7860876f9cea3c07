package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewPaymentReference returns an opaque token identifying a payment
// attempt. The format carries no meaning beyond uniqueness; callers must
// not parse it.
func NewPaymentReference() string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("PAY_%d_%s", time.Now().UTC().UnixMilli(), token[:10])
}
