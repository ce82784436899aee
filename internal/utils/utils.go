package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrNoDigits is returned by ParseAmount when the input carries no digits at all
var ErrNoDigits = errors.New("amount contains no digits")

// ParseAmount extracts an integer amount (minor currency units) from a
// formatted price string by stripping every non-digit character, e.g.
// "150,000 IQD" -> 150000. This mirrors how the web client derives the
// numeric amount from a display price.
func ParseAmount(formatted string) (int64, error) {
	var b strings.Builder
	for _, r := range formatted {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, ErrNoDigits
	}
	return strconv.ParseInt(b.String(), 10, 64)
}

// FormatAmount renders an amount with thousands separators, e.g. 150000 -> "150,000"
func FormatAmount(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// FormatDate renders a timestamp the way payment dates are displayed and searched
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// IdempotencyKey derives the submission idempotency key from the submitting
// user, the purchased item, the amount and a 10-minute time window. Two
// submissions of the same purchase inside one window collide on the store's
// unique index and resolve to the same record.
func IdempotencyKey(userID, itemID string, amount int64, at time.Time) string {
	window := at.UTC().Truncate(10 * time.Minute).Unix()
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%d", userID, itemID, amount, window)))
	return hex.EncodeToString(sum[:])
}
