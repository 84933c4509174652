// Package documents renders shipping labels and reads recipient details out
// of free-text invoice notes.
package documents

import (
	"context"
	"regexp"
	"strings"

	"fulfillment/internal/core/domain/model/order"
)

var (
	nameLine    = regexp.MustCompile(`(?im)^\s*(?:nombre|name|cliente|recipient)\s*[:=-]\s*(.+)$`)
	phoneLine   = regexp.MustCompile(`(?im)^\s*(?:tel(?:[eé]fono)?|cel(?:ular)?|phone|m[oó]vil)\s*[:=-]\s*(.+)$`)
	addressLine = regexp.MustCompile(`(?im)^\s*(?:direcci[oó]n|dir|address)\s*[:=-]\s*(.+)$`)
	cityLine    = regexp.MustCompile(`(?im)^\s*(?:ciudad|city|municipio)\s*[:=-]\s*(.+)$`)

	// A bare mobile number anywhere in the text.
	phoneNumber = regexp.MustCompile(`(?:\+?57[\s-]?)?3\d{2}[\s-]?\d{3}[\s-]?\d{4}`)
	nonDigits   = regexp.MustCompile(`\D`)
)

// NotesExtractor finds "label: value" lines. Anything it cannot find is left
// empty; it never fails on unrecognized text.
type NotesExtractor struct{}

func NewNotesExtractor() NotesExtractor {
	return NotesExtractor{}
}

func (NotesExtractor) Extract(_ context.Context, notes string) (order.Recipient, error) {
	r := order.Recipient{
		Name:    firstMatch(nameLine, notes),
		Address: firstMatch(addressLine, notes),
		City:    firstMatch(cityLine, notes),
	}

	phone := firstMatch(phoneLine, notes)
	if phone == "" {
		phone = phoneNumber.FindString(notes)
	}
	r.Phone = normalizePhone(phone)
	return r, nil
}

func firstMatch(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func normalizePhone(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) == 12 && strings.HasPrefix(digits, "57") {
		digits = digits[2:]
	}
	return digits
}
