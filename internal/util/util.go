// Package util contains small shared helpers with no domain dependencies.
package util

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
)

// ObfuscateID produces the shareable form of an external account id. It is a
// reversible base64 transform intended only to keep raw account ids out of
// shareable URLs; it is not encryption and must never be treated as a
// security boundary.
func ObfuscateID(id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id))
}

// DeobfuscateID reverses ObfuscateID.
func DeobfuscateID(shareID string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(shareID)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode share id")
	}

	return string(raw), nil
}

// ExtractCustomerIDFromURL returns the trailing path segment of a payment-rail
// customer reference URL, which is the customer's id.
func ExtractCustomerIDFromURL(customerURL string) string {
	trimmed := strings.TrimRight(customerURL, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return trimmed
	}

	return trimmed[idx+1:]
}
