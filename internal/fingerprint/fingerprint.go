// Package fingerprint computes content hashes used as natural dedup
// keys for processed rows.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Key is the column that stores a row's fingerprint. It is always
// excluded from its own hash input so re-hashing an already-hashed
// row yields the same value.
const Key = "row_hash"

// Hash computes a deterministic SHA256 over the field map,
// independent of insertion order. Fields are serialized as
// "name=value" pairs joined by "|" in ascending name order.
// Returns hex-encoded hash (64 characters).
func Hash(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if name == Key {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(fields[name])
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Formatting helpers for building hash inputs. NULLs and absent
// values both render as the empty string so a missing field and an
// explicit NULL fingerprint identically.

// String renders a nullable text field.
func String(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// Float renders a float without trailing zeros.
func Float(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Int renders a nullable integer field.
func Int(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

// ID renders a row identifier.
func ID(v int64) string {
	return strconv.FormatInt(v, 10)
}

// Time renders a nullable timestamp in UTC RFC3339.
func Time(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.UTC().Format(time.RFC3339Nano)
}

// Bool renders a nullable boolean field.
func Bool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}
