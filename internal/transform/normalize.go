// Package transform converts raw source rows into typed, fingerprinted
// destination rows. Every function here is pure: no I/O, no clock.
package transform

import "strings"

// normNumeric maps the bot's empty-string numerics to NULL. An empty
// string passed through to a DECIMAL column fails at write time; this
// is the normalization that prevents exactly that.
func normNumeric(v *string) *string {
	if v == nil {
		return nil
	}
	if strings.TrimSpace(*v) == "" {
		return nil
	}
	return v
}
