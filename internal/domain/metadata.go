package domain

// TokenMetadata is the on-chain metadata resolved for a token address
// by the external metadata service. A trade whose token resolves with
// an empty Symbol or Name is dropped, not retried.
type TokenMetadata struct {
	Symbol string
	Name   string
}

// Resolved reports whether both fields came back non-empty.
func (m TokenMetadata) Resolved() bool {
	return m.Symbol != "" && m.Name != ""
}
