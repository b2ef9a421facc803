package helius

import (
	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// IsMintAddress reports whether s decodes to a 32-byte Solana public
// key. Anything else is garbage in the source table and not worth a
// network round-trip.
func IsMintAddress(s string) bool {
	raw, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(raw) == 32
}

// IsOnCurve reports whether the address is a valid ed25519 point.
// Program-derived addresses (pump.fun pool vaults and the like) are
// off-curve; actual token mints sit on the curve.
func IsOnCurve(s string) bool {
	raw, err := base58.Decode(s)
	if err != nil || len(raw) != 32 {
		return false
	}
	_, err = new(edwards25519.Point).SetBytes(raw)
	return err == nil
}
