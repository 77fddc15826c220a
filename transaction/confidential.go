package transaction

import (
	"bytes"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	commitmentPrefixEven = byte(8)
	commitmentPrefixOdd  = byte(9)
	noncePrefixEven      = byte(2)
	noncePrefixOdd       = byte(3)
)

// ConfidentialValue is the amount carried by a transaction output. It is
// either explicit, with a plaintext Amount, or blinded, with a Pedersen
// commitment, the ephemeral pubkey used for the ECDH nonce and a range
// proof. A populated commitment is the oracle for which of the two forms
// is active; the blinding operation always populates all three blinded
// fields together.
type ConfidentialValue struct {
	Amount          int64
	Commitment      []byte
	NonceCommitment []byte
	RangeProof      []byte
}

// NewExplicitValue returns a value carrying a plaintext amount.
func NewExplicitValue(amount int64) ConfidentialValue {
	return ConfidentialValue{Amount: amount}
}

// IsExplicit reports whether the value is still a plaintext amount.
func (v *ConfidentialValue) IsExplicit() bool {
	return len(v.Commitment) == 0
}

// Equal reports whether two values are byte-identical.
func (v *ConfidentialValue) Equal(other *ConfidentialValue) bool {
	return v.Amount == other.Amount &&
		bytes.Equal(v.Commitment, other.Commitment) &&
		bytes.Equal(v.NonceCommitment, other.NonceCommitment) &&
		bytes.Equal(v.RangeProof, other.RangeProof)
}

// RecipientKey is the compressed public key an output is blinded towards.
// An empty or malformed key on a still-explicit output means the output
// is left as is.
type RecipientKey []byte

// IsValid reports whether the key parses as a point on the curve.
func (k RecipientKey) IsValid() bool {
	if len(k) != NonceCommitmentLength {
		return false
	}
	_, err := secp256k1.ParsePubKey(k)
	return err == nil
}
