package confidential

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	secp256k1 "github.com/vulpemventures/go-secp256k1-zkp"

	"github.com/altnet-labs/go-confidential/confutil"
	"github.com/altnet-labs/go-confidential/transaction"
)

// UnblindStatus reports the outcome of unblinding one output.
type UnblindStatus int

const (
	// UnblindFailed means the output is blinded but could not be
	// recovered with the given key. This is the ordinary outcome when
	// scanning outputs addressed to other parties.
	UnblindFailed UnblindStatus = iota

	// UnblindAlreadyExplicit means the output carries a plaintext amount.
	UnblindAlreadyExplicit

	// UnblindRecovered means amount and blinding factor were recovered.
	UnblindRecovered
)

// UnblindResult carries the payload of a successful or pass-through
// unblinding. BlindingFactor is 32 bytes when Status is UnblindRecovered
// and empty otherwise.
type UnblindResult struct {
	Status         UnblindStatus
	Amount         int64
	BlindingFactor []byte
}

// NonceHash derives the 32-byte symmetric nonce shared by blinder and
// recipient: the double SHA-256 of the ECDH point between the two keys.
// Both sides must call it with their private key and the other side's
// public key.
func (e *Engine) NonceHash(pubKey, privKey []byte) ([32]byte, error) {
	var nonce [32]byte

	_, publicKey, err := secp256k1.EcPubkeyParse(e.ctx, pubKey)
	if err != nil {
		return nonce, err
	}

	_, ecdh, err := secp256k1.Ecdh(e.ctx, publicKey, privKey)
	if err != nil {
		return nonce, err
	}

	copy(nonce[:], chainhash.DoubleHashB(ecdh))
	return nonce, nil
}

// UnblindOutput recovers the amount and blinding factor of a blinded
// output addressed to the given blinding private key. The output itself
// is never mutated. All recoverable failures collapse to UnblindFailed:
// an output not addressed to the key, a proof that fails rewinding, or a
// recovered amount outside the valid money range.
func (e *Engine) UnblindOutput(
	blindingPrivkey []byte, out *transaction.TxOutput,
) UnblindResult {
	e.mustBeLive()

	value := &out.Value
	if value.IsExplicit() {
		return UnblindResult{
			Status: UnblindAlreadyExplicit,
			Amount: value.Amount,
		}
	}

	nonce, err := e.NonceHash(value.NonceCommitment, blindingPrivkey)
	if err != nil {
		return UnblindResult{Status: UnblindFailed}
	}

	commit, err := secp256k1.CommitmentParse(e.ctx, value.Commitment)
	if err != nil {
		return UnblindResult{Status: UnblindFailed}
	}

	rewind, amount, _, _, _, err := secp256k1.RangeProofRewind(
		e.ctx, commit, value.RangeProof, nonce, nil, e.valueGen,
	)
	if err != nil {
		return UnblindResult{Status: UnblindFailed}
	}

	// The proof may be cryptographically valid yet claim an amount the
	// chain's policy would never accept.
	if amount > uint64(confutil.MaxMoney) || !confutil.MoneyRange(int64(amount)) {
		return UnblindResult{Status: UnblindFailed}
	}

	return UnblindResult{
		Status:         UnblindRecovered,
		Amount:         int64(amount),
		BlindingFactor: rewind[:],
	}
}

// UnblindOutput unblinds the output with the process-wide engine.
func UnblindOutput(
	blindingPrivkey []byte, out *transaction.TxOutput,
) UnblindResult {
	return Current().UnblindOutput(blindingPrivkey, out)
}
