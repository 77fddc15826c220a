package confidential

import (
	"crypto/rand"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	secp256k1 "github.com/vulpemventures/go-secp256k1-zkp"

	"github.com/altnet-labs/go-confidential/transaction"
)

// BlindingFactorLength is the size of a blinding factor scalar.
const BlindingFactorLength = 32

// RandomNumberGenerator draws the 32 random bytes used for fresh blinding
// factors. Tests inject a deterministic one.
type RandomNumberGenerator func() ([]byte, error)

// Range proof policy bounds. Values outside are clamped, matching the
// primitive layer's accepted ranges.
const (
	DefaultRangeProofExp     = 0
	DefaultRangeProofMinBits = 32

	minRangeProofExp  = -1
	maxRangeProofExp  = 18
	minRangeProofBits = 1
	maxRangeProofBits = 51
)

// RangeProofOpts tunes the precision/size trade-off of generated range
// proofs. The zero value is not the default: pass nil for defaults.
type RangeProofOpts struct {
	Exp     int
	MinBits int
}

func (o *RangeProofOpts) normalized() (exp, minBits int) {
	exp, minBits = DefaultRangeProofExp, DefaultRangeProofMinBits
	if o != nil {
		exp, minBits = o.Exp, o.MinBits
	}
	exp = clamp(exp, minRangeProofExp, maxRangeProofExp)
	minBits = clamp(minBits, minRangeProofBits, maxRangeProofBits)
	return
}

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// BlindTransactionOutputs blinds tx with the process-wide engine, the
// system random source and the default range proof policy.
func BlindTransactionOutputs(
	tx *transaction.Transaction,
	inputBlinds, outputBlinds [][]byte,
	outputPubkeys []transaction.RecipientKey,
) {
	b := &Blinder{engine: Current(), rng: generateRandomNumber}
	b.BlindTransactionOutputs(tx, inputBlinds, outputBlinds, outputPubkeys)
}

// BlindTransactionOutputs blinds every output of tx that is still
// explicit and has a valid recipient key, in output order: it assigns
// each a blinding factor (fresh random bytes, except the last one which
// is computed so that all blinding factors of the transaction cancel
// out), a Pedersen commitment to its amount, a fresh ephemeral pubkey and
// a range proof rewindable by the recipient. Outputs already blinded, or
// explicit without a valid recipient key, are left untouched.
//
// For a transaction with N inputs and M outputs, inputBlinds must have N
// entries and outputBlinds and outputPubkeys M entries. An entry is
// either empty or exactly 32 bytes, and outputBlinds[i] must be non-empty
// exactly when output i is already blinded. Violating any of this, or any
// primitive failure while blinding, panics: on this side the caller
// controls every input, so a failure is a broken invariant rather than
// adversarial data.
func (b *Blinder) BlindTransactionOutputs(
	tx *transaction.Transaction,
	inputBlinds, outputBlinds [][]byte,
	outputPubkeys []transaction.RecipientKey,
) {
	e := b.engine
	e.mustBeLive()

	if len(inputBlinds) != len(tx.Inputs) {
		panic("confidential: input blinding factors do not match the number of inputs")
	}
	if len(outputBlinds) != len(tx.Outputs) {
		panic("confidential: output blinding factors do not match the number of outputs")
	}
	if len(outputPubkeys) != len(tx.Outputs) {
		panic("confidential: recipient keys do not match the number of outputs")
	}

	// Known factors, inputs first. The balancing call below needs to know
	// how many leading entries count as positive.
	blinds := make([][]byte, 0, len(tx.Inputs)+len(tx.Outputs))

	nBlindsIn := 0
	for i, blind := range inputBlinds {
		if len(blind) == 0 {
			continue
		}
		if len(blind) != BlindingFactorLength {
			panic(fmt.Sprintf("confidential: input %d: malformed blinding factor", i))
		}
		blinds = append(blinds, blind)
		nBlindsIn++
	}

	nBlindsOut := 0
	nToBlind := 0
	for i, out := range tx.Outputs {
		if (len(outputBlinds[i]) != 0) == out.Value.IsExplicit() {
			panic(fmt.Sprintf(
				"confidential: output %d: blinding factor does not match the output's blinded state", i,
			))
		}
		if len(outputBlinds[i]) != 0 {
			if len(outputBlinds[i]) != BlindingFactorLength {
				panic(fmt.Sprintf("confidential: output %d: malformed blinding factor", i))
			}
			blinds = append(blinds, outputBlinds[i])
			nBlindsOut++
			continue
		}
		if outputPubkeys[i].IsValid() {
			nToBlind++
		}
	}

	// A blinded input can only cancel out against at least one blinded
	// output; without one the balance equation is unsatisfiable.
	if nBlindsIn > 0 && nBlindsOut+nToBlind == 0 {
		panic("confidential: no blindable output to balance the blinded inputs")
	}

	nBlinded := 0
	for i, out := range tx.Outputs {
		if !out.Value.IsExplicit() || !outputPubkeys[i].IsValid() {
			continue
		}

		var blind []byte
		if nBlinded+1 == nToBlind {
			// Last output to blind: its factor is the unique scalar
			// zeroing the signed sum over all the others.
			blind = e.finalBlindingFactor(blinds, nBlindsIn)
		} else {
			var err error
			blind, err = b.rng()
			if err != nil {
				panic("confidential: drawing blinding factor: " + err.Error())
			}
			if len(blind) != BlindingFactorLength {
				panic("confidential: rng returned a malformed blinding factor")
			}
		}
		blinds = append(blinds, blind)
		nBlinded++

		amount := out.Value.Amount
		commit, err := secp256k1.Commit(
			e.ctx, blind, uint64(amount), e.valueGen,
		)
		if err != nil {
			panic(fmt.Sprintf("confidential: output %d: commitment failed: %s", i, err))
		}
		commitment := commit.Bytes()

		ephemeralPrivKey, err := btcec.NewPrivateKey()
		if err != nil {
			panic("confidential: generating ephemeral key: " + err.Error())
		}

		nonce, err := e.NonceHash(
			outputPubkeys[i], ephemeralPrivKey.Serialize(),
		)
		if err != nil {
			panic(fmt.Sprintf("confidential: output %d: ecdh nonce failed: %s", i, err))
		}

		var blind32 [32]byte
		copy(blind32[:], blind)
		exp, minBits := b.rangeProofOpts.normalized()
		// TODO: smarter min value selection than a fixed 0.
		proof, err := secp256k1.RangeProofSign(
			e.ctx, 0, commit, blind32, nonce, exp, minBits,
			uint64(amount), nil, nil, e.valueGen,
		)
		if err != nil {
			panic(fmt.Sprintf("confidential: output %d: range proof failed: %s", i, err))
		}

		// All three fields together, so no output is ever half blinded.
		out.Value.Commitment = commitment[:]
		out.Value.NonceCommitment = ephemeralPrivKey.PubKey().SerializeCompressed()
		out.Value.RangeProof = proof
	}
}

// finalBlindingFactor returns the factor that makes the signed sum over
// blinds, plus itself as a negative, equal zero. The first nPositive
// entries count as positive (inputs), the rest as negative (outputs).
func (e *Engine) finalBlindingFactor(blinds [][]byte, nPositive int) []byte {
	// The generator-blind sum primitive with all generator blinds pinned
	// to zero degenerates to the plain blind sum: values and generator
	// terms drop out entirely.
	n := len(blinds) + 1
	values := make([]uint64, n)
	generatorBlinds := make([][]byte, n)
	for i := range generatorBlinds {
		generatorBlinds[i] = Zero
	}

	sum, err := secp256k1.BlindGeneratorBlindSum(
		e.ctx, values, generatorBlinds, blinds, nPositive,
	)
	if err != nil {
		panic("confidential: balancing blind sum failed: " + err.Error())
	}
	return sum[:]
}

func generateRandomNumber() ([]byte, error) {
	b := make([]byte, BlindingFactorLength)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
