package confidential

import (
	"errors"

	"github.com/altnet-labs/go-confidential/blindkey"
	"github.com/altnet-labs/go-confidential/transaction"
)

var errNoScanningKeys = errors.New(
	"blinder has neither a master blinding key nor blinding private keys",
)

// Blinder binds an engine, a random source and a range proof policy
// together. The zero value is not usable, use NewBlinder.
type Blinder struct {
	engine         *Engine
	rng            RandomNumberGenerator
	rangeProofOpts *RangeProofOpts
	masterKey      *blindkey.Master
	blindingKeys   [][]byte
}

// BlinderOpts overrides the Blinder defaults. Nil fields keep the
// defaults: the system random source, the default range proof policy and
// no scanning keys.
type BlinderOpts struct {
	Rng        RandomNumberGenerator
	RangeProof *RangeProofOpts

	// MasterBlindingKey enables ScanOutput by deriving per-script
	// blinding keys. Mutually exclusive with BlindingKeys.
	MasterBlindingKey []byte

	// BlindingKeys enables ScanOutput by trying each key in turn.
	BlindingKeys [][]byte
}

// NewBlinder returns a Blinder bound to the given engine, or to the
// process-wide one when engine is nil.
func NewBlinder(engine *Engine, opts *BlinderOpts) (*Blinder, error) {
	if engine == nil {
		engine = Current()
	}

	b := &Blinder{
		engine: engine,
		rng:    generateRandomNumber,
	}
	if opts == nil {
		return b, nil
	}

	if opts.Rng != nil {
		b.rng = opts.Rng
	}
	b.rangeProofOpts = opts.RangeProof
	b.blindingKeys = opts.BlindingKeys

	if opts.MasterBlindingKey != nil {
		if len(opts.BlindingKeys) > 0 {
			return nil, errors.New(
				"master blinding key and blinding keys are mutually exclusive",
			)
		}
		masterKey, err := blindkey.FromMasterKey(opts.MasterBlindingKey)
		if err != nil {
			return nil, err
		}
		b.masterKey = masterKey
	}

	return b, nil
}

// UnblindOutput unblinds one output with an explicit blinding private
// key.
func (b *Blinder) UnblindOutput(
	blindingPrivkey []byte, out *transaction.TxOutput,
) UnblindResult {
	return b.engine.UnblindOutput(blindingPrivkey, out)
}

// ScanOutput unblinds one output with the blinder's own keys: the key
// derived from the output script when a master blinding key is set,
// otherwise each configured blinding key in turn. Outputs belonging to
// other parties come back as UnblindFailed, like UnblindOutput.
func (b *Blinder) ScanOutput(out *transaction.TxOutput) (UnblindResult, error) {
	if b.masterKey != nil {
		privKey, _, err := b.masterKey.DeriveKey(out.Script)
		if err != nil {
			return UnblindResult{}, err
		}
		return b.engine.UnblindOutput(privKey.Serialize(), out), nil
	}

	if len(b.blindingKeys) == 0 {
		return UnblindResult{}, errNoScanningKeys
	}

	for _, key := range b.blindingKeys {
		res := b.engine.UnblindOutput(key, out)
		if res.Status != UnblindFailed {
			return res, nil
		}
	}
	return UnblindResult{Status: UnblindFailed}, nil
}
