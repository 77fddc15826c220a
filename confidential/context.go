// Package confidential implements the value-hiding layer of the chain's
// confidential transaction scheme: it turns explicit output amounts into
// Pedersen commitments with recipient-recoverable range proofs, and
// recovers amount and blinding factor on the receiving side. Commitments
// are additively homomorphic, so a verifier checks that a transaction
// conserves value by checking that the commitments cancel out; the
// blinding operation here picks the last output's blinding factor to make
// them cancel.
package confidential

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	secp256k1 "github.com/vulpemventures/go-secp256k1-zkp"
)

// Zero is the all-zero blinding factor.
var Zero = make([]byte, 32)

// valueGeneratorSeed pins the NUMS point all value commitments are made
// against. Changing it is a consensus change.
const valueGeneratorSeed = "ct-value-generator-v1"

// Engine is a handle to the underlying secp256k1-zkp context, configured
// for signing, verification, commitment and range proof operations, plus
// the chain's fixed value generator. It is expensive to create and safe
// for concurrent use once created.
type Engine struct {
	ctx      *secp256k1.Context
	valueGen *secp256k1.Generator
}

// NewEngine creates a standalone engine. Callers owning their own engine
// must Close it when done; everyone else uses Start/Stop/Current.
func NewEngine() (*Engine, error) {
	ctx, err := secp256k1.ContextCreate(secp256k1.ContextBoth)
	if err != nil {
		return nil, err
	}

	valueGen, err := secp256k1.GeneratorGenerateBlinded(
		ctx, chainhash.HashB([]byte(valueGeneratorSeed)), Zero,
	)
	if err != nil {
		secp256k1.ContextDestroy(ctx)
		return nil, err
	}

	return &Engine{ctx: ctx, valueGen: valueGen}, nil
}

// Close destroys the underlying context. The engine must not be used
// afterwards.
func (e *Engine) Close() {
	if e.ctx != nil {
		secp256k1.ContextDestroy(e.ctx)
		e.ctx = nil
	}
}

func (e *Engine) mustBeLive() {
	if e == nil || e.ctx == nil {
		panic("confidential: engine not started")
	}
}

// engine is the process-wide handle managed by Start and Stop. The
// lifecycle transitions themselves are not synchronized: Start must
// happen-before any use and Stop must happen-after all use has quiesced.
var engine *Engine

// Start creates the process-wide engine. Calling Start twice without an
// intervening Stop is a programming error and panics.
func Start() {
	if engine != nil {
		panic("confidential: engine already started")
	}

	e, err := NewEngine()
	if err != nil {
		panic("confidential: engine initialization failed: " + err.Error())
	}
	engine = e
}

// Stop destroys the process-wide engine if present. Calling it when no
// engine is live is a no-op.
func Stop() {
	e := engine
	engine = nil

	if e != nil {
		e.Close()
	}
}

// Current returns the live process-wide engine, or nil if Start has not
// been called.
func Current() *Engine {
	return engine
}
