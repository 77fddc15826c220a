package confidential

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"

	"github.com/altnet-labs/go-confidential/transaction"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine()
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func newTestBlinder(t *testing.T, e *Engine, opts *BlinderOpts) *Blinder {
	t.Helper()
	b, err := NewBlinder(e, opts)
	require.NoError(t, err)
	return b
}

func newRecipient(t *testing.T) (*btcec.PrivateKey, transaction.RecipientKey) {
	t.Helper()
	privKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	return privKey, privKey.PubKey().SerializeCompressed()
}

func newExplicitOutput(amount int64) *transaction.TxOutput {
	return transaction.NewTxOutput(amount, []byte{0x51})
}

// newTransferTx returns a one-input transaction paying the given amounts.
func newTransferTx(amounts ...int64) *transaction.Transaction {
	tx := &transaction.Transaction{Version: 2}
	tx.AddInput(transaction.NewTxInput(chainhash.HashH([]byte("prevout")), 0))
	for _, amount := range amounts {
		tx.AddOutput(newExplicitOutput(amount))
	}
	return tx
}

// seededRng returns a deterministic RandomNumberGenerator for
// reproducible blinding factors.
func seededRng(seed byte) RandomNumberGenerator {
	counter := seed
	return func() ([]byte, error) {
		counter++
		blind := chainhash.DoubleHashB([]byte{counter})
		return blind, nil
	}
}
