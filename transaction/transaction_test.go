package transaction

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTx() *Transaction {
	tx := &Transaction{Version: 2, Locktime: 101}
	in := NewTxInput(chainhash.HashH([]byte("prevout")), 1)
	in.Script = []byte{0x51}
	tx.AddInput(in)
	tx.AddOutput(NewTxOutput(5000, []byte{0x00, 0x14, 0x01, 0x02}))
	return tx
}

func TestSerializeRoundTripExplicit(t *testing.T) {
	tx := newTestTx()

	buf, err := tx.Serialize()
	require.NoError(t, err)

	decoded, err := NewTxFromBuffer(bytes.NewBuffer(buf))
	require.NoError(t, err)

	assert.Equal(t, tx.Version, decoded.Version)
	assert.Equal(t, tx.Locktime, decoded.Locktime)
	require.Len(t, decoded.Inputs, 1)
	assert.Equal(t, tx.Inputs[0].Hash, decoded.Inputs[0].Hash)
	assert.Equal(t, tx.Inputs[0].Index, decoded.Inputs[0].Index)
	assert.Equal(t, tx.Inputs[0].Script, decoded.Inputs[0].Script)
	assert.Equal(t, tx.Inputs[0].Sequence, decoded.Inputs[0].Sequence)
	require.Len(t, decoded.Outputs, 1)
	assert.True(t, decoded.Outputs[0].Value.IsExplicit())
	assert.Equal(t, int64(5000), decoded.Outputs[0].Value.Amount)
	assert.Equal(t, tx.TxHash(), decoded.TxHash())
}

func TestSerializeRoundTripBlinded(t *testing.T) {
	tx := newTestTx()
	out := tx.Outputs[0]
	out.Value = ConfidentialValue{
		Commitment:      append([]byte{8}, bytes.Repeat([]byte{0xaa}, 32)...),
		NonceCommitment: append([]byte{2}, bytes.Repeat([]byte{0xbb}, 32)...),
		RangeProof:      bytes.Repeat([]byte{0xcc}, 100),
	}

	buf, err := tx.Serialize()
	require.NoError(t, err)

	decoded, err := NewTxFromBuffer(bytes.NewBuffer(buf))
	require.NoError(t, err)
	require.Len(t, decoded.Outputs, 1)
	assert.False(t, decoded.Outputs[0].Value.IsExplicit())
	assert.True(t, decoded.Outputs[0].Value.Equal(&out.Value))
}

func TestDeserializeRejectsMalformedValues(t *testing.T) {
	tx := newTestTx()
	out := tx.Outputs[0]

	out.Value = ConfidentialValue{
		Commitment:      append([]byte{7}, bytes.Repeat([]byte{0xaa}, 32)...),
		NonceCommitment: append([]byte{2}, bytes.Repeat([]byte{0xbb}, 32)...),
		RangeProof:      []byte{0x01},
	}
	buf, err := tx.Serialize()
	require.NoError(t, err)
	_, err = NewTxFromBuffer(bytes.NewBuffer(buf))
	assert.ErrorIs(t, err, ErrInvalidCommitmentPrefix)

	out.Value.Commitment[0] = 8
	out.Value.NonceCommitment[0] = 9
	buf, err = tx.Serialize()
	require.NoError(t, err)
	_, err = NewTxFromBuffer(bytes.NewBuffer(buf))
	assert.ErrorIs(t, err, ErrInvalidNoncePrefix)
}

func TestConfidentialValueTaggedUnion(t *testing.T) {
	explicit := NewExplicitValue(42)
	assert.True(t, explicit.IsExplicit())

	blinded := ConfidentialValue{Commitment: make([]byte, CommitmentLength)}
	assert.False(t, blinded.IsExplicit())

	other := explicit
	assert.True(t, explicit.Equal(&other))
	other.Amount = 43
	assert.False(t, explicit.Equal(&other))
}

func TestRecipientKeyIsValid(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	valid := RecipientKey(priv.PubKey().SerializeCompressed())
	assert.True(t, valid.IsValid())

	assert.False(t, RecipientKey(nil).IsValid())
	assert.False(t, RecipientKey(valid[:32]).IsValid())

	garbage := append([]byte{0x05}, valid[1:]...)
	assert.False(t, RecipientKey(garbage).IsValid())
}
