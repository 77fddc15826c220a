package transaction

import (
	"bytes"
	"errors"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/altnet-labs/go-confidential/confutil"
	"github.com/altnet-labs/go-confidential/internal/bufferutil"
)

const (
	// CommitmentLength is the size of a serialized Pedersen commitment.
	CommitmentLength = 33

	// NonceCommitmentLength is the size of a compressed ephemeral pubkey.
	NonceCommitmentLength = 33

	// MaxRangeProofLength bounds the proofs accepted by the decoder. The
	// primitive layer reports the real length at signing time, this is
	// only a sanity cap.
	MaxRangeProofLength = 5134

	defaultSequence = 0xffffffff
)

var (
	ErrInvalidCommitmentPrefix = errors.New("invalid commitment prefix")
	ErrInvalidNoncePrefix      = errors.New("invalid nonce commitment prefix")
	ErrRangeProofTooLong       = errors.New("range proof exceeds maximum length")
)

// TxInput defines a transaction input.
type TxInput struct {
	Hash     chainhash.Hash
	Index    uint32
	Script   []byte
	Sequence uint32
}

// NewTxInput returns a new input spending the given outpoint with the
// default sequence number.
func NewTxInput(hash chainhash.Hash, index uint32) *TxInput {
	return &TxInput{
		Hash:     hash,
		Index:    index,
		Sequence: defaultSequence,
	}
}

// TxOutput defines a transaction output.
type TxOutput struct {
	Script []byte
	Value  ConfidentialValue
}

// NewTxOutput returns an output paying the given explicit amount to the
// given script.
func NewTxOutput(amount int64, script []byte) *TxOutput {
	return &TxOutput{
		Script: script,
		Value:  NewExplicitValue(amount),
	}
}

// Transaction defines a transaction message.
type Transaction struct {
	Version  int32
	Locktime uint32
	Inputs   []*TxInput
	Outputs  []*TxOutput
}

// AddInput adds a transaction input to the message.
func (tx *Transaction) AddInput(ti *TxInput) {
	tx.Inputs = append(tx.Inputs, ti)
}

// AddOutput adds a transaction output to the message.
func (tx *Transaction) AddOutput(to *TxOutput) {
	tx.Outputs = append(tx.Outputs, to)
}

// Serialize returns the wire encoding of the transaction.
func (tx *Transaction) Serialize() ([]byte, error) {
	s := bufferutil.NewSerializer(nil)

	if err := s.WriteUint32(uint32(tx.Version)); err != nil {
		return nil, err
	}
	if err := s.WriteVarInt(uint64(len(tx.Inputs))); err != nil {
		return nil, err
	}
	for _, in := range tx.Inputs {
		if err := s.WriteSlice(in.Hash[:]); err != nil {
			return nil, err
		}
		if err := s.WriteUint32(in.Index); err != nil {
			return nil, err
		}
		if err := s.WriteVarSlice(in.Script); err != nil {
			return nil, err
		}
		if err := s.WriteUint32(in.Sequence); err != nil {
			return nil, err
		}
	}
	if err := s.WriteVarInt(uint64(len(tx.Outputs))); err != nil {
		return nil, err
	}
	for _, out := range tx.Outputs {
		if err := serializeValue(s, &out.Value); err != nil {
			return nil, err
		}
		if err := s.WriteVarSlice(out.Script); err != nil {
			return nil, err
		}
	}
	if err := s.WriteUint32(tx.Locktime); err != nil {
		return nil, err
	}

	return s.Bytes(), nil
}

// NewTxFromBuffer decodes a transaction from its wire encoding.
func NewTxFromBuffer(buf *bytes.Buffer) (*Transaction, error) {
	d := bufferutil.NewDeserializer(buf)

	version, err := d.ReadUint32()
	if err != nil {
		return nil, err
	}
	tx := &Transaction{Version: int32(version)}

	inCount, err := d.ReadVarInt()
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < inCount; i++ {
		in := &TxInput{}
		hash, err := d.ReadSlice(chainhash.HashSize)
		if err != nil {
			return nil, err
		}
		copy(in.Hash[:], hash)
		if in.Index, err = d.ReadUint32(); err != nil {
			return nil, err
		}
		if in.Script, err = d.ReadVarSlice(); err != nil {
			return nil, err
		}
		if in.Sequence, err = d.ReadUint32(); err != nil {
			return nil, err
		}
		tx.AddInput(in)
	}

	outCount, err := d.ReadVarInt()
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < outCount; i++ {
		out := &TxOutput{}
		if err := deserializeValue(d, &out.Value); err != nil {
			return nil, err
		}
		if out.Script, err = d.ReadVarSlice(); err != nil {
			return nil, err
		}
		tx.AddOutput(out)
	}

	if tx.Locktime, err = d.ReadUint32(); err != nil {
		return nil, err
	}

	return tx, nil
}

// TxHash generates the hash of the transaction.
func (tx *Transaction) TxHash() chainhash.Hash {
	buf, _ := tx.Serialize()
	return chainhash.DoubleHashH(buf)
}

func serializeValue(s *bufferutil.Serializer, v *ConfidentialValue) error {
	if v.IsExplicit() {
		val, err := confutil.ValueToBytes(uint64(v.Amount))
		if err != nil {
			return err
		}
		if err := s.WriteSlice(val); err != nil {
			return err
		}
		// explicit outputs carry no nonce commitment nor proof
		if err := s.WriteUint8(0); err != nil {
			return err
		}
		return s.WriteVarInt(0)
	}

	if err := s.WriteSlice(v.Commitment); err != nil {
		return err
	}
	if err := s.WriteSlice(v.NonceCommitment); err != nil {
		return err
	}
	return s.WriteVarSlice(v.RangeProof)
}

func deserializeValue(d *bufferutil.Deserializer, v *ConfidentialValue) error {
	prefix, err := d.ReadUint8()
	if err != nil {
		return err
	}

	switch prefix {
	case confutil.ExplicitValuePrefix:
		val, err := d.ReadSlice(8)
		if err != nil {
			return err
		}
		amount, err := confutil.ValueFromBytes(
			append([]byte{prefix}, val...),
		)
		if err != nil {
			return err
		}
		v.Amount = int64(amount)
		if _, err := d.ReadUint8(); err != nil {
			return err
		}
		_, err = d.ReadVarInt()
		return err
	case commitmentPrefixEven, commitmentPrefixOdd:
		commit, err := d.ReadSlice(CommitmentLength - 1)
		if err != nil {
			return err
		}
		v.Commitment = append([]byte{prefix}, commit...)
	default:
		return ErrInvalidCommitmentPrefix
	}

	noncePrefix, err := d.ReadUint8()
	if err != nil {
		return err
	}
	if noncePrefix != noncePrefixEven && noncePrefix != noncePrefixOdd {
		return ErrInvalidNoncePrefix
	}
	nonce, err := d.ReadSlice(NonceCommitmentLength - 1)
	if err != nil {
		return err
	}
	v.NonceCommitment = append([]byte{noncePrefix}, nonce...)

	proofLen, err := d.ReadVarInt()
	if err != nil {
		return err
	}
	if proofLen > MaxRangeProofLength {
		return ErrRangeProofTooLong
	}
	v.RangeProof, err = d.ReadSlice(uint(proofLen))
	return err
}
