package confutil

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/altnet-labs/go-confidential/internal/bufferutil"
)

// MaxMoney is the maximum representable amount of the chain's currency
// unit, in its base denomination.
const MaxMoney int64 = btcutil.MaxSatoshi

// ExplicitValuePrefix marks the wire encoding of a plaintext output value.
const ExplicitValuePrefix = byte(1)

var ErrInvalidValueLength = errors.New("invalid explicit value length")
var ErrInvalidValuePrefix = errors.New("invalid explicit value prefix")

// MoneyRange reports whether the given amount is a valid number of
// currency units to appear in a transaction.
func MoneyRange(val int64) bool {
	return val >= 0 && val <= MaxMoney
}

// ValueToBytes converts an explicit amount to its 9-byte wire encoding,
// a one byte prefix followed by the amount in big-endian order.
func ValueToBytes(val uint64) ([]byte, error) {
	b := bytes.NewBuffer(nil)
	if err := bufferutil.BinarySerializer.PutUint64(
		b, binary.LittleEndian, val,
	); err != nil {
		return nil, err
	}
	res := append([]byte{ExplicitValuePrefix}, ReverseBytes(b.Bytes())...)
	return res, nil
}

// ValueFromBytes converts the 9-byte wire encoding back to an amount.
func ValueFromBytes(val []byte) (uint64, error) {
	if len(val) != 9 {
		return 0, ErrInvalidValueLength
	}
	if val[0] != ExplicitValuePrefix {
		return 0, ErrInvalidValuePrefix
	}
	d := bufferutil.NewDeserializer(bytes.NewBuffer(ReverseBytes(val[1:])))
	return d.ReadUint64()
}

// ReverseBytes returns a copy of the given byte slice with elems in
// reverse order.
func ReverseBytes(buf []byte) []byte {
	if len(buf) < 1 {
		return buf
	}
	tmp := make([]byte, len(buf))
	copy(tmp, buf)
	for i := len(tmp)/2 - 1; i >= 0; i-- {
		j := len(tmp) - 1 - i
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	return tmp
}
