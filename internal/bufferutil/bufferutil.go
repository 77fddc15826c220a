package bufferutil

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/wire"
)

// binarySerializer offers PutUintX helpers writing through a local scratch
// buffer, the same shape the btcd wire package uses internally.
type binarySerializer struct{}

// BinarySerializer is the shared instance used by the value/codec helpers.
var BinarySerializer binarySerializer

func (binarySerializer) PutUint8(w io.Writer, val uint8) error {
	_, err := w.Write([]byte{val})
	return err
}

func (binarySerializer) PutUint16(
	w io.Writer, order binary.ByteOrder, val uint16,
) error {
	var scratch [2]byte
	order.PutUint16(scratch[:], val)
	_, err := w.Write(scratch[:])
	return err
}

func (binarySerializer) PutUint32(
	w io.Writer, order binary.ByteOrder, val uint32,
) error {
	var scratch [4]byte
	order.PutUint32(scratch[:], val)
	_, err := w.Write(scratch[:])
	return err
}

func (binarySerializer) PutUint64(
	w io.Writer, order binary.ByteOrder, val uint64,
) error {
	var scratch [8]byte
	order.PutUint64(scratch[:], val)
	_, err := w.Write(scratch[:])
	return err
}

// Serializer writes the little-endian wire encoding of a transaction.
type Serializer struct {
	buffer *bytes.Buffer
}

func NewSerializer(buf *bytes.Buffer) *Serializer {
	if buf == nil {
		buf = bytes.NewBuffer(nil)
	}
	return &Serializer{buf}
}

func (s *Serializer) Bytes() []byte {
	return s.buffer.Bytes()
}

func (s *Serializer) WriteUint8(val uint8) error {
	return BinarySerializer.PutUint8(s.buffer, val)
}

func (s *Serializer) WriteUint32(val uint32) error {
	return BinarySerializer.PutUint32(s.buffer, binary.LittleEndian, val)
}

func (s *Serializer) WriteUint64(val uint64) error {
	return BinarySerializer.PutUint64(s.buffer, binary.LittleEndian, val)
}

func (s *Serializer) WriteVarInt(val uint64) error {
	return wire.WriteVarInt(s.buffer, 0, val)
}

func (s *Serializer) WriteSlice(val []byte) error {
	_, err := s.buffer.Write(val)
	return err
}

// WriteVarSlice writes the length of the slice as a varint followed by the
// slice itself.
func (s *Serializer) WriteVarSlice(val []byte) error {
	if err := s.WriteVarInt(uint64(len(val))); err != nil {
		return err
	}
	return s.WriteSlice(val)
}

// Deserializer reads back what Serializer wrote.
type Deserializer struct {
	buffer *bytes.Buffer
}

func NewDeserializer(buf *bytes.Buffer) *Deserializer {
	return &Deserializer{buf}
}

func (d *Deserializer) ReadUint8() (uint8, error) {
	return d.buffer.ReadByte()
}

func (d *Deserializer) ReadUint32() (uint32, error) {
	var scratch [4]byte
	if _, err := io.ReadFull(d.buffer, scratch[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(scratch[:]), nil
}

func (d *Deserializer) ReadUint64() (uint64, error) {
	var scratch [8]byte
	if _, err := io.ReadFull(d.buffer, scratch[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(scratch[:]), nil
}

func (d *Deserializer) ReadVarInt() (uint64, error) {
	return wire.ReadVarInt(d.buffer, 0)
}

func (d *Deserializer) ReadSlice(n uint) ([]byte, error) {
	decoded := make([]byte, n)
	if _, err := io.ReadFull(d.buffer, decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func (d *Deserializer) ReadVarSlice() ([]byte, error) {
	n, err := d.ReadVarInt()
	if err != nil {
		return nil, err
	}
	return d.ReadSlice(uint(n))
}
