// Package blindkey derives per-output blinding keys from a single master
// key, so a wallet can scan a chain for outputs addressed to it without
// keeping one secret per output. The derivation is deterministic over the
// output script: anyone holding the master key re-derives the same key the
// output was blinded towards.
package blindkey

import (
	"crypto/hmac"
	"crypto/sha512"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/vulpemventures/fastsha256"
	"golang.org/x/crypto/ripemd160"
)

var (
	domain = []byte("Blinding key seed")
	label  = []byte("ct-blinding-v1")
	prefix = byte(0)
)

var (
	ErrInvalidSeed      = errors.New("invalid seed")
	ErrInvalidMasterKey = errors.New("invalid master key")
	ErrInvalidScript    = errors.New("invalid script")
)

// Master holds the master blinding key.
type Master struct {
	Key []byte
}

// FromMasterKey wraps an existing 32-byte master blinding key.
func FromMasterKey(key []byte) (*Master, error) {
	if len(key) != 32 {
		return nil, ErrInvalidMasterKey
	}
	return &Master{Key: key}, nil
}

// FromSeed derives the master blinding key from a wallet seed.
func FromSeed(seed []byte) (*Master, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}

	hmacRoot := hmac.New(sha512.New, domain)
	hmacRoot.Write(seed)
	root := hmacRoot.Sum(nil)

	hmacMasterKey := hmac.New(sha512.New, root[:32])
	hmacMasterKey.Write([]byte{prefix})
	hmacMasterKey.Write(label)
	masterKey := hmacMasterKey.Sum(nil)

	return FromMasterKey(masterKey[32:])
}

// DeriveKey derives the blinding keypair for an output script. The script
// is normalized through hash160 so derivation cost does not depend on
// script size.
func (m *Master) DeriveKey(script []byte) (
	*btcec.PrivateKey, *btcec.PublicKey, error,
) {
	if len(script) == 0 {
		return nil, nil, ErrInvalidScript
	}

	hmacKey := hmac.New(fastsha256.New, m.Key)
	hmacKey.Write(hash160(script))
	key := hmacKey.Sum(nil)

	privateKey, publicKey := btcec.PrivKeyFromBytes(key)
	return privateKey, publicKey, nil
}

func hash160(buf []byte) []byte {
	sum := fastsha256.Sum256(buf)
	h := ripemd160.New()
	h.Write(sum[:])
	return h.Sum(nil)
}
