// Package bsv generates Bitcoin SV keypairs. BSV still uses the legacy P2PKH
// address and WIF encodings, so both are built directly from Base58Check.
package bsv

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"

	"github.com/Amr-9/crat/pkg/generator"
)

const (
	// MainnetP2PKHVersion is the address version byte for mainnet P2PKH.
	MainnetP2PKHVersion = 0x00
	// MainnetWIFVersion prefixes mainnet private keys.
	MainnetWIFVersion = 0x80

	compressedFlag = 0x01
)

// ErrInvalidWIF is returned for malformed or non-mainnet WIF strings.
var ErrInvalidWIF = errors.New("bsv: invalid wif")

// Generator produces Bitcoin SV candidates.
type Generator struct{}

// New returns a mainnet generator.
func New() *Generator {
	return &Generator{}
}

// Generate returns a fresh keypair with a P2PKH address and a compressed WIF.
func (g *Generator) Generate() (generator.Candidate, error) {
	privKey, err := btcec.NewPrivateKey()
	if err != nil {
		return generator.Candidate{}, fmt.Errorf("bsv: generate key: %w", err)
	}
	return generator.Candidate{
		Address: DeriveAddress(privKey.PubKey()),
		Secret:  PrivateKeyToWIF(privKey),
	}, nil
}

// DeriveAddress returns Base58Check(0x00 + HASH160(compressed pubkey)).
func DeriveAddress(pubKey *btcec.PublicKey) string {
	data := make([]byte, 21)
	data[0] = MainnetP2PKHVersion
	copy(data[1:], hash160(pubKey.SerializeCompressed()))
	return Base58CheckEncode(data)
}

// PrivateKeyToWIF encodes Base58Check(0x80 + privKey + 0x01).
func PrivateKeyToWIF(privKey *btcec.PrivateKey) string {
	data := make([]byte, 34)
	data[0] = MainnetWIFVersion
	copy(data[1:33], privKey.Serialize())
	data[33] = compressedFlag
	return Base58CheckEncode(data)
}

// AddressFromWIF recovers the address belonging to a WIF secret.
func AddressFromWIF(wif string) (string, error) {
	data, err := Base58CheckDecode(wif)
	if err != nil {
		return "", err
	}
	if len(data) != 34 || data[0] != MainnetWIFVersion || data[33] != compressedFlag {
		return "", ErrInvalidWIF
	}
	_, pubKey := btcec.PrivKeyFromBytes(data[1:33])
	return DeriveAddress(pubKey), nil
}

// hash160 computes RIPEMD160(SHA256(data))
func hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	r := ripemd160.New()
	r.Write(sha[:])
	return r.Sum(nil)
}

func checksum(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:4]
}

// Base58CheckEncode encodes data with a 4-byte double SHA-256 checksum.
func Base58CheckEncode(data []byte) string {
	full := make([]byte, 0, len(data)+4)
	full = append(full, data...)
	full = append(full, checksum(data)...)
	return base58.Encode(full)
}

// Base58CheckDecode reverses Base58CheckEncode and verifies the checksum.
func Base58CheckDecode(s string) ([]byte, error) {
	full, err := base58.Decode(s)
	if err != nil || len(full) < 5 {
		return nil, ErrInvalidWIF
	}
	data, sum := full[:len(full)-4], full[len(full)-4:]
	if !bytes.Equal(checksum(data), sum) {
		return nil, ErrInvalidWIF
	}
	return data, nil
}
