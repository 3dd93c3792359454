// Package bitcoin generates Bitcoin mainnet P2PKH keypairs.
package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/Amr-9/crat/pkg/generator"
)

// Generator produces Bitcoin candidates.
type Generator struct {
	params *chaincfg.Params
}

// New returns a mainnet generator.
func New() *Generator {
	return &Generator{params: &chaincfg.MainNetParams}
}

// Generate returns a fresh keypair with a legacy (1...) address and the
// private key in compressed WIF (K... or L...).
func (g *Generator) Generate() (generator.Candidate, error) {
	privKey, err := btcec.NewPrivateKey()
	if err != nil {
		return generator.Candidate{}, fmt.Errorf("bitcoin: generate key: %w", err)
	}

	address, err := legacyAddress(privKey.PubKey(), g.params)
	if err != nil {
		return generator.Candidate{}, err
	}

	wif, err := btcutil.NewWIF(privKey, g.params, true)
	if err != nil {
		return generator.Candidate{}, fmt.Errorf("bitcoin: encode wif: %w", err)
	}

	return generator.Candidate{Address: address, Secret: wif.String()}, nil
}

// legacyAddress creates a P2PKH address from the compressed public key.
// Legacy address = Base58Check(0x00 + HASH160(pubkey))
func legacyAddress(pubKey *btcec.PublicKey, params *chaincfg.Params) (string, error) {
	hash := btcutil.Hash160(pubKey.SerializeCompressed())
	addr, err := btcutil.NewAddressPubKeyHash(hash, params)
	if err != nil {
		return "", fmt.Errorf("bitcoin: derive address: %w", err)
	}
	return addr.EncodeAddress(), nil
}

// DeriveAddress recovers the P2PKH address belonging to a WIF secret.
func DeriveAddress(secret string) (string, error) {
	wif, err := btcutil.DecodeWIF(secret)
	if err != nil {
		return "", fmt.Errorf("bitcoin: decode wif: %w", err)
	}
	if !wif.IsForNet(&chaincfg.MainNetParams) {
		return "", fmt.Errorf("bitcoin: wif is not for mainnet")
	}
	return legacyAddress(wif.PrivKey.PubKey(), &chaincfg.MainNetParams)
}
