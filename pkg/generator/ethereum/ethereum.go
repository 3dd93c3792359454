// Package ethereum generates Ethereum accounts from fresh BIP-39 mnemonics,
// derived along the standard BIP-44 path so any wallet can restore them.
package ethereum

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"

	"github.com/Amr-9/crat/pkg/generator"
)

// EntropyBits yields a 12 word mnemonic.
const EntropyBits = 128

// DerivationPath is m/44'/60'/0'/0/0.
var DerivationPath = []uint32{
	hdkeychain.HardenedKeyStart + 44,
	hdkeychain.HardenedKeyStart + 60,
	hdkeychain.HardenedKeyStart + 0,
	0,
	0,
}

// Generator produces Ethereum candidates.
type Generator struct{}

// New returns an Ethereum generator.
func New() *Generator {
	return &Generator{}
}

// Generate creates a mnemonic and derives the first account from it.
// The address is EIP-55 checksummed; the secret is the 0x prefixed key.
func (g *Generator) Generate() (generator.Candidate, error) {
	entropy, err := bip39.NewEntropy(EntropyBits)
	if err != nil {
		return generator.Candidate{}, fmt.Errorf("ethereum: entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return generator.Candidate{}, fmt.Errorf("ethereum: mnemonic: %w", err)
	}

	address, secret, err := FromMnemonic(mnemonic)
	if err != nil {
		return generator.Candidate{}, err
	}
	return generator.Candidate{Address: address, Secret: secret, Mnemonic: mnemonic}, nil
}

// FromMnemonic derives the account at DerivationPath for a seed phrase
// without passphrase.
func FromMnemonic(mnemonic string) (address, secret string, err error) {
	seed := bip39.NewSeed(mnemonic, "")

	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return "", "", fmt.Errorf("ethereum: master key: %w", err)
	}
	for _, index := range DerivationPath {
		key, err = key.Derive(index)
		if err != nil {
			return "", "", fmt.Errorf("ethereum: derive %d: %w", index, err)
		}
	}

	ecPriv, err := key.ECPrivKey()
	if err != nil {
		return "", "", fmt.Errorf("ethereum: private key: %w", err)
	}
	privateKey, err := crypto.ToECDSA(ecPriv.Serialize())
	if err != nil {
		return "", "", fmt.Errorf("ethereum: convert key: %w", err)
	}

	address = crypto.PubkeyToAddress(privateKey.PublicKey).Hex()
	return address, hexutil.Encode(crypto.FromECDSA(privateKey)), nil
}

// DeriveAddress recovers the checksummed address of a 0x hex private key.
func DeriveAddress(secret string) (string, error) {
	raw, err := hexutil.Decode(secret)
	if err != nil {
		return "", fmt.Errorf("ethereum: decode key: %w", err)
	}
	privateKey, err := crypto.ToECDSA(raw)
	if err != nil {
		return "", fmt.Errorf("ethereum: convert key: %w", err)
	}
	return crypto.PubkeyToAddress(privateKey.PublicKey).Hex(), nil
}
