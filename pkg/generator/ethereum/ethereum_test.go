package ethereum

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
)

const hardhatMnemonic = "test test test test test test test test test test test junk"

func TestFromMnemonicKnownVector(t *testing.T) {
	address, secret, err := FromMnemonic(hardhatMnemonic)
	require.NoError(t, err)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", address)
	assert.Equal(t, "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80", secret)
}

func TestGenerate(t *testing.T) {
	g := New()
	c, err := g.Generate()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(c.Address, "0x"))
	assert.True(t, common.IsHexAddress(c.Address))
	assert.Equal(t, common.HexToAddress(c.Address).Hex(), c.Address, "checksummed")

	assert.Len(t, strings.Fields(c.Mnemonic), 12)
	assert.True(t, bip39.IsMnemonicValid(c.Mnemonic))

	address, secret, err := FromMnemonic(c.Mnemonic)
	require.NoError(t, err)
	assert.Equal(t, c.Address, address)
	assert.Equal(t, c.Secret, secret)

	derived, err := DeriveAddress(c.Secret)
	require.NoError(t, err)
	assert.Equal(t, c.Address, derived)
}

func TestDeriveAddressInvalid(t *testing.T) {
	_, err := DeriveAddress("ac09")
	assert.Error(t, err)
}
