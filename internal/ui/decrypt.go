package ui

import (
	"errors"

	"github.com/Amr-9/crat/pkg/generator"
	"github.com/Amr-9/crat/pkg/generator/chains"
	"github.com/Amr-9/crat/pkg/secret"
	"github.com/Amr-9/crat/pkg/sink"
)

// ErrDecryptFailed is shown for every decryption failure so the output never
// tells a wrong password apart from a damaged blob.
var ErrDecryptFailed = errors.New("decryption failed")

// ErrAddressMismatch means a decrypted key does not belong to the address
// recorded next to it.
var ErrAddressMismatch = errors.New("decrypted key does not match the recorded address")

// Decrypt choices offered by the interactive flow.
const (
	choiceKey      = "1"
	choiceMnemonic = "2"
	choiceBoth     = "3"
)

func open(codec *secret.Codec, blob, password string) (string, error) {
	plain, err := codec.Decrypt(blob, password)
	if err != nil {
		return "", ErrDecryptFailed
	}
	return plain, nil
}

func (c *Console) decryptOne(codec *secret.Codec, what string) (string, error) {
	blob, err := c.Prompt("Encrypted " + what)
	if err != nil {
		return "", err
	}
	password, err := c.PromptSecret("Password")
	if err != nil {
		return "", err
	}
	return open(codec, blob, password)
}

// DecryptInteractive asks which secrets to recover and decrypts pasted blobs.
func (c *Console) DecryptInteractive(codec *secret.Codec) error {
	c.printf("    %s\n", magentaBold("🔓 DECRYPT"))
	c.printf("    %s Private key\n", cyan("[1]"))
	c.printf("    %s Mnemonic phrase\n", cyan("[2]"))
	c.printf("    %s Both\n", cyan("[3]"))
	choice, err := c.Prompt("→")
	if err != nil {
		return err
	}

	wantKey := choice == choiceKey || choice == choiceBoth
	wantWords := choice == choiceMnemonic || choice == choiceBoth
	if !wantKey && !wantWords {
		return errors.New("choose 1, 2 or 3")
	}

	if wantKey {
		key, err := c.decryptOne(codec, "private key")
		if err != nil {
			return err
		}
		c.printf("    %s\n    %s\n", magentaBold("🔑 PRIVATE KEY"), yellow(key))
	}
	if wantWords {
		words, err := c.decryptOne(codec, "mnemonic")
		if err != nil {
			return err
		}
		c.printf("    %s\n    %s\n", magentaBold("📝 MNEMONIC"), yellow(words))
	}
	return nil
}

// DecryptFile recovers the secrets of a parsed result file. Passwords missing
// from the file are prompted for. When the chain is known the recovered key
// is checked against the recorded address.
func (c *Console) DecryptFile(codec *secret.Codec, f sink.File) error {
	if !f.Encrypted() {
		c.Notice("file is not encrypted")
		if f.PrivateKey != "" {
			c.printf("    %s\n    %s\n", magentaBold("🔑 PRIVATE KEY"), yellow(f.PrivateKey))
		}
		if f.Mnemonic != "" {
			c.printf("    %s\n    %s\n", magentaBold("📝 MNEMONIC"), yellow(f.Mnemonic))
		}
		return nil
	}

	password := f.KeyPassword
	if password == "" {
		var err error
		if password, err = c.PromptSecret("Password"); err != nil {
			return err
		}
	}
	key, err := open(codec, f.EncryptedKey, password)
	if err != nil {
		return err
	}

	if chain, err := generator.ParseChain(f.Chain); err == nil && f.Address != "" {
		derived, err := chains.DeriveAddress(chain, key)
		if err != nil || derived != f.Address {
			return ErrAddressMismatch
		}
		c.Notice("key matches " + f.Address)
	}
	c.printf("    %s\n    %s\n", magentaBold("🔑 PRIVATE KEY"), yellow(key))

	if f.EncryptedMnemonic == "" {
		return nil
	}
	password = f.MnemonicPassword
	if password == "" {
		if password, err = c.PromptSecret("Mnemonic password"); err != nil {
			return err
		}
	}
	words, err := open(codec, f.EncryptedMnemonic, password)
	if err != nil {
		return err
	}
	c.printf("    %s\n    %s\n", magentaBold("📝 MNEMONIC"), yellow(words))
	return nil
}
