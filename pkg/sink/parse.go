package sink

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoSecrets is returned when a file holds neither plaintext nor encrypted secrets.
var ErrNoSecrets = errors.New("no secrets found in file")

// File is the parsed content of a result file. Fields that are absent stay empty.
type File struct {
	Chain             string
	Address           string
	PrivateKey        string
	Mnemonic          string
	EncryptedKey      string
	KeyPassword       string
	EncryptedMnemonic string
	MnemonicPassword  string
}

// Encrypted reports whether the file carries an encrypted private key.
func (f File) Encrypted() bool {
	return f.EncryptedKey != ""
}

// ParseFile reads a file produced by Sink.Save.
func ParseFile(r io.Reader) (File, error) {
	var f File
	blocks := map[string]*string{
		headerEncryptedKey:     &f.EncryptedKey,
		headerKeyPassword:      &f.KeyPassword,
		headerEncryptedWords:   &f.EncryptedMnemonic,
		headerMnemonicPassword: &f.MnemonicPassword,
	}
	fields := map[string]*string{
		labelChain:      &f.Chain,
		labelAddress:    &f.Address,
		labelPrivateKey: &f.PrivateKey,
		labelMnemonic:   &f.Mnemonic,
	}

	var pending *string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if pending != nil {
			*pending = line
			pending = nil
			continue
		}
		if dst, ok := blocks[line]; ok {
			pending = dst
			continue
		}
		if label, value, ok := strings.Cut(line, ":"); ok {
			if dst, ok := fields[label]; ok && *dst == "" {
				*dst = strings.TrimSpace(value)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return File{}, fmt.Errorf("read result file: %w", err)
	}

	if f.PrivateKey == "" && f.EncryptedKey == "" && f.Mnemonic == "" && f.EncryptedMnemonic == "" {
		return File{}, ErrNoSecrets
	}
	return f, nil
}
