// Package sink persists found vanity addresses, either in plaintext or with
// every secret encrypted under its own generated password.
package sink

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Amr-9/crat/pkg/generator"
	"github.com/Amr-9/crat/pkg/secret"
)

// FileMode keeps result files private to the owner.
const FileMode = 0o600

// ErrNoFreeName is returned when every numbered result file name is taken.
var ErrNoFreeName = errors.New("no free result file name")

const (
	labelChain             = "Chain"
	labelAddress           = "Address"
	labelPrivateKey        = "Private Key"
	labelMnemonic          = "Mnemonic"
	headerEncryptedKey     = "ENCRYPTED PRIVATE KEY:"
	headerKeyPassword      = "DECRYPTION PASSWORD:"
	headerEncryptedWords   = "ENCRYPTED MNEMONIC PHRASE (SEED PHRASE):"
	headerMnemonicPassword = "MNEMONIC DECRYPTION PASSWORD:"

	separator = "======================================================"
)

// maxCopies bounds the numbered names tried for one pattern and chain.
const maxCopies = 10000

// FileName returns the conventional result file name for a search.
func FileName(pattern string, chain generator.Chain) string {
	return fmt.Sprintf("%s_%s_crat.txt", pattern, chain)
}

// numberedName returns the n-th result file name; n == 1 is FileName.
func numberedName(pattern string, chain generator.Chain, n int) string {
	if n == 1 {
		return FileName(pattern, chain)
	}
	return fmt.Sprintf("%s_%s_crat_%d.txt", pattern, chain, n)
}

// Saved describes a written result file.
type Saved struct {
	Path      string
	Encrypted bool
	Key       secret.Protected
	Mnemonic  *secret.Protected // nil when the chain has no mnemonic
}

// Sink writes result files into a directory.
type Sink struct {
	dir   string
	codec *secret.Codec
	now   func() time.Time
}

// New returns a sink writing into dir. A nil codec uses secret.New().
func New(dir string, codec *secret.Codec) *Sink {
	if dir == "" {
		dir = "."
	}
	if codec == nil {
		codec = secret.New()
	}
	return &Sink{dir: dir, codec: codec, now: time.Now}
}

// Save renders r and writes it to <dir>/<pattern>_<chain>_crat.txt.
// Existing files are never overwritten: the next free name of the form
// <pattern>_<chain>_crat_<n>.txt is used instead and returned in Saved.Path.
// With encrypt set, the private key and the mnemonic are each protected
// with an independent generated password.
func (s *Sink) Save(r generator.Result, pattern string, encrypt bool) (Saved, error) {
	saved := Saved{Encrypted: encrypt}

	var content string
	if encrypt {
		key, err := s.codec.Protect(r.Secret)
		if err != nil {
			return Saved{}, fmt.Errorf("encrypt private key: %w", err)
		}
		saved.Key = key
		if r.Mnemonic != "" {
			words, err := s.codec.Protect(r.Mnemonic)
			if err != nil {
				return Saved{}, fmt.Errorf("encrypt mnemonic: %w", err)
			}
			saved.Mnemonic = &words
		}
		content = RenderEncrypted(r, saved.Key, saved.Mnemonic, s.now())
	} else {
		content = RenderPlain(r, s.now())
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return Saved{}, fmt.Errorf("create output dir: %w", err)
	}
	path, err := s.write(pattern, r.Chain, []byte(content))
	if err != nil {
		return Saved{}, err
	}
	saved.Path = path
	return saved, nil
}

// write creates a new result file exclusively, so a found key can never
// replace one from an earlier search.
func (s *Sink) write(pattern string, chain generator.Chain, content []byte) (string, error) {
	for n := 1; n <= maxCopies; n++ {
		path := filepath.Join(s.dir, numberedName(pattern, chain, n))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FileMode)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %s: %w", path, err)
		}
		if _, err := f.Write(content); err != nil {
			f.Close()
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close %s: %w", path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("%s: %w", FileName(pattern, chain), ErrNoFreeName)
}

func writeHeader(b *strings.Builder, r generator.Result) {
	fmt.Fprintf(b, "%s: %s\n", labelChain, r.Chain)
	fmt.Fprintf(b, "%s: %s\n", labelAddress, r.Address)
}

func writeStats(b *strings.Builder, r generator.Result, now time.Time) {
	fmt.Fprintf(b, "\nStatistics:\n")
	fmt.Fprintf(b, "  Time:     %s\n", r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(b, "  Attempts: %d\n", r.TotalAttempts)
	fmt.Fprintf(b, "\nGenerated: %s\n", now.Format("2006-01-02 15:04:05"))
}

// RenderPlain formats an unencrypted result file.
func RenderPlain(r generator.Result, now time.Time) string {
	var b strings.Builder
	writeHeader(&b, r)
	fmt.Fprintf(&b, "%s: %s\n", labelPrivateKey, r.Secret)
	if r.Mnemonic != "" {
		fmt.Fprintf(&b, "%s: %s\n", labelMnemonic, r.Mnemonic)
	}
	writeStats(&b, r, now)
	b.WriteString("\nWARNING: This file contains UNENCRYPTED private keys!\n")
	b.WriteString("Store securely and never share with anyone.\n")
	return b.String()
}

// RenderEncrypted formats a result file holding only encrypted secrets.
func RenderEncrypted(r generator.Result, key secret.Protected, mnemonic *secret.Protected, now time.Time) string {
	var b strings.Builder
	writeHeader(&b, r)
	fmt.Fprintf(&b, "\n%s\n%s\n", headerEncryptedKey, key.Blob)
	fmt.Fprintf(&b, "\n%s\n%s\n", headerKeyPassword, key.Password)
	if mnemonic != nil {
		fmt.Fprintf(&b, "\n%s\n", separator)
		fmt.Fprintf(&b, "\n%s\n%s\n", headerEncryptedWords, mnemonic.Blob)
		fmt.Fprintf(&b, "\n%s\n%s\n", headerMnemonicPassword, mnemonic.Password)
	}
	writeStats(&b, r, now)
	b.WriteString("\nSECURITY NOTICE\n")
	b.WriteString("Your private key has been encrypted using AES-256-GCM.\n")
	b.WriteString("Anyone with access to this file can decrypt it. To decrypt, run:\n")
	b.WriteString("  crat decrypt --file <this file>\n")
	b.WriteString("\nNEVER share this file or passwords with anyone.\n")
	return b.String()
}
