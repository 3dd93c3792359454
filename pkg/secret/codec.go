// Package secret protects discovered keys with password based authenticated
// encryption: PBKDF2-SHA256 key derivation and AES-256-GCM.
//
// Wire format: base64(salt[16] || iv[12] || ciphertext[N] || tag[16]).
package secret

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize          = 16
	NonceSize         = 12
	TagSize           = 16
	KeySize           = 32
	DefaultIterations = 100000
	PasswordBytes     = 32

	minBlobSize = SaltSize + NonceSize + TagSize
)

var (
	// ErrAuthentication means the tag did not verify: wrong password or a
	// modified blob. The two cases are deliberately indistinguishable.
	ErrAuthentication = errors.New("authentication failed")
	// ErrFormat means the input is not base64 or too short to hold salt, iv and tag.
	ErrFormat = errors.New("malformed encrypted blob")
)

// Blob is a decoded encrypted secret.
type Blob struct {
	Salt       []byte
	IV         []byte
	Ciphertext []byte
	Tag        []byte
}

// Encode returns the base64 wire form.
func (b Blob) Encode() string {
	raw := make([]byte, 0, len(b.Salt)+len(b.IV)+len(b.Ciphertext)+len(b.Tag))
	raw = append(raw, b.Salt...)
	raw = append(raw, b.IV...)
	raw = append(raw, b.Ciphertext...)
	raw = append(raw, b.Tag...)
	return base64.StdEncoding.EncodeToString(raw)
}

// ParseBlob splits a base64 wire blob into its parts.
func ParseBlob(s string) (Blob, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Blob{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if len(raw) < minBlobSize {
		return Blob{}, fmt.Errorf("%w: %d bytes", ErrFormat, len(raw))
	}
	ctEnd := len(raw) - TagSize
	return Blob{
		Salt:       raw[:SaltSize],
		IV:         raw[SaltSize : SaltSize+NonceSize],
		Ciphertext: raw[SaltSize+NonceSize : ctEnd],
		Tag:        raw[ctEnd:],
	}, nil
}

// Codec encrypts and decrypts secrets. The zero value is not usable; use New.
type Codec struct {
	iterations int
	rand       io.Reader
}

// Option customises a Codec.
type Option func(*Codec)

// WithIterations overrides the PBKDF2 iteration count. Blobs only decrypt
// with the count they were produced with.
func WithIterations(n int) Option {
	return func(c *Codec) {
		if n > 0 {
			c.iterations = n
		}
	}
}

// WithRand sets the randomness source for salts, nonces and passwords.
func WithRand(r io.Reader) Option {
	return func(c *Codec) {
		c.rand = r
	}
}

// New returns a codec using DefaultIterations and crypto/rand.
func New(opts ...Option) *Codec {
	c := &Codec{iterations: DefaultIterations, rand: rand.Reader}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codec) deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, c.iterations, KeySize, sha256.New)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// Encrypt seals plaintext under a key derived from password. Every call
// draws a fresh salt and nonce.
func (c *Codec) Encrypt(plaintext, password string) (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(c.rand, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	iv := make([]byte, NonceSize)
	if _, err := io.ReadFull(c.rand, iv); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	gcm, err := newGCM(c.deriveKey(password, salt))
	if err != nil {
		return "", err
	}
	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	ctEnd := len(sealed) - TagSize

	return Blob{
		Salt:       salt,
		IV:         iv,
		Ciphertext: sealed[:ctEnd],
		Tag:        sealed[ctEnd:],
	}.Encode(), nil
}

// Decrypt opens a blob produced by Encrypt.
func (c *Codec) Decrypt(blob, password string) (string, error) {
	b, err := ParseBlob(blob)
	if err != nil {
		return "", err
	}

	gcm, err := newGCM(c.deriveKey(password, b.Salt))
	if err != nil {
		return "", err
	}
	sealed := make([]byte, 0, len(b.Ciphertext)+len(b.Tag))
	sealed = append(sealed, b.Ciphertext...)
	sealed = append(sealed, b.Tag...)

	plaintext, err := gcm.Open(nil, b.IV, sealed, nil)
	if err != nil {
		return "", ErrAuthentication
	}
	return string(plaintext), nil
}

// GeneratePassword returns 32 random bytes, base64 encoded.
func (c *Codec) GeneratePassword() (string, error) {
	buf := make([]byte, PasswordBytes)
	if _, err := io.ReadFull(c.rand, buf); err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// Protected is a secret encrypted under its own generated password.
type Protected struct {
	Blob     string
	Password string
}

// Protect encrypts plaintext under a freshly generated password.
func (c *Codec) Protect(plaintext string) (Protected, error) {
	password, err := c.GeneratePassword()
	if err != nil {
		return Protected{}, err
	}
	blob, err := c.Encrypt(plaintext, password)
	if err != nil {
		return Protected{}, err
	}
	return Protected{Blob: blob, Password: password}, nil
}
