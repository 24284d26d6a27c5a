package guard

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ruteri/failsafe/interfaces"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultMaxAttempts bounds the passphrase retries for a single shard.
	DefaultMaxAttempts = 5

	separator = "$"
	nonceSize = 12
)

// Params are the key derivation constants. Encrypt and Decrypt must use the
// same values; they are not operator configurable.
type Params struct {
	SaltSize   int
	Iterations int
	KeyLen     int
}

// DefaultParams: 16-byte salt, PBKDF2-SHA256 with 100,000 iterations, AES-256.
var DefaultParams = Params{
	SaltSize:   16,
	Iterations: 100_000,
	KeyLen:     32,
}

// Config contains configuration parameters for creating a ShardGuard.
type Config struct {
	Params      Params
	MaxAttempts int
	Log         *slog.Logger
}

// ShardGuard implements interfaces.Guard.
type ShardGuard struct {
	params      Params
	maxAttempts int
	random      io.Reader
	log         *slog.Logger
}

// New creates a ShardGuard. Zero config values fall back to the defaults.
// Invalid parameters are a programming error and are returned as such.
func New(cfg Config) (*ShardGuard, error) {
	params := cfg.Params
	if params == (Params{}) {
		params = DefaultParams
	}
	switch params.KeyLen {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("invalid AES key length %d", params.KeyLen)
	}
	if params.SaltSize < 8 || params.Iterations < 1 {
		return nil, errors.New("invalid key derivation parameters")
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}

	log := cfg.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &ShardGuard{params: params, maxAttempts: maxAttempts, random: rand.Reader, log: log}, nil
}

// MustNew is New for configurations fixed at compile time.
func MustNew(cfg Config) *ShardGuard {
	g, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return g
}

// Encrypt seals payload under a fresh salt and a passphrase of words words.
func (g *ShardGuard) Encrypt(payload string, words int) (interfaces.EncryptedShard, error) {
	drawn, err := DrawWords(words)
	if err != nil {
		return interfaces.EncryptedShard{}, err
	}
	passphrase := strings.Join(drawn, " ")

	salt := make([]byte, g.params.SaltSize)
	if _, err := io.ReadFull(g.random, salt); err != nil {
		return interfaces.EncryptedShard{}, fmt.Errorf("failed to generate salt: %w", err)
	}

	aesGCM, err := g.cipher(passphrase, salt)
	if err != nil {
		return interfaces.EncryptedShard{}, err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(g.random, nonce); err != nil {
		return interfaces.EncryptedShard{}, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Format: [nonce][ciphertext]
	ciphertext := aesGCM.Seal(nonce, nonce, []byte(payload), nil)

	g.log.Debug("Encrypted shard", "words", words)
	return interfaces.EncryptedShard{Salt: salt, Ciphertext: ciphertext, Passphrase: passphrase}, nil
}

// Encode renders shard as "b64(salt)$b64(ciphertext)".
func (g *ShardGuard) Encode(shard interfaces.EncryptedShard) string {
	return base64.URLEncoding.EncodeToString(shard.Salt) + separator + base64.URLEncoding.EncodeToString(shard.Ciphertext)
}

// Decode parses "b64(salt)$b64(ciphertext)". Malformed input returns an
// error wrapping interfaces.ErrFormat.
func (g *ShardGuard) Decode(encoded string) (interfaces.EncryptedShard, error) {
	saltPart, ctPart, found := strings.Cut(strings.TrimSpace(encoded), separator)
	if !found || strings.Contains(ctPart, separator) {
		return interfaces.EncryptedShard{}, fmt.Errorf("%w: encrypted shard must look like salt$ciphertext", interfaces.ErrFormat)
	}

	salt, err := base64.URLEncoding.DecodeString(saltPart)
	if err != nil {
		return interfaces.EncryptedShard{}, fmt.Errorf("%w: invalid salt encoding: %v", interfaces.ErrFormat, err)
	}
	if len(salt) != g.params.SaltSize {
		return interfaces.EncryptedShard{}, fmt.Errorf("%w: salt must be %d bytes", interfaces.ErrFormat, g.params.SaltSize)
	}

	ciphertext, err := base64.URLEncoding.DecodeString(ctPart)
	if err != nil {
		return interfaces.EncryptedShard{}, fmt.Errorf("%w: invalid ciphertext encoding: %v", interfaces.ErrFormat, err)
	}
	if len(ciphertext) < nonceSize+16 { // nonce + GCM tag
		return interfaces.EncryptedShard{}, fmt.Errorf("%w: ciphertext too short", interfaces.ErrFormat)
	}

	return interfaces.EncryptedShard{Salt: salt, Ciphertext: ciphertext}, nil
}

// Decrypt opens encoded with a passphrase from supply. After a failed
// authentication supply is called again with the next attempt number;
// ErrDecryption is returned once MaxAttempts are used up. Errors from supply
// abort immediately.
func (g *ShardGuard) Decrypt(ctx context.Context, encoded string, supply interfaces.PassphraseSupplier) (string, error) {
	shard, err := g.Decode(encoded)
	if err != nil {
		return "", err
	}

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		passphrase, err := supply(ctx, attempt)
		if err != nil {
			return "", err
		}

		plaintext, err := g.open(shard, passphrase)
		if err == nil {
			return string(plaintext), nil
		}

		g.log.Warn("Shard authentication failed", "attempt", attempt, "maxAttempts", g.maxAttempts)
	}

	return "", fmt.Errorf("%w: %d passphrase attempts failed", interfaces.ErrDecryption, g.maxAttempts)
}

func (g *ShardGuard) open(shard interfaces.EncryptedShard, passphrase string) ([]byte, error) {
	aesGCM, err := g.cipher(passphrase, shard.Salt)
	if err != nil {
		return nil, err
	}

	nonce, ciphertext := shard.Ciphertext[:nonceSize], shard.Ciphertext[nonceSize:]
	return aesGCM.Open(nil, nonce, ciphertext, nil)
}

func (g *ShardGuard) cipher(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(normalize(passphrase)), salt, g.params.Iterations, g.params.KeyLen, sha256.New)
	defer wipeBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}

// normalize makes passphrase entry tolerant to case and spacing.
func normalize(passphrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(passphrase)), " ")
}

func wipeBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
