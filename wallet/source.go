package wallet

import (
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ruteri/failsafe/interfaces"
	"github.com/tyler-smith/go-bip32"
)

// randomSeedSize is the number of system random bytes mixed into each master seed.
const randomSeedSize = 32

// Source creates master keys. It implements interfaces.KeySource.
type Source struct {
	entropy io.Reader
	format  Format
	log     *slog.Logger
}

// NewSource creates a key source reading system randomness from crypto/rand.
func NewSource(format Format, log *slog.Logger) *Source {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Source{entropy: rand.Reader, format: format, log: log}
}

// WithEntropy returns a copy of the source reading randomness from r.
// Used to make tests deterministic.
func (s *Source) WithEntropy(r io.Reader) *Source {
	return &Source{entropy: r, format: s.format, log: s.log}
}

// NewRandomRoot creates a master key from system randomness mixed with
// extraEntropy. A failing randomness source is fatal.
func (s *Source) NewRandomRoot(extraEntropy string) (interfaces.HDKey, error) {
	random := make([]byte, randomSeedSize)
	if _, err := io.ReadFull(s.entropy, random); err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrEntropyUnavailable, err)
	}
	defer wipeBytes(random)

	h := sha512.New()
	h.Write(random)
	h.Write([]byte{0})
	h.Write([]byte(extraEntropy))
	seed := h.Sum(nil)
	defer wipeBytes(seed)

	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}

	s.log.Debug("Created master key", "extraEntropy", extraEntropy != "")
	return &Key{key: master, format: s.format}, nil
}

// Deserialize restores a key from its base58 extended form.
// A corrupted string returns an error wrapping interfaces.ErrFormat.
func (s *Source) Deserialize(serialized string) (interfaces.HDKey, error) {
	serialized = strings.TrimSpace(serialized)
	if serialized == "" {
		return nil, fmt.Errorf("%w: empty serialized key", interfaces.ErrFormat)
	}

	key, err := bip32.B58Deserialize(serialized)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid serialized key: %v", interfaces.ErrFormat, err)
	}
	if !key.IsPrivate {
		return nil, fmt.Errorf("%w: serialized key is not private", interfaces.ErrFormat)
	}

	return &Key{key: key, format: s.format}, nil
}

func wipeBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
