package sharding

import (
	"errors"
	"fmt"

	"github.com/hashicorp/vault/shamir"
	"github.com/mr-tron/base58"
	"github.com/ruteri/failsafe/interfaces"
)

// MaxParticipants is the largest number of shards a split can produce.
const MaxParticipants = 255

// ShamirSplitter implements interfaces.Splitter on top of vault's shamir package.
type ShamirSplitter struct{}

// New creates a splitter.
func New() *ShamirSplitter {
	return &ShamirSplitter{}
}

// Split divides secret into total shards with the given threshold.
// Shard i (0-based) is the share at x = i+1.
func (s *ShamirSplitter) Split(secret []byte, threshold, total int) ([]string, error) {
	if len(secret) == 0 {
		return nil, errors.New("cannot split an empty secret")
	}
	if threshold < 1 {
		return nil, errors.New("threshold must be at least 1")
	}
	if total < threshold {
		return nil, errors.New("total shares must be at least equal to threshold")
	}
	if total > MaxParticipants {
		return nil, fmt.Errorf("total shares cannot exceed %d", MaxParticipants)
	}

	payloads := make([]string, 0, total)

	if threshold == 1 {
		// Constant polynomial: every share is the secret itself.
		for x := 1; x <= total; x++ {
			payloads = append(payloads, encodeShare(secret, byte(x)))
		}
		return payloads, nil
	}

	// vault assigns random x coordinates; the K shares it returns fully
	// determine the polynomial, which is then evaluated at 1..total.
	base, err := shamir.Split(secret, threshold, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to split secret: %w", err)
	}
	defer wipeAll(base)

	for x := 1; x <= total; x++ {
		y, err := evaluateAt(base, byte(x))
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, encodeShare(y, byte(x)))
		wipeBytes(y)
	}

	return payloads, nil
}

// Recover combines shard payloads into the original secret.
// Returns ErrReconstruction if the payloads are inconsistent.
func (s *ShamirSplitter) Recover(payloads []string) ([]byte, error) {
	shares, err := decodeShares(payloads)
	if err != nil {
		return nil, err
	}
	defer wipeAll(shares)

	if len(shares) == 1 {
		// Only a threshold-1 split can be recovered from a single share.
		share := shares[0]
		secret := make([]byte, len(share)-1)
		copy(secret, share[:len(share)-1])
		return secret, nil
	}

	secret, err := shamir.Combine(shares)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrReconstruction, err)
	}
	return secret, nil
}

// RecoverOne regenerates the payload held by participant index (1-based).
func (s *ShamirSplitter) RecoverOne(payloads []string, index int) (string, error) {
	if index < 1 || index > MaxParticipants {
		return "", fmt.Errorf("participant index must be between 1 and %d", MaxParticipants)
	}

	shares, err := decodeShares(payloads)
	if err != nil {
		return "", err
	}
	defer wipeAll(shares)

	if len(shares) == 1 {
		share := shares[0]
		return encodeShare(share[:len(share)-1], byte(index)), nil
	}

	y, err := evaluateAt(shares, byte(index))
	if err != nil {
		return "", err
	}
	defer wipeBytes(y)

	return encodeShare(y, byte(index)), nil
}

// evaluateAt computes p(x) from shares of p. In GF(2^8) addition is XOR, so
// q(z) = p(z + x) has the same degree as p and q(0) = p(x); shifting every
// sample's coordinate by x and combining at the origin yields p(x).
func evaluateAt(shares [][]byte, x byte) ([]byte, error) {
	shifted := make([][]byte, len(shares))
	for i, share := range shares {
		s := make([]byte, len(share))
		copy(s, share)
		s[len(s)-1] ^= x
		shifted[i] = s
	}
	defer wipeAll(shifted)

	y, err := shamir.Combine(shifted)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrReconstruction, err)
	}
	return y, nil
}

func decodeShares(payloads []string) ([][]byte, error) {
	if len(payloads) == 0 {
		return nil, fmt.Errorf("%w: no shards provided", interfaces.ErrReconstruction)
	}

	shares := make([][]byte, 0, len(payloads))
	seen := make(map[byte]bool, len(payloads))
	for i, payload := range payloads {
		share, err := base58.Decode(payload)
		if err != nil {
			wipeAll(shares)
			return nil, fmt.Errorf("%w: shard %d is not valid base58: %v", interfaces.ErrFormat, i+1, err)
		}
		if len(share) < 2 {
			wipeAll(shares)
			return nil, fmt.Errorf("%w: shard %d is too short", interfaces.ErrFormat, i+1)
		}
		if len(shares) > 0 && len(share) != len(shares[0]) {
			wipeAll(shares)
			return nil, fmt.Errorf("%w: shard %d has a different length", interfaces.ErrReconstruction, i+1)
		}
		x := share[len(share)-1]
		if x == 0 || seen[x] {
			wipeAll(shares)
			return nil, fmt.Errorf("%w: duplicate or invalid shard %d", interfaces.ErrReconstruction, i+1)
		}
		seen[x] = true
		shares = append(shares, share)
	}
	return shares, nil
}

func encodeShare(y []byte, x byte) string {
	raw := make([]byte, len(y)+1)
	copy(raw, y)
	raw[len(y)] = x
	defer wipeBytes(raw)
	return base58.Encode(raw)
}

// Securely wipe data from memory
func wipeBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

func wipeAll(shares [][]byte) {
	for _, share := range shares {
		wipeBytes(share)
	}
}
