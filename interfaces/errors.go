package interfaces

import "errors"

var (
	// ErrValidation is returned when ceremony parameters are out of range.
	// No key material has been derived when it is returned.
	ErrValidation = errors.New("invalid ceremony parameters")

	// ErrThresholdMismatch is returned when a shard's threshold tag differs from
	// the threshold established by the first accepted shard.
	ErrThresholdMismatch = errors.New("shard thresholds do not match")

	// ErrDecryption is returned when a shard could not be authenticated within
	// the allowed number of passphrase attempts.
	ErrDecryption = errors.New("shard decryption failed")

	// ErrFormat is returned for malformed serialized keys, shard tags and
	// encrypted shard encodings.
	ErrFormat = errors.New("malformed input")

	// ErrReconstruction is returned when shards are inconsistent and cannot be combined.
	ErrReconstruction = errors.New("shards cannot be combined")

	// ErrInterrupted is returned when the operator aborts the ceremony.
	ErrInterrupted = errors.New("ceremony interrupted")

	// ErrEntropyUnavailable is returned when the system randomness source fails.
	ErrEntropyUnavailable = errors.New("randomness source unavailable")
)
