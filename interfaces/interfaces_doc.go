// Package interfaces defines the core interfaces and types for the key ceremony.
//
// This package provides the contracts between the ceremony components without
// including implementation details, so the orchestrator can be driven by real
// cryptography and a terminal in production, and by test doubles and a
// scripted console in tests.
//
// # Ceremony Interfaces
//
//   - KeySource: creates a random HD master key and restores one from its serialized form
//   - HDKey: a node of the HD tree (master, user or account key)
//   - Splitter: Shamir threshold split, recovery and single-share re-issuance
//   - Guard: passphrase-based shard encryption with bounded decrypt retries
//   - Exporter: derives, writes and reveals one user's key material
//   - Console: the operator interaction port (prompts, reveals, screen clears)
//
// # Type Definitions
//
//   - Shard: a shard payload tagged with the threshold of the split that produced it
//   - RecordExtras: optional fields merged into a user's ceremony record
//   - Prompt / Style: console prompt description and reveal styling
//
// # Error Types
//
// Sentinel errors shared by all components (match with errors.Is):
//
//   - ErrValidation: user, account or threshold counts out of range
//   - ErrThresholdMismatch: shards carry inconsistent threshold tags
//   - ErrDecryption: passphrase attempts exhausted for a shard
//   - ErrFormat: malformed serialized key, shard tag or "salt$ciphertext" encoding
//   - ErrReconstruction: shards cannot be combined
//   - ErrInterrupted: the operator aborted the ceremony
//   - ErrEntropyUnavailable: the system randomness source failed
package interfaces
