package interfaces

import (
	"context"
	"fmt"
)

// HDKey is a node of a hierarchical-deterministic key tree.
type HDKey interface {
	// Serialize returns the extended private key in its base58 form.
	Serialize() string

	// Child derives the child at index. Hardened derivation is used for all
	// user and account keys.
	Child(index uint32, hardened bool) (HDKey, error)

	// PrivateExport returns the private key in the configured export format.
	PrivateExport() (string, error)

	// Address returns the public address in the configured export format.
	Address() (string, error)
}

// KeySource creates and restores master keys.
type KeySource interface {
	// NewRandomRoot creates a master key from system randomness mixed with
	// caller supplied entropy.
	NewRandomRoot(extraEntropy string) (HDKey, error)

	// Deserialize restores a key from its serialized form.
	Deserialize(serialized string) (HDKey, error)
}

// Splitter splits a secret into threshold shards and recovers it.
type Splitter interface {
	// Split returns total shard payloads, any threshold of which recover secret.
	// Payload i (0-based) belongs to participant i+1.
	Split(secret []byte, threshold, total int) ([]string, error)

	// Recover combines a quorum of shard payloads into the original secret.
	Recover(payloads []string) ([]byte, error)

	// RecoverOne regenerates the payload of participant index (1-based) from a quorum.
	RecoverOne(payloads []string, index int) (string, error)
}

// Shard is a shard payload tagged with the threshold of its split.
type Shard struct {
	Threshold int
	Payload   string
}

// String returns the tagged form "<threshold>-<payload>".
func (s Shard) String() string {
	return fmt.Sprintf("%d-%s", s.Threshold, s.Payload)
}

// EncryptedShard is a shard sealed under a passphrase derived key.
type EncryptedShard struct {
	Salt       []byte
	Ciphertext []byte

	// Passphrase is shown once to the shard holder and never persisted elsewhere.
	Passphrase string
}

// PassphraseSupplier asks the shard holder for a passphrase. attempt starts at 1.
type PassphraseSupplier func(ctx context.Context, attempt int) (string, error)

// Guard encrypts shards for holders and decrypts them during recovery.
type Guard interface {
	// Encrypt seals payload under a freshly drawn passphrase of words words.
	Encrypt(payload string, words int) (EncryptedShard, error)

	// Encode renders an encrypted shard as "b64(salt)$b64(ciphertext)".
	Encode(shard EncryptedShard) string

	// Decrypt opens an encoded shard, asking supply again after a failed
	// authentication until the attempts are exhausted.
	Decrypt(ctx context.Context, encoded string, supply PassphraseSupplier) (string, error)
}

// RecordExtras holds optional fields merged into a user's ceremony record.
type RecordExtras struct {
	Child          string
	EncryptedShard string
	Passphrase     string
}

// Exporter derives one user's key material and reveals it through ephemeral storage.
type Exporter interface {
	ExportUser(ctx context.Context, master HDKey, userIndex uint32, accounts int, extras RecordExtras) error
}
