// Package guard wraps shards with passphrase derived keys so they can be
// handed out on paper or as QR codes without exposing them to bystanders.
//
// Each shard gets a fresh random salt and a passphrase of dictionary words
// drawn from the BIP39 English list. The key is derived with PBKDF2-SHA256
// and the shard sealed with AES-GCM. The encoded form is
//
//	urlsafe-b64(salt) "$" urlsafe-b64(nonce || ciphertext)
//
// KDF parameters are fixed for both directions (see DefaultParams). Decrypt
// asks the holder again after a failed authentication, up to MaxAttempts, so
// a typo does not cost the ceremony its progress.
package guard
