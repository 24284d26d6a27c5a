package wallet

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
	"github.com/ruteri/failsafe/interfaces"
	"github.com/tyler-smith/go-bip32"
	"golang.org/x/crypto/ripemd160"
)

// Format selects how account keys are exported.
type Format string

const (
	FormatBitcoin  Format = "bitcoin"
	FormatEthereum Format = "ethereum"
)

const (
	wifVersion  = 0x80
	p2pkhPrefix = 0x00
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatBitcoin, FormatEthereum:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", name)
	}
}

// Key wraps a BIP32 extended private key.
type Key struct {
	key    *bip32.Key
	format Format
}

// Serialize returns the base58 extended private key.
func (k *Key) Serialize() string {
	return k.key.B58Serialize()
}

// Child derives the child at index. Index must be below 2^31; hardened adds
// the hardened offset.
func (k *Key) Child(index uint32, hardened bool) (interfaces.HDKey, error) {
	if index >= bip32.FirstHardenedChild {
		return nil, fmt.Errorf("child index %d out of range", index)
	}
	if hardened {
		index += bip32.FirstHardenedChild
	}

	child, err := k.key.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("failed to derive child %d: %w", index, err)
	}
	return &Key{key: child, format: k.format}, nil
}

// PrivateExport returns the private key in the key's export format.
func (k *Key) PrivateExport() (string, error) {
	if !k.key.IsPrivate {
		return "", errors.New("key has no private part")
	}

	switch k.format {
	case FormatEthereum:
		priv, err := crypto.ToECDSA(k.key.Key)
		if err != nil {
			return "", fmt.Errorf("invalid secp256k1 private key: %w", err)
		}
		return hexutil.Encode(crypto.FromECDSA(priv)), nil
	default:
		payload := make([]byte, 0, 34)
		payload = append(payload, wifVersion)
		payload = append(payload, k.key.Key...)
		payload = append(payload, 0x01) // compressed public key
		return base58Check(payload), nil
	}
}

// Address returns the public address in the key's export format.
func (k *Key) Address() (string, error) {
	switch k.format {
	case FormatEthereum:
		priv, err := crypto.ToECDSA(k.key.Key)
		if err != nil {
			return "", fmt.Errorf("invalid secp256k1 private key: %w", err)
		}
		return crypto.PubkeyToAddress(priv.PublicKey).Hex(), nil
	default:
		pub := k.key.PublicKey().Key
		sha := sha256.Sum256(pub)
		h := ripemd160.New()
		h.Write(sha[:])

		payload := make([]byte, 0, 21)
		payload = append(payload, p2pkhPrefix)
		payload = h.Sum(payload)
		return base58Check(payload), nil
	}
}

// base58Check appends the 4-byte double SHA-256 checksum and encodes the result.
func base58Check(payload []byte) string {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])

	data := make([]byte, 0, len(payload)+4)
	data = append(data, payload...)
	data = append(data, second[:4]...)
	return base58.Encode(data)
}
