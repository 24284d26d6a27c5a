package wallet

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
	"github.com/ruteri/failsafe/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip32"
)

// BIP32 test vector 1.
const (
	vectorMaster = "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi"
	vectorChild  = "xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7"
)

func testSource(format Format, entropy io.Reader) *Source {
	return NewSource(format, slog.New(slog.NewTextHandler(io.Discard, nil))).WithEntropy(entropy)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func TestSource_NewRandomRoot(t *testing.T) {
	entropy := bytes.Repeat([]byte{7}, 64)

	a, err := testSource(FormatBitcoin, bytes.NewReader(entropy)).NewRandomRoot("asdf")
	require.NoError(t, err)
	b, err := testSource(FormatBitcoin, bytes.NewReader(entropy)).NewRandomRoot("asdf")
	require.NoError(t, err)
	c, err := testSource(FormatBitcoin, bytes.NewReader(entropy)).NewRandomRoot("other")
	require.NoError(t, err)

	assert.Equal(t, a.Serialize(), b.Serialize(), "Same randomness and entropy must give the same root")
	assert.NotEqual(t, a.Serialize(), c.Serialize(), "Extra entropy must change the root")
	assert.True(t, strings.HasPrefix(a.Serialize(), "xprv"))

	_, err = testSource(FormatBitcoin, failingReader{}).NewRandomRoot("")
	assert.ErrorIs(t, err, interfaces.ErrEntropyUnavailable)

	_, err = testSource(FormatBitcoin, bytes.NewReader([]byte{1, 2, 3})).NewRandomRoot("")
	assert.ErrorIs(t, err, interfaces.ErrEntropyUnavailable, "Short reads must not produce a key")
}

func TestSource_SerializeRoundTrip(t *testing.T) {
	source := testSource(FormatBitcoin, nil)

	master, err := source.Deserialize(vectorMaster)
	require.NoError(t, err)
	assert.Equal(t, vectorMaster, master.Serialize())

	child, err := master.Child(0, true)
	require.NoError(t, err)
	assert.Equal(t, vectorChild, child.Serialize(), "m/0H must match the BIP32 test vector")

	again, err := master.Child(0, true)
	require.NoError(t, err)
	assert.Equal(t, child.Serialize(), again.Serialize(), "Derivation must be deterministic")

	normal, err := master.Child(0, false)
	require.NoError(t, err)
	assert.NotEqual(t, child.Serialize(), normal.Serialize(), "Hardened and normal children differ")

	_, err = master.Child(bip32.FirstHardenedChild, true)
	assert.Error(t, err, "Indexes at or above 2^31 are rejected")
}

func TestSource_DeserializeCorrupted(t *testing.T) {
	source := testSource(FormatBitcoin, nil)

	corrupted := vectorMaster[:len(vectorMaster)-1] + "j"
	for _, bad := range []string{"", "not a key", corrupted, vectorMaster[:50]} {
		_, err := source.Deserialize(bad)
		assert.ErrorIs(t, err, interfaces.ErrFormat, "input %q", bad)
	}
}

func TestKey_BitcoinExport(t *testing.T) {
	priv, err := hex.DecodeString("0c28fca386c7a227600b2fe50b7cae11ec86d3bf1fbe471be89827e19d72aa1d")
	require.NoError(t, err)

	key := &Key{key: &bip32.Key{Key: priv, IsPrivate: true, Version: bip32.PrivateWalletVersion}, format: FormatBitcoin}

	wif, err := key.PrivateExport()
	require.NoError(t, err)
	assert.Equal(t, "KwdMAjGmerYanjeui5SHS7JkmpZvVipYvB2LJGU1ZxJwYvP98617", wif)

	addr, err := key.Address()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(addr, "1"), "P2PKH mainnet addresses start with 1")

	raw, err := base58.Decode(addr)
	require.NoError(t, err)
	assert.Len(t, raw, 25, "version + hash160 + checksum")
}

func TestKey_EthereumExport(t *testing.T) {
	source := testSource(FormatEthereum, nil)
	master, err := source.Deserialize(vectorMaster)
	require.NoError(t, err)

	account, err := master.Child(0, true)
	require.NoError(t, err)

	priv, err := account.PrivateExport()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(priv, "0x"))
	assert.Len(t, priv, 66)

	raw, err := hexutil.Decode(priv)
	require.NoError(t, err)
	same, err := crypto.ToECDSA(raw)
	require.NoError(t, err)

	addr, err := account.Address()
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(same.PublicKey).Hex(), addr)
	assert.Len(t, addr, 42)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("ethereum")
	require.NoError(t, err)
	assert.Equal(t, FormatEthereum, f)

	_, err = ParseFormat("dogecoin")
	assert.Error(t, err)
}
