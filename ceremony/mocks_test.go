package ceremony

import (
	"context"

	"github.com/ruteri/failsafe/interfaces"
	"github.com/stretchr/testify/mock"
)

// fakeKey is an HDKey whose serialization is fixed.
type fakeKey struct {
	serialized string
}

func (k *fakeKey) Serialize() string { return k.serialized }

func (k *fakeKey) Child(index uint32, hardened bool) (interfaces.HDKey, error) {
	return &fakeKey{serialized: k.serialized + "/child"}, nil
}

func (k *fakeKey) PrivateExport() (string, error) { return "wif:" + k.serialized, nil }

func (k *fakeKey) Address() (string, error) { return "addr:" + k.serialized, nil }

// MockKeySource mocks the KeySource interface
type MockKeySource struct {
	mock.Mock
}

func (m *MockKeySource) NewRandomRoot(extraEntropy string) (interfaces.HDKey, error) {
	args := m.Called(extraEntropy)
	key, _ := args.Get(0).(interfaces.HDKey)
	return key, args.Error(1)
}

func (m *MockKeySource) Deserialize(serialized string) (interfaces.HDKey, error) {
	args := m.Called(serialized)
	key, _ := args.Get(0).(interfaces.HDKey)
	return key, args.Error(1)
}

// MockSplitter mocks the Splitter interface
type MockSplitter struct {
	mock.Mock
}

func (m *MockSplitter) Split(secret []byte, threshold, total int) ([]string, error) {
	args := m.Called(secret, threshold, total)
	shards, _ := args.Get(0).([]string)
	return shards, args.Error(1)
}

func (m *MockSplitter) Recover(payloads []string) ([]byte, error) {
	args := m.Called(payloads)
	secret, _ := args.Get(0).([]byte)
	return secret, args.Error(1)
}

func (m *MockSplitter) RecoverOne(payloads []string, index int) (string, error) {
	args := m.Called(payloads, index)
	return args.String(0), args.Error(1)
}

// MockGuard mocks the Guard interface. Decrypt asks the supplier once before
// consulting the expectations, like a correct first passphrase would.
type MockGuard struct {
	mock.Mock
}

func (m *MockGuard) Encrypt(payload string, words int) (interfaces.EncryptedShard, error) {
	args := m.Called(payload, words)
	return args.Get(0).(interfaces.EncryptedShard), args.Error(1)
}

func (m *MockGuard) Encode(shard interfaces.EncryptedShard) string {
	args := m.Called(shard)
	return args.String(0)
}

func (m *MockGuard) Decrypt(ctx context.Context, encoded string, supply interfaces.PassphraseSupplier) (string, error) {
	if _, err := supply(ctx, 1); err != nil {
		return "", err
	}
	args := m.Called(ctx, encoded)
	return args.String(0), args.Error(1)
}

// MockExporter mocks the Exporter interface
type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) ExportUser(ctx context.Context, master interfaces.HDKey, userIndex uint32, accounts int, extras interfaces.RecordExtras) error {
	args := m.Called(ctx, master, userIndex, accounts, extras)
	return args.Error(0)
}
