package export

import (
	"encoding/json"
	"fmt"

	"github.com/ruteri/failsafe/interfaces"
)

// CeremonyRecord is the JSON document handed to a single user.
type CeremonyRecord struct {
	UserKey        string   `json:"user_key"`
	WIFAccounts    []string `json:"wif_accounts"`
	Child          string   `json:"child,omitempty"`
	EncryptedShard string   `json:"encrypted_shard,omitempty"`
	Passphrase     string   `json:"passphrase,omitempty"`
}

// Account is one derived account of a user.
type Account struct {
	Index   uint32
	Private string
	Address string
}

// BuildRecord derives the hardened user key and accounts hardened accounts
// below it, and merges extras into the record.
func BuildRecord(master interfaces.HDKey, userIndex uint32, accounts int, extras interfaces.RecordExtras) (CeremonyRecord, []Account, error) {
	if accounts < 1 {
		return CeremonyRecord{}, nil, fmt.Errorf("%w: account count must be at least 1, got %d", interfaces.ErrValidation, accounts)
	}

	user, err := master.Child(userIndex, true)
	if err != nil {
		return CeremonyRecord{}, nil, fmt.Errorf("failed to derive user key %d: %w", userIndex, err)
	}

	record := CeremonyRecord{
		UserKey:        user.Serialize(),
		WIFAccounts:    make([]string, 0, accounts),
		Child:          extras.Child,
		EncryptedShard: extras.EncryptedShard,
		Passphrase:     extras.Passphrase,
	}

	derived := make([]Account, 0, accounts)
	for j := 0; j < accounts; j++ {
		index := uint32(j)

		account, err := user.Child(index, true)
		if err != nil {
			return CeremonyRecord{}, nil, fmt.Errorf("failed to derive account %d: %w", j, err)
		}

		private, err := account.PrivateExport()
		if err != nil {
			return CeremonyRecord{}, nil, fmt.Errorf("failed to export account %d: %w", j, err)
		}

		address, err := account.Address()
		if err != nil {
			return CeremonyRecord{}, nil, fmt.Errorf("failed to derive address of account %d: %w", j, err)
		}

		record.WIFAccounts = append(record.WIFAccounts, private)
		derived = append(derived, Account{Index: index, Private: private, Address: address})
	}

	return record, derived, nil
}

// Marshal renders the record as indented JSON.
func (r CeremonyRecord) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode ceremony record: %w", err)
	}
	return data, nil
}
