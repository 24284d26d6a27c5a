package guard

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/tyler-smith/go-bip39/wordlists"
)

// wordlist is read-only for the lifetime of the process.
var wordlist = wordlists.English

// DrawWords returns count words chosen independently and uniformly, with
// replacement, using crypto/rand.
func DrawWords(count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("passphrase needs at least one word, got %d", count)
	}

	limit := big.NewInt(int64(len(wordlist)))
	words := make([]string, count)
	for i := range words {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to draw passphrase word: %w", err)
		}
		words[i] = wordlist[n.Int64()]
	}
	return words, nil
}
