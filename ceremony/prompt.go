package ceremony

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ruteri/failsafe/interfaces"
)

const (
	promptUsers     = "Enter number of users participating [%d]: "
	promptThreshold = "Enter key threshold [%d]: "
	promptAccounts  = "Enter number of accounts to be created per user [%d]: "
	promptEntropy   = "Enter additional entropy [None]: "
	promptTarget    = "Enter the index of the user who's key should be regenerated: "
	promptShard     = "Enter encrypted shard: "
	promptPass      = "Enter shard passphrase: "
	promptContinue  = "Press enter to continue when ready"

	// maxInputAttempts bounds re-prompting on unparsable numbers.
	maxInputAttempts = 3
)

// askInt asks for a number until the answer parses. def < 0 means the
// question has no default.
func (c *Ceremony) askInt(ctx context.Context, label string, def int) (int, error) {
	p := interfaces.Prompt{Label: label}
	if def >= 0 {
		p.Default = strconv.Itoa(def)
	}

	for attempt := 1; ; attempt++ {
		answer, err := c.console.Ask(ctx, p)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(strings.TrimSpace(answer))
		if err == nil {
			return n, nil
		}

		if attempt >= maxInputAttempts {
			return 0, fmt.Errorf("%w: %q is not a number", interfaces.ErrValidation, answer)
		}
		c.console.Reveal(interfaces.StyleWarning, fmt.Sprintf("%q is not a number, please try again", answer))
	}
}

// acknowledge blocks until the operator presses enter.
func (c *Ceremony) acknowledge(ctx context.Context) error {
	_, err := c.console.Ask(ctx, interfaces.Prompt{Label: promptContinue})
	return err
}

// askPassphrase is the passphrase supplier handed to the guard.
func (c *Ceremony) askPassphrase(ctx context.Context, attempt int) (string, error) {
	if attempt > 1 {
		c.console.Reveal(interfaces.StyleWarning, "The passphrase does not open this shard, please try again")
	}
	return c.console.Ask(ctx, interfaces.Prompt{Label: promptPass, Masked: true})
}
