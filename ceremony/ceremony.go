package ceremony

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ruteri/failsafe/interfaces"
	"github.com/ruteri/failsafe/sharding"
)

const (
	// DefaultPassphraseWords is the passphrase length for encrypted shards.
	DefaultPassphraseWords = 6

	// maxParamRounds bounds how often invalid interactive parameters are asked again.
	maxParamRounds = 3
)

// Config contains configuration parameters for creating a Ceremony.
type Config struct {
	Console  interfaces.Console
	Keys     interfaces.KeySource
	Splitter interfaces.Splitter
	Guard    interfaces.Guard
	Exporter interfaces.Exporter

	PassphraseWords int
	Log             *slog.Logger
}

// Ceremony runs the generate and recover flows.
type Ceremony struct {
	console  interfaces.Console
	keys     interfaces.KeySource
	splitter interfaces.Splitter
	guard    interfaces.Guard
	exporter interfaces.Exporter
	words    int
	log      *slog.Logger
}

// New creates a Ceremony.
func New(cfg Config) *Ceremony {
	words := cfg.PassphraseWords
	if words < 1 {
		words = DefaultPassphraseWords
	}
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Ceremony{
		console:  cfg.Console,
		keys:     cfg.Keys,
		splitter: cfg.Splitter,
		guard:    cfg.Guard,
		exporter: cfg.Exporter,
		words:    words,
		log:      log,
	}
}

// Generate creates a master key, splits it among p.Users users and reveals
// each user's material in turn.
func (c *Ceremony) Generate(ctx context.Context, p Params) error {
	p, err := c.collectParams(ctx, p)
	if err != nil {
		return err
	}

	c.console.Clear()
	c.console.Reveal(interfaces.StyleInfo,
		"The system will now attempt to generate a master key and split it amongst the users",
		"This process may take awhile...",
	)

	master, err := c.keys.NewRandomRoot(p.Entropy)
	if err != nil {
		return fmt.Errorf("failed to create master key: %w", err)
	}

	var shards []string
	if p.Users > 1 {
		shards, err = c.splitter.Split([]byte(master.Serialize()), p.Threshold, p.Users)
		if err != nil {
			return fmt.Errorf("failed to split master key: %w", err)
		}
		if len(shards) != p.Users {
			return fmt.Errorf("%w: expected %d shards, got %d", interfaces.ErrReconstruction, p.Users, len(shards))
		}
		defer clear(shards)
	}

	c.log.Info("Starting generation ceremony", "users", p.Users, "threshold", p.Threshold, "accounts", p.Accounts)

	for i := 1; i <= p.Users; i++ {
		if err := c.handOff(ctx,
			fmt.Sprintf("The following screen is meant for user %d (of %d)", i, p.Users),
			fmt.Sprintf("Do not press continue if you are not user %d", i),
		); err != nil {
			return err
		}

		var extras interfaces.RecordExtras
		if p.Users > 1 {
			extras, err = c.sealShard(interfaces.Shard{Threshold: p.Threshold, Payload: shards[i-1]})
			if err != nil {
				return err
			}
			extras.Child = fmt.Sprintf("%d of %d", i, p.Users)
		}

		if err := c.exporter.ExportUser(ctx, master, uint32(i), p.Accounts, extras); err != nil {
			return fmt.Errorf("failed to export user %d: %w", i, err)
		}
		c.log.Debug("Exported user", "user", i)
	}

	c.console.Clear()
	c.console.Reveal(interfaces.StyleSuccess, "All done")
	return nil
}

// Recover collects a quorum of encrypted shards, rebuilds the master key and
// re-issues the material of p.User including that user's own shard.
func (c *Ceremony) Recover(ctx context.Context, p RecoverParams) error {
	p, err := c.collectRecoverParams(ctx, p)
	if err != nil {
		return err
	}

	c.console.Clear()
	c.console.Reveal(interfaces.StylePlain, "Starting on the next screen, each user will be asked to input their piece of the master key.")
	if err := c.acknowledge(ctx); err != nil {
		return err
	}

	threshold, payloads, err := c.collectShards(ctx, p.User)
	defer clear(payloads)
	if err != nil {
		return err
	}

	c.log.Info("Quorum reached", "threshold", threshold)

	secret, err := c.splitter.Recover(payloads)
	if err != nil {
		return fmt.Errorf("failed to recover master key: %w", err)
	}
	master, err := c.keys.Deserialize(string(secret))
	clear(secret)
	if err != nil {
		return fmt.Errorf("recovered master key is unusable: %w", err)
	}

	share, err := c.splitter.RecoverOne(payloads, p.User)
	if err != nil {
		return fmt.Errorf("failed to regenerate shard of user %d: %w", p.User, err)
	}
	extras, err := c.sealShard(interfaces.Shard{Threshold: threshold, Payload: share})
	if err != nil {
		return err
	}
	extras.Child = fmt.Sprintf("user %d", p.User)

	if err := c.handOff(ctx, fmt.Sprintf("The next screen is meant for user %d", p.User)); err != nil {
		return err
	}

	if err := c.exporter.ExportUser(ctx, master, uint32(p.User), p.Accounts, extras); err != nil {
		return fmt.Errorf("failed to export user %d: %w", p.User, err)
	}

	c.console.Clear()
	c.console.Reveal(interfaces.StyleSuccess, "All done")
	return nil
}

// collectShards runs the holder loop until threshold distinct shards are in.
// The threshold is taken from the first accepted shard; a shard carrying a
// different threshold aborts before any reconstruction is attempted.
func (c *Ceremony) collectShards(ctx context.Context, user int) (int, []string, error) {
	var (
		threshold int
		payloads  []string
	)
	seen := make(map[string]struct{})

	for round := 0; threshold == 0 || len(payloads) < threshold; round++ {
		if round > 0 {
			if err := c.handOff(ctx, "The next screen is for the next user."); err != nil {
				return 0, payloads, err
			}
		}

		c.console.Clear()
		c.console.Reveal(interfaces.StyleInfo,
			fmt.Sprintf("Attempting to recover keys for user %d", user),
			fmt.Sprintf("Key progress: %d", len(payloads)),
			"",
		)

		encoded, err := c.console.Ask(ctx, interfaces.Prompt{Label: promptShard})
		if err != nil {
			return 0, payloads, err
		}

		tagged, err := c.guard.Decrypt(ctx, strings.TrimSpace(encoded), c.askPassphrase)
		if err != nil {
			return 0, payloads, fmt.Errorf("failed to open shard: %w", err)
		}

		shard, err := sharding.ParseShard(tagged)
		if err != nil {
			return 0, payloads, err
		}

		if threshold == 0 {
			threshold = shard.Threshold
		} else if shard.Threshold != threshold {
			return 0, payloads, fmt.Errorf("%w: expected %d, shard carries %d", interfaces.ErrThresholdMismatch, threshold, shard.Threshold)
		}

		if _, dup := seen[shard.Payload]; dup {
			c.console.Reveal(interfaces.StyleWarning, "This shard has already been entered, it does not count twice")
			continue
		}
		seen[shard.Payload] = struct{}{}
		payloads = append(payloads, shard.Payload)

		c.console.Reveal(interfaces.StyleSuccess, "Shard has been accepted")
	}

	return threshold, payloads, nil
}

// collectParams fills in missing counts. Invalid answers are reported and
// asked again; invalid values that came from the caller fail right away.
func (c *Ceremony) collectParams(ctx context.Context, given Params) (Params, error) {
	if err := validateGiven(given); err != nil {
		return given, err
	}

	for round := 1; ; round++ {
		p := given
		prompted := false

		if p.Users == 0 {
			n, err := c.askInt(ctx, fmt.Sprintf(promptUsers, 1), 1)
			if err != nil {
				return p, err
			}
			p.Users, prompted = n, true
		}

		if p.Threshold == 0 {
			if p.Users > 1 {
				def := min(2, p.Users)
				n, err := c.askInt(ctx, fmt.Sprintf(promptThreshold, def), def)
				if err != nil {
					return p, err
				}
				p.Threshold, prompted = n, true
			} else {
				p.Threshold = 1
			}
		}

		if p.Accounts == 0 {
			n, err := c.askInt(ctx, fmt.Sprintf(promptAccounts, 1), 1)
			if err != nil {
				return p, err
			}
			p.Accounts, prompted = n, true
		}

		if prompted && p.Entropy == "" {
			entropy, err := c.console.Ask(ctx, interfaces.Prompt{Label: promptEntropy})
			if err != nil {
				return p, err
			}
			p.Entropy = entropy
		}

		err := ValidateParams(p)
		if err == nil {
			return p, nil
		}
		if !prompted || round >= maxParamRounds {
			return p, err
		}

		c.console.Reveal(interfaces.StyleWarning, errorMessage(err), "")
	}
}

// collectRecoverParams fills in the target user and account count.
func (c *Ceremony) collectRecoverParams(ctx context.Context, given RecoverParams) (RecoverParams, error) {
	if err := validateGivenRecover(given); err != nil {
		return given, err
	}

	for round := 1; ; round++ {
		p := given
		prompted := false

		if p.User == 0 {
			n, err := c.askInt(ctx, promptTarget, -1)
			if err != nil {
				return p, err
			}
			p.User, prompted = n, true
		}

		if p.Accounts == 0 {
			n, err := c.askInt(ctx, fmt.Sprintf(promptAccounts, 1), 1)
			if err != nil {
				return p, err
			}
			p.Accounts, prompted = n, true
		}

		err := ValidateRecoverParams(p)
		if err == nil {
			return p, nil
		}
		if !prompted || round >= maxParamRounds {
			return p, err
		}

		c.console.Reveal(interfaces.StyleWarning, errorMessage(err), "")
	}
}

// sealShard encrypts the tagged shard for its holder.
func (c *Ceremony) sealShard(shard interfaces.Shard) (interfaces.RecordExtras, error) {
	sealed, err := c.guard.Encrypt(shard.String(), c.words)
	if err != nil {
		return interfaces.RecordExtras{}, fmt.Errorf("failed to encrypt shard: %w", err)
	}
	return interfaces.RecordExtras{
		EncryptedShard: c.guard.Encode(sealed),
		Passphrase:     sealed.Passphrase,
	}, nil
}

// handOff shows a warning screen and waits before the next screen is shown
// to a specific person.
func (c *Ceremony) handOff(ctx context.Context, lines ...string) error {
	c.console.Clear()
	c.console.Reveal(interfaces.StyleWarning, append(lines, "")...)
	if err := c.acknowledge(ctx); err != nil {
		return err
	}
	c.console.Clear()
	return nil
}

// errorMessage strips the sentinel prefix for operator display.
func errorMessage(err error) string {
	if errors.Is(err, interfaces.ErrValidation) {
		return strings.TrimPrefix(err.Error(), interfaces.ErrValidation.Error()+": ")
	}
	return err.Error()
}
