package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ruteri/failsafe/ephemeral"
	"github.com/ruteri/failsafe/interfaces"
)

const (
	recordFilePattern  = "user-%d.json"
	privateFilePattern = "account-%d-private.png"
	addressFilePattern = "account-%d-address.png"
	shardFile          = "shard.png"

	continuePrompt = "Press enter to continue when ready"
)

// Config contains configuration parameters for creating an Exporter.
type Config struct {
	Console interfaces.Console
	QR      QRRenderer

	// TmpDir is the parent of ephemeral directories, os.TempDir() when empty.
	TmpDir string

	Log *slog.Logger
}

// Exporter implements interfaces.Exporter.
type Exporter struct {
	console interfaces.Console
	qr      QRRenderer
	tmpDir  string
	log     *slog.Logger
}

// New creates an Exporter.
func New(cfg Config) *Exporter {
	qr := cfg.QR
	if qr == nil {
		qr = NewQRCodes()
	}
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Exporter{
		console: cfg.Console,
		qr:      qr,
		tmpDir:  cfg.TmpDir,
		log:     log,
	}
}

// ExportUser derives the material of userIndex, writes it to a fresh
// ephemeral directory, reveals it and waits for acknowledgment. The
// directory is removed on every return path.
func (e *Exporter) ExportUser(ctx context.Context, master interfaces.HDKey, userIndex uint32, accounts int, extras interfaces.RecordExtras) error {
	record, derived, err := BuildRecord(master, userIndex, accounts, extras)
	if err != nil {
		return err
	}

	return ephemeral.With(ctx, e.tmpDir, e.log, func(scope *ephemeral.Scope) error {
		for _, account := range derived {
			if err := e.writeQR(scope, fmt.Sprintf(privateFilePattern, account.Index), account.Private); err != nil {
				return err
			}
			if err := e.writeQR(scope, fmt.Sprintf(addressFilePattern, account.Index), account.Address); err != nil {
				return err
			}
		}

		if record.EncryptedShard != "" {
			if err := e.writeQR(scope, shardFile, record.EncryptedShard); err != nil {
				return err
			}
		}

		data, err := record.Marshal()
		if err != nil {
			return err
		}
		recordPath, err := scope.Write(fmt.Sprintf(recordFilePattern, userIndex), data)
		if err != nil {
			return err
		}

		e.log.Info("Wrote ceremony record", "user", userIndex, "accounts", len(derived))

		if err := e.reveal(scope, recordPath, record, derived[0]); err != nil {
			return err
		}

		_, err = e.console.Ask(ctx, interfaces.Prompt{Label: continuePrompt})
		return err
	})
}

func (e *Exporter) writeQR(scope *ephemeral.Scope, name, content string) error {
	png, err := e.qr.PNG(content)
	if err != nil {
		return err
	}
	_, err = scope.Write(name, png)
	return err
}

func (e *Exporter) reveal(scope *ephemeral.Scope, recordPath string, record CeremonyRecord, first Account) error {
	e.console.Reveal(interfaces.StyleInfo,
		fmt.Sprintf("Data has been written to %s", scope.Dir()),
		fmt.Sprintf("Ceremony record: %s", recordPath),
		"",
	)

	preview, err := e.qr.Text(first.Address)
	if err != nil {
		return err
	}
	e.console.Reveal(interfaces.StylePlain,
		fmt.Sprintf("Address of account %d: %s", first.Index, first.Address),
		strings.TrimRight(preview, "\n"),
		"",
	)

	if record.Child != "" {
		e.console.Reveal(interfaces.StylePlain, fmt.Sprintf("Key: %s", record.Child))
	}
	if record.Passphrase != "" {
		e.console.Reveal(interfaces.StyleWarning,
			"Shard passphrase (write it down, it is not stored anywhere else):",
			record.Passphrase,
			"",
		)
	}

	e.console.Reveal(interfaces.StyleWarning,
		"Take the time to copy the files before continuing",
		"After leaving this screen, the files will be destroyed",
		"",
	)
	return nil
}
