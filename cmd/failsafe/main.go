package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruteri/failsafe/ceremony"
	"github.com/ruteri/failsafe/cmd/flags"
	"github.com/ruteri/failsafe/common"
	"github.com/ruteri/failsafe/console"
	"github.com/ruteri/failsafe/export"
	"github.com/ruteri/failsafe/guard"
	"github.com/ruteri/failsafe/interfaces"
	"github.com/ruteri/failsafe/sharding"
	"github.com/ruteri/failsafe/wallet"
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:    "failsafe",
		Usage:   "Split an HD master key among a group of users and recover user keys from a quorum",
		Version: common.Version,
		Flags:   append(append([]cli.Flag{}, flags.CeremonyFlags...), flags.CommonFlags...),
		Action:  run,
	}
}

func main() {
	cli.VersionPrinter = func(cCtx *cli.Context) {
		fmt.Println(cCtx.App.Version)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		if errors.Is(err, interfaces.ErrInterrupted) || errors.Is(err, context.Canceled) {
			fmt.Println("Aborted")
			return
		}
		stop()
		log.Fatal(err)
	}
}

func run(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)

	format, err := wallet.ParseFormat(cCtx.String(flags.FormatFlag.Name))
	if err != nil {
		return err
	}

	var con interfaces.Console
	if path := cCtx.String(flags.ScriptFlag.Name); path != "" {
		script, err := console.LoadScript(path)
		if err != nil {
			return err
		}
		con = script.Echo(cCtx.App.Writer)
		logger.Info("Running scripted ceremony", "script", path)
	} else {
		terminal, err := console.NewTerminal()
		if err != nil {
			return err
		}
		defer terminal.Close()
		con = terminal
	}

	shardGuard, err := guard.New(guard.Config{
		MaxAttempts: cCtx.Int(flags.AttemptsFlag.Name),
		Log:         logger,
	})
	if err != nil {
		return err
	}

	c := ceremony.New(ceremony.Config{
		Console:  con,
		Keys:     wallet.NewSource(format, logger),
		Splitter: sharding.New(),
		Guard:    shardGuard,
		Exporter: export.New(export.Config{
			Console: con,
			QR:      export.NewQRCodes(),
			TmpDir:  cCtx.String(flags.TmpDirFlag.Name),
			Log:     logger,
		}),
		PassphraseWords: cCtx.Int(flags.WordsFlag.Name),
		Log:             logger,
	})

	if cCtx.Bool(flags.RecoverFlag.Name) {
		if err := rejectFlags(cCtx, flags.UsersFlag, flags.ThresholdFlag, flags.EntropyFlag); err != nil {
			return err
		}
		return c.Recover(cCtx.Context, ceremony.RecoverParams{
			User:     cCtx.Int(flags.UserFlag.Name),
			Accounts: cCtx.Int(flags.AccountsFlag.Name),
		})
	}

	if err := rejectFlags(cCtx, flags.UserFlag); err != nil {
		return err
	}
	return c.Generate(cCtx.Context, ceremony.Params{
		Users:     cCtx.Int(flags.UsersFlag.Name),
		Accounts:  cCtx.Int(flags.AccountsFlag.Name),
		Threshold: cCtx.Int(flags.ThresholdFlag.Name),
		Entropy:   cCtx.String(flags.EntropyFlag.Name),
	})
}

// rejectFlags fails when any of the flags was given for the selected mode.
func rejectFlags(cCtx *cli.Context, disallowed ...cli.Flag) error {
	for _, f := range disallowed {
		name := f.Names()[0]
		if cCtx.IsSet(name) {
			mode := "generation"
			if cCtx.Bool(flags.RecoverFlag.Name) {
				mode = "--recover"
			}
			return fmt.Errorf("%w: --%s cannot be used with %s", interfaces.ErrValidation, name, mode)
		}
	}
	return nil
}
