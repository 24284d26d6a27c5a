package flags

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/ruteri/failsafe/common"
	"github.com/urfave/cli/v2"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String(LogServiceFlag.Name)

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

var UsersFlag = &cli.IntFlag{
	Name:    "users",
	Aliases: []string{"u"},
	EnvVars: []string{"FAILSAFE_USERS"},
	Usage:   "number of users participating. Asked interactively when not set",
}

var AccountsFlag = &cli.IntFlag{
	Name:    "accounts",
	Aliases: []string{"a"},
	EnvVars: []string{"FAILSAFE_ACCOUNTS"},
	Usage:   "number of accounts to be created per user. Asked interactively when not set",
}

var ThresholdFlag = &cli.IntFlag{
	Name:    "threshold",
	Aliases: []string{"t"},
	EnvVars: []string{"FAILSAFE_THRESHOLD"},
	Usage:   "number of shards required to regenerate the master key",
}

var EntropyFlag = &cli.StringFlag{
	Name:    "entropy",
	EnvVars: []string{"FAILSAFE_ENTROPY"},
	Usage:   "additional entropy mixed into the master key",
}

var RecoverFlag = &cli.BoolFlag{
	Name:    "recover",
	Aliases: []string{"r"},
	Usage:   "recover a user's keys from the master key shards",
}

var UserFlag = &cli.IntFlag{
	Name:    "user",
	EnvVars: []string{"FAILSAFE_USER"},
	Usage:   "index of the user whose keys are regenerated (--recover only)",
}

var FormatFlag = &cli.StringFlag{
	Name:    "format",
	Value:   "bitcoin",
	EnvVars: []string{"FAILSAFE_FORMAT"},
	Usage:   "account export format: bitcoin (WIF, P2PKH) or ethereum (hex key, EIP-55 address)",
}

var WordsFlag = &cli.IntFlag{
	Name:    "words",
	Value:   6,
	EnvVars: []string{"FAILSAFE_WORDS"},
	Usage:   "number of words in each shard passphrase",
}

var AttemptsFlag = &cli.IntFlag{
	Name:    "passphrase-attempts",
	Value:   5,
	EnvVars: []string{"FAILSAFE_PASSPHRASE_ATTEMPTS"},
	Usage:   "passphrase attempts per shard before recovery gives up",
}

var TmpDirFlag = &cli.StringFlag{
	Name:    "tmp-dir",
	EnvVars: []string{"FAILSAFE_TMP_DIR"},
	Usage:   "parent directory of the ephemeral reveal directories (defaults to the system temp dir)",
}

var ScriptFlag = &cli.StringFlag{
	Name:  "script",
	Usage: "read answers from a file instead of the terminal, one per line (rehearsals)",
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}
var LogServiceFlag = &cli.StringFlag{
	Name:  "log-service",
	Value: "failsafe",
	Usage: "add 'service' tag to logs",
}

var CeremonyFlags = []cli.Flag{
	UsersFlag,
	AccountsFlag,
	ThresholdFlag,
	EntropyFlag,
	RecoverFlag,
	UserFlag,
	FormatFlag,
	WordsFlag,
	AttemptsFlag,
	TmpDirFlag,
	ScriptFlag,
}

var CommonFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	LogServiceFlag,
}
