package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/xtding233/setcollect/internal/strategy"
)

const usage = `usage: setcalc <command> [flags]

commands:
  list                       list configured sets
  strategy <CODE>            packs to open before spending wildcards
  completion                 exact completion distribution for one rarity
  simulate                   Monte Carlo packs-to-complete for one rarity

Run "setcalc <command> --help" for command flags.
Every flag can also be set as SETCALC_<FLAG>, e.g. SETCALC_CONFIG_DIR.
`

// errUsage marks bad command line input; it exits with status 2.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	setupLogging(false)
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "list":
		err = runList(rest, out)
	case "strategy":
		err = runStrategy(rest, out)
	case "completion":
		err = runCompletion(rest, out)
	case "simulate":
		err = runSimulate(rest, out)
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return 0
	default:
		log.Error().Str("command", cmd).Msg("unknown command")
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case errors.Is(err, errUsage), errors.Is(err, strategy.ErrUsage):
		log.Error().Err(err).Msg("bad arguments")
		return 2
	default:
		log.Error().Err(err).Msg("command failed")
		return 1
	}
}

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

// newFlags returns a flag set carrying the flags every command shares.
func newFlags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config-dir", "./configs", "directory holding sets/")
	fs.Bool("debug", false, "debug logging")
	return fs
}

// parse parses args and binds the flag set to a viper instance that also
// reads SETCALC_* environment variables. Explicit flags win over env.
func parse(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	v := viper.New()
	v.SetEnvPrefix("SETCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if v.GetBool("debug") {
		setupLogging(true)
	}
	return v, nil
}
