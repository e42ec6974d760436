package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cfoust/acp/pkg/config"
	"github.com/cfoust/acp/pkg/version"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Version bool `help:"Print version information and exit." short:"v"`
	Debug   bool `help:"Whether to enable debug logging."`

	Run struct {
		Configs  []string `arg:"" optional:"" name:"configs" help:"Configuration files for the vehicle and scenario." type:"file"`
		Ticks    int      `help:"Ticks to run idle when the scenario has no segments." default:"250"`
		Record   string   `help:"Write per-tick telemetry as CBOR to this file." type:"path"`
		Realtime bool     `help:"Pace ticks in wall-clock time. SIGUSR1 pauses and resumes."`
	} `cmd:"" help:"Run a driving scenario."`

	Config struct {
	} `cmd:"" help:"Write acp's default configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if len(os.Args) == 1 {
		err := runCommand(runOptions{Ticks: 250})
		if err != nil {
			writeError(err)
		}
		return
	}

	ctx := kong.Parse(&CLI,
		kong.Name("acp"),
		kong.Description("an arcade car physics controller"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if CLI.Version {
		fmt.Printf(
			"acp %s (commit %s)\n",
			version.Version,
			version.GitCommit,
		)
		fmt.Printf(
			"built %s\n",
			version.BuildTime,
		)
		os.Exit(0)
	}

	switch ctx.Command() {
	case "run":
		fallthrough
	case "run <configs>":
		err := runCommand(runOptions{
			Configs:  CLI.Run.Configs,
			Ticks:    CLI.Run.Ticks,
			Record:   CLI.Run.Record,
			Realtime: CLI.Run.Realtime,
		})
		if err != nil {
			writeError(err)
		}
	case "config":
		os.Stdout.Write(config.DEFAULT)
	}
}
