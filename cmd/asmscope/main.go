package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"unicode"

	"github.com/inlineasm/asmscope/internal/config"
	"github.com/inlineasm/asmscope/internal/utils"
	"github.com/posener/complete/v2/install"
	"github.com/rs/zerolog"
)

const (
	ERROR_STATUS_CODE = 1
	COMMAND_NAME      = "asmscope"
)

func main() {
	//handle completions
	cmd.Complete(COMMAND_NAME)

	statusCode := _main(os.Args, os.Stdout, os.Stderr)
	if statusCode != 0 {
		os.Exit(statusCode)
	}
}

func _main(args []string, outW io.Writer, errW io.Writer) (statusCode int) {
	if len(args) < 2 {
		fmt.Fprint(errW, CMD_HELP)
		return ERROR_STATUS_CODE
	}

	mainSubCommand := args[1]
	mainSubCommandArgs := args[2:]

	//help <subcommand> is rewritten as <subcommand> -h.
	if mainSubCommand == HELP_SUBCMD && len(mainSubCommandArgs) > 0 && mainSubCommandArgs[0] != "" && unicode.IsLetter(rune(mainSubCommandArgs[0][0])) {
		mainSubCommand = mainSubCommandArgs[0]
		mainSubCommandArgs = []string{"-h"}
	}

	if slices.Contains(HELP_SUBCMD_EQUIVALENTS, mainSubCommand) {
		mainSubCommand = HELP_SUBCMD
	}

	if !slices.Contains(SUBCOMMANDS, mainSubCommand) {
		fmt.Fprintf(errW, "unknown command '%s'\n%s", mainSubCommand, CMD_HELP)
		return ERROR_STATUS_CODE
	}

	switch mainSubCommand {
	case HELP_SUBCMD:
		fmt.Fprint(outW, CMD_HELP)
		return 0
	case INSTALL_COMPLETIONS_SUBCMD:
		err := install.Install(COMMAND_NAME)
		if err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
		fmt.Fprintln(outW, "installed")
		return 0
	case UNINSTALL_COMPLETIONS_SUBCMD:
		err := install.Uninstall(COMMAND_NAME)
		if err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
		fmt.Fprintln(outW, "uninstalled")
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	flags := flag.NewFlagSet(mainSubCommand, flag.ContinueOnError)
	flags.SetOutput(errW)
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "zerolog level of the logs written to stderr")
	flags.StringVar(&cfg.Color, "color", cfg.Color, "colorize diagnostics: auto, always or never")

	var lookupName string
	if mainSubCommand == DUMP_SUBCMD {
		flags.StringVar(&lookupName, "lookup", "", "print the result of looking up the name from every scope instead of the scope tree")
	}

	if showHelp(flags, mainSubCommandArgs, outW) {
		return 0
	}

	if err := flags.Parse(moveFlagsStart(flags, mainSubCommandArgs)); err != nil {
		return ERROR_STATUS_CODE
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	run := runContext{
		config:   cfg,
		outW:     outW,
		errW:     errW,
		colorize: cfg.ShouldColorize(utils.IsTerminal(errW)),
	}
	run.logger = newLogger(cfg, errW, run.colorize)

	switch mainSubCommand {
	case CHECK_SUBCMD:
		return CheckDocuments(run, flags.Args())
	case DUMP_SUBCMD:
		return DumpScopeTree(run, flags.Args(), lookupName)
	case DESUGAR_SUBCMD:
		return DesugarDocument(run, flags.Args())
	}
	return ERROR_STATUS_CODE
}

type runContext struct {
	config   config.Config
	logger   zerolog.Logger
	outW     io.Writer
	errW     io.Writer
	colorize bool
}

func newLogger(cfg config.Config, out io.Writer, colorize bool) zerolog.Logger {
	level, _ := cfg.ZerologLevel()

	return zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = out
		w.NoColor = !colorize
		w.PartsExclude = []string{zerolog.TimestampFieldName}
	})).Level(level)
}
