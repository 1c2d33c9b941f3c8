package main

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

const (
	CHECK_SUBCMD                 = "check"
	DUMP_SUBCMD                  = "dump"
	DESUGAR_SUBCMD               = "desugar"
	INSTALL_COMPLETIONS_SUBCMD   = "install-completions"
	UNINSTALL_COMPLETIONS_SUBCMD = "uninstall-completions"
	HELP_SUBCMD                  = "help"
)

var (
	SUBCOMMANDS = []string{CHECK_SUBCMD, DUMP_SUBCMD, DESUGAR_SUBCMD, INSTALL_COMPLETIONS_SUBCMD, UNINSTALL_COMPLETIONS_SUBCMD, HELP_SUBCMD}

	HELP_SUBCMD_EQUIVALENTS = []string{"--help", "-help", "-h"}

	SUBCOMMAND_DESCRIPTIONS = [][2]string{
		{CHECK_SUBCMD, "check the declarations of one or more AST documents (files or directories)"},
		{DUMP_SUBCMD, "print the scope tree of an AST document as JSON, or the result of looking up a name from every scope"},
		{DESUGAR_SUBCMD, "print an AST document where function definitions and calls are replaced by labels and jumps"},
		{INSTALL_COMPLETIONS_SUBCMD, "install CLI completions by adding the completion command to the detected rc file (supported shells are bash, zsh and fish)"},
		{UNINSTALL_COMPLETIONS_SUBCMD, "uninstall CLI completions by removing the completion command from the detected rc file"},
		{HELP_SUBCMD, "show the general help or command-specific help"},
	}

	SUBCOMMAND_DESCRIPTION_MAP = map[string]string{}

	CMD_HELP = "commands:\n"

	documentPredictor = predict.Or(predict.Files("*.json"), predict.Files("*.yaml"), predict.Files("*.yml"))

	logFlagPredictors = map[string]complete.Predictor{
		"log-level": predict.Set{"trace", "debug", "info", "warn", "error", "disabled"},
		"color":     predict.Set{"auto", "always", "never"},
	}

	dumpFlagPredictors = map[string]complete.Predictor{
		"log-level": logFlagPredictors["log-level"],
		"color":     logFlagPredictors["color"],
		"lookup":    predict.Something,
	}

	cmd = &complete.Command{
		Sub: map[string]*complete.Command{
			CHECK_SUBCMD: {
				Flags: logFlagPredictors,
				Args:  documentPredictor,
			},
			DUMP_SUBCMD: {
				Flags: dumpFlagPredictors,
				Args:  documentPredictor,
			},
			DESUGAR_SUBCMD: {
				Flags: logFlagPredictors,
				Args:  documentPredictor,
			},
			INSTALL_COMPLETIONS_SUBCMD:   {},
			UNINSTALL_COMPLETIONS_SUBCMD: {},
			HELP_SUBCMD:                  {},
		},
	}
)

func init() {
	for _, entry := range SUBCOMMAND_DESCRIPTIONS {
		cmd, desc := entry[0], entry[1]
		SUBCOMMAND_DESCRIPTION_MAP[cmd] = desc
		CMD_HELP += "\t" + cmd + " - " + desc + "\n"
	}
	CMD_HELP += "\nType `" + COMMAND_NAME + " help <command>` to get command-specific help.\n"
}

// moveFlagsStart returns $args with the flags (and their values) moved before the positional arguments
// so that flag.FlagSet parses all of them, the positional arguments follow a "--" separator.
func moveFlagsStart(flags *flag.FlagSet, args []string) []string {
	var flagArgs, positionalArgs []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionalArgs = append(positionalArgs, args[i+1:]...)
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			positionalArgs = append(positionalArgs, arg)
			continue
		}

		flagArgs = append(flagArgs, arg)
		if flagTakesValue(flags, arg) && i+1 < len(args) {
			flagArgs = append(flagArgs, args[i+1])
			i++
		}
	}

	flagArgs = append(flagArgs, "--")
	return append(flagArgs, positionalArgs...)
}

// flagTakesValue reports whether $arg is a flag of $flags whose value is the next argument.
func flagTakesValue(flags *flag.FlagSet, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}

	f := flags.Lookup(strings.TrimLeft(arg, "-"))
	if f == nil {
		return false
	}
	if boolFlag, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && boolFlag.IsBoolFlag() {
		return false
	}
	return true
}

// showHelp prints the help of the subcommand if a help flag is present before "--",
// values of flags are not considered.
func showHelp(flags *flag.FlagSet, args []string, out io.Writer) bool {
	helpRequested := false

	for i := 0; i < len(args) && args[i] != "--"; i++ {
		arg := args[i]
		if slices.Contains(HELP_SUBCMD_EQUIVALENTS, arg) {
			helpRequested = true
			break
		}
		if len(arg) > 1 && arg[0] == '-' && flagTakesValue(flags, arg) {
			i++
		}
	}

	if !helpRequested {
		return false
	}

	cmd := flags.Name()
	if desc, ok := SUBCOMMAND_DESCRIPTION_MAP[cmd]; ok {
		fmt.Fprintln(out, desc)
	}

	flags.SetOutput(out)
	fmt.Fprint(out, "\noptions:\n")
	flags.PrintDefaults()

	return true
}
