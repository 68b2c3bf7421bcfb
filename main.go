// Termcalc is an interactive terminal calculator: real and complex
// arithmetic, the usual math functions, and user defined constants and
// functions that persist across sessions.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/cli"
	"fortio.org/log"
	"fortio.org/struct2env"
	"fortio.org/terminal"
	"termcalc.io/termcalc/eval"
	"termcalc.io/termcalc/repl"
)

func main() {
	os.Exit(Main())
}

type Config struct {
	HistoryFile string
	ContextFile string
}

var config = Config{}

func EnvHelp(w io.Writer) {
	res, _ := struct2env.StructToEnvVars(config)
	str := struct2env.ToShellWithPrefix("TERMCALC_", res, true)
	fmt.Fprintln(w, "# Termcalc environment variables:")
	fmt.Fprint(w, str)
}

var hookBefore, hookAfter func() int

// homeFile expands the leading "~/" token of a default flag value to the
// actual home directory, or returns "" (feature disabled) if that fails.
func homeFile(fname string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Couldn't get user home dir: %v", err)
		return ""
	}
	return filepath.Join(homeDir, fname[2:])
}

func Main() int {
	commandFlag := flag.String("c", "", "expression(s) to evaluate (';' separated) instead of interactive mode")
	showParse := flag.Bool("parse", false, "show parse tree")
	format := flag.String("format", "dec", "output `base`: dec, bin, oct or hex")
	precision := flag.Int("precision", repl.DefaultPrecision, "fractional `digits` for non decimal bases")
	// Token filenames, the leading ~/ is replaced by the actual home dir below.
	const historyDefault = "~/.termcalc_history"
	const contextDefault = "~/.termcalc_context.json"
	cli.EnvHelpFuncs = append(cli.EnvHelpFuncs, EnvHelp)
	defaultHistoryFile := historyDefault
	defaultContextFile := contextDefault
	errs := struct2env.SetFromEnv("TERMCALC_", &config)
	if len(errs) > 0 {
		log.Errf("Error setting config from env: %v", errs)
	}
	if config.HistoryFile != "" {
		defaultHistoryFile = config.HistoryFile
	}
	if config.ContextFile != "" {
		defaultContextFile = config.ContextFile
	}
	historyFile := flag.String("history", defaultHistoryFile, "history `file` to use")
	maxHistory := flag.Int("max-history", terminal.DefaultHistoryCapacity, "max history `size`, use 0 to disable.")
	contextFile := flag.String("context", defaultContextFile, "context `file` for save/load of definitions")
	noAuto := flag.Bool("no-auto", false, "don't auto load/save definitions to the context file")
	maxDepth := flag.Int("max-depth", eval.DefaultMaxDepth, "Maximum evaluation depth")

	cli.ArgsHelp = "expressions to evaluate call style (results ';' separated) or no arguments for interactive mode..."
	cli.MaxArgs = -1
	cli.Main()
	histFile := *historyFile
	if histFile == historyDefault {
		histFile = homeFile(historyDefault)
	}
	ctxFile := *contextFile
	if ctxFile == contextDefault {
		ctxFile = homeFile(contextDefault)
	}
	options := repl.Options{
		ShowParse:   *showParse,
		HistoryFile: histFile,
		MaxHistory:  *maxHistory,
		ContextFile: ctxFile,
		AutoLoad:    !*noAuto,
		AutoSave:    !*noAuto,
		MaxDepth:    *maxDepth,
		Format:      *format,
		Precision:   *precision,
	}
	if hookBefore != nil {
		ret := hookBefore()
		if ret != 0 {
			return ret
		}
	}
	ret := run(options, *commandFlag)
	if ret == 0 && hookAfter != nil {
		return hookAfter()
	}
	return ret
}

func run(options repl.Options, command string) int {
	if command != "" {
		return repl.CallMode(os.Stdout, options, strings.Split(command, ";"))
	}
	if len(flag.Args()) > 0 {
		return repl.CallMode(os.Stdout, options, flag.Args())
	}
	log.Infof("termcalc %s - welcome!", cli.LongVersion)
	return repl.Interactive(options)
}
