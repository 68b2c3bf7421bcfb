package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"fortio.org/log"
	"fortio.org/terminal"
	"termcalc.io/termcalc/eval"
	"termcalc.io/termcalc/object"
	"termcalc.io/termcalc/parser"
)

const PROMPT = ">>> "

type Options struct {
	ShowParse   bool
	HistoryFile string
	MaxHistory  int
	ContextFile string // Where save/load and the auto variants read and write definitions.
	AutoLoad    bool
	AutoSave    bool
	MaxDepth    int
	Format      string // Initial output base: dec, bin, oct or hex.
	Precision   int
}

func newState(options *Options) *eval.State {
	s := eval.NewState()
	if options.MaxDepth > 0 {
		s.MaxDepth = options.MaxDepth
	}
	if options.AutoLoad {
		loadContext(s, options.ContextFile, true /* quiet */)
	}
	return s
}

func Interactive(options Options) int {
	s := newState(&options)
	f, err := NewFormatter(options.Format, options.Precision)
	if err != nil {
		return log.FErrf("%v", err)
	}
	term, err := terminal.Open(context.Background())
	if err != nil {
		return log.FErrf("Error creating readline: %v", err)
	}
	defer term.Close()
	term.SetPrompt(PROMPT)
	if options.MaxHistory > 0 {
		term.NewHistory(options.MaxHistory)
		if options.HistoryFile != "" {
			_ = term.SetHistoryFile(options.HistoryFile)
		}
	}
	ac := NewCompletion()
	ac.Update(s.Context)
	term.SetAutoCompleteCallback(ac.AutoComplete())
	for {
		line, err := term.ReadLine()
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			log.Infof("Exit requested")
			return exit(s, &options)
		default:
			return log.FErrf("Error reading line: %v", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		quit, handled := command(s, f, term.Out, line, &options)
		if quit {
			return exit(s, &options)
		}
		if !handled {
			EvalOne(s, f, line, term.Out, &options)
		}
		// Definitions, del and load all change the completable names.
		ac.Update(s.Context)
	}
}

func exit(s *eval.State, options *Options) int {
	if options.AutoSave && options.ContextFile != "" {
		saveContext(s, options.ContextFile)
	}
	return 0
}

// EvalOne parses and evaluates a single line, printing the result in green or
// the error in red. Definitions produce no output.
func EvalOne(s *eval.State, f *Formatter, what string, out io.Writer, options *Options) bool {
	root, err := parser.Parse(s.Context, what)
	if err != nil {
		fmt.Fprint(out, log.Colors.Red)
		fmt.Fprintln(out, err)
		fmt.Fprint(out, log.ANSIColors.Reset)
		return false
	}
	if options.ShowParse {
		fmt.Fprint(out, "== Parse ==> ")
		fmt.Fprintln(out, root.String())
	}
	res, err := eval.EvalTree(s, root, what)
	if err != nil {
		fmt.Fprint(out, log.Colors.Red)
		fmt.Fprintln(out, err)
		fmt.Fprint(out, log.ANSIColors.Reset)
		return false
	}
	if res == object.NULL {
		return false
	}
	fmt.Fprint(out, log.Colors.Green)
	fmt.Fprintln(out, f.Format(res))
	fmt.Fprint(out, log.ANSIColors.Reset)
	return true
}

// CallMode evaluates the command line arguments as expressions against one
// shared session and prints the results ";" separated on a single line.
// The first error aborts, identifying which input failed.
func CallMode(out io.Writer, options Options, exprs []string) int {
	s := newState(&options)
	f, err := NewFormatter(options.Format, options.Precision)
	if err != nil {
		return log.FErrf("%v", err)
	}
	results := make([]string, 0, len(exprs))
	for i, expr := range exprs {
		res, err := eval.EvalString(s, strings.TrimSpace(expr))
		if err != nil {
			fmt.Fprintf(out, "In input %d:\n", i+1)
			fmt.Fprintln(out, err)
			return 1
		}
		if res == object.NULL {
			continue
		}
		results = append(results, f.Format(res))
	}
	fmt.Fprintln(out, strings.Join(results, ";"))
	if options.AutoSave && options.ContextFile != "" {
		saveContext(s, options.ContextFile)
	}
	return 0
}
