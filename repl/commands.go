package repl

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fortio.org/log"
	"termcalc.io/termcalc/eval"
	"termcalc.io/termcalc/mathctx"
)

var commandNames = []string{"exit", "quit", "save", "load", "format", "info", "del"}

// command handles the session meta commands (anything that isn't an
// expression). Returns quit=true on exit/quit and handled=true when the line
// was consumed as a command, so the caller skips evaluation.
func command(s *eval.State, f *Formatter, out io.Writer, line string, options *Options) (quit, handled bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "exit", "quit":
		if len(fields) != 1 {
			return false, false
		}
		return true, true
	case "save":
		if len(fields) > 2 {
			return false, false
		}
		path := options.ContextFile
		if len(fields) == 2 {
			path = fields[1]
		}
		saveContext(s, path)
		return false, true
	case "load":
		if len(fields) > 2 {
			return false, false
		}
		path := options.ContextFile
		if len(fields) == 2 {
			path = fields[1]
		}
		loadContext(s, path, false)
		return false, true
	case "format":
		if len(fields) < 2 || len(fields) > 3 {
			return false, false
		}
		if err := f.SetBase(fields[1]); err != nil {
			log.Errf("%v", err)
			return false, true
		}
		if len(fields) == 3 {
			prec, err := strconv.Atoi(fields[2])
			if err != nil || prec < 1 {
				log.Errf("invalid precision %q", fields[2])
				return false, true
			}
			f.Precision = prec
		}
		return false, true
	case "info":
		if len(fields) != 1 {
			return false, false
		}
		printInfo(s.Context, out)
		return false, true
	case "del":
		if len(fields) != 2 {
			return false, false
		}
		name := fields[1]
		if !(s.Context.RemoveConstant(name) || s.Context.RemoveFunction(name)) {
			log.Errf("no user definition %q", name)
		}
		return false, true
	}
	return false, false
}

// printInfo lists the user defined constants and functions, sorted.
func printInfo(c *mathctx.Context, out io.Writer) {
	consts := c.UserConstants()
	for _, name := range mathctx.SortedNames(consts) {
		fmt.Fprintf(out, "%s = %s\n", name, consts[name].Inspect())
	}
	funcs := c.UserFunctions()
	for _, name := range mathctx.SortedNames(funcs) {
		fmt.Fprintln(out, funcs[name].Text)
	}
}

func saveContext(s *eval.State, path string) {
	if path == "" {
		log.Errf("no context file configured, use save <path>")
		return
	}
	fl, err := os.Create(path)
	if err != nil {
		log.Errf("unable to save context: %v", err)
		return
	}
	defer fl.Close()
	if err = s.Context.Save(fl); err != nil {
		log.Errf("unable to save context: %v", err)
		return
	}
	log.Infof("Saved context to %s", path)
}

// loadContext reads definitions back into the session. A missing file is only
// an error on explicit load, not on startup auto load.
func loadContext(s *eval.State, path string, quiet bool) {
	if path == "" {
		log.Errf("no context file configured, use load <path>")
		return
	}
	fl, err := os.Open(path)
	if err != nil {
		if quiet && os.IsNotExist(err) {
			return
		}
		log.Errf("unable to load context: %v", err)
		return
	}
	defer fl.Close()
	if err = eval.LoadContext(s, fl); err != nil {
		log.Errf("unable to load context: %v", err)
		return
	}
	log.Infof("Loaded context from %s", path)
}
