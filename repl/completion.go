package repl

import (
	"fmt"
	"strings"

	"fortio.org/terminal"
	"termcalc.io/termcalc/mathctx"
	"termcalc.io/termcalc/trie"
)

type AutoComplete struct {
	Trie *trie.Trie
}

func NewCompletion() *AutoComplete {
	return &AutoComplete{trie.NewTrie()}
}

// Update rebuilds the completion trie from the session context so newly
// defined constants and functions become completable. Functions carry their
// opening parenthesis.
func (a *AutoComplete) Update(c *mathctx.Context) {
	t := trie.NewTrie()
	info := c.Info()
	for f := range info.Functions {
		t.Insert(f + "(")
	}
	for k := range info.Constants {
		t.Insert(k)
	}
	for _, cmd := range commandNames {
		t.Insert(cmd)
	}
	a.Trie = t
}

func (a *AutoComplete) AutoComplete() terminal.AutoCompleteCallback {
	return func(t *terminal.Terminal, line string, pos int, key rune) (newLine string, newPos int, ok bool) {
		if key != '\t' {
			return // only tab for now
		}
		return a.autoCompleteCallback(t, line, pos)
	}
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// autoCompleteCallback completes the identifier under the cursor, not the
// whole line, so names expand in the middle of an expression too.
func (a *AutoComplete) autoCompleteCallback(t *terminal.Terminal, line string, pos int) (newLine string, newPos int, ok bool) {
	start := pos
	for start > 0 && isWordChar(line[start-1]) {
		start--
	}
	if start == pos {
		return
	}
	l, names := a.Trie.PrefixAll(line[start:pos])
	if len(names) == 0 {
		return
	}
	if len(names) > 1 {
		fmt.Fprint(t.Out, "One of: ")
		for _, c := range names {
			if strings.HasSuffix(c, "(") {
				fmt.Fprint(t.Out, c, ") ")
			} else {
				fmt.Fprint(t.Out, c, " ")
			}
		}
		fmt.Fprintln(t.Out)
	}
	completed := line[:start] + names[0][:l]
	return completed + line[pos:], len(completed), true
}
