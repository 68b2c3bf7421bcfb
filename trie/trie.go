// Trie implements a byte trie data structure.
// It is fast as it uses arrays instead of maps and no bound checks.
package trie // import "termcalc.io/termcalc/trie"

type Trie struct {
	// Children of this node
	children [256]*Trie
	// This node itself is a valid leaf (end of a word) in addition having children.
	valid bool
	leaf  bool
}

// Save some memory by having a shared end marker for leaves.
// Only one having "leaf" set to true.
var endMarker = &Trie{valid: true, leaf: true}

func NewTrie() *Trie {
	return &Trie{}
}

func (t *Trie) Insert(word string) {
	l := len(word)
	for i := range l {
		char := word[i]
		last := i == l-1
		switch child := t.children[char]; child {
		case nil:
			if last {
				t.children[char] = endMarker // Shared for all leaves, saves memory.
			} else {
				t.children[char] = &Trie{}
			}
		case endMarker:
			if !last {
				// This was a valid leaf before, propagate to the new children node
				t.children[char] = &Trie{valid: true}
			}
		default:
			if last {
				child.valid = true
			}
		}
		t = t.children[char]
	}
}

func (t *Trie) Contains(word string) bool {
	return t.Prefix(word).IsValid()
}

func (t *Trie) Prefix(word string) *Trie {
	for i := range len(word) {
		char := word[i]
		t = t.children[char]
		if t == nil {
			return nil
		}
	}
	return t
}

func (t *Trie) IsLeaf() bool {
	return t != nil && t.leaf
}

func (t *Trie) IsValid() bool {
	return t != nil && t.valid
}

// All returns every stored word starting with the given prefix, in byte
// order.
func (t *Trie) All(prefix string) []string {
	return t.Prefix(prefix).collect(prefix)
}

// collect gathers the words of the subtree under t, word being the path
// walked to reach it.
func (t *Trie) collect(word string) []string {
	if t == nil {
		return nil
	}
	var res []string
	if t.valid {
		res = append(res, word)
	}
	for c, child := range t.children {
		if child != nil {
			res = append(res, child.collect(word+string(byte(c)))...)
		}
	}
	return res
}

// PrefixAll returns the words starting with word and the length of their
// longest common prefix, which is how far completion can extend the input
// unambiguously.
func (t *Trie) PrefixAll(word string) (int, []string) {
	node := t.Prefix(word)
	if node == nil {
		return 0, nil
	}
	all := node.collect(word)
	l := len(word)
	for node != nil && !node.valid {
		next := -1
		for c, child := range node.children {
			if child == nil {
				continue
			}
			if next != -1 {
				next = -1
				break
			}
			next = c
		}
		if next == -1 {
			break
		}
		node = node.children[next]
		l++
	}
	return l, all
}
