package transformer

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// NewEngine returns the stock Engine, backed by regexp2 so the
// ECMAScript-flavored patterns snippet transforms are written in (including
// backreferences and lookaround) compile as-is.
func NewEngine() Engine {
	return regexEngine{}
}

type regexEngine struct{}

func (regexEngine) Compile(pattern, flags string) (Matcher, error) {
	opts := regexp2.None
	if strings.ContainsRune(flags, 'i') {
		opts |= regexp2.IgnoreCase
	}
	if strings.ContainsRune(flags, 'm') {
		opts |= regexp2.Multiline
	}
	if strings.ContainsRune(flags, 's') {
		opts |= regexp2.Singleline
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	return &regexMatcher{re: re, global: strings.ContainsRune(flags, 'g')}, nil
}

type regexMatcher struct {
	re     *regexp2.Regexp
	global bool
}

func (m *regexMatcher) Find(s string) []Match {
	var out []Match
	mt, err := m.re.FindStringMatch(s)
	for err == nil && mt != nil {
		out = append(out, convertMatch(mt))
		if !m.global {
			break
		}
		mt, err = m.re.FindNextMatch(mt)
	}
	return out
}

// convertMatch flattens a regexp2 match into rune offsets and per-group
// capture state. regexp2 reports positions in runes, which is what the
// evaluator slices by.
func convertMatch(mt *regexp2.Match) Match {
	groups := mt.Groups()
	conv := Match{
		Start:  mt.Index,
		End:    mt.Index + mt.Length,
		Groups: make([]Group, len(groups)),
	}
	for i := range groups {
		g := &groups[i]
		if len(g.Captures) == 0 {
			continue
		}
		conv.Groups[i] = Group{Matched: true, Text: g.String()}
	}
	return conv
}
