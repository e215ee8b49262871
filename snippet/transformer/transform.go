package transformer

import (
	"strings"
	"sync"
	"unicode"

	"gopkg.in/src-d/go-errors.v1"
	"gopkg.in/src-d/go-log.v1"

	"github.com/snipd/sdk/snippet"
)

// ErrBadPattern is returned when a transform pattern does not compile.
var ErrBadPattern = errors.NewKind("cannot compile transform pattern %q")

// Replacer rewrites the lines captured from a tabstop's content.
type Replacer func(lines []string) []string

// Match is one regex match over the flattened input. Start and End are rune
// offsets; Groups[0] is the whole match.
type Match struct {
	Start, End int
	Groups     []Group
}

// Group is a single capture group of a Match.
type Group struct {
	Matched bool
	Text    string
}

// Matcher is a compiled transform pattern. Implementations hold no
// per-evaluation state and must be safe for concurrent use.
type Matcher interface {
	// Find returns the non-overlapping matches in left-to-right order.
	// Unless the pattern was compiled with the "g" flag it returns at most
	// one match.
	Find(s string) []Match
}

// Engine compiles transform patterns. It is an explicit capability value: a
// Builder holding a nil Engine degrades every transform to the identity
// replacer instead of failing snippet loads.
type Engine interface {
	Compile(pattern, flags string) (Matcher, error)
}

// Builder compiles transform specs into replacers.
type Builder struct {
	engine Engine
}

// NewBuilder returns a Builder backed by engine. A nil engine selects the
// degraded mode described in Build.
func NewBuilder(engine Engine) *Builder {
	return &Builder{engine: engine}
}

var degradedOnce sync.Once

// Build compiles t into a Replacer. The replacer joins its input lines with
// a newline, walks the matches left to right emitting unmatched spans
// verbatim and the format template for each match, then splits the result
// back into lines.
//
// With no engine available every transform becomes the identity replacer;
// the degradation is logged once per process so it stays observable.
func (b *Builder) Build(t *snippet.Transform) (Replacer, error) {
	if b.engine == nil {
		degradedOnce.Do(func() {
			log.Warningf("no regex engine available, snippet transforms are disabled")
		})
		return identity, nil
	}
	m, err := b.engine.Compile(t.Pattern, t.Option)
	if err != nil {
		return nil, ErrBadPattern.Wrap(err, t.Pattern)
	}
	format := t.Format
	return func(lines []string) []string {
		return replaceLines(m, format, lines)
	}, nil
}

func identity(lines []string) []string { return lines }

func replaceLines(m Matcher, format []snippet.Format, lines []string) []string {
	in := strings.Join(lines, "\n")
	matches := m.Find(in)
	if len(matches) == 0 {
		return lines
	}

	rs := []rune(in)
	var out strings.Builder
	last := 0
	for _, mt := range matches {
		out.WriteString(string(rs[last:mt.Start]))
		out.WriteString(expandFormat(format, mt))
		last = mt.End
	}
	out.WriteString(string(rs[last:]))
	return strings.Split(out.String(), "\n")
}

// expandFormat renders the replacement for one match. For a capture
// reference whose group matched non-empty the priority is: if-present text,
// then the case-modified capture, then the raw capture. An absent or empty
// group yields the if-absent text, or nothing.
func expandFormat(format []snippet.Format, mt Match) string {
	var out strings.Builder
	for _, f := range format {
		if !f.Capture {
			out.WriteString(f.Esc)
			continue
		}
		var g Group
		if f.Index >= 0 && f.Index < len(mt.Groups) {
			g = mt.Groups[f.Index]
		}
		if g.Matched && g.Text != "" {
			switch {
			case f.HasIf:
				out.WriteString(f.IfText)
			case f.Modifier != "":
				out.WriteString(applyModifier(f.Modifier, g.Text))
			default:
				out.WriteString(g.Text)
			}
		} else if f.HasElse {
			out.WriteString(f.ElseText)
		}
	}
	return out.String()
}

func applyModifier(mod, s string) string {
	switch mod {
	case "upcase":
		return strings.ToUpper(s)
	case "downcase":
		return strings.ToLower(s)
	case "capitalize":
		r := []rune(s)
		r[0] = unicode.ToUpper(r[0])
		return string(r)
	}
	// unknown modifiers pass the capture through, they are not an error
	return s
}
