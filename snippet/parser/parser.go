// Package parser turns snippet template source into a snippet tree.
//
// The grammar is the TextMate/LSP snippet syntax: tabstops ($1, ${1}),
// placeholders (${1:default}, nesting allowed), choices (${1|a,b|}),
// variables ($name, ${name}, ${name:default}) and regex transforms
// (${1/pattern/format/flags}). The parser is deliberately permissive: a
// dollar construct that cannot be completed is consumed as literal text, the
// way editors treat it, so parsing never fails.
package parser

import (
	"strings"

	"github.com/snipd/sdk/snippet"
)

// Parse parses a template body into an unnormalized snippet tree. The result
// still has to go through transformer.Normalize before a jump engine may
// drive it.
func Parse(src string) *snippet.Node {
	p := &parser{src: []rune(src)}
	root := &snippet.Node{Kind: snippet.KindSnippet}
	p.parseNodes(root, "")
	return root
}

const eof = rune(-1)

type parser struct {
	src []rune
	pos int
}

func (p *parser) peek() rune {
	if p.pos >= len(p.src) {
		return eof
	}
	return p.src[p.pos]
}

func (p *parser) next() rune {
	r := p.peek()
	if r != eof {
		p.pos++
	}
	return r
}

func (p *parser) eat(r rune) bool {
	if p.peek() != r {
		return false
	}
	p.pos++
	return true
}

// parseNodes appends children to parent until EOF or a rune in stops, which
// is left unconsumed. Consecutive literal runs merge into one text node.
func (p *parser) parseNodes(parent *snippet.Node, stops string) {
	var text []rune
	flush := func() {
		if len(text) > 0 {
			parent.Children = append(parent.Children, &snippet.Node{
				Kind: snippet.KindText,
				Esc:  string(text),
			})
			text = nil
		}
	}

	for {
		r := p.peek()
		if r == eof || strings.ContainsRune(stops, r) {
			break
		}
		switch r {
		case '\\':
			p.next()
			n := p.peek()
			if n == '$' || n == '\\' || n == '}' || (n != eof && strings.ContainsRune(stops, n)) {
				text = append(text, p.next())
			} else {
				text = append(text, '\\')
			}
		case '$':
			mark := p.pos
			if n := p.parseDollar(); n != nil {
				flush()
				parent.Children = append(parent.Children, n)
			} else {
				p.pos = mark
				p.next()
				text = append(text, '$')
			}
		default:
			text = append(text, p.next())
		}
	}
	flush()
}

// parseDollar parses a construct starting at '$', or returns nil when the
// input does not form one.
func (p *parser) parseDollar() *snippet.Node {
	p.next() // '$'
	switch r := p.peek(); {
	case isDigit(r):
		return &snippet.Node{Kind: snippet.KindTabstop, Tabstop: p.parseInt()}
	case isVarStart(r):
		return &snippet.Node{Kind: snippet.KindVariable, Name: p.parseVarName()}
	case r == '{':
		return p.parseBraced()
	}
	return nil
}

func (p *parser) parseBraced() *snippet.Node {
	p.next() // '{'
	switch r := p.peek(); {
	case isDigit(r):
		idx := p.parseInt()
		switch p.peek() {
		case '}':
			p.next()
			return &snippet.Node{Kind: snippet.KindTabstop, Tabstop: idx}
		case ':':
			p.next()
			n := &snippet.Node{Kind: snippet.KindPlaceholder, Tabstop: idx}
			p.parseNodes(n, "}")
			if !p.eat('}') {
				return nil
			}
			return n
		case '|':
			return p.parseChoice(idx)
		case '/':
			t := p.parseTransform()
			if t == nil {
				return nil
			}
			return &snippet.Node{Kind: snippet.KindTabstop, Tabstop: idx, Transform: t}
		}
		return nil
	case isVarStart(r):
		name := p.parseVarName()
		switch p.peek() {
		case '}':
			p.next()
			return &snippet.Node{Kind: snippet.KindVariable, Name: name}
		case ':':
			p.next()
			n := &snippet.Node{Kind: snippet.KindVariable, Name: name}
			p.parseNodes(n, "}")
			if !p.eat('}') {
				return nil
			}
			return n
		case '/':
			t := p.parseTransform()
			if t == nil {
				return nil
			}
			return &snippet.Node{Kind: snippet.KindVariable, Name: name, Transform: t}
		}
		return nil
	}
	return nil
}

// parseChoice parses '|' option (',' option)* '|}'. Options are literal
// text; ',' '|' and '\' may be escaped inside them.
func (p *parser) parseChoice(idx int) *snippet.Node {
	p.next() // '|'
	n := &snippet.Node{Kind: snippet.KindChoice, Tabstop: idx}
	var text []rune
	for {
		switch r := p.peek(); r {
		case eof:
			return nil
		case '\\':
			p.next()
			nx := p.peek()
			if nx == ',' || nx == '|' || nx == '\\' {
				text = append(text, p.next())
			} else {
				text = append(text, '\\')
			}
		case ',':
			p.next()
			n.Children = append(n.Children, &snippet.Node{Kind: snippet.KindText, Esc: string(text)})
			text = nil
		case '|':
			p.next()
			if !p.eat('}') {
				return nil
			}
			n.Children = append(n.Children, &snippet.Node{Kind: snippet.KindText, Esc: string(text)})
			return n
		default:
			text = append(text, p.next())
		}
	}
}

// parseTransform parses '/' pattern '/' format '/' options '}'. The pattern
// is kept uncompiled; only `\/` is unescaped inside it, every other
// backslash belongs to the regex.
func (p *parser) parseTransform() *snippet.Transform {
	p.next() // '/'
	t := &snippet.Transform{}

	var pat []rune
	for {
		r := p.next()
		if r == eof {
			return nil
		}
		if r == '\\' {
			if p.peek() == '/' {
				pat = append(pat, p.next())
			} else {
				pat = append(pat, '\\')
			}
			continue
		}
		if r == '/' {
			break
		}
		pat = append(pat, r)
	}
	t.Pattern = string(pat)

	var lit []rune
	flush := func() {
		if len(lit) > 0 {
			t.Format = append(t.Format, snippet.Format{Esc: string(lit)})
			lit = nil
		}
	}
	for done := false; !done; {
		switch r := p.peek(); r {
		case eof:
			return nil
		case '\\':
			p.next()
			nx := p.peek()
			if nx == '/' || nx == '\\' || nx == '$' || nx == '}' {
				lit = append(lit, p.next())
			} else {
				lit = append(lit, '\\')
			}
		case '/':
			p.next()
			done = true
		case '$':
			mark := p.pos
			if f, ok := p.parseFormat(); ok {
				flush()
				t.Format = append(t.Format, f)
			} else {
				p.pos = mark
				p.next()
				lit = append(lit, '$')
			}
		default:
			lit = append(lit, p.next())
		}
	}
	flush()

	var opt []rune
	for {
		r := p.peek()
		if r == eof {
			return nil
		}
		if r == '}' {
			p.next()
			break
		}
		opt = append(opt, p.next())
	}
	t.Option = string(opt)
	return t
}

// parseFormat parses one capture reference of a transform's format section:
// $1, ${1}, ${1:/modifier}, ${1:+if}, ${1:?if:else}, ${1:-else} or
// ${1:else}.
func (p *parser) parseFormat() (snippet.Format, bool) {
	var none snippet.Format
	p.next() // '$'
	if isDigit(p.peek()) {
		return snippet.Format{Capture: true, Index: p.parseInt()}, true
	}
	if !p.eat('{') || !isDigit(p.peek()) {
		return none, false
	}
	f := snippet.Format{Capture: true, Index: p.parseInt()}
	switch p.peek() {
	case '}':
		p.next()
		return f, true
	case ':':
		p.next()
	default:
		return none, false
	}

	switch p.peek() {
	case '/':
		p.next()
		f.Modifier = p.parseVarName()
		if !p.eat('}') {
			return none, false
		}
		return f, true
	case '+':
		p.next()
		s, ok := p.formatText("}")
		if !ok {
			return none, false
		}
		f.IfText, f.HasIf = s, true
		p.next() // '}'
		return f, true
	case '?':
		p.next()
		s, ok := p.formatText(":")
		if !ok {
			return none, false
		}
		f.IfText, f.HasIf = s, true
		p.next() // ':'
		s, ok = p.formatText("}")
		if !ok {
			return none, false
		}
		f.ElseText, f.HasElse = s, true
		p.next() // '}'
		return f, true
	case '-':
		p.next()
		s, ok := p.formatText("}")
		if !ok {
			return none, false
		}
		f.ElseText, f.HasElse = s, true
		p.next() // '}'
		return f, true
	default:
		s, ok := p.formatText("}")
		if !ok {
			return none, false
		}
		f.ElseText, f.HasElse = s, true
		p.next() // '}'
		return f, true
	}
}

// formatText consumes literal text until a rune in stops, which is left
// unconsumed. It reports false at EOF.
func (p *parser) formatText(stops string) (string, bool) {
	var out []rune
	for {
		r := p.peek()
		if r == eof {
			return "", false
		}
		if strings.ContainsRune(stops, r) {
			return string(out), true
		}
		if r == '\\' {
			p.next()
			nx := p.peek()
			if nx == '}' || nx == ':' || nx == '\\' || nx == '$' {
				out = append(out, p.next())
			} else {
				out = append(out, '\\')
			}
			continue
		}
		out = append(out, p.next())
	}
}

func (p *parser) parseInt() int {
	v := 0
	for isDigit(p.peek()) {
		v = v*10 + int(p.next()-'0')
	}
	return v
}

func (p *parser) parseVarName() string {
	var out []rune
	for {
		r := p.peek()
		if !isVarStart(r) && !isDigit(r) {
			return string(out)
		}
		out = append(out, p.next())
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isVarStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
