// Package registry loads snippet definition files and holds the normalized
// snippets an editor expands from. It is the failure boundary of snippet
// loading: a definition that does not parse, normalize or whose transforms
// do not compile is skipped with a warning instead of failing the whole
// load.
package registry

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
	"gopkg.in/src-d/go-errors.v1"
	"gopkg.in/src-d/go-log.v1"

	"github.com/snipd/sdk/snippet"
	"github.com/snipd/sdk/snippet/parser"
	"github.com/snipd/sdk/snippet/transformer"
)

var (
	ErrSnippetNotFound = errors.NewKind("snippet %q not found")
	ErrEmptyBody       = errors.NewKind("snippet %q has an empty body")
	ErrBadFile         = errors.NewKind("cannot load snippet file %s")
)

// StringList decodes both a single string and a list of strings, the two
// shapes definition files use for prefixes and bodies.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var arr []string
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = StringList{s}
	return nil
}

// Definition is one snippet entry of a definitions file. Files are YAML or
// JSON maps from snippet name to definition.
type Definition struct {
	Prefix      StringList `json:"prefix"`
	Body        StringList `json:"body"`
	Description string     `json:"description"`
}

// Snippet is a loaded, normalized snippet.
type Snippet struct {
	Name        string
	Prefixes    []string
	Description string
	Source      string // file the definition came from

	// Root is the normalized tree. It is read-only after load and safe to
	// share across concurrent expansions.
	Root *snippet.Node
}

// Registry holds normalized snippet definitions.
type Registry struct {
	// Logger, when set, receives the per-snippet load warnings. The package
	// default logger is used otherwise.
	Logger log.Logger

	builder *transformer.Builder
	byName  map[string]*Snippet
}

// New returns an empty registry. A nil builder selects the stock
// regexp2-backed transform builder.
func New(b *transformer.Builder) *Registry {
	if b == nil {
		b = transformer.NewBuilder(transformer.NewEngine())
	}
	return &Registry{
		builder: b,
		byName:  make(map[string]*Snippet),
	}
}

// LoadDir loads every .json, .yaml and .yml definition file in dir. A file
// that fails to decode is skipped with a warning; the error return is
// reserved for the directory itself being unreadable.
func (r *Registry) LoadDir(dir string) error {
	infos, err := ioutil.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, fi := range infos {
		if fi.IsDir() {
			continue
		}
		switch filepath.Ext(fi.Name()) {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, fi.Name())); err != nil {
			r.warningf("skipping snippet file: %s", err)
		}
	}
	return nil
}

// LoadFile loads one definition file.
func (r *Registry) LoadFile(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	return r.Load(data, filepath.Base(path))
}

// Load decodes a definitions document and registers its snippets. source
// names the document in diagnostics. Snippets that fail to load are skipped
// individually.
func (r *Registry) Load(data []byte, source string) error {
	var defs map[string]Definition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return ErrBadFile.Wrap(err, source)
	}

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sn, err := r.build(name, defs[name], source)
		if err != nil {
			r.warningf("skipping snippet %q from %s: %s", name, source, err)
			continue
		}
		r.byName[name] = sn
	}
	return nil
}

func (r *Registry) build(name string, def Definition, source string) (*Snippet, error) {
	if len(def.Body) == 0 {
		return nil, ErrEmptyBody.New(name)
	}

	root := parser.Parse(strings.Join(def.Body, "\n"))
	if err := transformer.Normalize(root); err != nil {
		return nil, err
	}

	// compile transforms eagerly so broken patterns surface at load time,
	// not mid-expansion
	if err := r.compileTransforms(root); err != nil {
		return nil, err
	}

	return &Snippet{
		Name:        name,
		Prefixes:    def.Prefix,
		Description: def.Description,
		Source:      source,
		Root:        root,
	}, nil
}

// compileTransforms compiles every transform in the tree, recursing into
// all children. The jump walk treats variable defaults and choice options as
// opaque, but a broken pattern nested there still has to fail the load.
func (r *Registry) compileTransforms(n *snippet.Node) error {
	if n.Transform != nil {
		if _, err := r.builder.Build(n.Transform); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := r.compileTransforms(c); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the snippet registered under name.
func (r *Registry) Get(name string) (*Snippet, bool) {
	sn, ok := r.byName[name]
	return sn, ok
}

// FindByPrefix returns the snippets one of whose prefixes starts with the
// typed text, sorted by name.
func (r *Registry) FindByPrefix(typed string) []*Snippet {
	var out []*Snippet
	for _, sn := range r.byName {
		for _, p := range sn.Prefixes {
			if strings.HasPrefix(p, typed) {
				out = append(out, sn)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// List returns every registered snippet, sorted by name.
func (r *Registry) List() []*Snippet {
	out := make([]*Snippet, 0, len(r.byName))
	for _, sn := range r.byName {
		out = append(out, sn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Expand renders the named snippet to its static expansion text, resolving
// variables through resolve.
func (r *Registry) Expand(name string, resolve snippet.Resolver) (string, error) {
	sn, ok := r.byName[name]
	if !ok {
		return "", ErrSnippetNotFound.New(name)
	}
	return snippet.Text(sn.Root, snippet.RenderOptions{
		Resolve: resolve,
		Replace: func(t *snippet.Transform) (func([]string) []string, error) {
			return r.builder.Build(t)
		},
	})
}

func (r *Registry) warningf(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Warningf(format, args...)
		return
	}
	log.Warningf(format, args...)
}
