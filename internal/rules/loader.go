// Package rules loads rule files from disk into parsed manipulators.
package rules

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tidwall/jsonc"

	"github.com/Alia5/remapper/jsonvalue"
	"github.com/Alia5/remapper/manipulator"
	"github.com/Alia5/remapper/parseerror"
)

const defaultCacheSize = 64

// File is one parsed rule file.
type File struct {
	Path  string
	Title string
	Rules []manipulator.Rule
	// Skipped counts rules and manipulators dropped because they failed to
	// parse. It is always zero for a strict loader.
	Skipped int
}

// Manipulators returns the manipulators of every enabled rule in file order.
func (f *File) Manipulators() []manipulator.Basic {
	var out []manipulator.Basic
	for _, r := range f.Rules {
		if r.Enabled {
			out = append(out, r.Manipulators...)
		}
	}
	return out
}

// Options configure a Loader.
type Options struct {
	// Strict rejects a whole file on the first invalid rule. Otherwise the
	// invalid rule or manipulator is logged and skipped.
	Strict    bool
	Logger    *slog.Logger
	CacheSize int
}

type cacheKey struct {
	path    string
	modTime time.Time
	size    int64
}

// Loader reads rule files. Files are cached by path, size and modification
// time so unchanged files are parsed once.
type Loader struct {
	strict bool
	logger *slog.Logger
	cache  *lru.Cache[cacheKey, *File]
}

func NewLoader(opts Options) (*Loader, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[cacheKey, *File](size)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{strict: opts.Strict, logger: logger, cache: cache}, nil
}

// LoadFile reads and parses path.
func (l *Loader) LoadFile(path string) (*File, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	key := cacheKey{path: path, modTime: st.ModTime(), size: st.Size()}
	if f, ok := l.cache.Get(key); ok {
		l.logger.Debug("rule file cache hit", "path", path)
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := l.Parse(path, data)
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, f)
	return f, nil
}

// LoadDir loads every .json file in dir in name order.
func (l *Loader) LoadDir(dir string) ([]*File, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	files := make([]*File, 0, len(paths))
	for _, p := range paths {
		f, err := l.LoadFile(p)
		if err != nil {
			if l.strict {
				return nil, err
			}
			l.logger.Error("skipping rule file", "path", p, "error", err)
			continue
		}
		files = append(files, f)
	}
	return files, nil
}

// Parse parses a rule file. Comments and trailing commas are allowed. The
// document is either {"title": ..., "rules": [...]}, a single rule object or
// an array of rules.
func (l *Loader) Parse(name string, data []byte) (*File, error) {
	doc, err := jsonvalue.Parse(jsonc.ToJSON(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	f := &File{Path: name}
	var rules []jsonvalue.Value
	switch {
	case doc.IsArray():
		rules = doc.Elements()
	case doc.IsObject():
		if _, ok := doc.Get("manipulators"); ok {
			rules = []jsonvalue.Value{doc}
			break
		}
		rules, err = l.parseHeader(f, doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("%s: %w", name, parseerror.InvalidForm("rule file", "object or array", doc))
	}

	for i, rv := range rules {
		onError := func(j int, err error) error {
			if l.strict {
				return err
			}
			f.Skipped++
			l.logger.Warn("skipping manipulator", "file", name, "rule", i, "manipulator", j, "error", err)
			return nil
		}
		r, err := manipulator.ParseRule(rv, onError)
		if err != nil {
			if l.strict {
				return nil, fmt.Errorf("%s: rules[%d]: %w", name, i, err)
			}
			f.Skipped++
			l.logger.Warn("skipping rule", "file", name, "rule", i, "error", err)
			continue
		}
		f.Rules = append(f.Rules, r)
	}

	l.logger.Debug("loaded rule file", "file", name, "rules", len(f.Rules), "skipped", f.Skipped)
	return f, nil
}

func (l *Loader) parseHeader(f *File, doc jsonvalue.Value) ([]jsonvalue.Value, error) {
	var rules []jsonvalue.Value
	for _, m := range doc.Members() {
		switch m.Key {
		case "title":
			s, ok := m.Value.AsString()
			if !ok {
				return nil, parseerror.InvalidForm(m.Key, "string", m.Value)
			}
			f.Title = s
		case "rules":
			if !m.Value.IsArray() {
				return nil, parseerror.InvalidForm(m.Key, "array", m.Value)
			}
			rules = m.Value.Elements()
		case "author", "homepage", "import_url", "maintainers":
		default:
			return nil, parseerror.UnknownKey(m.Key, doc)
		}
	}
	return rules, nil
}
