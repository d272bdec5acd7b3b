package events

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultExtensions are the handler file extensions scanned when none
// are configured.
var DefaultExtensions = []string{".yaml", ".yml"}

// Result summarizes one Load.
type Result struct {
	// Loaded are the event names bound by this load, in scan order.
	Loaded []string
	// Removed are event names bound by an earlier load whose file is
	// gone, renamed or disabled.
	Removed []string
	// Failed holds one *ConstructionError per file that could not load.
	Failed []error
}

// LoaderOption configures a Loader.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	exts  []string
	quiet []string
	log   *zap.Logger
}

// WithExtensions sets the file extensions to scan, e.g. ".yaml".
func WithExtensions(exts ...string) LoaderOption {
	return func(o *loaderOptions) { o.exts = exts }
}

// WithQuiet names events that are loaded like any other but left out of
// the load log. High-frequency events such as "debug" belong here.
func WithQuiet(names ...string) LoaderOption {
	return func(o *loaderOptions) { o.quiet = names }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) LoaderOption {
	return func(o *loaderOptions) { o.log = log }
}

// Loader turns a directory of definitions into registered handlers.
type Loader[C any] struct {
	fs         afero.Fs
	dir        string
	client     C
	factories  *Factories[C]
	registry   *Registry
	dispatcher Dispatcher

	exts  map[string]struct{}
	quiet map[string]struct{}
	log   *zap.Logger

	// mu serializes Load; owned maps each event name bound by the last
	// load to the file it came from.
	mu    sync.Mutex
	owned map[string]string
}

// NewLoader creates a loader for dir on fs.
func NewLoader[C any](fs afero.Fs, dir string, client C, factories *Factories[C], registry *Registry, dispatcher Dispatcher, opts ...LoaderOption) *Loader[C] {
	o := loaderOptions{exts: DefaultExtensions}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}

	exts := make(map[string]struct{}, len(o.exts))
	for _, e := range o.exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[e] = struct{}{}
	}

	return &Loader[C]{
		fs:         fs,
		dir:        dir,
		client:     client,
		factories:  factories,
		registry:   registry,
		dispatcher: dispatcher,
		exts:       exts,
		quiet:      quietSet(o.quiet),
		log:        o.log.With(zap.String("dir", dir)),
		owned:      make(map[string]string),
	}
}

// Dir returns the scanned directory.
func (l *Loader[C]) Dir() string { return l.dir }

// Files lists the handler files under the directory, recursively, in
// lexical order.
func (l *Loader[C]) Files() ([]string, error) {
	var files []string
	err := afero.Walk(l.fs, l.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if _, ok := l.exts[strings.ToLower(filepath.Ext(path))]; ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Scan lazily reads and constructs one handler per file. Nothing is
// registered. Every call rescans the directory and reads each file
// again, so edits on disk are picked up.
//
// If no files are found Scan yields a single *DiscoveryError. A file
// that fails yields a *ConstructionError and the scan moves on.
// Disabled definitions are skipped.
func (l *Loader[C]) Scan() iter.Seq2[Descriptor, error] {
	return func(yield func(Descriptor, error) bool) {
		files, err := l.Files()
		if err == nil && len(files) == 0 {
			err = ErrNoHandlers
		}
		if err != nil {
			yield(Descriptor{}, &DiscoveryError{Dir: l.dir, Err: err})
			return
		}

		for _, path := range files {
			d, ok, err := l.build(path)
			if err == nil && !ok {
				continue
			}
			if !yield(d, err) {
				return
			}
		}
	}
}

// Load scans the directory and binds every handler it builds, replacing
// earlier bindings of the same names. Names bound by a previous Load
// whose file no longer produces them are unbound. A file that fails to
// load keeps whatever it had bound before.
//
// Loads are serialized. The returned error is the *DiscoveryError, if
// any; per-file failures are in Result.Failed.
func (l *Loader[C]) Load() (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var (
		res         Result
		discoverErr error
		bound       = make(map[string]string)
		failed      = make(map[string]struct{})
	)

	for d, err := range l.Scan() {
		if err != nil {
			var de *DiscoveryError
			if errors.As(err, &de) {
				discoverErr = err
				l.log.Error("couldn't find any event files", zap.Error(err))
				continue
			}
			var ce *ConstructionError
			if errors.As(err, &ce) {
				failed[ce.Path] = struct{}{}
			}
			res.Failed = append(res.Failed, err)
			l.log.Error("failed to load event handler", zap.Error(err))
			continue
		}

		if prev, dup := bound[d.Name]; dup {
			l.log.Warn("event bound by more than one file, last one wins",
				zap.String("event", d.Name),
				zap.String("previous", prev),
				zap.String("file", d.Path))
		}
		l.bind(d)
		bound[d.Name] = d.Path
		res.Loaded = append(res.Loaded, d.Name)
	}

	for name, path := range l.owned {
		if _, ok := bound[name]; ok {
			continue
		}
		if _, ok := failed[path]; ok {
			bound[name] = path
			continue
		}
		l.registry.Delete(name)
		l.dispatcher.Off(name)
		res.Removed = append(res.Removed, name)
		l.log.Info("unbound event handler", zap.String("event", name), zap.String("file", path))
	}
	sort.Strings(res.Removed)
	l.owned = bound

	l.log.Info("event handlers loaded",
		zap.Int("loaded", len(res.Loaded)),
		zap.Int("removed", len(res.Removed)),
		zap.Int("failed", len(res.Failed)))
	return res, discoverErr
}

func (l *Loader[C]) bind(d Descriptor) {
	l.registry.Set(d)
	l.dispatcher.Off(d.Name)
	h := d.Handler
	l.dispatcher.On(d.Name, func(args ...any) { h.Run(args...) })

	if _, quiet := l.quiet[d.Name]; !quiet {
		l.log.Debug("bound event handler",
			zap.String("event", d.Name),
			zap.String("handler", d.Key),
			zap.String("file", d.Path))
	}
}

// build reads and constructs the handler of one file. ok is false for
// disabled definitions.
func (l *Loader[C]) build(path string) (d Descriptor, ok bool, err error) {
	def, err := l.readDefinition(path)
	if err != nil {
		return Descriptor{}, false, &ConstructionError{Path: path, Err: err}
	}
	if def.Disabled {
		l.log.Debug("skipping disabled event handler", zap.String("file", path))
		return Descriptor{}, false, nil
	}

	key := def.HandlerKey()
	factory, found := l.factories.Lookup(key)
	if !found {
		return Descriptor{}, false, &ConstructionError{Path: path, Err: fmt.Errorf("%w %q", ErrUnknownHandler, key)}
	}

	h, err := construct(factory, l.client, def)
	if err != nil {
		return Descriptor{}, false, &ConstructionError{Path: path, Err: err}
	}

	name := def.DerivedName
	if def.Name != "" {
		name = def.Name
	}
	if n, isNamer := h.(Namer); isNamer && n.Name() != "" {
		name = n.Name()
	}

	return Descriptor{Name: name, Path: path, Key: key, Handler: h}, true, nil
}

func (l *Loader[C]) readDefinition(path string) (Definition, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return Definition{}, err
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("parse definition: %w", err)
	}
	def.Path = path
	def.DerivedName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return def, nil
}

func construct[C any](factory Factory[C], client C, def Definition) (h Handler, err error) {
	defer func() {
		if r := recover(); r != nil {
			h, err = nil, fmt.Errorf("handler constructor panicked: %v", r)
		}
	}()
	h, err = factory(client, def.DerivedName, def)
	if err == nil && h == nil {
		err = errors.New("handler constructor returned nil")
	}
	return h, err
}
