// Package assets loads the carousel's model files concurrently and joins the
// results into a fixed, ordered collection.
package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/carousel3d/internal/engine/model"
)

// ErrNotLoaded marks an asset whose load had not finished when the context
// ended.
var ErrNotLoaded = errors.New("asset load did not finish")

// Decoder turns a model file into a mesh.
type Decoder interface {
	Decode(path string) (*model.Mesh, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(path string) (*model.Mesh, error)

// Decode calls f.
func (f DecoderFunc) Decode(path string) (*model.Mesh, error) {
	return f(path)
}

// GLTFDecoder decodes glTF files with fixed build options.
type GLTFDecoder struct {
	Options model.BuildOptions
}

// Decode implements Decoder.
func (d GLTFDecoder) Decode(path string) (*model.Mesh, error) {
	return model.Decode(path, d.Options)
}

// Asset is the outcome of loading one configured path.
type Asset struct {
	Index int // position in the configured path list
	Path  string
	Mesh  *model.Mesh
	Err   error
}

// Result holds one Asset per configured path, in configured order.
type Result struct {
	Assets  []Asset
	Elapsed time.Duration
}

// Loaded returns the successfully decoded assets in configured order.
func (r *Result) Loaded() []Asset {
	var out []Asset
	for _, a := range r.Assets {
		if a.Err == nil && a.Mesh != nil {
			out = append(out, a)
		}
	}
	return out
}

// Failed returns the assets that could not be loaded.
func (r *Result) Failed() []Asset {
	var out []Asset
	for _, a := range r.Assets {
		if a.Err != nil || a.Mesh == nil {
			out = append(out, a)
		}
	}
	return out
}

// Loader decodes a list of model paths in parallel.
type Loader struct {
	decoder Decoder
	cache   *Cache
	workers int
	timeout time.Duration
	log     *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithCache shares a mesh cache between loads.
func WithCache(c *Cache) LoaderOption {
	return func(l *Loader) { l.cache = c }
}

// WithWorkers caps the number of concurrent decodes. Values below 1 mean
// no limit.
func WithWorkers(n int) LoaderOption {
	return func(l *Loader) { l.workers = n }
}

// WithTimeout bounds the whole load.
func WithTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) { l.timeout = d }
}

// WithLogger sets the loader's logger.
func WithLogger(log *zap.Logger) LoaderOption {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLoader creates a loader around dec.
func NewLoader(dec Decoder, opts ...LoaderOption) *Loader {
	l := &Loader{
		decoder: dec,
		cache:   NewCache(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load starts one decode per path and waits until all of them resolve or the
// context ends. Per-asset failures are recorded on the Asset and logged; an
// error is returned only when the context ended before anything loaded.
func (l *Loader) Load(ctx context.Context, paths []string) (*Result, error) {
	start := time.Now()
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	var (
		mu     sync.Mutex
		closed bool
		assets = make([]Asset, len(paths))
		done   = make([]bool, len(paths))
	)
	for i, p := range paths {
		assets[i] = Asset{Index: i, Path: p}
	}

	var g errgroup.Group
	if l.workers > 0 {
		g.SetLimit(l.workers)
	}

	wait := make(chan struct{})
	go func() {
		defer close(wait)
		for i, p := range paths {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				mesh, err := l.decode(p)

				mu.Lock()
				defer mu.Unlock()
				if closed {
					return nil
				}
				assets[i].Mesh = mesh
				assets[i].Err = err
				done[i] = true
				return nil
			})
		}
		_ = g.Wait()
	}()

	select {
	case <-wait:
	case <-ctx.Done():
	}

	notLoaded := ErrNotLoaded
	if cause := context.Cause(ctx); cause != nil {
		notLoaded = fmt.Errorf("%w: %w", ErrNotLoaded, cause)
	}

	mu.Lock()
	closed = true
	for i := range assets {
		if !done[i] {
			assets[i].Err = notLoaded
		}
	}
	res := &Result{Assets: assets, Elapsed: time.Since(start)}
	mu.Unlock()

	for _, a := range res.Failed() {
		l.log.Error("asset failed to load", zap.String("path", a.Path), zap.Error(a.Err))
	}
	loaded := len(res.Loaded())
	hits, misses := l.cache.Stats()
	l.log.Info("assets loaded",
		zap.Int("loaded", loaded),
		zap.Int("failed", len(paths)-loaded),
		zap.Duration("elapsed", res.Elapsed),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses),
	)

	if loaded == 0 && ctx.Err() != nil {
		return res, fmt.Errorf("loading assets: %w", ctx.Err())
	}
	return res, nil
}

func (l *Loader) decode(path string) (*model.Mesh, error) {
	if mesh, ok := l.cache.Get(path); ok {
		return mesh, nil
	}
	mesh, err := l.decoder.Decode(path)
	if err != nil {
		return nil, err
	}
	if mesh == nil {
		return nil, fmt.Errorf("%s: decoder returned no mesh", path)
	}
	l.cache.Set(path, mesh)
	return mesh, nil
}
