package assets

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/carousel3d/internal/engine/model"
)

var errBroken = errors.New("broken file")

func fakeMesh(name string) *model.Mesh {
	return &model.Mesh{
		Name:     name,
		Vertices: make([]model.Vertex, 3),
		Indices:  []uint32{0, 1, 2},
	}
}

// delayDecoder fails paths listed in bad and sleeps per path to scramble
// completion order.
func delayDecoder(delays map[string]time.Duration, bad map[string]bool) DecoderFunc {
	return func(path string) (*model.Mesh, error) {
		time.Sleep(delays[path])
		if bad[path] {
			return nil, errBroken
		}
		return fakeMesh(path), nil
	}
}

func paths(r []Asset) []string {
	out := make([]string, len(r))
	for i, a := range r {
		out[i] = a.Path
	}
	return out
}

func TestLoadKeepsConfiguredOrder(t *testing.T) {
	dec := delayDecoder(map[string]time.Duration{
		"a": 30 * time.Millisecond,
		"b": 10 * time.Millisecond,
		"c": 0,
	}, nil)

	res, err := NewLoader(dec, WithWorkers(3)).Load(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, paths(res.Loaded()))
	assert.Empty(t, res.Failed())
	for i, a := range res.Assets {
		assert.Equal(t, i, a.Index)
	}
}

func TestLoadDropsFailures(t *testing.T) {
	dec := delayDecoder(nil, map[string]bool{"b": true})

	res, err := NewLoader(dec).Load(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c"}, paths(res.Loaded()))
	failed := res.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, 1, failed[0].Index)
	assert.ErrorIs(t, failed[0].Err, errBroken)
}

func TestLoadAllFailedIsNotAnError(t *testing.T) {
	dec := delayDecoder(nil, map[string]bool{"a": true, "b": true})

	res, err := NewLoader(dec).Load(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Empty(t, res.Loaded())
	assert.Len(t, res.Failed(), 2)
}

func TestLoadRespectsWorkerLimit(t *testing.T) {
	var running, peak atomic.Int32
	dec := DecoderFunc(func(path string) (*model.Mesh, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		return fakeMesh(path), nil
	})

	res, err := NewLoader(dec, WithWorkers(2)).Load(context.Background(), []string{"a", "b", "c", "d", "e"})
	require.NoError(t, err)
	assert.Len(t, res.Loaded(), 5)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestLoadTimeout(t *testing.T) {
	dec := delayDecoder(map[string]time.Duration{
		"fast": 0,
		"slow": time.Second,
	}, nil)

	res, err := NewLoader(dec, WithTimeout(50*time.Millisecond)).Load(context.Background(), []string{"slow", "fast"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fast"}, paths(res.Loaded()))

	failed := res.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "slow", failed[0].Path)
	assert.ErrorIs(t, failed[0].Err, ErrNotLoaded)
	assert.ErrorIs(t, failed[0].Err, context.DeadlineExceeded)
}

func TestLoadCancelledBeforeAnything(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewLoader(delayDecoder(nil, nil)).Load(ctx, []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Loaded())
}

func TestLoadUsesCache(t *testing.T) {
	var calls atomic.Int32
	dec := DecoderFunc(func(path string) (*model.Mesh, error) {
		calls.Add(1)
		return fakeMesh(path), nil
	})
	cache := NewCache()
	l := NewLoader(dec, WithCache(cache))

	_, err := l.Load(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	res, err := l.Load(context.Background(), []string{"b", "a"})
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 2, cache.Len())
	hits, _ := cache.Stats()
	assert.Equal(t, 2, hits)
	assert.Equal(t, []string{"b", "a"}, paths(res.Loaded()))
}

func TestLoadNilMeshIsFailure(t *testing.T) {
	dec := DecoderFunc(func(string) (*model.Mesh, error) { return nil, nil })
	res, err := NewLoader(dec).Load(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Len(t, res.Failed(), 1)
}

func TestGLTFDecoder(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{{
		Attributes: map[string]int{gltf.POSITION: pos},
	}}}}
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = []int{0}

	dir := t.TempDir()
	good := filepath.Join(dir, "tri.glb")
	require.NoError(t, gltf.SaveBinary(doc, good))

	l := NewLoader(GLTFDecoder{Options: model.BuildOptions{Scale: 0.5}})
	res, err := l.Load(context.Background(), []string{good, filepath.Join(dir, "missing.glb")})
	require.NoError(t, err)

	loaded := res.Loaded()
	require.Len(t, loaded, 1)
	assert.Equal(t, 1, loaded[0].Mesh.TriangleCount())
	assert.Equal(t, [3]float32{0.5, 0.5, 0}, loaded[0].Mesh.Bounds.Max)
	assert.Len(t, res.Failed(), 1)
}
