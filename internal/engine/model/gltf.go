package model

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/carousel3d/internal/logger"
	"github.com/Faultbox/carousel3d/pkg/math"
)

var (
	// ErrNoScene is returned when a document has no scene to instantiate.
	ErrNoScene = errors.New("gltf: document has no scene")
	// ErrNoGeometry is returned when no triangle primitives were found.
	ErrNoGeometry = errors.New("gltf: no triangle geometry")
)

// maxDepth bounds node recursion so cyclic node graphs fail instead of hang.
const maxDepth = 64

var identity64 = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// Decode opens a .gltf or .glb file and bakes its default scene into a mesh.
func Decode(path string, opts BuildOptions) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	mesh, err := Build(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", path, err)
	}
	mesh.Name = path
	return mesh, nil
}

// Build bakes every triangle primitive reachable from the document's default
// scene into one mesh in scene space.
func Build(doc *gltf.Document, opts BuildOptions) (*Mesh, error) {
	roots, err := sceneRoots(doc)
	if err != nil {
		return nil, err
	}

	b := &builder{doc: doc, bounds: emptyBounds()}
	for _, n := range roots {
		if err := b.visit(n, math.Identity(), 0); err != nil {
			return nil, err
		}
	}
	if len(b.vertices) == 0 || len(b.indices) == 0 {
		return nil, ErrNoGeometry
	}

	mesh := &Mesh{
		Vertices: b.vertices,
		Indices:  b.indices,
		Groups:   b.groups,
		Bounds:   b.bounds,
	}
	if opts.Center {
		CenterMesh(mesh.Vertices, &mesh.Bounds)
	}
	if opts.Scale != 0 && opts.Scale != 1 {
		ScaleMesh(mesh.Vertices, &mesh.Bounds, opts.Scale)
	}
	return mesh, nil
}

func sceneRoots(doc *gltf.Document) ([]int, error) {
	if len(doc.Scenes) == 0 {
		return nil, ErrNoScene
	}
	idx := 0
	if doc.Scene != nil {
		idx = *doc.Scene
	}
	if idx < 0 || idx >= len(doc.Scenes) {
		return nil, fmt.Errorf("%w: scene index %d out of range", ErrNoScene, idx)
	}
	return doc.Scenes[idx].Nodes, nil
}

type builder struct {
	doc      *gltf.Document
	vertices []Vertex
	indices  []uint32
	groups   []Group
	bounds   Bounds
}

func (b *builder) visit(nodeIdx int, parent math.Mat4, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("node hierarchy deeper than %d", maxDepth)
	}
	if nodeIdx < 0 || nodeIdx >= len(b.doc.Nodes) {
		return fmt.Errorf("node index %d out of range", nodeIdx)
	}

	node := b.doc.Nodes[nodeIdx]
	world := parent.Mul(localMatrix(node))

	if node.Mesh != nil {
		if *node.Mesh < 0 || *node.Mesh >= len(b.doc.Meshes) {
			return fmt.Errorf("node %q: mesh index %d out of range", node.Name, *node.Mesh)
		}
		mesh := b.doc.Meshes[*node.Mesh]
		for i, prim := range mesh.Primitives {
			if err := b.addPrimitive(prim, world); err != nil {
				return fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
			}
		}
	}

	for _, child := range node.Children {
		if err := b.visit(child, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// localMatrix returns the node's matrix if set, otherwise T*R*S.
func localMatrix(n *gltf.Node) math.Mat4 {
	if n.Matrix != identity64 && n.Matrix != [16]float64{} {
		return math.FromFloat64(n.Matrix)
	}

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	return math.Translate(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul(math.QuatFromArray(r).Normalize().ToMat4()).
		Mul(math.Scale(float32(s[0]), float32(s[1]), float32(s[2])))
}

func (b *builder) addPrimitive(prim *gltf.Primitive, world math.Mat4) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		logger.Debug("skipping non-triangle primitive", zap.Int("mode", int(prim.Mode)))
		return nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}
	acr, err := b.accessor(posIdx)
	if err != nil {
		return err
	}
	positions, err := modeler.ReadPosition(b.doc, acr, nil)
	if err != nil {
		return fmt.Errorf("reading positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		acr, err := b.accessor(idx)
		if err != nil {
			return err
		}
		normals, err = modeler.ReadNormal(b.doc, acr, nil)
		if err != nil {
			return fmt.Errorf("reading normals: %w", err)
		}
		if len(normals) != len(positions) {
			normals = nil
		}
	}

	var local []uint32
	if prim.Indices != nil {
		acr, err := b.accessor(*prim.Indices)
		if err != nil {
			return err
		}
		local, err = modeler.ReadIndices(b.doc, acr, nil)
		if err != nil {
			return fmt.Errorf("reading indices: %w", err)
		}
	} else {
		local = make([]uint32, len(positions))
		for i := range local {
			local[i] = uint32(i)
		}
	}
	local = local[:len(local)-len(local)%3]
	if len(local) == 0 {
		return nil
	}

	base := uint32(len(b.vertices))
	start := len(b.vertices)
	for i, p := range positions {
		pos := world.TransformPoint(p)
		updateBounds(&b.bounds, pos)

		var n [3]float32
		if normals != nil {
			n = vec(world.TransformDirection(normals[i])).Normalize().Array()
		}
		b.vertices = append(b.vertices, Vertex{Position: pos, Normal: n})
	}

	// Mirroring transforms flip the winding.
	mirrored := world.Determinant3() < 0
	startIndex := int32(len(b.indices))
	for t := 0; t < len(local); t += 3 {
		i0, i1, i2 := local[t], local[t+1], local[t+2]
		if int(i0) >= len(positions) || int(i1) >= len(positions) || int(i2) >= len(positions) {
			continue
		}
		if mirrored {
			i1, i2 = i2, i1
		}
		b.indices = append(b.indices, base+i0, base+i1, base+i2)
	}

	if normals == nil {
		rel := make([]uint32, 0, len(b.indices)-int(startIndex))
		for _, idx := range b.indices[startIndex:] {
			rel = append(rel, idx-base)
		}
		FaceNormals(b.vertices[start:], rel)
		SmoothNormals(b.vertices[start:])
	}

	name, color := b.material(prim.Material)
	b.groups = append(b.groups, Group{
		Material:   name,
		BaseColor:  color,
		StartIndex: startIndex,
		IndexCount: int32(len(b.indices)) - startIndex,
	})
	return nil
}

func (b *builder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", idx)
	}
	return b.doc.Accessors[idx], nil
}

func (b *builder) material(idx *int) (string, [4]float32) {
	color := [4]float32{1, 1, 1, 1}
	if idx == nil || *idx < 0 || *idx >= len(b.doc.Materials) {
		return "", color
	}
	mat := b.doc.Materials[*idx]
	if mat.PBRMetallicRoughness != nil {
		f := mat.PBRMetallicRoughness.BaseColorFactorOrDefault()
		color = [4]float32{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}
	}
	return mat.Name, color
}
