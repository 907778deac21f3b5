package model

import (
	"github.com/Faultbox/carousel3d/pkg/math"
)

// CenterMesh moves the mesh so its bounding box centre sits at the origin.
// Returns the offset that was subtracted.
func CenterMesh(vertices []Vertex, bounds *Bounds) [3]float32 {
	c := bounds.Center()
	for i := range vertices {
		vertices[i].Position[0] -= c[0]
		vertices[i].Position[1] -= c[1]
		vertices[i].Position[2] -= c[2]
	}
	for k := 0; k < 3; k++ {
		bounds.Min[k] -= c[k]
		bounds.Max[k] -= c[k]
	}
	return c
}

// ScaleMesh multiplies every position and the bounds by s.
func ScaleMesh(vertices []Vertex, bounds *Bounds, s float32) {
	for i := range vertices {
		vertices[i].Position[0] *= s
		vertices[i].Position[1] *= s
		vertices[i].Position[2] *= s
	}
	for k := 0; k < 3; k++ {
		bounds.Min[k] *= s
		bounds.Max[k] *= s
	}
}

// FaceNormals writes area-weighted, normalised per-vertex normals computed
// from the triangle list. Indices refer to vertices.
func FaceNormals(vertices []Vertex, indices []uint32) {
	sums := make([]math.Vec3, len(vertices))
	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		if int(i0) >= len(vertices) || int(i1) >= len(vertices) || int(i2) >= len(vertices) {
			continue
		}
		p0 := vec(vertices[i0].Position)
		e1 := vec(vertices[i1].Position).Sub(p0)
		e2 := vec(vertices[i2].Position).Sub(p0)
		n := e1.Cross(e2)
		sums[i0] = sums[i0].Add(n)
		sums[i1] = sums[i1].Add(n)
		sums[i2] = sums[i2].Add(n)
	}
	for i := range vertices {
		vertices[i].Normal = sums[i].Normalize().Array()
	}
}

// SmoothNormals averages normals at shared vertex positions.
// This reduces faceted appearance on models without authored normals.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(vertices[i].Position[0] / epsilon),
			int32(vertices[i].Position[1] / epsilon),
			int32(vertices[i].Position[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(vec(vertices[idx].Normal))
		}
		avg := sum.Normalize().Array()

		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for k := 0; k < 3; k++ {
		if p[k] < b.Min[k] {
			b.Min[k] = p[k]
		}
		if p[k] > b.Max[k] {
			b.Max[k] = p[k]
		}
	}
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
