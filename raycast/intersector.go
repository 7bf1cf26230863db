// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raycast

import (
	"cogentcore.org/volray/math32"
)

// BoxEpsilon is the distance by which the volume box is inset, so that
// sample points on the box faces still have a full lattice cell around them.
const BoxEpsilon = 1e-3

// detEpsilon is the smallest determinant treated as a front facing hit.
const detEpsilon = 1e-6

// Faces are the faces of the volume box.
type Faces int32

const (
	// Bottom is the face at min Z.
	Bottom Faces = iota

	// Front is the face at min Y.
	Front

	// Right is the face at max X.
	Right

	// Back is the face at max Y.
	Back

	// Left is the face at min X.
	Left

	// Top is the face at max Z.
	Top

	FacesN
)

var faceNames = [FacesN]string{"Bottom", "Front", "Right", "Back", "Left", "Top"}

func (f Faces) String() string {
	if f < 0 || f >= FacesN {
		return "Faces(invalid)"
	}
	return faceNames[f]
}

// faceCorners are the box corners of each face, in the order of
// [math32.Box3.Corners]. For corners a, b, c, d the edges b-a and d-a
// span the face, and their cross product points out of the box.
var faceCorners = [FacesN][4]int{
	Bottom: {0, 3, 2, 1},
	Front:  {0, 1, 5, 4},
	Right:  {1, 2, 6, 5},
	Back:   {2, 3, 7, 6},
	Left:   {3, 0, 4, 7},
	Top:    {4, 5, 6, 7},
}

// face is a face as an origin corner and two spanning edges.
type face struct {
	origin, edge1, edge3 math32.Vector3
}

// FaceHit is the intersection of a ray with one face of the box.
type FaceHit struct {
	Face Faces
	T    float32
}

// Intersector casts rays from the camera through window positions
// and finds where they enter the volume box. It is not safe for
// concurrent use: each worker needs its own Intersector.
type Intersector struct {
	Ray

	// Box is the inset volume box.
	Box math32.Box3

	faces     [FacesN]face
	transform *Transform
}

// NewIntersector returns an intersector for the given world bounds of
// the volume, which are inset by [BoxEpsilon], and camera transform.
func NewIntersector(bounds math32.Box3, tr *Transform) *Intersector {
	it := &Intersector{Box: bounds, transform: tr}
	it.Box.ExpandByScalar(-BoxEpsilon)
	cs := it.Box.Corners()
	for f, fc := range faceCorners {
		o := cs[fc[0]]
		it.faces[f] = face{origin: o, edge1: cs[fc[1]].Sub(o), edge3: cs[fc[3]].Sub(o)}
	}
	return it
}

// SetOrigin sets the ray to go from the near plane to the far plane
// through window position (x, y), where (0, 0) is the bottom left
// corner of the viewport, and resets T to 0.
func (it *Intersector) SetOrigin(x, y float32) {
	near := it.transform.Unproject(x, y, 0)
	far := it.transform.Unproject(x, y, 1)
	it.Origin = near
	it.Direction = far.Sub(near).Normal()
	it.T = 0
}

// Intersected reports whether the ray enters the box through a
// front facing face. On success T is set to the entry point. An entry
// behind the origin, as when the near plane cuts the box, starts the
// ray at its origin instead; if the origin is then outside the box, the
// whole box lies behind it and the ray misses.
func (it *Intersector) Intersected() bool {
	for i := range it.faces {
		t, ok := it.hit(&it.faces[i], true)
		if !ok {
			continue
		}
		if t >= 0 {
			it.T = t
			return true
		}
		it.T = 0
		return it.Inside()
	}
	return false
}

// FaceHits returns the intersections of the ray with all faces of the
// box, both front and back facing, without changing T.
func (it *Intersector) FaceHits() []FaceHit {
	var hits []FaceHit
	for i := range it.faces {
		if t, ok := it.hit(&it.faces[i], false); ok {
			hits = append(hits, FaceHit{Face: Faces(i), T: t})
		}
	}
	return hits
}

// hit intersects the ray with a face using the Möller-Trumbore test
// extended to the parallelogram spanned by the face edges. With cull
// set, faces seen from behind never hit. The returned t is negative
// for faces behind the origin.
func (it *Intersector) hit(f *face, cull bool) (float32, bool) {
	pvec := it.Direction.Cross(f.edge3)
	det := f.edge1.Dot(pvec)
	tvec := it.Origin.Sub(f.origin)
	qvec := tvec.Cross(f.edge1)
	if cull {
		if det <= detEpsilon {
			return 0, false
		}
		u := tvec.Dot(pvec)
		if u < 0 || u > det {
			return 0, false
		}
		v := it.Direction.Dot(qvec)
		if v < 0 || v > det {
			return 0, false
		}
	} else {
		if math32.Abs(det) <= detEpsilon {
			return 0, false
		}
		inv := 1 / det
		u := tvec.Dot(pvec) * inv
		if u < 0 || u > 1 {
			return 0, false
		}
		v := it.Direction.Dot(qvec) * inv
		if v < 0 || v > 1 {
			return 0, false
		}
	}
	return f.edge3.Dot(qvec) / det, true
}

// Inside reports whether the current point is strictly inside the box.
func (it *Intersector) Inside() bool {
	return it.Box.ContainsPointStrict(it.Point())
}

// Depth returns the window depth in [0, 1] of the current point.
func (it *Intersector) Depth() float32 {
	clip := math32.Vector4FromVector3(it.Point(), 1).MulMatrix4(&it.transform.ViewProjection)
	return (1 + clip.Z/clip.W) * 0.5
}
