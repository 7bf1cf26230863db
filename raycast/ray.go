// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raycast

import "cogentcore.org/volray/math32"

// Ray is a half line: the current point is Origin + Direction*T.
type Ray struct {

	// Origin is the start of the ray, on the near clip plane.
	Origin math32.Vector3

	// Direction is the unit direction of the ray.
	Direction math32.Vector3

	// T is the ray parameter of the current point.
	T float32
}

// Point returns the current point of the ray.
func (r *Ray) Point() math32.Vector3 {
	return r.Origin.Add(r.Direction.MulScalar(r.T))
}

// Step advances the current point by dt along the ray.
func (r *Ray) Step(dt float32) {
	r.T += dt
}
