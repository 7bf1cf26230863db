// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raycast

import (
	"errors"
	"fmt"

	"cogentcore.org/volray/math32"
)

// ErrNoCamera is returned when rendering without a usable camera.
var ErrNoCamera = errors.New("raycast: no camera or empty viewport")

// Camera holds the view and projection transforms and the size in
// pixels of the image to render.
type Camera struct {

	// View is the world to camera transform.
	View math32.Matrix4

	// Projection is the camera to clip space transform.
	Projection math32.Matrix4

	// Width of the image in pixels.
	Width int

	// Height of the image in pixels.
	Height int
}

// NewPerspectiveCamera returns a camera at eye looking at target with the
// given up direction, vertical field of view in degrees, near and far
// planes, and image size. The aspect ratio follows the image size.
func NewPerspectiveCamera(eye, target, up math32.Vector3, fov, near, far float32, width, height int) *Camera {
	cm := &Camera{Width: width, Height: height}
	cm.View.SetLookAt(eye, target, up)
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	cm.Projection.SetPerspective(fov, aspect, near, far)
	return cm
}

// NewOrthographicCamera returns a camera at eye looking at target that
// shows a view volume of the given height in world units.
func NewOrthographicCamera(eye, target, up math32.Vector3, viewHeight, near, far float32, width, height int) *Camera {
	cm := &Camera{Width: width, Height: height}
	cm.View.SetLookAt(eye, target, up)
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	cm.Projection.SetOrthographic(viewHeight*aspect, viewHeight, near, far)
	return cm
}

// ViewProjection returns Projection * View.
func (cm *Camera) ViewProjection() *math32.Matrix4 {
	return cm.Projection.Mul(&cm.View)
}

// InverseViewProjection returns the inverse of [Camera.ViewProjection].
func (cm *Camera) InverseViewProjection() (*math32.Matrix4, error) {
	return cm.ViewProjection().Inverse()
}

// Position returns the world position of the camera.
func (cm *Camera) Position() (math32.Vector3, error) {
	inv, err := cm.View.Inverse()
	if err != nil {
		return math32.Vector3{}, fmt.Errorf("raycast: camera view: %w", err)
	}
	return inv.Translation(), nil
}

// Transform returns the per-frame transform of the camera.
func (cm *Camera) Transform() (*Transform, error) {
	if cm == nil || cm.Width <= 0 || cm.Height <= 0 {
		return nil, ErrNoCamera
	}
	tr := &Transform{Width: float32(cm.Width), Height: float32(cm.Height)}
	tr.ViewProjection = *cm.ViewProjection()
	inv, err := cm.InverseViewProjection()
	if err != nil {
		return nil, fmt.Errorf("raycast: camera view projection: %w", err)
	}
	tr.Inverse = *inv
	return tr, nil
}

// Transform is the combined camera transform, computed once per frame
// and shared read-only by all the rays of the frame.
type Transform struct {
	ViewProjection math32.Matrix4

	// Inverse is the inverse of ViewProjection.
	Inverse math32.Matrix4

	// Width and Height are the viewport size in pixels.
	Width, Height float32
}

// Unproject returns the world point of window position (x, y) with
// window depth z in [0, 1], where (0, 0) is the bottom left corner.
func (tr *Transform) Unproject(x, y, z float32) math32.Vector3 {
	ndc := math32.Vec4(2*x/tr.Width-1, 2*y/tr.Height-1, 2*z-1, 1)
	return ndc.MulMatrix4(&tr.Inverse).PerspDiv()
}

// Light is a point light.
type Light struct {
	Position math32.Vector3
}
