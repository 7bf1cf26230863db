// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "errors"

// ErrSingularMatrix is returned by [Matrix4.Inverse] when the
// determinant of the matrix is zero.
var ErrSingularMatrix = errors.New("math32: cannot invert a matrix with zero determinant")

// Matrix4 is 4x4 matrix organized internally as column matrix,
// so element (row r, column c) is at index c*4+r and the
// translation of an affine transform is in elements 12, 13 and 14.
type Matrix4 [16]float32

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() *Matrix4 {
	m := &Matrix4{}
	m.SetIdentity()
	return m
}

// Set sets all the elements of this matrix row by row starting at row1, column1,
// row1, column2, row1, column3 and so forth.
func (m *Matrix4) Set(n11, n12, n13, n14, n21, n22, n23, n24, n31, n32, n33, n34, n41, n42, n43, n44 float32) {
	m[0] = n11
	m[4] = n12
	m[8] = n13
	m[12] = n14
	m[1] = n21
	m[5] = n22
	m[9] = n23
	m[13] = n24
	m[2] = n31
	m[6] = n32
	m[10] = n33
	m[14] = n34
	m[3] = n41
	m[7] = n42
	m[11] = n43
	m[15] = n44
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix4) SetIdentity() {
	m.Set(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

// At returns the element at the given row and column.
func (m *Matrix4) At(row, col int) float32 {
	return m[col*4+row]
}

// SetTranslation sets this matrix to a translation matrix from the specified x, y and z values.
func (m *Matrix4) SetTranslation(x, y, z float32) {
	m.Set(
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	)
}

// SetScale sets this matrix to a scale transformation matrix using the specified x, y and z values.
func (m *Matrix4) SetScale(x, y, z float32) {
	m.Set(
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	)
}

// Mul returns this matrix times other matrix (this matrix is on the left).
func (m *Matrix4) Mul(other *Matrix4) *Matrix4 {
	nm := &Matrix4{}
	nm.MulMatrices(m, other)
	return nm
}

// MulMatrices sets this matrix as matrix multiplication a by b (i.e., a*b).
func (m *Matrix4) MulMatrices(a, b *Matrix4) {
	var r Matrix4
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[c*4+k]
			}
			r[c*4+row] = sum
		}
	}
	*m = r
}

// Transpose returns the transpose of this matrix.
func (m *Matrix4) Transpose() *Matrix4 {
	nm := &Matrix4{}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			nm[r*4+c] = m[c*4+r]
		}
	}
	return nm
}

// cofactors returns the 2x2 sub-determinants shared by
// [Matrix4.Determinant] and [Matrix4.Inverse].
func (m *Matrix4) cofactors() [12]float32 {
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]
	return [12]float32{
		a00*a11 - a01*a10,
		a00*a12 - a02*a10,
		a00*a13 - a03*a10,
		a01*a12 - a02*a11,
		a01*a13 - a03*a11,
		a02*a13 - a03*a12,
		a20*a31 - a21*a30,
		a20*a32 - a22*a30,
		a20*a33 - a23*a30,
		a21*a32 - a22*a31,
		a21*a33 - a23*a31,
		a22*a33 - a23*a32,
	}
}

// Determinant calculates and returns the determinant of this matrix.
func (m *Matrix4) Determinant() float32 {
	b := m.cofactors()
	return b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
}

// Inverse returns the inverse of this matrix.
// If the matrix cannot be inverted it returns the identity
// matrix and [ErrSingularMatrix].
func (m *Matrix4) Inverse() (*Matrix4, error) {
	b := m.cofactors()
	det := b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
	if det == 0 {
		return Identity4(), ErrSingularMatrix
	}
	inv := 1 / det

	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	nm := &Matrix4{}
	nm[0] = (a11*b[11] - a12*b[10] + a13*b[9]) * inv
	nm[1] = (a02*b[10] - a01*b[11] - a03*b[9]) * inv
	nm[2] = (a31*b[5] - a32*b[4] + a33*b[3]) * inv
	nm[3] = (a22*b[4] - a21*b[5] - a23*b[3]) * inv
	nm[4] = (a12*b[8] - a10*b[11] - a13*b[7]) * inv
	nm[5] = (a00*b[11] - a02*b[8] + a03*b[7]) * inv
	nm[6] = (a32*b[2] - a30*b[5] - a33*b[1]) * inv
	nm[7] = (a20*b[5] - a22*b[2] + a23*b[1]) * inv
	nm[8] = (a10*b[10] - a11*b[8] + a13*b[6]) * inv
	nm[9] = (a01*b[8] - a00*b[10] - a03*b[6]) * inv
	nm[10] = (a30*b[4] - a31*b[2] + a33*b[0]) * inv
	nm[11] = (a21*b[2] - a20*b[4] - a23*b[0]) * inv
	nm[12] = (a11*b[7] - a10*b[9] - a12*b[6]) * inv
	nm[13] = (a00*b[9] - a01*b[7] + a02*b[6]) * inv
	nm[14] = (a31*b[1] - a30*b[3] - a32*b[0]) * inv
	nm[15] = (a20*b[3] - a21*b[1] + a22*b[0]) * inv
	return nm, nil
}

// SetFrustum sets this matrix to a projection frustum matrix bounded by the specified planes.
func (m *Matrix4) SetFrustum(left, right, bottom, top, near, far float32) {
	fmn := far - near
	m[0] = 2 * near / (right - left)
	m[1] = 0
	m[2] = 0
	m[3] = 0
	m[4] = 0
	m[5] = 2 * near / (top - bottom)
	m[6] = 0
	m[7] = 0
	m[8] = (right + left) / (right - left)
	m[9] = (top + bottom) / (top - bottom)
	m[10] = -(far + near) / fmn
	m[11] = -1
	m[12] = 0
	m[13] = 0
	m[14] = -(2 * far * near) / fmn
	m[15] = 0
}

// SetPerspective sets this matrix to a perspective projection matrix
// with the specified vertical field of view in degrees,
// aspect ratio (width/height) and near and far planes.
func (m *Matrix4) SetPerspective(fov, aspect, near, far float32) {
	ymax := near * Tan(DegToRad(fov*0.5))
	ymin := -ymax
	xmin := ymin * aspect
	xmax := ymax * aspect
	m.SetFrustum(xmin, xmax, ymin, ymax, near, far)
}

// SetOrthographic sets this matrix to an orthographic projection matrix
// with the specified view volume width, height and near and far planes.
func (m *Matrix4) SetOrthographic(width, height, near, far float32) {
	p := far - near
	z := (far + near) / p
	m.Set(
		2/width, 0, 0, 0,
		0, 2/height, 0, 0,
		0, 0, -2/p, -z,
		0, 0, 0, 1,
	)
}

// SetLookAt sets this matrix to the view (world to camera) transform
// of a camera at eye looking at target with the given up direction.
func (m *Matrix4) SetLookAt(eye, target, up Vector3) {
	f := target.Sub(eye).Normal()
	s := f.Cross(up).Normal()
	u := s.Cross(f)
	m.Set(
		s.X, s.Y, s.Z, -s.Dot(eye),
		u.X, u.Y, u.Z, -u.Dot(eye),
		-f.X, -f.Y, -f.Z, f.Dot(eye),
		0, 0, 0, 1,
	)
}

// NewLookAt returns a new view matrix as in [Matrix4.SetLookAt].
func NewLookAt(eye, target, up Vector3) *Matrix4 {
	m := &Matrix4{}
	m.SetLookAt(eye, target, up)
	return m
}

// Translation returns the translation part of this (affine) matrix.
func (m *Matrix4) Translation() Vector3 {
	return Vec3(m[12], m[13], m[14])
}
