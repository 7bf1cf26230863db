// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raycast

import (
	"errors"
	"fmt"
	"strings"

	"cogentcore.org/volray/math32"
)

// ErrInvalidShading is returned for out of range shading coefficients.
var ErrInvalidShading = errors.New("raycast: invalid shading")

// Shadings are the local illumination models.
type Shadings int32

const (
	// Lambert is diffuse only shading: Ka + Kd*|N.L|.
	Lambert Shadings = iota

	// Phong adds a specular term Ks*|N.R|^S with R the reflection of L.
	Phong

	// BlinnPhong uses the half vector H instead: Ks*|N.H|^S.
	BlinnPhong
)

var shadingNames = [...]string{"lambert", "phong", "blinn-phong"}

func (sh Shadings) String() string {
	if sh < 0 || int(sh) >= len(shadingNames) {
		return fmt.Sprintf("Shadings(%d)", int32(sh))
	}
	return shadingNames[sh]
}

// SetString sets the model from its name, case insensitive.
// "blinnphong" is accepted for [BlinnPhong].
func (sh *Shadings) SetString(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "blinnphong" {
		s = "blinn-phong"
	}
	for i, nm := range shadingNames {
		if nm == s {
			*sh = Shadings(i)
			return nil
		}
	}
	return fmt.Errorf("raycast: unknown shading model %q", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (sh Shadings) MarshalText() ([]byte, error) {
	return []byte(sh.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (sh *Shadings) UnmarshalText(text []byte) error {
	return sh.SetString(string(text))
}

// Shading is an illumination model with its coefficients.
type Shading struct {

	// Type is the illumination model.
	Type Shadings

	// Ka is the ambient coefficient.
	Ka float32

	// Kd is the diffuse coefficient.
	Kd float32

	// Ks is the specular coefficient, unused by [Lambert].
	Ks float32

	// S is the specular exponent, unused by [Lambert].
	S float32
}

// DefaultShading returns the default coefficients of the given model.
func DefaultShading(typ Shadings) Shading {
	if typ == Lambert {
		return Shading{Type: Lambert, Ka: 0.5, Kd: 0.5}
	}
	return Shading{Type: typ, Ka: 0.2, Kd: 0.5, Ks: 0.3, S: 20}
}

// Validate checks the model and that the coefficients are non-negative.
func (sh *Shading) Validate() error {
	if sh.Type < Lambert || sh.Type > BlinnPhong {
		return fmt.Errorf("%w: model %v", ErrInvalidShading, sh.Type)
	}
	if sh.Ka < 0 || sh.Kd < 0 || sh.Ks < 0 || sh.S < 0 {
		return fmt.Errorf("%w: negative coefficient in %+v", ErrInvalidShading, *sh)
	}
	return nil
}

// Directions are the unit vectors used for shading, which are the
// same for the whole frame: the light direction L, the view direction
// C and the half vector H = normalize(C + L).
type Directions struct {
	L, C, H math32.Vector3
}

// NewDirections returns the shading directions for a camera and
// light at the given positions, measured from the world origin.
func NewDirections(camera, light math32.Vector3) Directions {
	d := Directions{L: light.Normal().Negate(), C: camera.Normal().Negate()}
	d.H = d.C.Add(d.L).Normal()
	return d
}

// Attenuation returns the shading factor in [0, 1] for the given
// gradient, which serves as the surface normal. Surfaces shade the same
// from both sides. A zero gradient has no normal and gets ambient light
// only.
func (sh *Shading) Attenuation(gradient math32.Vector3, d Directions) float32 {
	n := gradient.Normal()
	if n.IsZero() {
		return min(sh.Ka, 1)
	}
	nl := n.Dot(d.L)
	a := sh.Ka + sh.Kd*math32.Abs(nl)
	switch sh.Type {
	case Phong:
		r := n.MulScalar(2 * nl).Sub(d.L)
		a += sh.Ks * math32.Pow(math32.Abs(n.Dot(r)), sh.S)
	case BlinnPhong:
		a += sh.Ks * math32.Pow(math32.Abs(n.Dot(d.H)), sh.S)
	}
	return min(a, 1)
}
