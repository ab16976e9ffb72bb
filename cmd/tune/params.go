package main

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
	"github.com/pthm-cable/orrery/scenario"
)

// ParamSpec defines a single tunable launch parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the impactor launch parameters: a multiplier on
// the impactor's velocity and a vertical offset in primary radii.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "speed_scale", Min: 0.2, Max: 4.0, Default: 1.0},
			{Name: "vertical_offset", Min: -0.9, Max: 0.9, Default: 0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// Roles picks the impactor and the primary it is aimed at. The impactor
// is the first object named as an asteroid, else the smallest object;
// the primary is the largest remaining object.
func Roles(objs []scenario.ObjectSpec) (impactor, primary int, ok bool) {
	if len(objs) < 2 {
		return -1, -1, false
	}
	impactor = -1
	for i, o := range objs {
		if scenario.RoleFromName(o.Name) == components.RoleImpactor {
			impactor = i
			break
		}
	}
	if impactor < 0 {
		impactor = 0
		for i, o := range objs {
			if o.Size < objs[impactor].Size {
				impactor = i
			}
		}
	}
	primary = -1
	for i, o := range objs {
		if i == impactor {
			continue
		}
		if primary < 0 || o.Size > objs[primary].Size {
			primary = i
		}
	}
	return impactor, primary, true
}

// Apply returns a copy of base with the impactor relaunched per values.
func (pv *ParamVector) Apply(base *scenario.Setup, values []float64) *scenario.Setup {
	clamped := pv.Clamp(values)
	out := *base
	out.Objects = append([]scenario.ObjectSpec(nil), base.Objects...)

	imp, prim, ok := Roles(out.Objects)
	if !ok {
		return &out
	}
	o := &out.Objects[imp]
	o.Velocity = scenario.FromVec(r3.Scale(clamped[0], o.Velocity.Vec()))
	o.Position.Y += clamped[1] * out.Objects[prim].Size
	return &out
}
