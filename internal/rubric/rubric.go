// Package rubric holds the fixed, versioned scoring schema every judge
// applies: an ordered set of weighted criteria on a shared integer scale.
package rubric

import (
	"errors"
	"fmt"
	"math"
)

// WeightTolerance is the allowed deviation of the weight sum from 1.0.
const WeightTolerance = 1e-6

const (
	defaultScaleMin = 1
	defaultScaleMax = 5
)

var (
	ErrInvalidRubric    = errors.New("invalid rubric")
	ErrOutOfRangeScore  = errors.New("score out of range")
	ErrMissingCriterion = errors.New("missing criterion score")
)

// CriterionSpec is the declarative form of one criterion, as it appears in
// the evaluation config. Zero scale bounds default to 1..5.
type CriterionSpec struct {
	Name     string  `yaml:"name" json:"name"`
	Weight   float64 `yaml:"weight" json:"weight"`
	ScaleMin int     `yaml:"scale_min,omitempty" json:"scale_min,omitempty"`
	ScaleMax int     `yaml:"scale_max,omitempty" json:"scale_max,omitempty"`
}

// Spec is the declarative form of a rubric.
type Spec struct {
	Version  string          `yaml:"version" json:"version"`
	Criteria []CriterionSpec `yaml:"criteria" json:"criteria"`
}

// Criterion is one validated scoring dimension.
type Criterion struct {
	Name     string
	Weight   float64
	ScaleMin int
	ScaleMax int
}

// Rubric is an immutable, validated scoring schema. Criteria keep the order
// they were declared in, which fixes the ordering of everything derived from
// them (prompts, consensus output, rationale lines).
type Rubric struct {
	version  string
	criteria []Criterion
	index    map[string]int
}

// Load validates a spec and returns the rubric. Weights must each lie in
// (0,1] and sum to 1.0 within WeightTolerance; scales must be positive and
// not inverted.
func Load(spec Spec) (*Rubric, error) {
	if len(spec.Criteria) == 0 {
		return nil, fmt.Errorf("%w: no criteria", ErrInvalidRubric)
	}

	r := &Rubric{
		version:  spec.Version,
		criteria: make([]Criterion, 0, len(spec.Criteria)),
		index:    make(map[string]int, len(spec.Criteria)),
	}

	var sum float64
	for _, cs := range spec.Criteria {
		if cs.Name == "" {
			return nil, fmt.Errorf("%w: criterion with empty name", ErrInvalidRubric)
		}
		if _, dup := r.index[cs.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate criterion %q", ErrInvalidRubric, cs.Name)
		}
		if cs.Weight <= 0 || cs.Weight > 1 {
			return nil, fmt.Errorf("%w: criterion %q weight %v outside (0,1]", ErrInvalidRubric, cs.Name, cs.Weight)
		}

		c := Criterion{
			Name:     cs.Name,
			Weight:   cs.Weight,
			ScaleMin: cs.ScaleMin,
			ScaleMax: cs.ScaleMax,
		}
		if c.ScaleMin == 0 && c.ScaleMax == 0 {
			c.ScaleMin, c.ScaleMax = defaultScaleMin, defaultScaleMax
		}
		if c.ScaleMin <= 0 || c.ScaleMax <= 0 || c.ScaleMax <= c.ScaleMin {
			return nil, fmt.Errorf("%w: criterion %q scale [%d,%d]", ErrInvalidRubric, cs.Name, c.ScaleMin, c.ScaleMax)
		}

		r.index[c.Name] = len(r.criteria)
		r.criteria = append(r.criteria, c)
		sum += c.Weight
	}

	if math.Abs(sum-1.0) > WeightTolerance {
		return nil, fmt.Errorf("%w: weights sum to %v, want 1.0", ErrInvalidRubric, sum)
	}

	return r, nil
}

// Version returns the rubric's version identifier.
func (r *Rubric) Version() string {
	return r.version
}

// Criteria returns the criteria in declaration order. The slice is a copy.
func (r *Rubric) Criteria() []Criterion {
	out := make([]Criterion, len(r.criteria))
	copy(out, r.criteria)
	return out
}

// Criterion looks up a criterion by name.
func (r *Rubric) Criterion(name string) (Criterion, bool) {
	i, ok := r.index[name]
	if !ok {
		return Criterion{}, false
	}
	return r.criteria[i], true
}

// Len returns the number of criteria.
func (r *Rubric) Len() int {
	return len(r.criteria)
}

// InRange reports whether score lies within the criterion's declared bounds.
func (c Criterion) InRange(score int) bool {
	return score >= c.ScaleMin && score <= c.ScaleMax
}

// Clamp forces score into the criterion's declared bounds.
func (c Criterion) Clamp(score int) int {
	if score < c.ScaleMin {
		return c.ScaleMin
	}
	if score > c.ScaleMax {
		return c.ScaleMax
	}
	return score
}

// WeightedScore computes Σ(weight_i × score_i) over all criteria. Every
// criterion must be present and within its declared bounds.
func (r *Rubric) WeightedScore(scores map[string]int) (float64, error) {
	var total float64
	for _, c := range r.criteria {
		s, ok := scores[c.Name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrMissingCriterion, c.Name)
		}
		if !c.InRange(s) {
			return 0, fmt.Errorf("%w: %s=%d outside [%d,%d]", ErrOutOfRangeScore, c.Name, s, c.ScaleMin, c.ScaleMax)
		}
		total += c.Weight * float64(s)
	}
	return total, nil
}
