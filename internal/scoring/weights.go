package scoring

import (
	"errors"
	"fmt"
	"math"
)

// ErrWeightsSum is returned when a weight group does not add up to one.
var ErrWeightsSum = errors.New("weights must sum to 1")

const weightTolerance = 1e-6

// Weights combines the component scores into the overall score.
type Weights struct {
	Experience float64 `mapstructure:"experience" json:"experience" validate:"gte=0,lte=1"`
	Skills     float64 `mapstructure:"skills" json:"skills" validate:"gte=0,lte=1"`
	Specific   float64 `mapstructure:"specific" json:"specific" validate:"gte=0,lte=1"`

	// Split of the skills component between required and preferred skills.
	Required  float64 `mapstructure:"required" json:"required" validate:"gte=0,lte=1"`
	Preferred float64 `mapstructure:"preferred" json:"preferred" validate:"gte=0,lte=1"`
}

// DefaultWeights returns 0.25/0.35/0.40 with a 0.7/0.3 skills split.
func DefaultWeights() Weights {
	return Weights{
		Experience: 0.25,
		Skills:     0.35,
		Specific:   0.40,
		Required:   0.7,
		Preferred:  0.3,
	}
}

// Validate checks ranges and that both groups sum to one.
func (w Weights) Validate() error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("invalid weights: %w", err)
	}

	if sum := w.Experience + w.Skills + w.Specific; math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: experience+skills+specific = %g", ErrWeightsSum, sum)
	}
	if sum := w.Required + w.Preferred; math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: required+preferred = %g", ErrWeightsSum, sum)
	}
	return nil
}
