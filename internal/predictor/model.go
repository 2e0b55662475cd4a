package predictor

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidModel = errors.New("invalid model")

// LinearModel is a serialized linear regression over named features.
type LinearModel struct {
	Version      string    `json:"version"`
	FeatureNames []string  `json:"feature_names"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// Validate checks that the coefficients line up with the feature columns.
func (m *LinearModel) Validate() error {
	names := m.FeatureNames
	if len(names) == 0 {
		names = DefaultFeatureNames
	}
	if len(m.Coefficients) != len(names) {
		return fmt.Errorf("%w: %d coefficients for %d features", ErrInvalidModel, len(m.Coefficients), len(names))
	}
	for i, c := range m.Coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: coefficient %d is not finite", ErrInvalidModel, i)
		}
	}
	return nil
}

// Predict returns the non-negative daily TSS for a feature vector.
func (m *LinearModel) Predict(f Features) float64 {
	x := f.Vector(m.FeatureNames)
	y := m.Intercept
	for i, c := range m.Coefficients {
		if i < len(x) {
			y += c * x[i]
		}
	}
	return math.Max(0, y)
}
