package load

import "github.com/Ebi50/training28-sub000/internal/constants"

// Form is a coarse reading of the training balance.
type Form string

const (
	FormFresh    Form = "fresh"
	FormOptimal  Form = "optimal"
	FormTired    Form = "tired"
	FormFatigued Form = "fatigued"
)

// FormReading pairs a form band with advice.
type FormReading struct {
	Form    Form   `json:"form"`
	Message string `json:"message"`
}

func InterpretTSB(tsb float64) FormReading {
	switch {
	case tsb > constants.TSBFreshAbove:
		return FormReading{FormFresh, "Well rested, good time for hard efforts or racing"}
	case tsb >= constants.TSBOptimalFloor:
		return FormReading{FormOptimal, "Productive training zone"}
	case tsb >= constants.TSBTiredFloor:
		return FormReading{FormTired, "Accumulated fatigue, keep intensity in check"}
	default:
		return FormReading{FormFatigued, "High fatigue, prioritise recovery"}
	}
}
