// Package predictor provides the optional learned weekly stress shape used by
// the scheduler in place of fixed weekday weights.
package predictor

import (
	"context"
	"time"

	"github.com/Ebi50/training28-sub000/internal/load"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

// Input is what a predictor sees for one week.
type Input struct {
	Athlete   models.Athlete
	History   []models.DailyLoad
	WeekStart time.Time
}

// Predictor returns seven daily stress values starting at Input.WeekStart.
type Predictor interface {
	PredictWeek(ctx context.Context, in Input) ([]float64, error)
}

// ModelPredictor runs a linear model loaded through a Loader.
type ModelPredictor struct {
	loader *Loader
}

func NewModelPredictor(loader *Loader) *ModelPredictor {
	return &ModelPredictor{loader: loader}
}

// PredictWeek predicts each day in turn, feeding every prediction back into
// the history so later days see the projected load.
func (p *ModelPredictor) PredictWeek(ctx context.Context, in Input) ([]float64, error) {
	model, err := p.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	history := make([]models.DailyLoad, len(in.History))
	copy(history, in.History)
	current := load.Current(history)

	out := make([]float64, 7)
	for i := range out {
		date := in.WeekStart.AddDate(0, 0, i)
		tss := model.Predict(ExtractFeatures(in.Athlete, history, date))
		out[i] = tss
		current = load.Update(current, utils.FormatDate(date), tss)
		history = append(history, current)
	}
	return out, nil
}
