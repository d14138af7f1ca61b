package coranking

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Quality holds all three metrics for a single neighborhood size.
type Quality struct {
	K               int     `json:"k"`
	Trustworthiness float64 `json:"trustworthiness"`
	Continuity      float64 `json:"continuity"`
	LCMC            float64 `json:"lcmc"`
}

// Report evaluates trustworthiness, continuity and LCMC at k.
func (e *Evaluator) Report(k int) (Quality, error) {
	if err := validateK(k, e.n); err != nil {
		return Quality{}, err
	}
	return Quality{
		K:               k,
		Trustworthiness: e.trustworthiness(k),
		Continuity:      e.continuity(k),
		LCMC:            e.lcmc(k),
	}, nil
}

// Curves holds the three metrics over a K range, index-aligned with Ks.
type Curves struct {
	Ks              []int        `json:"ks"`
	Trustworthiness []float64    `json:"trustworthiness"`
	Continuity      []float64    `json:"continuity"`
	LCMC            []float64    `json:"lcmc"`
	Summary         CurveSummary `json:"summary"`
}

// CurveSummary condenses Curves into a few scalars. It is zero-valued when
// the range is empty.
type CurveSummary struct {
	MeanTrustworthiness float64 `json:"mean_trustworthiness"`
	MeanContinuity      float64 `json:"mean_continuity"`
	MeanLCMC            float64 `json:"mean_lcmc"`

	MedianTrustworthiness float64 `json:"median_trustworthiness"`
	MedianContinuity      float64 `json:"median_continuity"`
	MedianLCMC            float64 `json:"median_lcmc"`

	// BestK is the K with the highest LCMC; the smallest such K on ties.
	BestK    int     `json:"best_k"`
	BestLCMC float64 `json:"best_lcmc"`
}

// Curves evaluates all three metrics for K in [minK, maxK), with the same
// defaults and validation as the range methods.
func (e *Evaluator) Curves(minK, maxK int) (Curves, error) {
	minK, maxK, err := e.ResolveRange(minK, maxK)
	if err != nil {
		return Curves{}, err
	}
	trust, err := e.TrustworthinessRange(minK, maxK)
	if err != nil {
		return Curves{}, err
	}
	cont, err := e.ContinuityRange(minK, maxK)
	if err != nil {
		return Curves{}, err
	}
	lcmc, err := e.LCMCRange(minK, maxK)
	if err != nil {
		return Curves{}, err
	}

	ks := make([]int, len(trust))
	for i := range ks {
		ks[i] = minK + i
	}

	c := Curves{Ks: ks, Trustworthiness: trust, Continuity: cont, LCMC: lcmc}
	if len(ks) > 0 {
		if c.Summary, err = summarize(ks, trust, cont, lcmc); err != nil {
			return Curves{}, err
		}
	}
	return c, nil
}

func summarize(ks []int, trust, cont, lcmc []float64) (CurveSummary, error) {
	var s CurveSummary
	var err error
	if s.MedianTrustworthiness, err = stats.Median(trust); err != nil {
		return s, err
	}
	if s.MedianContinuity, err = stats.Median(cont); err != nil {
		return s, err
	}
	if s.MedianLCMC, err = stats.Median(lcmc); err != nil {
		return s, err
	}

	best := floats.MaxIdx(lcmc)
	s.MeanTrustworthiness = stat.Mean(trust, nil)
	s.MeanContinuity = stat.Mean(cont, nil)
	s.MeanLCMC = stat.Mean(lcmc, nil)
	s.BestK = ks[best]
	s.BestLCMC = lcmc[best]
	return s, nil
}
