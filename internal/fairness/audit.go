package fairness

import (
	"errors"
	"fmt"
	"math"

	"github.com/yungbote/materna-backend/internal/cohort"
	"github.com/yungbote/materna-backend/internal/features"
)

// ErrEmptySubgroup marks a partition with zero matching records. The accuracy
// of an empty partition is undefined, and surfacing it as a number would be
// indistinguishable from a real 0% or 100% score.
var ErrEmptySubgroup = errors.New("fairness: subgroup has no matching records")

// Scorer is the slice of the classifier the auditor needs.
type Scorer interface {
	PredictLabel(feats []float64) (int, error)
}

// AuditSubgroup scores every record matching the predicate and returns the
// accuracy as a percentage. At least one record must match.
func AuditSubgroup(m Scorer, records []cohort.PatientRecord, match Predicate) (float64, error) {
	matched, correct, err := scoreSubgroup(m, records, match)
	if err != nil {
		return 0, err
	}
	if matched == 0 {
		return 0, ErrEmptySubgroup
	}
	return 100 * float64(correct) / float64(matched), nil
}

func scoreSubgroup(m Scorer, records []cohort.PatientRecord, match Predicate) (matched, correct int, err error) {
	for _, r := range records {
		if !match(r) {
			continue
		}
		matched++
		label, err := m.PredictLabel(features.Encode(r))
		if err != nil {
			return 0, 0, fmt.Errorf("fairness: score record %d: %w", r.ID, err)
		}
		truth := 0
		if r.Readmitted {
			truth = 1
		}
		if label == truth {
			correct++
		}
	}
	return matched, correct, nil
}

// GroupResult is one subgroup's score. NoData marks a degenerate partition;
// Accuracy is meaningful only when NoData is false.
type GroupResult struct {
	Name     string  `json:"name"`
	Matched  int     `json:"matched"`
	Accuracy float64 `json:"accuracy,omitempty"`
	NoData   bool    `json:"no_data,omitempty"`
}

// AxisResult compares the two groups of one axis. GapKnown is false when
// either side is degenerate.
type AxisResult struct {
	Name      string         `json:"name"`
	Groups    [2]GroupResult `json:"groups"`
	GapPoints float64        `json:"gap_points"`
	GapKnown  bool           `json:"gap_known"`
	Biased    bool           `json:"biased"`
}

// Report is the full audit outcome. It is recomputed from the live model and
// cohort on every call and never cached across retrains.
type Report struct {
	ThresholdPoints float64      `json:"threshold_points"`
	Axes            []AxisResult `json:"axes"`
	Biased          bool         `json:"biased"`
}

// Audit partitions the cohort along every policy axis, scores each subgroup,
// and raises the bias flag when any known gap exceeds the threshold.
func Audit(m Scorer, records []cohort.PatientRecord, policy Policy) (Report, error) {
	report := Report{ThresholdPoints: policy.ThresholdPoints}
	for _, axis := range policy.Axes {
		if len(axis.Groups) != 2 {
			return Report{}, fmt.Errorf("fairness: axis %q must define exactly 2 groups, has %d", axis.Name, len(axis.Groups))
		}
		ar := AxisResult{Name: axis.Name}
		for i, g := range axis.Groups {
			pred, err := predicateFor(g)
			if err != nil {
				return Report{}, err
			}
			matched, correct, err := scoreSubgroup(m, records, pred)
			if err != nil {
				return Report{}, err
			}
			gr := GroupResult{Name: g.Name, Matched: matched}
			if matched == 0 {
				gr.NoData = true
			} else {
				gr.Accuracy = 100 * float64(correct) / float64(matched)
			}
			ar.Groups[i] = gr
		}
		if !ar.Groups[0].NoData && !ar.Groups[1].NoData {
			ar.GapPoints = math.Abs(ar.Groups[0].Accuracy - ar.Groups[1].Accuracy)
			ar.GapKnown = true
			ar.Biased = ar.GapPoints > policy.ThresholdPoints
		}
		if ar.Biased {
			report.Biased = true
		}
		report.Axes = append(report.Axes, ar)
	}
	return report, nil
}
