package analytics

import (
	"math"

	"github.com/akvaristik/aquamon/internal/model"
)

// WQI penalty knees. The meter hard-codes these independently of the alert
// thresholds: the score starts degrading well before an alert fires.
const (
	wqiTDSCritical = 500
	wqiTDSIdeal    = 300
	wqiNTUCritical = 30
	wqiNTUIdeal    = 10
)

const (
	minStabilitySamples = 5
	minProjectionPoints = 10
	maxProjectionDays   = 365
	secondsPerDay       = 86400
)

// QualityIndex scores a sample 0-100 by subtracting independent penalties
// from a perfect 100. A pH of exactly 0 means the probe is not reporting
// and is skipped, as is temperature when the probe is disconnected.
func QualityIndex(s model.CalibratedSample, target float64) int {
	score := 100.0

	if s.PH > 0 {
		score -= math.Min(math.Abs(s.PH-7.0)*15, 30)
	}

	switch {
	case s.TDS > wqiTDSCritical:
		score -= 30
	case s.TDS > wqiTDSIdeal:
		score -= (float64(s.TDS-wqiTDSIdeal) / 200) * 20
	}

	switch {
	case s.Turbidity > wqiNTUCritical:
		score -= 25
	case s.Turbidity > wqiNTUIdeal:
		score -= (float64(s.Turbidity-wqiNTUIdeal) / 20) * 15
	}

	if s.Temp.Valid {
		dev := math.Abs(s.Temp.Degrees - target)
		switch {
		case dev > 2:
			score -= 15
		case dev > 1:
			score -= 5
		}
	}

	v := int(score)
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return v
}

// TempStability reports the sample standard deviation of the temperatures
// in history, rounded to two decimals, with a human classification. Entries
// from a disconnected probe do not count toward the five-sample minimum.
func TempStability(entries []model.HistoryEntry) (float64, string) {
	var temps []float64
	for _, e := range entries {
		if e.Temp.Valid {
			temps = append(temps, e.Temp.Degrees)
		}
	}
	if len(temps) < minStabilitySamples {
		return 0.0, "Insufficient data"
	}

	var mean float64
	for _, v := range temps {
		mean += v
	}
	mean /= float64(len(temps))

	var sumSq float64
	for _, v := range temps {
		d := v - mean
		sumSq += d * d
	}
	stdev := math.Sqrt(sumSq / float64(len(temps)-1))
	rounded := math.Round(stdev*100) / 100

	switch {
	case stdev < 0.3:
		return rounded, "Excellent stability"
	case stdev < 0.5:
		return rounded, "Good stability"
	case stdev < 1.0:
		return rounded, "Mild fluctuation"
	case stdev < 2.0:
		return rounded, "Elevated fluctuation"
	}
	return rounded, "Unstable temperature"
}

// MaintenanceProjection fits TDS against time over history and projects the
// day the configured limit is reached, counting from the current TDS value.
// The second return is false when there is no meaningful projection: too few
// points, flat or falling TDS, the limit already reached, or a horizon past
// a year.
func MaintenanceProjection(entries []model.HistoryEntry, currentTDS, limit int) (int, bool) {
	var xs, ys []float64
	for _, e := range entries {
		if e.TDS > 0 {
			xs = append(xs, float64(e.Timestamp))
			ys = append(ys, float64(e.TDS))
		}
	}
	if len(xs) < minProjectionPoints {
		return 0, false
	}

	// Shift the time axis to the first sample; the slope is unchanged and
	// the squared sums stay well inside float64 precision.
	x0 := xs[0]
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		x := xs[i] - x0
		sumX += x
		sumY += ys[i]
		sumXY += x * ys[i]
		sumXX += x * x
	}

	den := n*sumXX - sumX*sumX
	if den == 0 {
		return 0, false
	}
	slope := (n*sumXY - sumX*sumY) / den
	if slope <= 0 {
		return 0, false
	}
	if currentTDS >= limit {
		return 0, false
	}

	days := float64(limit-currentTDS) / slope / secondsPerDay
	if days > maxProjectionDays {
		return 0, false
	}
	if days < 1 {
		return 1, true
	}
	return int(days), true
}
