package advisor

import (
	"fmt"

	"github.com/akvaristik/aquamon/internal/model"
)

// Temperature margins around the target before remediation is suggested.
const (
	coldMargin = 1.0
	warmMargin = 2.0
)

// Dosage heuristics.
const (
	pollutedChangeRatio = 0.3  // fraction of volume to change when TDS is over limit
	cloudyChangeRatio   = 0.2  // fraction of volume to change when turbid
	sodaPerLiters       = 50.0 // one teaspoon of baking soda per 50 liters
)

// Advise maps a calibrated sample onto an ordered list of remediation
// recommendations. Conditions are independent; all that hold are emitted,
// in fixed priority order. A sample with nothing wrong yields exactly one
// ok entry.
func Advise(s model.CalibratedSample, settings model.Settings, th model.Thresholds) []model.Advice {
	var advice []model.Advice
	volume := settings.TankVolume

	if s.TDS > th.TDSLimit {
		change := float64(volume) * pollutedChangeRatio
		advice = append(advice, model.Advice{
			Text:     fmt.Sprintf("Water is polluted. Change %.0f l right away and review feeding amounts.", change),
			Severity: model.SeverityDanger,
		})
	}
	if s.Turbidity > th.TurbidityLimit {
		change := float64(volume) * cloudyChangeRatio
		advice = append(advice, model.Advice{
			Text:     fmt.Sprintf("Water is cloudy. Clean the filter, vacuum the substrate and change about %.0f l of water.", change),
			Severity: model.SeverityWarning,
		})
	}
	if s.PH < th.PHMin && s.PH > 0 {
		soda := float64(volume) / sodaPerLiters
		advice = append(advice, model.Advice{
			Text:     fmt.Sprintf("Water is too acidic. Add %.1f teaspoons of baking soda or a pH+ preparation.", soda),
			Severity: model.SeverityWarning,
		})
	}
	if s.PH > th.PHMax {
		advice = append(advice, model.Advice{
			Text:     "Water is too alkaline. Add a pH- preparation or filter over peat.",
			Severity: model.SeverityWarning,
		})
	}
	if s.Temp.Valid && s.Temp.Degrees < settings.TargetTemp-coldMargin {
		advice = append(advice, model.Advice{
			Text:     fmt.Sprintf("Water is cold. Check the heater; a %d l tank needs roughly %d W.", volume, volume),
			Severity: model.SeverityWarning,
		})
	}
	if s.Temp.Valid && s.Temp.Degrees > settings.TargetTemp+warmMargin {
		advice = append(advice, model.Advice{
			Text:     "Water is too warm. Switch the heater off and aerate, or float a bottle of cold water.",
			Severity: model.SeverityWarning,
		})
	}
	if s.WaterLevel < th.WaterLevelMin {
		advice = append(advice, model.Advice{
			Text:     "Water level is low. Top up the evaporated water, ideally dechlorinated.",
			Severity: model.SeverityWarning,
		})
	}

	if len(advice) == 0 {
		advice = append(advice, model.Advice{
			Text:     "Water is in great shape. Keep it up!",
			Severity: model.SeverityOK,
		})
	}
	return advice
}
