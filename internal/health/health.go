package health

import (
	"math"

	"github.com/akvaristik/aquamon/internal/model"
)

// Evaluate maps a calibrated sample onto the alert booleans. A disconnected
// temperature probe always raises the temperature alert.
func Evaluate(s model.CalibratedSample, target float64, th model.Thresholds) model.Alerts {
	tempAlert := true
	if s.Temp.Valid {
		tempAlert = math.Abs(s.Temp.Degrees-target) > th.AlarmTolerance
	}

	a := model.Alerts{
		Temp:       tempAlert,
		PH:         s.PH < th.PHMin || s.PH > th.PHMax,
		Turbidity:  s.Turbidity > th.TurbidityLimit,
		TDS:        s.TDS > th.TDSLimit,
		WaterLevel: s.WaterLevel < th.WaterLevelMin,
	}
	a.Global = a.Temp || a.PH || a.Turbidity || a.TDS || a.WaterLevel
	return a
}
