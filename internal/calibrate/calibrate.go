package calibrate

import (
	"math"

	"github.com/akvaristik/aquamon/internal/model"
)

// 12-bit ADC with a 3.3V reference, as wired on the reporting ESP32.
const (
	adcMax = 4095.0
	vRef   = 3.3
)

// Gravity TDS probe polynomial and meter scale factor.
const (
	tdsCubicA = 133.42
	tdsCubicB = 255.86
	tdsCubicC = 857.39
	tdsScale  = 0.5
)

// tdsCompRef is the reference temperature for TDS compensation, also used
// when the temperature probe is disconnected.
const tdsCompRef = 25.0

// Temp converts the wire temperature. The disconnected sentinel maps to an
// invalid Temperature; anything else is rounded to one decimal.
func Temp(raw float64) model.Temperature {
	if raw == model.DisconnectedTemp {
		return model.Temperature{}
	}
	return model.Temperature{Degrees: round1(raw), Valid: true}
}

// PH maps a raw ADC code onto the 0-14 scale. The probe circuit is
// inverting: code 0 reads as pH 14.
func PH(raw int) float64 {
	ph := 14 - (float64(raw)/adcMax)*14
	return clampFloat(round1(ph), 0, 14)
}

// TDS converts a raw ADC code to ppm, compensating for water temperature at
// 2% per °C around the 25° reference.
func TDS(raw int, water model.Temperature, c model.Calibration) int {
	voltage := float64(raw) / adcMax * vRef
	comp := tdsCompRef
	if water.Valid {
		comp = water.Degrees
	}
	k := 1.0 + 0.02*(comp-tdsCompRef)
	if k <= 0 {
		return 0
	}
	v := voltage / k
	tds := (tdsCubicA*v*v*v - tdsCubicB*v*v + tdsCubicC*v) * tdsScale
	if tds < 0 {
		tds = 0
	}
	if c.TDSClampMax > 0 && tds > float64(c.TDSClampMax) {
		tds = float64(c.TDSClampMax)
	}
	return int(tds)
}

// Turbidity maps probe voltage to NTU: a clean-water plateau above
// CleanVolts, a fouled-water plateau below FouledVolts, linear in between.
func Turbidity(raw int, c model.Calibration) int {
	voltage := float64(raw) / adcMax * vRef
	var ntu float64
	switch {
	case voltage >= c.TurbidityCleanVolts:
		ntu = 0
	case voltage <= c.TurbidityFouledVolts:
		ntu = float64(c.TurbidityMaxNTU)
	default:
		span := c.TurbidityCleanVolts - c.TurbidityFouledVolts
		ntu = float64(c.TurbidityMaxNTU) * (c.TurbidityCleanVolts - voltage) / span
	}
	return clampInt(int(ntu), 0, c.TurbidityMaxNTU)
}

// WaterLevel clamps the reported fill percentage to 0-100.
func WaterLevel(raw int) int {
	return clampInt(raw, 0, 100)
}

// Convert runs a full reading through every converter. TDS compensation uses
// the temperature from the same reading.
func Convert(r model.Reading, c model.Calibration) model.CalibratedSample {
	temp := Temp(r.Temp)
	return model.CalibratedSample{
		Temp:       temp,
		PH:         PH(r.PH),
		TDS:        TDS(r.TDS, temp, c),
		Turbidity:  Turbidity(r.Turbidity, c),
		WaterLevel: WaterLevel(r.WaterLevel),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
