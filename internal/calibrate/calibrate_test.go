package calibrate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akvaristik/aquamon/internal/calibrate"
	"github.com/akvaristik/aquamon/internal/model"
)

func testCalibration() model.Calibration {
	return model.Calibration{
		TDSClampMax:          1000,
		TurbidityCleanVolts:  3.2,
		TurbidityFouledVolts: 1.0,
		TurbidityMaxNTU:      3000,
	}
}

func TestTempSentinel(t *testing.T) {
	temp := calibrate.Temp(model.DisconnectedTemp)
	assert.False(t, temp.Valid)
}

func TestTempRounding(t *testing.T) {
	temp := calibrate.Temp(23.456)
	assert.True(t, temp.Valid)
	assert.Equal(t, 23.5, temp.Degrees)
}

func TestPHKnownCodes(t *testing.T) {
	tests := []struct {
		name string
		raw  int
		want float64
	}{
		{"zero code reads alkaline rail", 0, 14.0},
		{"full code reads acidic rail", 4095, 0.0},
		{"two sevenths of range", 1170, 10.0},
		{"midpoint is neutral", 2048, 7.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calibrate.PH(tt.raw))
		})
	}
}

func TestConvertersStayInRange(t *testing.T) {
	cal := testCalibration()
	for raw := 0; raw <= 4095; raw++ {
		ph := calibrate.PH(raw)
		assert.GreaterOrEqual(t, ph, 0.0)
		assert.LessOrEqual(t, ph, 14.0)

		tds := calibrate.TDS(raw, model.Temperature{}, cal)
		assert.GreaterOrEqual(t, tds, 0)
		assert.LessOrEqual(t, tds, cal.TDSClampMax)

		ntu := calibrate.Turbidity(raw, cal)
		assert.GreaterOrEqual(t, ntu, 0)
		assert.LessOrEqual(t, ntu, cal.TurbidityMaxNTU)
	}
}

func TestTDSReferenceTemp(t *testing.T) {
	cal := testCalibration()

	// k = 1 at the 25° reference, so the polynomial applies unscaled.
	got := calibrate.TDS(1000, model.Temperature{Degrees: 25.0, Valid: true}, cal)
	assert.Equal(t, 297, got)

	// A disconnected probe falls back to the same reference.
	assert.Equal(t, got, calibrate.TDS(1000, model.Temperature{}, cal))
}

func TestTDSTemperatureCompensation(t *testing.T) {
	cal := testCalibration()
	atRef := calibrate.TDS(1000, model.Temperature{Degrees: 25.0, Valid: true}, cal)
	warm := calibrate.TDS(1000, model.Temperature{Degrees: 30.0, Valid: true}, cal)
	cold := calibrate.TDS(1000, model.Temperature{Degrees: 20.0, Valid: true}, cal)

	assert.Less(t, warm, atRef)
	assert.Greater(t, cold, atRef)
}

func TestTDSClamp(t *testing.T) {
	cal := testCalibration()
	assert.Equal(t, 1000, calibrate.TDS(4095, model.Temperature{}, cal))

	cal.TDSClampMax = 0
	assert.Equal(t, 2418, calibrate.TDS(4095, model.Temperature{}, cal))
}

func TestTurbidityPlateaus(t *testing.T) {
	cal := testCalibration()

	// 3972 codes ≈ 3.2009V, on the clean plateau.
	assert.Equal(t, 0, calibrate.Turbidity(3972, cal))
	assert.Equal(t, 0, calibrate.Turbidity(4095, cal))

	// 1240 codes ≈ 0.9993V, on the fouled plateau.
	assert.Equal(t, 3000, calibrate.Turbidity(1240, cal))
	assert.Equal(t, 3000, calibrate.Turbidity(0, cal))
}

func TestTurbidityLinearSegment(t *testing.T) {
	cal := testCalibration()
	got := calibrate.Turbidity(2607, cal)
	assert.Equal(t, 1498, got)
}

func TestWaterLevelClamp(t *testing.T) {
	assert.Equal(t, 0, calibrate.WaterLevel(-5))
	assert.Equal(t, 55, calibrate.WaterLevel(55))
	assert.Equal(t, 100, calibrate.WaterLevel(150))
}

func TestConvertUsesOwnTemperature(t *testing.T) {
	cal := testCalibration()
	r := model.DefaultReading()
	r.Temp = 30.0
	r.PH = 2048
	r.TDS = 1000
	r.Turbidity = 4095
	r.WaterLevel = 80

	sample := calibrate.Convert(r, cal)
	assert.True(t, sample.Temp.Valid)
	assert.Equal(t, 30.0, sample.Temp.Degrees)
	assert.Equal(t, 7.0, sample.PH)
	assert.Equal(t, calibrate.TDS(1000, sample.Temp, cal), sample.TDS)
	assert.NotEqual(t, calibrate.TDS(1000, model.Temperature{}, cal), sample.TDS)
	assert.Equal(t, 0, sample.Turbidity)
	assert.Equal(t, 80, sample.WaterLevel)
}
