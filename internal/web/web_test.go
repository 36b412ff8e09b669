package web_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akvaristik/aquamon/internal/model"
	"github.com/akvaristik/aquamon/internal/web"
)

func onlineSnapshot() model.Snapshot {
	days := 12
	return model.Snapshot{
		Sample: model.CalibratedSample{
			Temp:       model.Temperature{Degrees: 24.6, Valid: true},
			PH:         7.2,
			TDS:        310,
			Turbidity:  12,
			WaterLevel: 85,
		},
		Settings:          model.Settings{TargetTemp: 24.5, TankVolume: 60},
		Alerts:            model.Alerts{TDS: true, Global: true},
		Advice:            []model.Advice{{Text: "Water is in great shape. Keep it up!", Severity: model.SeverityOK}},
		WQI:               91,
		TempStability:     0.12,
		TempStabilityText: "Excellent stability",
		TDSPredictionDays: &days,
		PumpState:         true,
		HeaterState:       false,
		HeaterCmd:         true,
		DeviceName:        "ESP32",
		Status:            model.StatusOnline,
		LastUpdate:        "12:30:00",
		HistoryCount:      42,
	}
}

func TestNewDashboardViewFormatsReadings(t *testing.T) {
	view := web.NewDashboardView(onlineSnapshot())

	assert.Equal(t, "online", view.StatusClass)
	require.Len(t, view.Sensors, 5)
	assert.Equal(t, "24.6 °C", view.Sensors[0].Value)
	assert.Equal(t, "7.2", view.Sensors[1].Value)
	assert.Equal(t, "310 ppm", view.Sensors[2].Value)
	assert.True(t, view.Sensors[2].Alert)
	assert.Equal(t, "12 NTU", view.Sensors[3].Value)
	assert.Equal(t, "85 %", view.Sensors[4].Value)

	assert.Equal(t, "Running", view.PumpState)
	assert.Equal(t, "Off", view.HeaterState)
	assert.Equal(t, "Heat", view.HeaterCmd)
	assert.Equal(t, "24.5 °C", view.TargetTemp)
	assert.Equal(t, "60 l", view.TankVolume)
	assert.Equal(t, "ok", view.WQIClass)
	assert.Equal(t, "±0.12 °C", view.StabilityValue)
	assert.Equal(t, "12 days", view.Prediction)

	require.Len(t, view.Advice, 1)
	assert.Equal(t, "ok", view.Advice[0].Tone)
}

func TestNewDashboardViewPlaceholders(t *testing.T) {
	view := web.NewDashboardView(model.Snapshot{Status: model.StatusWaiting})

	assert.Equal(t, "waiting", view.StatusClass)
	assert.Equal(t, "Probe disconnected", view.Sensors[0].Value)
	assert.Equal(t, "No trend yet", view.Prediction)
	assert.Equal(t, "danger", view.WQIClass)
}

func TestPredictionSingular(t *testing.T) {
	day := 1
	snap := onlineSnapshot()
	snap.TDSPredictionDays = &day

	view := web.NewDashboardView(snap)
	assert.Equal(t, "1 day", view.Prediction)
}

func TestRenderDashboard(t *testing.T) {
	var buf bytes.Buffer
	err := web.RenderDashboard(&buf, web.NewDashboardView(onlineSnapshot()))
	require.NoError(t, err)

	body := buf.String()
	assert.Contains(t, body, "AquaMon")
	assert.Contains(t, body, "Online")
	assert.Contains(t, body, "24.6 °C")
	assert.Contains(t, body, "310 ppm")
	assert.Contains(t, body, "at least one reading is outside its safe range")
	assert.Contains(t, body, "Water is in great shape. Keep it up!")
	assert.Contains(t, body, "12 days")
}
