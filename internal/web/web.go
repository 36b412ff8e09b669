package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/akvaristik/aquamon/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboard = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// SensorRow is one measurement line on the dashboard.
type SensorRow struct {
	Label string
	Value string
	Alert bool
}

// AdviceRow carries one recommendation; Tone doubles as the CSS class.
type AdviceRow struct {
	Text string
	Tone string
}

type DashboardView struct {
	Status         string
	StatusClass    string
	GlobalAlert    bool
	LastUpdate     string
	DeviceName     string
	Sensors        []SensorRow
	PumpState      string
	HeaterState    string
	HeaterCmd      string
	TargetTemp     string
	TankVolume     string
	WQI            int
	WQIClass       string
	StabilityText  string
	StabilityValue string
	Prediction     string
	HistoryCount   int
	Advice         []AdviceRow
}

// NewDashboardView flattens a snapshot into display strings so the template
// stays free of formatting logic.
func NewDashboardView(snap model.Snapshot) DashboardView {
	temp := "Probe disconnected"
	if snap.Sample.Temp.Valid {
		temp = fmt.Sprintf("%.1f °C", snap.Sample.Temp.Degrees)
	}

	view := DashboardView{
		Status:      snap.Status,
		StatusClass: statusClass(snap.Status),
		GlobalAlert: snap.Alerts.Global,
		LastUpdate:  snap.LastUpdate,
		DeviceName:  snap.DeviceName,
		Sensors: []SensorRow{
			{Label: "Temperature", Value: temp, Alert: snap.Alerts.Temp},
			{Label: "pH", Value: fmt.Sprintf("%.1f", snap.Sample.PH), Alert: snap.Alerts.PH},
			{Label: "TDS", Value: fmt.Sprintf("%d ppm", snap.Sample.TDS), Alert: snap.Alerts.TDS},
			{Label: "Turbidity", Value: fmt.Sprintf("%d NTU", snap.Sample.Turbidity), Alert: snap.Alerts.Turbidity},
			{Label: "Water level", Value: fmt.Sprintf("%d %%", snap.Sample.WaterLevel), Alert: snap.Alerts.WaterLevel},
		},
		PumpState:      pick(snap.PumpState, "Running", "Stopped"),
		HeaterState:    pick(snap.HeaterState, "On", "Off"),
		HeaterCmd:      pick(snap.HeaterCmd, "Heat", "Idle"),
		TargetTemp:     fmt.Sprintf("%.1f °C", snap.Settings.TargetTemp),
		TankVolume:     fmt.Sprintf("%d l", snap.Settings.TankVolume),
		WQI:            snap.WQI,
		WQIClass:       wqiClass(snap.WQI),
		StabilityText:  snap.TempStabilityText,
		StabilityValue: fmt.Sprintf("±%.2f °C", snap.TempStability),
		Prediction:     predictionText(snap.TDSPredictionDays),
		HistoryCount:   snap.HistoryCount,
	}

	for _, a := range snap.Advice {
		view.Advice = append(view.Advice, AdviceRow{Text: a.Text, Tone: string(a.Severity)})
	}
	return view
}

// RenderDashboard writes the dashboard page for the given view.
func RenderDashboard(w io.Writer, view DashboardView) error {
	return dashboard.ExecuteTemplate(w, "index.html", view)
}

func pick(v bool, on, off string) string {
	if v {
		return on
	}
	return off
}

func statusClass(status string) string {
	switch status {
	case model.StatusOnline:
		return "online"
	case model.StatusOffline:
		return "offline"
	default:
		return "waiting"
	}
}

func wqiClass(wqi int) string {
	switch {
	case wqi >= 80:
		return "ok"
	case wqi >= 50:
		return "warning"
	default:
		return "danger"
	}
}

func predictionText(days *int) string {
	if days == nil {
		return "No trend yet"
	}
	if *days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", *days)
}
