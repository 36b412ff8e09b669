package model

import "time"

type Severity string

const (
	SeverityOK      Severity = "ok"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Dashboard status values.
const (
	StatusWaiting = "Waiting for data"
	StatusOnline  = "Online"
	StatusOffline = "Offline"
)

// DisconnectedTemp is the wire sentinel the device reports when its
// temperature probe is unreachable.
const DisconnectedTemp = -127.0

// Reading is one raw ingest payload. All analog fields carry ADC codes,
// not physical units.
type Reading struct {
	Temp        float64 `json:"temp"`
	PH          int     `json:"ph"`
	TDS         int     `json:"tds"`
	Turbidity   int     `json:"turbidity"`
	WaterLevel  int     `json:"water_level"`
	PumpState   bool    `json:"pump_state"`
	HeaterState bool    `json:"heater_state"`
	DeviceName  string  `json:"device_name"`
}

// DefaultReading returns a Reading with per-field defaults. Decoding a
// request body over it leaves absent fields at their defaults.
func DefaultReading() Reading {
	return Reading{
		Temp:       DisconnectedTemp,
		PumpState:  true,
		DeviceName: "ESP32",
	}
}

// Temperature is a calibrated water temperature in °C. Valid is false when
// the probe reported the disconnected sentinel; consumers must branch on
// Valid rather than compare against a magic value.
type Temperature struct {
	Degrees float64 `json:"degrees"`
	Valid   bool    `json:"valid"`
}

type CalibratedSample struct {
	Temp       Temperature `json:"temp"`
	PH         float64     `json:"ph"`
	TDS        int         `json:"tds"`
	Turbidity  int         `json:"turbidity"`
	WaterLevel int         `json:"water_level"`
}

type Settings struct {
	TargetTemp float64 `json:"target_temp"`
	TankVolume int     `json:"tank_volume"`
}

type Alerts struct {
	Temp       bool `json:"temp_alert"`
	PH         bool `json:"ph_alert"`
	Turbidity  bool `json:"turbidity_alert"`
	TDS        bool `json:"tds_alert"`
	WaterLevel bool `json:"water_level_alert"`
	Global     bool `json:"global_alert"`
}

type Advice struct {
	Text     string   `json:"text"`
	Severity Severity `json:"type"`
}

type HistoryEntry struct {
	Timestamp int64       `json:"timestamp"`
	Temp      Temperature `json:"temp"`
	TDS       int         `json:"tds"`
	Turbidity int         `json:"ntu"`
	PH        float64     `json:"ph"`
}

// Snapshot is the complete dashboard state. It is built whole on every
// ingest and swapped in atomically; readers never see a partial update.
type Snapshot struct {
	Sample            CalibratedSample `json:"sample"`
	Settings          Settings         `json:"settings"`
	Alerts            Alerts           `json:"alerts"`
	Advice            []Advice         `json:"advice"`
	WQI               int              `json:"wqi"`
	TempStability     float64          `json:"temp_stability"`
	TempStabilityText string           `json:"temp_stability_text"`
	TDSPredictionDays *int             `json:"tds_prediction_days"`
	PumpState         bool             `json:"pump_state"`
	HeaterState       bool             `json:"heater_state"`
	HeaterCmd         bool             `json:"heater_cmd"`
	DeviceName        string           `json:"device_name"`
	Status            string           `json:"status"`
	LastUpdate        string           `json:"last_update"`
	LastSeen          time.Time        `json:"last_seen"`
	HistoryCount      int              `json:"history_count"`
}

// Thresholds is the alert half of the calibration profile. Values are
// deployment configuration, not universal constants; config.DefaultConfig
// documents the profile this build ships with.
type Thresholds struct {
	PHMin          float64 `json:"ph_min"`
	PHMax          float64 `json:"ph_max"`
	TurbidityLimit int     `json:"turbidity_limit"`
	TDSLimit       int     `json:"tds_limit"`
	WaterLevelMin  int     `json:"water_level_min"`
	AlarmTolerance float64 `json:"alarm_tolerance"`
}

// Calibration holds the probe conversion profile. TDSClampMax of 0 disables
// the upper TDS clamp.
type Calibration struct {
	TDSClampMax          int     `json:"tds_clamp_max"`
	TurbidityCleanVolts  float64 `json:"turbidity_clean_volts"`
	TurbidityFouledVolts float64 `json:"turbidity_fouled_volts"`
	TurbidityMaxNTU      int     `json:"turbidity_max_ntu"`
}
