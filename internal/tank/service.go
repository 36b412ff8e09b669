package tank

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/akvaristik/aquamon/internal/advisor"
	"github.com/akvaristik/aquamon/internal/analytics"
	"github.com/akvaristik/aquamon/internal/calibrate"
	"github.com/akvaristik/aquamon/internal/config"
	"github.com/akvaristik/aquamon/internal/datadog"
	"github.com/akvaristik/aquamon/internal/health"
	"github.com/akvaristik/aquamon/internal/history"
	"github.com/akvaristik/aquamon/internal/model"
	"github.com/akvaristik/aquamon/internal/thermostat"
)

// Settings store keys.
const (
	keyTargetTemp = "target_temp"
	keyTankVolume = "tank_volume"
)

const lastUpdateFormat = "15:04:05"

// SettingsStore persists user settings across restarts. A nil store is
// valid; settings then live only in memory.
type SettingsStore interface {
	Get(key, fallback string) string
	Set(key, value string) error
}

// Service owns all mutable tank state. Handlers hold a reference to it and
// go through its methods; nothing reads or writes this state directly.
type Service struct {
	mutex sync.RWMutex
	cfg   *config.Config
	store SettingsStore

	settings  model.Settings
	heaterCmd bool
	history   *history.Buffer
	snapshot  model.Snapshot
}

func New(cfg *config.Config, store SettingsStore) *Service {
	s := &Service{
		cfg:   cfg,
		store: store,
		settings: model.Settings{
			TargetTemp: cfg.DefaultTargetTemp,
			TankVolume: cfg.DefaultTankVolume,
		},
		history: history.New(cfg.HistoryCapacity, time.Duration(cfg.HistorySampleSeconds)*time.Second),
	}
	s.loadSettings()

	_, stabilityText := analytics.TempStability(nil)
	s.snapshot = model.Snapshot{
		Settings:          s.settings,
		Advice:            []model.Advice{},
		TempStabilityText: stabilityText,
		PumpState:         true,
		DeviceName:        "Unknown",
		Status:            model.StatusWaiting,
		LastUpdate:        "Never",
	}
	return s
}

func (s *Service) loadSettings() {
	if s.store == nil {
		log.Warn().Msg("No settings store; settings will not survive restarts")
		return
	}

	if raw := s.store.Get(keyTargetTemp, ""); raw != "" {
		target, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Warn().Err(err).Str("value", raw).Msg("Ignoring malformed stored target temperature")
		} else {
			s.settings.TargetTemp = target
		}
	}
	if raw := s.store.Get(keyTankVolume, ""); raw != "" {
		volume, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn().Err(err).Str("value", raw).Msg("Ignoring malformed stored tank volume")
		} else {
			s.settings.TankVolume = volume
		}
	}

	log.Info().
		Float64("target_temp", s.settings.TargetTemp).
		Int("tank_volume", s.settings.TankVolume).
		Msg("Settings loaded")
}

// Ingest applies one device reading: calibrates it, steps the thermostat,
// samples it into history and rebuilds the dashboard snapshot. The returned
// snapshot carries the heater command for the device.
func (s *Service) Ingest(r model.Reading, now time.Time) model.Snapshot {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sample := calibrate.Convert(r, s.cfg.Calibration)
	s.heaterCmd = thermostat.Next(s.heaterCmd, sample.Temp, s.settings.TargetTemp, s.cfg.Hysteresis)

	s.history.Add(model.HistoryEntry{
		Timestamp: now.Unix(),
		Temp:      sample.Temp,
		TDS:       sample.TDS,
		Turbidity: sample.Turbidity,
		PH:        sample.PH,
	}, now)
	entries := s.history.Entries()

	snap := model.Snapshot{
		Sample:            sample,
		Settings:          s.settings,
		Alerts:            health.Evaluate(sample, s.settings.TargetTemp, s.cfg.Thresholds),
		Advice:            advisor.Advise(sample, s.settings, s.cfg.Thresholds),
		WQI:               analytics.QualityIndex(sample, s.settings.TargetTemp),
		PumpState:         r.PumpState,
		HeaterState:       r.HeaterState,
		HeaterCmd:         s.heaterCmd,
		DeviceName:        r.DeviceName,
		Status:            model.StatusOnline,
		LastUpdate:        now.Format(lastUpdateFormat),
		LastSeen:          now,
		HistoryCount:      s.history.Len(),
	}
	snap.TempStability, snap.TempStabilityText = analytics.TempStability(entries)
	if days, ok := analytics.MaintenanceProjection(entries, sample.TDS, s.cfg.Thresholds.TDSLimit); ok {
		snap.TDSPredictionDays = &days
	}
	s.snapshot = snap

	s.emitMetrics(snap)

	log.Debug().
		Float64("raw_temp", r.Temp).
		Int("raw_ph", r.PH).
		Int("raw_tds", r.TDS).
		Int("raw_turbidity", r.Turbidity).
		Int("raw_water_level", r.WaterLevel).
		Msg("Raw sensor codes")
	logReading(snap)

	return snap
}

// UpdateSettings applies a partial settings change. Validation happens
// before any state mutates; on error the previous settings stand untouched.
// Alerts and advice are recomputed against the current sample, analytics
// are not, they only move on ingest.
func (s *Service) UpdateSettings(targetTemp *float64, tankVolume *int) (model.Snapshot, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if targetTemp != nil {
		if *targetTemp < s.cfg.TargetTempMin || *targetTemp > s.cfg.TargetTempMax {
			return s.snapshot, fmt.Errorf("target temperature %.1f outside allowed range %.1f to %.1f",
				*targetTemp, s.cfg.TargetTempMin, s.cfg.TargetTempMax)
		}
	}

	if targetTemp != nil {
		s.settings.TargetTemp = *targetTemp
		s.persist(keyTargetTemp, strconv.FormatFloat(*targetTemp, 'f', -1, 64))
		log.Info().Float64("target_temp", *targetTemp).Msg("Target temperature updated")
	}
	if tankVolume != nil {
		volume := *tankVolume
		if volume < 1 {
			volume = 1
		}
		s.settings.TankVolume = volume
		s.persist(keyTankVolume, strconv.Itoa(volume))
		log.Info().Int("tank_volume", volume).Msg("Tank volume updated")
	}

	snap := s.snapshot
	snap.Settings = s.settings
	snap.Alerts = health.Evaluate(snap.Sample, s.settings.TargetTemp, s.cfg.Thresholds)
	snap.Advice = advisor.Advise(snap.Sample, s.settings, s.cfg.Thresholds)
	s.snapshot = snap

	return snap, nil
}

// SettingsView returns the current settings and heater command.
func (s *Service) SettingsView() (model.Settings, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.settings, s.heaterCmd
}

// View returns the dashboard snapshot with the offline rule applied.
// Staleness is a property of read time, so the stored status is never
// rewritten; before the first ingest the boot placeholder stands.
func (s *Service) View(now time.Time) model.Snapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	snap := s.snapshot
	if snap.LastSeen.IsZero() {
		return snap
	}
	if now.Sub(snap.LastSeen) > time.Duration(s.cfg.OfflineAfterSeconds)*time.Second {
		snap.Status = model.StatusOffline
	} else {
		snap.Status = model.StatusOnline
	}
	return snap
}

func (s *Service) persist(key, value string) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(key, value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to persist setting")
	}
}

func (s *Service) emitMetrics(snap model.Snapshot) {
	deviceTag := fmt.Sprintf("device:%s", snap.DeviceName)

	if snap.Sample.Temp.Valid {
		datadog.Gauge("tank.temperature", snap.Sample.Temp.Degrees, "component:probe", deviceTag)
	}
	datadog.Gauge("tank.ph", snap.Sample.PH, "component:probe", deviceTag)
	datadog.Gauge("tank.tds", float64(snap.Sample.TDS), "component:probe", deviceTag)
	datadog.Gauge("tank.turbidity", float64(snap.Sample.Turbidity), "component:probe", deviceTag)
	datadog.Gauge("tank.water_level", float64(snap.Sample.WaterLevel), "component:probe", deviceTag)
	datadog.Gauge("tank.quality_index", float64(snap.WQI), "component:analytics", deviceTag)
	datadog.Count("tank.ingest", 1, deviceTag)
}

func logReading(snap model.Snapshot) {
	evt := log.Info().
		Float64("ph", snap.Sample.PH).
		Int("tds", snap.Sample.TDS).
		Int("turbidity", snap.Sample.Turbidity).
		Int("water_level", snap.Sample.WaterLevel).
		Float64("target_temp", snap.Settings.TargetTemp).
		Bool("heater_cmd", snap.HeaterCmd).
		Str("device", snap.DeviceName)
	if snap.Sample.Temp.Valid {
		evt = evt.Float64("temp", snap.Sample.Temp.Degrees)
	} else {
		evt = evt.Bool("temp_probe_disconnected", true)
	}
	evt.Msg("Reading ingested")
}
