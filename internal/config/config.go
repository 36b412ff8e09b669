package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/akvaristik/aquamon/internal/model"
)

type Config struct {
	ConfigFile string
	Port       int    `json:"port"`
	DBPath     string `json:"db_path"`
	LogLevel   zerolog.Level

	// Calibration profile. Probes get recalibrated and tanks differ, so
	// every threshold and curve breakpoint is configuration.
	Thresholds  model.Thresholds  `json:"thresholds"`
	Calibration model.Calibration `json:"calibration"`

	Hysteresis        float64 `json:"hysteresis"`
	DefaultTargetTemp float64 `json:"default_target_temp"`
	DefaultTankVolume int     `json:"default_tank_volume"`
	TargetTempMin     float64 `json:"target_temp_min"`
	TargetTempMax     float64 `json:"target_temp_max"`

	HistoryCapacity      int `json:"history_capacity"`
	HistorySampleSeconds int `json:"history_sample_seconds"`
	OfflineAfterSeconds  int `json:"offline_after_seconds"`

	EnableDatadog bool     `json:"enable_datadog"`
	DDAgentAddr   string   `json:"dd_agent_addr"`
	DDNamespace   string   `json:"dd_namespace"`
	DDTags        []string `json:"dd_tags"`
}

// DefaultConfig is the shipped calibration profile: gravity probes on a
// 12-bit ADC, tropical freshwater community tank.
func DefaultConfig() Config {
	return Config{
		Port:   8000,
		DBPath: "aquamon.db",
		Thresholds: model.Thresholds{
			PHMin:          6.0,
			PHMax:          8.2,
			TurbidityLimit: 30,
			TDSLimit:       500,
			WaterLevelMin:  40,
			AlarmTolerance: 1.5,
		},
		Calibration: model.Calibration{
			TDSClampMax:          1000,
			TurbidityCleanVolts:  3.2,
			TurbidityFouledVolts: 1.0,
			TurbidityMaxNTU:      3000,
		},
		Hysteresis:           0.5,
		DefaultTargetTemp:    24.0,
		DefaultTankVolume:    50,
		TargetTempMin:        0,
		TargetTempMax:        40,
		HistoryCapacity:      2000,
		HistorySampleSeconds: 60,
		OfflineAfterSeconds:  20,
		DDNamespace:          "aquamon.",
	}
}

func Load() *Config {
	cfg := DefaultConfig()
	var logLevel string

	flag.StringVar(&cfg.ConfigFile, "config-file", "config.json", "Path to server config file")
	flag.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Path to the settings database")
	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	cfg.LogLevel = parseLogLevel(logLevel)

	// Optional .env for local development.
	_ = godotenv.Load()

	file, err := os.Open(cfg.ConfigFile)
	if err == nil {
		defer file.Close()
		if err := json.NewDecoder(file).Decode(&cfg); err != nil {
			panic("Failed to parse config file: " + err.Error())
		}
	} else if !os.IsNotExist(err) {
		panic("Failed to load config file: " + err.Error())
	}

	if v := os.Getenv("AQUAMON_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			panic("Invalid AQUAMON_PORT: " + err.Error())
		}
		cfg.Port = port
	}
	if v := os.Getenv("AQUAMON_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("AQUAMON_DD_ADDR"); v != "" {
		cfg.DDAgentAddr = v
		cfg.EnableDatadog = true
	}

	cfg.validate()
	return &cfg
}

func parseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (cfg *Config) validate() {
	var problems []string

	if cfg.Port < 1 || cfg.Port > 65535 {
		problems = append(problems, fmt.Sprintf("port %d out of range", cfg.Port))
	}
	if cfg.Hysteresis < 0 {
		problems = append(problems, "hysteresis must not be negative")
	}
	if cfg.Thresholds.PHMin > cfg.Thresholds.PHMax {
		problems = append(problems, "ph_min exceeds ph_max")
	}
	if cfg.Thresholds.AlarmTolerance < 0 {
		problems = append(problems, "alarm_tolerance must not be negative")
	}
	if cfg.Calibration.TDSClampMax < 0 {
		problems = append(problems, "tds_clamp_max must not be negative")
	}
	if cfg.Calibration.TurbidityMaxNTU <= 0 {
		problems = append(problems, "turbidity_max_ntu must be positive")
	}
	if cfg.Calibration.TurbidityFouledVolts >= cfg.Calibration.TurbidityCleanVolts {
		problems = append(problems, "turbidity_fouled_volts must be below turbidity_clean_volts")
	}
	if cfg.DefaultTankVolume < 1 {
		problems = append(problems, "default_tank_volume must be at least 1")
	}
	if cfg.TargetTempMin >= cfg.TargetTempMax {
		problems = append(problems, "target_temp_min must be below target_temp_max")
	}
	if cfg.DefaultTargetTemp < cfg.TargetTempMin || cfg.DefaultTargetTemp > cfg.TargetTempMax {
		problems = append(problems, "default_target_temp outside target temperature bounds")
	}
	if cfg.HistoryCapacity <= 0 {
		problems = append(problems, "history_capacity must be positive")
	}
	if cfg.HistorySampleSeconds <= 0 {
		problems = append(problems, "history_sample_seconds must be positive")
	}
	if cfg.OfflineAfterSeconds <= 0 {
		problems = append(problems, "offline_after_seconds must be positive")
	}

	if len(problems) > 0 {
		panic("Invalid config: " + strings.Join(problems, ", "))
	}
}
