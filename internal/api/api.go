package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/akvaristik/aquamon/internal/config"
	"github.com/akvaristik/aquamon/internal/model"
	"github.com/akvaristik/aquamon/internal/tank"
	"github.com/akvaristik/aquamon/internal/web"
)

type Server struct {
	tank   *tank.Service
	config *config.Config
}

type IngestResponse struct {
	Message   string `json:"message"`
	HeaterCmd bool   `json:"heater_cmd"`
}

type SettingsResponse struct {
	TargetTemp float64 `json:"target_temp"`
	TankVolume int     `json:"tank_volume"`
	HeaterCmd  bool    `json:"heater_cmd"`
}

type UpdateSettingsRequest struct {
	TargetTemp *float64 `json:"target_temp"`
	TankVolume *int     `json:"tank_volume"`
}

type UpdateSettingsResponse struct {
	Status     string  `json:"status"`
	TargetTemp float64 `json:"target_temp"`
	TankVolume int     `json:"tank_volume"`
	HeaterCmd  bool    `json:"heater_cmd"`
}

// SetTargetResponse mirrors the key names the first firmware generation
// expects from /set_target.
type SetTargetResponse struct {
	Status    string  `json:"status"`
	Target    float64 `json:"target"`
	Volume    int     `json:"volume"`
	HeaterCmd bool    `json:"heater_cmd"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func NewServer(tankService *tank.Service, cfg *config.Config) *Server {
	return &Server{
		tank:   tankService,
		config: cfg,
	}
}

// Handler assembles the route table and middleware stack.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/api/data", s.handleIngest).Methods(http.MethodPost)
	r.HandleFunc("/api/settings", s.handleGetSettings).Methods(http.MethodGet)
	r.HandleFunc("/api/settings", s.handleUpdateSettings).Methods(http.MethodPost)
	r.HandleFunc("/set_target", s.handleSetTarget).Methods(http.MethodPost)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return handlers.RecoveryHandler()(cors(r))
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the listener fails.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", s.config.Port),
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", srv.Addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// handleIngest accepts a sensor payload from the device. Absent or
// malformed fields fall back to per-field defaults; the device is never
// refused.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	reading := model.DefaultReading()
	if err := json.NewDecoder(r.Body).Decode(&reading); err != nil {
		log.Warn().Err(err).Msg("Malformed ingest payload, continuing with defaults")
		reading = model.DefaultReading()
	}

	snap := s.tank.Ingest(reading, time.Now())

	s.writeJSON(w, http.StatusOK, IngestResponse{
		Message:   "Data saved",
		HeaterCmd: snap.HeaterCmd,
	})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, heaterCmd := s.tank.SettingsView()
	s.writeJSON(w, http.StatusOK, SettingsResponse{
		TargetTemp: settings.TargetTemp,
		TankVolume: settings.TankVolume,
		HeaterCmd:  heaterCmd,
	})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	snap, err := s.tank.UpdateSettings(req.TargetTemp, req.TankVolume)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, UpdateSettingsResponse{
		Status:     "ok",
		TargetTemp: snap.Settings.TargetTemp,
		TankVolume: snap.Settings.TankVolume,
		HeaterCmd:  snap.HeaterCmd,
	})
}

func (s *Server) handleSetTarget(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	snap, err := s.tank.UpdateSettings(req.TargetTemp, req.TankVolume)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, SetTargetResponse{
		Status:    "ok",
		Target:    snap.Settings.TargetTemp,
		Volume:    snap.Settings.TankVolume,
		HeaterCmd: snap.HeaterCmd,
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view := web.NewDashboardView(s.tank.View(time.Now()))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.RenderDashboard(w, view); err != nil {
		log.Error().Err(err).Msg("Failed to render dashboard")
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Status: "error", Message: message})
}
