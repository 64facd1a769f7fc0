package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"streambot/domain/entities"
	"streambot/domain/interfaces"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// DebugResponse represents the response from a debug endpoint
type DebugResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// DebugAPI exposes read-only bot state on localhost
type DebugAPI struct {
	duels  interfaces.DuelManager
	ledger interfaces.PointsLedger
	modes  interfaces.ModeProvider
	server *http.Server
}

// NewDebugAPI creates the debug API
func NewDebugAPI(duels interfaces.DuelManager, ledger interfaces.PointsLedger, modes interfaces.ModeProvider) *DebugAPI {
	return &DebugAPI{
		duels:  duels,
		ledger: ledger,
		modes:  modes,
	}
}

// Router returns the routes served by the debug API
func (d *DebugAPI) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/debug/duels", d.handleDuels).Methods(http.MethodGet)
	r.HandleFunc("/debug/points/{discordID}", d.handlePoints).Methods(http.MethodGet)
	r.HandleFunc("/debug/mode", d.handleMode).Methods(http.MethodGet)

	return r
}

// Start serves the debug API on 127.0.0.1:port in the background
func (d *DebugAPI) Start(port int) error {
	if port <= 0 {
		return fmt.Errorf("invalid debug port %d", port)
	}

	d.server = &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", port),
		Handler:      d.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Debug API listening on %s", d.server.Addr)
		if err := d.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Debug API server error: %v", err)
		}
	}()
	return nil
}

// Shutdown stops the server started by Start
func (d *DebugAPI) Shutdown(ctx context.Context) error {
	if d.server == nil {
		return nil
	}
	return d.server.Shutdown(ctx)
}

func (d *DebugAPI) handleDuels(w http.ResponseWriter, r *http.Request) {
	duels := d.duels.ActiveDuels()
	if duels == nil {
		duels = []*entities.Duel{}
	}
	respondWithData(w, duels)
}

func (d *DebugAPI) handlePoints(w http.ResponseWriter, r *http.Request) {
	discordID := mux.Vars(r)["discordID"]
	respondWithData(w, d.ledger.GetAccount(r.Context(), discordID))
}

func (d *DebugAPI) handleMode(w http.ResponseWriter, r *http.Request) {
	respondWithData(w, map[string]entities.ConnectionMode{"mode": d.modes.Mode()})
}

func respondWithData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(DebugResponse{Success: true, Data: data}); err != nil {
		log.Errorf("Failed to encode debug response: %v", err)
	}
}
