package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"cid/internal/services"
)

type HealthController struct {
	service   services.IntegrityServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status             string  `json:"status"`
	Uptime             string  `json:"uptime"`
	UptimeSeconds      float64 `json:"uptime_seconds"`
	ProfilesTracked    int     `json:"profiles_tracked"`
	SnapshotsBuilt     int64   `json:"snapshots_built"`
	ComparisonsRun     int64   `json:"comparisons_run"`
	DiscrepanciesFound int64   `json:"discrepancies_found"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:             "ok",
		Uptime:             formatDuration(uptime),
		UptimeSeconds:      uptime.Seconds(),
		ProfilesTracked:    hc.service.TrackedProfiles(),
		SnapshotsBuilt:     hc.service.SnapshotsBuilt(),
		ComparisonsRun:     hc.service.ComparisonsRun(),
		DiscrepanciesFound: hc.service.DiscrepanciesFound(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.IntegrityServiceInterface) *HealthController {
	return &HealthController{
		service:   service,
		startTime: time.Now(),
	}
}
