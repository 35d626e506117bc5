package controllers

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"cid/internal/device"
	"cid/internal/models"
	"cid/internal/providers"
	"cid/internal/services"
)

const maxRequestBodySize = 8 << 20 // 8 MB, full snapshots can carry thousands of cards

// errNotFound marks a compute result that should render as 404 instead of 500.
var errNotFound = errors.New("not found")

type ApiController struct {
	logger  providers.Logger
	service services.IntegrityServiceInterface
	cache   providers.CacheProviderInterface
	devices *device.Resolver
}

func NewApiController(logger providers.Logger, service services.IntegrityServiceInterface, cache providers.CacheProviderInterface, devices *device.Resolver) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
		devices: devices,
	}
}

func getProfile(r *http.Request) string {
	return r.URL.Query().Get("profile")
}

// invalidateProfile drops the cached responses for a profile so reads issued
// right after a write see the new state instead of waiting out the TTL.
func (ac *ApiController) invalidateProfile(profile string) {
	ac.cache.Del("checksum:" + profile)
	ac.cache.Del("status:" + profile)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		if errors.Is(err, errNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// ReceiveSnapshot ingests a full snapshot payload, validates it and persists
// the result. Record-level validation failures come back as 422 with the
// per-record errors; malformed JSON is a plain 400.
func (ac *ApiController) ReceiveSnapshot(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.SnapshotRequest
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		ac.logger.Debugf(providers.GetLogTypeByRequestType(r.Method), "Rejected snapshot payload: %s", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.ProfileID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	snapshot, persisted, validation := ac.service.BuildSnapshot(payload.ProfileID, payload.Collection, payload.Wishlist, payload.Achievements)
	if !validation.IsValid {
		ac.logger.Warnf(providers.GetLogTypeByRequestType(r.Method), "Snapshot for profile %s failed validation: %d errors", payload.ProfileID, len(validation.Errors))
		writeJSON(w, http.StatusUnprocessableEntity, validation)
		return
	}

	ac.invalidateProfile(payload.ProfileID)
	writeJSON(w, http.StatusCreated, models.SnapshotReceipt{
		Version:   snapshot.Version,
		CreatedAt: snapshot.CreatedAt,
		Checksum:  snapshot.Checksum,
		Stats:     snapshot.Stats,
		Persisted: persisted,
	})
}

func (ac *ApiController) GetChecksum(w http.ResponseWriter, r *http.Request) {
	profile := getProfile(r)
	if profile == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.serveFromCacheOrCompute(w, "checksum:"+profile, func() (any, error) {
		record := ac.service.GetChecksum(profile)
		if record == nil {
			return nil, errNotFound
		}
		return record, nil
	})
}

func (ac *ApiController) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	profile := getProfile(r)
	if profile == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	snapshot := ac.service.GetSnapshot(profile)
	if snapshot == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (ac *ApiController) CompareChecksums(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.CompareRequest
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil || payload.ProfileID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	result := ac.service.Compare(payload.ProfileID, payload.ServerChecksum, payload.ServerStats)
	writeJSON(w, http.StatusOK, result)
}

func (ac *ApiController) DiffCollections(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.DiffRequest
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, ac.service.Diff(payload.Local, payload.Server))
}

func (ac *ApiController) GetStatus(w http.ResponseWriter, r *http.Request) {
	profile := getProfile(r)
	if profile == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.serveFromCacheOrCompute(w, "status:"+profile, func() (any, error) {
		return ac.service.Status(profile), nil
	})
}

func (ac *ApiController) GetProfiles(w http.ResponseWriter, r *http.Request) {
	profiles := ac.service.Profiles()
	if profiles == nil {
		profiles = []string{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (ac *ApiController) GetDevice(w http.ResponseWriter, r *http.Request) {
	platform := r.URL.Query().Get("platform")
	if platform == "" {
		platform = r.UserAgent()
	}
	writeJSON(w, http.StatusOK, ac.devices.Resolve(platform))
}

func (ac *ApiController) ResetProfile(w http.ResponseWriter, r *http.Request) {
	profile := getProfile(r)
	if profile == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.service.Clear(profile)
	ac.invalidateProfile(profile)
	ac.logger.Infof(providers.GetLogTypeByRequestType(r.Method), "Reset local data for profile %s", profile)
	w.WriteHeader(http.StatusNoContent)
}
