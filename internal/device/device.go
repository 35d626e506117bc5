package device

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"cid/internal/models"
	"cid/internal/providers"
	"cid/internal/storage"
)

const deviceIDKey = "device_id"

// GenerateDeviceID returns a fresh device identifier. Hyphens are stripped
// from the UUID so the identifier stays safe for use inside storage keys.
func GenerateDeviceID() string {
	return "device_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// DetectDeviceType classifies a platform or user-agent string. An empty
// string is unknown; anything recognizable as neither iOS nor Android is
// treated as a web client.
func DetectDeviceType(platform string) models.DeviceType {
	if platform == "" {
		return models.DeviceTypeUnknown
	}

	p := strings.ToLower(platform)
	switch {
	case strings.Contains(p, "iphone"),
		strings.Contains(p, "ipad"),
		strings.Contains(p, "ipod"),
		strings.Contains(p, "ios"):
		return models.DeviceTypeIOS
	case strings.Contains(p, "android"):
		return models.DeviceTypeAndroid
	default:
		return models.DeviceTypeWeb
	}
}

// DeviceName derives a human-readable device name from a platform string.
// Android is checked before Linux because Android user agents contain both.
func DeviceName(platform string) string {
	if platform == "" {
		return "Unknown Device"
	}

	p := strings.ToLower(platform)
	switch {
	case strings.Contains(p, "iphone"):
		return "iPhone"
	case strings.Contains(p, "ipad"):
		return "iPad"
	case strings.Contains(p, "ipod"):
		return "iPod"
	case strings.Contains(p, "android"):
		return "Android Device"
	case strings.Contains(p, "mac"):
		return "Mac"
	case strings.Contains(p, "windows"):
		return "Windows"
	case strings.Contains(p, "linux"):
		return "Linux"
	default:
		return "Web Browser"
	}
}

// Resolver owns the stable device identity for this installation. The
// identifier is created once, persisted, and reused across restarts; when the
// store degrades the identifier is still served from memory for the lifetime
// of the process.
type Resolver struct {
	store  storage.Store
	logger providers.Logger

	mu sync.Mutex
	id string
}

func NewResolver(store storage.Store, logger providers.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

func (r *Resolver) GetOrCreateDeviceID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.id != "" {
		return r.id
	}

	if stored, ok := r.store.Get(deviceIDKey); ok && stored != "" {
		r.id = stored
		return r.id
	}

	r.id = GenerateDeviceID()
	if err := r.store.Set(deviceIDKey, r.id); err != nil {
		r.logger.Warnf(providers.TypeApp, "Could not persist device ID, using in-memory identity: %s", err)
	}
	return r.id
}

// Resolve returns the full device identity for the given platform string.
func (r *Resolver) Resolve(platform string) models.Device {
	return models.Device{
		ID:   r.GetOrCreateDeviceID(),
		Type: DetectDeviceType(platform),
		Name: DeviceName(platform),
	}
}
