package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cid/internal/controllers"
	"cid/internal/device"
	"cid/internal/models"
	"cid/internal/providers"
	"cid/internal/storage"
)

// --- minimal mocks for routes test ---

type routeTestLogger struct{}

func (m *routeTestLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *routeTestLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *routeTestLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Close()                                                  {}

type routeTestCache struct{}

func (m *routeTestCache) Get(_ string) ([]byte, bool) { return nil, false }
func (m *routeTestCache) Set(_ string, _ []byte)      {}
func (m *routeTestCache) Del(_ string)                {}

type routeTestService struct{}

func (m *routeTestService) BuildSnapshot(_ string, _ []models.PersistenceCard, _ []models.PersistenceWishlistCard, _ []models.PersistenceAchievement) (*models.DataSnapshot, bool, models.SnapshotValidationResult) {
	return nil, false, models.SnapshotValidationResult{IsValid: true}
}
func (m *routeTestService) GetChecksum(_ string) *models.LocalChecksum  { return nil }
func (m *routeTestService) GetSnapshot(_ string) *models.DataSnapshot   { return nil }
func (m *routeTestService) Compare(_ string, _ int64, _ models.DataStats) models.ComparisonResult {
	return models.ComparisonResult{}
}
func (m *routeTestService) Diff(_ []models.PersistenceCard, _ []models.PersistenceCard) models.CollectionDiff {
	return models.CollectionDiff{}
}
func (m *routeTestService) Status(_ string) models.SyncStatusReport { return models.SyncStatusReport{} }
func (m *routeTestService) Clear(_ string)                          {}
func (m *routeTestService) TrackedProfiles() int                    { return 0 }
func (m *routeTestService) Profiles() []string                      { return nil }
func (m *routeTestService) SnapshotsBuilt() int64                   { return 0 }
func (m *routeTestService) ComparisonsRun() int64                   { return 0 }
func (m *routeTestService) DiscrepanciesFound() int64               { return 0 }

func newRouteTestController() *controllers.ApiController {
	resolver := device.NewResolver(storage.NoopStore{}, &routeTestLogger{})
	return controllers.NewApiController(&routeTestLogger{}, &routeTestService{}, &routeTestCache{}, resolver)
}

func TestInitRoutes_RegistersNineRoutes(t *testing.T) {
	router := InitRoutes(newRouteTestController())
	routes := router.GetRoutes()

	require.Len(t, routes, 9)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.Contains(t, urls, "/")
	assert.Contains(t, urls, "/checksum")
	assert.Contains(t, urls, "/snapshot")
	assert.Contains(t, urls, "/compare")
	assert.Contains(t, urls, "/diff")
	assert.Contains(t, urls, "/status")
	assert.Contains(t, urls, "/profiles")
	assert.Contains(t, urls, "/device")
	assert.Contains(t, urls, "/profile")
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	router := InitRoutes(newRouteTestController())
	routes := router.GetRoutes()

	mux := http.NewServeMux()
	for _, r := range routes {
		mux.Handle(r.Url, r.Handler)
	}

	// GET /compare should fail
	req := httptest.NewRequest(http.MethodGet, "/compare", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	// POST /checksum should fail
	req = httptest.NewRequest(http.MethodPost, "/checksum", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	// GET /profile should fail
	req = httptest.NewRequest(http.MethodGet, "/profile", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
