package internal

import (
	"net/http"

	"cid/internal/controllers"
	"cid/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/", http.HandlerFunc(apiController.ReceiveSnapshot))
	routers.Get("/checksum", http.HandlerFunc(apiController.GetChecksum))
	routers.Get("/snapshot", http.HandlerFunc(apiController.GetSnapshot))
	routers.Post("/compare", http.HandlerFunc(apiController.CompareChecksums))
	routers.Post("/diff", http.HandlerFunc(apiController.DiffCollections))
	routers.Get("/status", http.HandlerFunc(apiController.GetStatus))
	routers.Get("/profiles", http.HandlerFunc(apiController.GetProfiles))
	routers.Get("/device", http.HandlerFunc(apiController.GetDevice))
	routers.Delete("/profile", http.HandlerFunc(apiController.ResetProfile))
	return routers
}
