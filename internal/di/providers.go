package di

import (
	"cid/internal/providers"
	"cid/internal/services"
)

// provideOpsSource narrows the integrity service to the counter surface the
// metrics provider reads, keeping the providers package free of a service
// dependency.
func provideOpsSource(service services.IntegrityServiceInterface) providers.OpsSource {
	return service
}
