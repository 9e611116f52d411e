package licenseapi

import (
	"context"

	"licenseadmin/internal/model"
)

// Package licenseapi talks to the remote license management service.
// The service is opaque: this package only serializes requests and parses responses.

// API is the set of remote calls the console makes.
type API interface {
	// Validate checks a license key against a device fingerprint. No auth.
	Validate(ctx context.Context, req model.ValidateRequest) (*model.ValidateResult, error)
	// Create issues a new license. Requires an admin bearer token.
	Create(ctx context.Context, adminToken string, req model.CreateRequest) (*model.CreateResult, error)
	// Stats returns aggregate license statistics. Requires an admin bearer token.
	Stats(ctx context.Context, adminToken string) (*model.Stats, error)
}
