package model

// Fingerprint binds a license to a device.
type Fingerprint struct {
	MachineID string `json:"machine_id"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
}

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	LicenseKey  string      `json:"license_key"`
	Fingerprint Fingerprint `json:"fingerprint"`
	Timestamp   string      `json:"timestamp"`
	Version     string      `json:"version"`
}

// ValidateResult is the response of POST /validate.
// ExpiresAt is zero and RemainingValidations nil when the API omits them.
type ValidateResult struct {
	Valid                bool      `json:"valid"`
	Message              string    `json:"message"`
	ExpiresAt            Timestamp `json:"expires_at"`
	RemainingValidations *int      `json:"remaining_validations,omitempty"`
}

// CreateRequest is the body of POST /create. The API generates a key when
// LicenseKey is empty.
type CreateRequest struct {
	LicenseKey    string `json:"licenseKey,omitempty"`
	ExpiresInDays int    `json:"expiresInDays"`
	MaxInstances  int    `json:"maxInstances"`
}

// CreateResult is the response of POST /create.
type CreateResult struct {
	LicenseKey   string    `json:"license_key"`
	ExpiresAt    Timestamp `json:"expires_at"`
	MaxInstances int       `json:"max_instances"`
	Message      string    `json:"message"`
}

// Stats is the response of GET /stats.
type Stats struct {
	TotalLicenses          int  `json:"total_licenses"`
	ActiveLicenses         int  `json:"active_licenses"`
	ExpiredLicenses        int  `json:"expired_licenses"`
	RecentValidations      int  `json:"recent_validations"`
	UniversalLicenseActive bool `json:"universal_license_active"`
}
