package view

import (
	"errors"
	"fmt"
	"strings"

	"licenseadmin/internal/model"
	"licenseadmin/internal/service"
)

// Result is the outcome box shown under a form.
type Result struct {
	OK    bool
	Lines []string
}

// Text joins the lines with newlines.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	return strings.Join(r.Lines, "\n")
}

// ValidateResult renders a /validate response. Expiry and remaining count
// appear only when the API sent them.
func ValidateResult(res *model.ValidateResult) *Result {
	if !res.Valid {
		return &Result{OK: false, Lines: []string{
			"Status: Invalid",
			"Message: " + res.Message,
		}}
	}

	lines := []string{
		"Status: Valid",
		"Message: " + res.Message,
	}
	if !res.ExpiresAt.IsZero() {
		lines = append(lines, "Expires: "+res.ExpiresAt.Display())
	}
	if res.RemainingValidations != nil {
		lines = append(lines, fmt.Sprintf("Remaining Validations: %d", *res.RemainingValidations))
	}
	return &Result{OK: true, Lines: lines}
}

// CreateResult renders a /create response.
func CreateResult(res *model.CreateResult) *Result {
	expires := res.ExpiresAt.Display()
	if expires == "" {
		expires = "n/a"
	}
	return &Result{OK: true, Lines: []string{
		"License Key: " + res.LicenseKey,
		"Expires: " + expires,
		fmt.Sprintf("Max Instances: %d", res.MaxInstances),
		"Message: " + res.Message,
	}}
}

// StatsResult renders a /stats response.
func StatsResult(res *model.Stats) *Result {
	return &Result{OK: true, Lines: []string{
		fmt.Sprintf("Total Licenses: %d", res.TotalLicenses),
		fmt.Sprintf("Active Licenses: %d", res.ActiveLicenses),
		fmt.Sprintf("Expired Licenses: %d", res.ExpiredLicenses),
		fmt.Sprintf("Recent Validations (7 days): %d", res.RecentValidations),
		"Universal License Active: " + yesNo(res.UniversalLicenseActive),
	}}
}

// Failure renders an error for op. Input problems are shown as is; request
// failures carry the underlying error text.
func Failure(op model.Operation, err error) *Result {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return &Result{OK: false, Lines: []string{vErr.Error()}}
	}

	var prefix string
	switch op {
	case model.OperationValidate:
		prefix = "Failed to validate license"
	case model.OperationCreate:
		prefix = "Failed to create license"
	case model.OperationStats:
		prefix = "Failed to fetch stats"
	default:
		prefix = "Request failed"
	}
	return &Result{OK: false, Lines: []string{prefix + ": " + err.Error()}}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
