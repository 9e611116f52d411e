package model

import "time"

// Operation names one of the license API flows.
type Operation string

const (
	OperationValidate Operation = "validate"
	OperationCreate   Operation = "create"
	OperationStats    Operation = "stats"
)

// Outcome is the result of one interaction as seen by the operator.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeInvalid Outcome = "invalid"
	OutcomeFailed  Outcome = "failed"
)

// Activity is one recorded interaction with the license API.
// Admin tokens are never stored; license keys are masked.
type Activity struct {
	ID         string    `json:"id"`
	Operation  Operation `json:"operation"`
	Outcome    Outcome   `json:"outcome"`
	LicenseKey string    `json:"license_key"`
	Detail     string    `json:"detail"`
	RequestID  string    `json:"request_id"`
	CreatedAt  time.Time `json:"created_at"`
}
