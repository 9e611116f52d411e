package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"licenseadmin/internal/licenseapi"
	"licenseadmin/internal/logging"
	"licenseadmin/internal/model"
	"licenseadmin/internal/repository"
)

const (
	// DefaultClientVersion is sent as "version" on validate requests.
	DefaultClientVersion = "1.0.0"
	// DefaultExpiresInDays and DefaultMaxInstances prefill the create form.
	DefaultExpiresInDays = 365
	DefaultMaxInstances  = 1

	maxDetail = 200
)

// ValidateInput is what an operator types into the validate form.
type ValidateInput struct {
	LicenseKey string `json:"license_key"`
	MachineID  string `json:"machine_id"`
	Platform   string `json:"platform"`
	Arch       string `json:"arch"`
}

// CreateInput is what an operator types into the create form.
// A blank LicenseKey lets the API generate one.
type CreateInput struct {
	AdminToken    string `json:"-"`
	LicenseKey    string `json:"license_key"`
	ExpiresInDays int    `json:"expires_in_days"`
	MaxInstances  int    `json:"max_instances"`
}

// LicenseService defines the three license flows of the console.
// Each call issues at most one request to the license API; failures are terminal.
type LicenseService interface {
	// Validate checks a license key. An empty key fails without a network call.
	Validate(ctx context.Context, in ValidateInput) (*model.ValidateResult, error)

	// Create issues a license. An empty admin token fails without a network call.
	Create(ctx context.Context, in CreateInput) (*model.CreateResult, error)

	// Stats fetches aggregate statistics. An empty admin token fails without a network call.
	Stats(ctx context.Context, adminToken string) (*model.Stats, error)
}

// Option configures the license service.
type Option func(*licenseService)

// WithClientVersion overrides the version string sent on validate.
func WithClientVersion(v string) Option {
	return func(s *licenseService) {
		if v != "" {
			s.version = v
		}
	}
}

// WithClock overrides the time source used for request timestamps and activity.
func WithClock(now func() time.Time) Option {
	return func(s *licenseService) {
		s.now = now
	}
}

// licenseService is a concrete implementation of LicenseService.
type licenseService struct {
	api      licenseapi.API
	activity repository.ActivityRepository
	logger   *zap.Logger
	tracer   trace.Tracer
	version  string
	now      func() time.Time
}

// NewLicenseService constructs a new LicenseService.
// A nil activity repository disables the activity log.
func NewLicenseService(api licenseapi.API, activity repository.ActivityRepository, logger *zap.Logger, opts ...Option) LicenseService {
	if activity == nil {
		activity = repository.Discard{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &licenseService{
		api:      api,
		activity: activity,
		logger:   logger,
		tracer:   otel.Tracer("licenseadmin/service"),
		version:  DefaultClientVersion,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *licenseService) Validate(ctx context.Context, in ValidateInput) (*model.ValidateResult, error) {
	key := strings.TrimSpace(in.LicenseKey)
	if key == "" {
		return nil, required("License Key")
	}

	ctx, span := s.tracer.Start(ctx, "license.validate")
	defer span.End()

	req := model.ValidateRequest{
		LicenseKey: key,
		Fingerprint: model.Fingerprint{
			MachineID: strings.TrimSpace(in.MachineID),
			Platform:  strings.TrimSpace(in.Platform),
			Arch:      strings.TrimSpace(in.Arch),
		},
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
		Version:   s.version,
	}

	res, err := s.api.Validate(ctx, req)
	if err != nil {
		s.fail(ctx, span, model.OperationValidate, key, err)
		return nil, err
	}

	outcome := model.OutcomeSuccess
	if !res.Valid {
		outcome = model.OutcomeInvalid
	}
	span.SetAttributes(attribute.Bool("license.valid", res.Valid))
	s.record(ctx, model.OperationValidate, outcome, key, res.Message)
	return res, nil
}

func (s *licenseService) Create(ctx context.Context, in CreateInput) (*model.CreateResult, error) {
	token := strings.TrimSpace(in.AdminToken)
	if token == "" {
		return nil, required("Admin Token")
	}
	if in.ExpiresInDays < 1 {
		return nil, atLeastOne("Expires In Days")
	}
	if in.MaxInstances < 1 {
		return nil, atLeastOne("Max Instances")
	}

	ctx, span := s.tracer.Start(ctx, "license.create")
	defer span.End()

	key := strings.TrimSpace(in.LicenseKey)
	res, err := s.api.Create(ctx, token, model.CreateRequest{
		LicenseKey:    key,
		ExpiresInDays: in.ExpiresInDays,
		MaxInstances:  in.MaxInstances,
	})
	if err != nil {
		s.fail(ctx, span, model.OperationCreate, key, err)
		return nil, err
	}

	s.record(ctx, model.OperationCreate, model.OutcomeSuccess, res.LicenseKey, res.Message)
	return res, nil
}

func (s *licenseService) Stats(ctx context.Context, adminToken string) (*model.Stats, error) {
	token := strings.TrimSpace(adminToken)
	if token == "" {
		return nil, required("Admin Token")
	}

	ctx, span := s.tracer.Start(ctx, "license.stats")
	defer span.End()

	res, err := s.api.Stats(ctx, token)
	if err != nil {
		s.fail(ctx, span, model.OperationStats, "", err)
		return nil, err
	}

	s.record(ctx, model.OperationStats, model.OutcomeSuccess, "", "")
	return res, nil
}

func (s *licenseService) fail(ctx context.Context, span trace.Span, op model.Operation, key string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, "license api request failed")

	var statusErr *licenseapi.StatusError
	if errors.As(err, &statusErr) {
		span.SetAttributes(attribute.Int("license_api.status_code", statusErr.StatusCode))
	}
	s.record(ctx, op, model.OutcomeFailed, key, err.Error())
}

// record appends to the activity log. A storage failure is logged and swallowed
// so it never changes what the operator sees.
func (s *licenseService) record(ctx context.Context, op model.Operation, outcome model.Outcome, key, detail string) {
	rid := logging.RequestIDFromContext(ctx)

	s.logger.Info("license_api_call",
		zap.String("operation", string(op)),
		zap.String("outcome", string(outcome)),
		zap.String("request_id", rid),
	)

	a := &model.Activity{
		ID:         uuid.NewString(),
		Operation:  op,
		Outcome:    outcome,
		LicenseKey: MaskLicenseKey(key),
		Detail:     truncate(detail, maxDetail),
		RequestID:  rid,
		CreatedAt:  s.now().UTC(),
	}
	if _, err := s.activity.Create(ctx, a); err != nil {
		s.logger.Warn("activity_record_failed",
			zap.String("operation", string(op)),
			zap.String("request_id", rid),
			zap.Error(err),
		)
	}
}

// MaskLicenseKey keeps the first four characters of key.
func MaskLicenseKey(key string) string {
	if key == "" {
		return ""
	}
	r := []rune(key)
	if len(r) <= 4 {
		return "****"
	}
	return string(r[:4]) + "****"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
