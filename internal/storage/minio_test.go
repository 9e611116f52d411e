package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"licenseadmin/internal/config"
)

func TestValidateArchiveConfig(t *testing.T) {
	valid := config.ArchiveConfig{
		Endpoint:  "minio:9000",
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "license-archive",
	}

	tests := []struct {
		name    string
		mutate  func(*config.ArchiveConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(*config.ArchiveConfig) {}},
		{name: "missing endpoint", mutate: func(c *config.ArchiveConfig) { c.Endpoint = "" }, wantErr: "endpoint is required"},
		{name: "missing secret", mutate: func(c *config.ArchiveConfig) { c.SecretKey = "" }, wantErr: "credentials are required"},
		{name: "missing bucket", mutate: func(c *config.ArchiveConfig) { c.Bucket = "" }, wantErr: "bucket is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := ValidateArchiveConfig(cfg)

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestNewMinIO_InvalidConfig(t *testing.T) {
	store, err := NewMinIO(context.Background(), config.ArchiveConfig{Endpoint: "minio:9000"})

	require.Error(t, err)
	assert.Nil(t, store)
}
