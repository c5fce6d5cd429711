package main

import (
	"context"
	"testing"
	"time"

	"github.com/reglet-dev/breachgate/internal/infrastructure/output"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The CLI accepts exactly the formats the output package can build.
func TestValidFormats_MatchFormatterFactory(t *testing.T) {
	assert.ElementsMatch(t, output.NewFormatterFactory().SupportedFormats(), validFormats)

	for _, format := range validFormats {
		opts := CommonOptions{Format: format}
		assert.NoError(t, opts.ValidateFlags(), format)
	}
}

func TestCommonOptions_ValidateFlags_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		opts    CommonOptions
		wantErr string
	}{
		{"html is not a report format", CommonOptions{Format: "html"}, "invalid format: html"},
		{"empty format", CommonOptions{Format: ""}, "invalid format"},
		{"negative timeout", CommonOptions{Format: "sarif", Timeout: -time.Second}, "--timeout must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateFlags()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCommonOptions_Load(t *testing.T) {
	v := viper.New()
	v.SetEnvPrefix("BREACHGATE")
	v.AutomaticEnv()
	t.Setenv("BREACHGATE_FORMAT", "junit")
	t.Setenv("BREACHGATE_TIMEOUT", "45s")

	var opts CommonOptions
	opts.Load(v)

	assert.Equal(t, "junit", opts.Format)
	assert.Equal(t, 45*time.Second, opts.Timeout)
}

func TestCommonOptions_ApplyToContext(t *testing.T) {
	opts := CommonOptions{Timeout: time.Minute}
	ctx, cancel := opts.ApplyToContext(context.Background())
	defer cancel()
	_, ok := ctx.Deadline()
	assert.True(t, ok)

	opts.Timeout = 0
	ctx, cancel = opts.ApplyToContext(context.Background())
	defer cancel()
	_, ok = ctx.Deadline()
	assert.False(t, ok, "zero timeout lets a scenario run until it finishes")
}
