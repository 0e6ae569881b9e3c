package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beerbot/internal/decision"
)

func validConfig() *Config {
	return &Config{
		Env:              "development",
		StudentEmail:     "someone@taltech.ee",
		AlgorithmName:    "StabiilneAnkur",
		Version:          "v1.1.0",
		SupportsBlackBox: true,
		SupportsGlassBox: true,
		MaxBodyBytes:     1 << 20,
		Policy:           decision.DefaultParams(),
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("POLICY_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.SupportsBlackBox)
	assert.True(t, cfg.SupportsGlassBox)
	assert.Equal(t, decision.DefaultParams(), cfg.Policy)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("POLICY_FILE", "")
	t.Setenv("PORT", "9999")
	t.Setenv("SMOOTHING_WINDOW", "6")
	t.Setenv("CORRECTION_FACTOR", "0.25")
	t.Setenv("SUPPLY_LEAD_TIME", "3")
	t.Setenv("RATE_LIMIT_RPS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 6, cfg.Policy.SmoothingWindow)
	assert.Equal(t, 0.25, cfg.Policy.CorrectionFactor)
	assert.Equal(t, 3, cfg.Policy.SupplyLeadTime)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
}

func TestLoad_PolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("correction_factor: 0.3\nweeks_of_supply_target: 3\n"), 0o644))
	t.Setenv("POLICY_FILE", path)
	t.Setenv("SMOOTHING_WINDOW", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.3, cfg.Policy.CorrectionFactor)
	assert.Equal(t, 3.0, cfg.Policy.WeeksOfSupplyTarget)
	assert.Equal(t, 5, cfg.Policy.SmoothingWindow, "keys absent from the file keep the env value")
}

func TestLoad_RejectsInvalid(t *testing.T) {
	t.Setenv("POLICY_FILE", "")
	t.Setenv("STUDENT_EMAIL", "someone@example.com")

	_, err := Load()
	require.Error(t, err)

	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "STUDENT_EMAIL", verr.Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad email", func(c *Config) { c.StudentEmail = "x@gmail.com" }, "STUDENT_EMAIL"},
		{"upper-case email domain", func(c *Config) { c.StudentEmail = "X@TalTech.ee" }, ""},
		{"short algorithm name", func(c *Config) { c.AlgorithmName = "ab" }, "ALGORITHM_NAME"},
		{"algorithm name with dash", func(c *Config) { c.AlgorithmName = "beer-bot" }, "ALGORITHM_NAME"},
		{"version without v", func(c *Config) { c.Version = "1.0" }, "VERSION"},
		{"no modes", func(c *Config) { c.SupportsBlackBox, c.SupportsGlassBox = false, false }, "SUPPORTS_BLACKBOX"},
		{"bad env", func(c *Config) { c.Env = "prod" }, "ENV"},
		{"rate without burst", func(c *Config) { c.RateLimitRPS = 1; c.RateLimitBurst = 0 }, "RATE_LIMIT_BURST"},
		{"bad policy", func(c *Config) { c.Policy.CorrectionFactor = 2 }, "policy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestParsePolicy(t *testing.T) {
	t.Run("overlays set keys", func(t *testing.T) {
		pf, err := ParsePolicy([]byte("smoothing_window: 2\ndefault_order: 8\n"))
		require.NoError(t, err)

		p := pf.Apply(decision.DefaultParams())
		assert.Equal(t, 2, p.SmoothingWindow)
		assert.Equal(t, 8, p.DefaultOrder)
		assert.Equal(t, 0.5, p.CorrectionFactor)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := ParsePolicy([]byte("smoothing_windw: 2\n"))
		assert.Error(t, err)
	})

	t.Run("empty document", func(t *testing.T) {
		pf, err := ParsePolicy(nil)
		require.NoError(t, err)
		assert.Equal(t, decision.DefaultParams(), pf.Apply(decision.DefaultParams()))
	})
}
