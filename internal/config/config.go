package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"beerbot/internal/decision"
)

// Config holds everything the bot reads from its environment.
// Load is the only place that calls os.Getenv.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Identity reported in the handshake
	StudentEmail     string
	AlgorithmName    string
	Version          string
	SupportsBlackBox bool
	SupportsGlassBox bool

	// Transport limits
	MaxBodyBytes   int64
	RateLimitRPS   float64 // 0 disables rate limiting
	RateLimitBurst int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration

	// Policy tunables
	PolicyFile string
	Policy     decision.Params

	// Logging
	LogLevel  string
	LogFormat string
}

// ValidationError names the setting that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var algorithmNameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,32}$`)

// Load reads configuration from the environment (after loading a .env file
// if one is found) and applies the optional YAML policy file on top.
func Load() (*Config, error) {
	loadEnvFile()

	def := decision.DefaultParams()
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		StudentEmail:     getEnv("STUDENT_EMAIL", "likask@taltech.ee"),
		AlgorithmName:    getEnv("ALGORITHM_NAME", "StabiilneAnkur"),
		Version:          getEnv("VERSION", "v1.1.0"),
		SupportsBlackBox: getEnvAsBool("SUPPORTS_BLACKBOX", true),
		SupportsGlassBox: getEnvAsBool("SUPPORTS_GLASSBOX", true),

		MaxBodyBytes:   int64(getEnvAsInt("MAX_BODY_BYTES", 1<<20)),
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 20),
		ReadTimeout:    getEnvAsDuration("READ_TIMEOUT", "2s"),
		WriteTimeout:   getEnvAsDuration("WRITE_TIMEOUT", "2s"),
		IdleTimeout:    getEnvAsDuration("IDLE_TIMEOUT", "30s"),

		PolicyFile: getEnv("POLICY_FILE", ""),
		Policy: decision.Params{
			SmoothingWindow:     getEnvAsInt("SMOOTHING_WINDOW", def.SmoothingWindow),
			WeeksOfSupplyTarget: getEnvAsFloat("WEEKS_OF_SUPPLY_TARGET", def.WeeksOfSupplyTarget),
			CorrectionFactor:    getEnvAsFloat("CORRECTION_FACTOR", def.CorrectionFactor),
			SupplyLeadTime:      getEnvAsInt("SUPPLY_LEAD_TIME", def.SupplyLeadTime),
			DefaultOrder:        getEnvAsInt("DEFAULT_ORDER", def.DefaultOrder),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if cfg.PolicyFile != "" {
		if err := cfg.ApplyPolicyFile(cfg.PolicyFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks identity, transport and policy settings.
func (c *Config) Validate() error {
	if !strings.HasSuffix(strings.ToLower(c.StudentEmail), "@taltech.ee") {
		return ValidationError{"STUDENT_EMAIL", "must end with @taltech.ee"}
	}
	if !algorithmNameRe.MatchString(c.AlgorithmName) {
		return ValidationError{"ALGORITHM_NAME", "must be 3-32 chars: letters, digits or underscores"}
	}
	// lenient: v1, v1.0 or v1.2.3
	if !strings.HasPrefix(c.Version, "v") {
		return ValidationError{"VERSION", "should look like v1, v1.0 or v1.2.3"}
	}
	if !c.SupportsBlackBox && !c.SupportsGlassBox {
		return ValidationError{"SUPPORTS_BLACKBOX", "at least one of blackbox or glassbox must be supported"}
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return ValidationError{"ENV", "must be one of: development, staging, production"}
	}
	if c.MaxBodyBytes <= 0 {
		return ValidationError{"MAX_BODY_BYTES", "must be > 0"}
	}
	if c.RateLimitRPS < 0 {
		return ValidationError{"RATE_LIMIT_RPS", "must be >= 0"}
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return ValidationError{"RATE_LIMIT_BURST", "must be >= 1 when rate limiting is on"}
	}
	if err := c.Policy.Validate(); err != nil {
		return ValidationError{"policy", err.Error()}
	}
	return nil
}

// loadEnvFile tries a few .env locations and loads the first one found.
// Variables already set in the process environment win.
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
