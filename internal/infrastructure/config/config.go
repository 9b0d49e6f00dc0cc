package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/carebox/diabetes-risk/internal/domain/service"
	"github.com/carebox/diabetes-risk/internal/infrastructure/artifact"
	"github.com/carebox/diabetes-risk/pkg/kafka"
)

// ServiceName identifies this service in logs, metrics and traces.
const ServiceName = "prediction-service"

// Artifact source kinds.
const (
	SourceFile     = artifact.SourceFile
	SourceS3       = artifact.SourceS3
	SourcePostgres = artifact.SourcePostgres
)

// Config holds all configuration for the prediction service.
type Config struct {
	HTTPPort    string
	GRPCPort    string
	Environment string
	LogLevel    string
	LogFormat   string

	Artifacts  ArtifactConfig
	Database   DatabaseConfig
	Kafka      kafka.Config
	KafkaTopic string

	OTLPEndpoint     string
	TraceSampleRatio float64

	CORSAllowedOrigins []string

	GRPCTLSCertFile string
	GRPCTLSKeyFile  string
	GRPCReflection  bool

	Thresholds service.Thresholds
}

// ArtifactConfig selects where the model bundle is loaded from.
type ArtifactConfig struct {
	Source      string
	Dir         string
	Bundle      string
	LoadTimeout time.Duration

	S3Bucket    string
	S3Prefix    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// DatabaseConfig configures the model registry database.
type DatabaseConfig struct {
	URL           string
	RunMigrations bool
	MigrationsDir string
	MaxConns      int
}

// Load reads configuration from environment variables with defaults.
// Malformed numeric or boolean values are reported rather than ignored.
func Load() (*Config, error) {
	l := &loader{}

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", getEnv("PORT", "8080")),
		GRPCPort:    getEnv("GRPC_PORT", "9090"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),

		Artifacts: ArtifactConfig{
			Source:      strings.ToLower(getEnv("ARTIFACT_SOURCE", SourceFile)),
			Dir:         getEnv("ARTIFACT_DIR", "./artifacts"),
			Bundle:      getEnv("ARTIFACT_BUNDLE", "default"),
			LoadTimeout: l.getEnvDuration("ARTIFACT_LOAD_TIMEOUT", 30*time.Second),
			S3Bucket:    getEnv("ARTIFACT_S3_BUCKET", ""),
			S3Prefix:    getEnv("ARTIFACT_S3_PREFIX", ""),
			S3Region:    getEnv("ARTIFACT_S3_REGION", "us-east-1"),
			S3Endpoint:  getEnv("ARTIFACT_S3_ENDPOINT", ""),
			S3AccessKey: getEnv("ARTIFACT_S3_ACCESS_KEY", ""),
			S3SecretKey: getEnv("ARTIFACT_S3_SECRET_KEY", ""),
		},

		Database: DatabaseConfig{
			URL:           getEnv("DATABASE_URL", ""),
			RunMigrations: l.getEnvBool("RUN_MIGRATIONS", false),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "file://migrations"),
			MaxConns:      l.getEnvInt("DATABASE_MAX_CONNS", 4),
		},

		Kafka: kafka.Config{
			ClientID:      ServiceName,
			Brokers:       kafka.ParseBrokers(getEnv("KAFKA_BROKERS", "")),
			TLS:           l.getEnvBool("KAFKA_TLS", false),
			SASLEnabled:   l.getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		KafkaTopic: getEnv("KAFKA_TOPIC", "diabetes.predictions"),

		OTLPEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		TraceSampleRatio: l.getEnvFloat("OTEL_TRACES_SAMPLER_ARG", 1),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		GRPCTLSCertFile: getEnv("GRPC_TLS_CERT_FILE", ""),
		GRPCTLSKeyFile:  getEnv("GRPC_TLS_KEY_FILE", ""),
		GRPCReflection:  l.getEnvBool("GRPC_REFLECTION", false),

		Thresholds: service.Thresholds{
			Decision:     l.getEnvFloat("DECISION_THRESHOLD", service.DefaultDecisionThreshold),
			ModerateFrom: l.getEnvFloat("RISK_MODERATE_THRESHOLD", service.DefaultModerateRiskFrom),
			HighFrom:     l.getEnvFloat("RISK_HIGH_THRESHOLD", service.DefaultHighRiskFrom),
			BMI:          l.getEnvFloat("BMI_ADVISORY_THRESHOLD", service.DefaultBMIAdvisory),
			HbA1c:        l.getEnvFloat("HBA1C_ADVISORY_THRESHOLD", service.DefaultHbA1cAdvisory),
			Glucose:      l.getEnvFloat("GLUCOSE_ADVISORY_THRESHOLD", service.DefaultGlucoseAdvisory),
		},
	}

	if err := errors.Join(l.errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	var errs []error

	for _, p := range [][2]string{{"HTTP_PORT", c.HTTPPort}, {"GRPC_PORT", c.GRPCPort}} {
		if n, err := strconv.Atoi(p[1]); err != nil || n <= 0 || n > 65535 {
			errs = append(errs, fmt.Errorf("%s must be a port number, got %q", p[0], p[1]))
		}
	}

	switch c.Artifacts.Source {
	case SourceFile:
		if c.Artifacts.Dir == "" {
			errs = append(errs, errors.New("ARTIFACT_DIR is required for the file source"))
		}
	case SourceS3:
		if c.Artifacts.S3Bucket == "" {
			errs = append(errs, errors.New("ARTIFACT_S3_BUCKET is required for the s3 source"))
		}
	case SourcePostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres source"))
		}
		if c.Artifacts.Bundle == "" {
			errs = append(errs, errors.New("ARTIFACT_BUNDLE is required for the postgres source"))
		}
	default:
		errs = append(errs, fmt.Errorf("ARTIFACT_SOURCE must be one of file, s3, postgres; got %q", c.Artifacts.Source))
	}
	if c.Database.MaxConns < 1 || c.Database.MaxConns > math.MaxInt32 {
		errs = append(errs, fmt.Errorf("DATABASE_MAX_CONNS must be between 1 and %d, got %d", math.MaxInt32, c.Database.MaxConns))
	}
	if c.Artifacts.LoadTimeout <= 0 {
		errs = append(errs, errors.New("ARTIFACT_LOAD_TIMEOUT must be positive"))
	}

	if (c.GRPCTLSCertFile == "") != (c.GRPCTLSKeyFile == "") {
		errs = append(errs, errors.New("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together"))
	}
	if c.Kafka.Enabled() && c.KafkaTopic == "" {
		errs = append(errs, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set"))
	}
	if err := c.Thresholds.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ArtifactSource maps the artifact settings onto artifact.SourceConfig.
func (c *Config) ArtifactSource() artifact.SourceConfig {
	return artifact.SourceConfig{
		Kind: c.Artifacts.Source,
		Dir:  c.Artifacts.Dir,
		S3: artifact.S3Config{
			Bucket:    c.Artifacts.S3Bucket,
			Prefix:    c.Artifacts.S3Prefix,
			Region:    c.Artifacts.S3Region,
			Endpoint:  c.Artifacts.S3Endpoint,
			AccessKey: c.Artifacts.S3AccessKey,
			SecretKey: c.Artifacts.S3SecretKey,
		},
		DatabaseURL:   c.Database.URL,
		Bundle:        c.Artifacts.Bundle,
		MaxConns:      int32(c.Database.MaxConns),
		RunMigrations: c.Database.RunMigrations,
		MigrationsDir: c.Database.MigrationsDir,
	}
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

// TLSEnabled reports whether the gRPC server should serve TLS.
func (c *Config) TLSEnabled() bool {
	return c.GRPCTLSCertFile != "" && c.GRPCTLSKeyFile != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// loader collects parse errors for typed variables.
type loader struct {
	errs []error
}

func (l *loader) getEnvFloat(key string, def float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%s: %q is not a number", key, raw))
		return def
	}
	return v
}

func (l *loader) getEnvInt(key string, def int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%s: %q is not an integer", key, raw))
		return def
	}
	return v
}

func (l *loader) getEnvBool(key string, def bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%s: %q is not a boolean", key, raw))
		return def
	}
	return v
}

func (l *loader) getEnvDuration(key string, def time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%s: %q is not a duration", key, raw))
		return def
	}
	return v
}
