package internal

import (
	"fmt"
	"strings"

	"github.com/zhengshuai-xiao/pngmsg/internal/compression"
)

const (
	S3DriverMinio = "minio"
	S3DriverAWS   = "aws"
)

// Config collects the settings shared by every command. The front end fills it
// from global flags and their environment variables.
type Config struct {
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Region    string
	S3UseSSL    bool
	S3Driver    string

	RedisPassword string

	Compression string

	LogLevel string
	LogFile  string
	NoColor  bool
}

func NewConfig() *Config {
	return &Config{
		S3Endpoint:  "127.0.0.1:9000",
		S3Region:    "us-east-1",
		S3Driver:    S3DriverMinio,
		Compression: "none",
		LogLevel:    "warn",
	}
}

func (c *Config) Validate() error {
	switch c.S3Driver {
	case S3DriverMinio, S3DriverAWS:
	default:
		return fmt.Errorf("unknown s3 driver %q, want %s or %s", c.S3Driver, S3DriverMinio, S3DriverAWS)
	}
	if _, ok := compression.CompressionMethods[c.Compression]; !ok && c.Compression != "" {
		return fmt.Errorf("unknown compression %q: %w", c.Compression, compression.ErrInvalidCompressionType)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// S3EndpointURL returns the endpoint with a scheme, as the AWS SDK wants it.
func (c *Config) S3EndpointURL() string {
	if c.S3Endpoint == "" {
		return ""
	}
	if strings.HasPrefix(c.S3Endpoint, "http://") || strings.HasPrefix(c.S3Endpoint, "https://") {
		return c.S3Endpoint
	}
	if c.S3UseSSL {
		return "https://" + c.S3Endpoint
	}
	return "http://" + c.S3Endpoint
}

// S3HostPort returns the endpoint without a scheme, as minio-go wants it.
func (c *Config) S3HostPort() string {
	hostPort := strings.TrimPrefix(c.S3Endpoint, "https://")
	return strings.TrimPrefix(hostPort, "http://")
}
