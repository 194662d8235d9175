package cmd

import (
	"github.com/urfave/cli/v2"
	"github.com/zhengshuai-xiao/pngmsg/internal"
)

func globalFlags() []cli.Flag {
	defaults := internal.NewConfig()
	return expandFlags(logFlags(defaults), s3Flags(defaults), []cli.Flag{
		&cli.StringFlag{
			Name:    "redis-password",
			Usage:   "password for redis:// locations that carry none",
			EnvVars: []string{"REDIS_PASSWORD"},
		},
		&cli.StringFlag{
			Name:  "compression",
			Usage: "compress messages with the specified algorithm: none/snappy/zlib",
			Value: defaults.Compression,
		},
	})
}

func logFlags(defaults *internal.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "loglevel",
			Usage: "log level: trace/debug/info/warn/error",
			Value: defaults.LogLevel,
		},
		&cli.StringFlag{
			Name:  "logfile",
			Usage: "write logs to this file (rotated daily) instead of stderr",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colors in log output",
		},
	}
}

func s3Flags(defaults *internal.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "s3-endpoint",
			Usage:   "endpoint for s3:// locations",
			Value:   defaults.S3Endpoint,
			EnvVars: []string{"PNGMSG_S3_ENDPOINT"},
		},
		&cli.StringFlag{
			Name:    "s3-access-key",
			Usage:   "access key for s3:// locations",
			EnvVars: []string{"MINIO_ROOT_USER", "AWS_ACCESS_KEY_ID"},
		},
		&cli.StringFlag{
			Name:    "s3-secret-key",
			Usage:   "secret key for s3:// locations",
			EnvVars: []string{"MINIO_ROOT_PASSWORD", "AWS_SECRET_ACCESS_KEY"},
		},
		&cli.StringFlag{
			Name:    "s3-region",
			Usage:   "region for s3:// locations",
			Value:   defaults.S3Region,
			EnvVars: []string{"AWS_REGION"},
		},
		&cli.BoolFlag{
			Name:  "s3-ssl",
			Usage: "use https for the s3 endpoint",
		},
		&cli.StringFlag{
			Name:  "s3-driver",
			Usage: "client used for s3:// locations: minio/aws",
			Value: defaults.S3Driver,
		},
	}
}

func expandFlags(compoundFlags ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, group := range compoundFlags {
		flags = append(flags, group...)
	}
	return flags
}

// configFromContext reads the global flags into a validated Config.
func configFromContext(c *cli.Context) (*internal.Config, error) {
	conf := &internal.Config{
		S3Endpoint:    c.String("s3-endpoint"),
		S3AccessKey:   c.String("s3-access-key"),
		S3SecretKey:   c.String("s3-secret-key"),
		S3Region:      c.String("s3-region"),
		S3UseSSL:      c.Bool("s3-ssl"),
		S3Driver:      c.String("s3-driver"),
		RedisPassword: c.String("redis-password"),
		Compression:   c.String("compression"),
		LogLevel:      c.String("loglevel"),
		LogFile:       c.String("logfile"),
		NoColor:       c.Bool("no-color"),
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func setupLogger(conf *internal.Config) error {
	level, err := internal.ParseLogLevel(conf.LogLevel)
	if err != nil {
		return err
	}
	internal.SetLogLevel(level)
	if conf.NoColor {
		internal.DisableLogColor()
	}
	if conf.LogFile != "" {
		if err := internal.SetOutFile(conf.LogFile); err != nil {
			return err
		}
	}
	logger.Debugf("config: endpoint=%s region=%s driver=%s compression=%s", conf.S3Endpoint, conf.S3Region, conf.S3Driver, conf.Compression)
	return nil
}
