package config

import (
	"fmt"

	s3storage "github.com/tendant/simple-shop/pkg/simpleshop/storage/s3"
	"github.com/tendant/simple-shop/pkg/simpleshop/urlstrategy"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithDatabase configures the database backend
func WithDatabase(dbType, url string) Option {
	return func(c *ServerConfig) error {
		if dbType != "memory" && dbType != "postgres" {
			return fmt.Errorf("database type must be 'memory' or 'postgres', got: %s", dbType)
		}
		if dbType == "postgres" && url == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.DatabaseType = dbType
		c.DatabaseURL = url
		return nil
	}
}

// WithDatabaseSchema sets the database schema (for Postgres)
func WithDatabaseSchema(schema string) Option {
	return func(c *ServerConfig) error {
		c.DBSchema = schema
		return nil
	}
}

// WithAutoMigrate toggles table creation on startup
func WithAutoMigrate(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.AutoMigrate = enabled
		return nil
	}
}

// WithMemoryStorage keeps exports in memory
func WithMemoryStorage() Option {
	return func(c *ServerConfig) error {
		c.StorageType = "memory"
		return nil
	}
}

// WithFilesystemStorage stores exports under baseDir
func WithFilesystemStorage(baseDir, urlPrefix string) Option {
	return func(c *ServerConfig) error {
		if baseDir == "" {
			return fmt.Errorf("filesystem base directory cannot be empty")
		}
		c.StorageType = "fs"
		c.FS = FSConfig{BaseDir: baseDir, URLPrefix: urlPrefix}
		return nil
	}
}

// WithS3Storage stores exports in an S3-compatible bucket
func WithS3Storage(cfg s3storage.Config) Option {
	return func(c *ServerConfig) error {
		if cfg.Bucket == "" {
			return fmt.Errorf("s3 bucket cannot be empty")
		}
		c.StorageType = "s3"
		c.S3 = cfg
		return nil
	}
}

// WithShop sets the shop name, currency and IANA time zone. Empty values
// keep the current ones.
func WithShop(name, currency, timeZone string) Option {
	return func(c *ServerConfig) error {
		if name != "" {
			c.Shop.Name = name
		}
		if currency != "" {
			c.Shop.Currency = currency
		}
		if timeZone != "" {
			c.Shop.TimeZone = timeZone
		}
		return nil
	}
}

// WithLowStockThreshold sets the default reorder level
func WithLowStockThreshold(threshold int) Option {
	return func(c *ServerConfig) error {
		if threshold < 0 {
			return fmt.Errorf("low stock threshold must not be negative, got: %d", threshold)
		}
		c.Shop.LowStockThreshold = threshold
		return nil
	}
}

// WithAPIKeySHA256 requires clients to send the API key with this SHA-256 hash
func WithAPIKeySHA256(hash string) Option {
	return func(c *ServerConfig) error {
		c.APIKeySHA256 = hash
		return nil
	}
}

// WithSnapshots schedules exports of the given views on the cron spec
func WithSnapshots(spec, format string, views ...string) Option {
	return func(c *ServerConfig) error {
		if spec != "" {
			c.SnapshotSpec = spec
		}
		if format != "" {
			c.SnapshotFormat = format
		}
		c.SnapshotViews = append([]string(nil), views...)
		return nil
	}
}

// WithURLStrategy selects how export download links are built
func WithURLStrategy(strategy, apiBaseURL, cdnBaseURL string) Option {
	return func(c *ServerConfig) error {
		if _, err := urlstrategy.ParseType(strategy); err != nil {
			return err
		}
		c.URLStrategy = strategy
		if apiBaseURL != "" {
			c.APIBaseURL = apiBaseURL
		}
		c.CDNBaseURL = cdnBaseURL
		return nil
	}
}
