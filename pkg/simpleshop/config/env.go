package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	s3storage "github.com/tendant/simple-shop/pkg/simpleshop/storage/s3"
)

// EnvConfig is the flat, cleanenv-tagged form of ServerConfig read from the
// environment or a config file.
type EnvConfig struct {
	Port        string `yaml:"port" json:"port" toml:"port" env:"SHOP_PORT" env-default:"8080" env-description:"HTTP listen port"`
	Environment string `yaml:"environment" json:"environment" toml:"environment" env:"SHOP_ENVIRONMENT" env-default:"development" env-description:"development, production or testing"`

	DatabaseURL string `yaml:"database_url" json:"database_url" toml:"database_url" env:"SHOP_DATABASE_URL" env-default:"memory" env-description:"postgres:// URL, or memory"`
	DBSchema    string `yaml:"db_schema" json:"db_schema" toml:"db_schema" env:"SHOP_DB_SCHEMA" env-default:"shop" env-description:"Postgres schema"`
	AutoMigrate bool   `yaml:"auto_migrate" json:"auto_migrate" toml:"auto_migrate" env:"SHOP_AUTO_MIGRATE" env-default:"true" env-description:"create missing tables on startup"`

	Storage      string `yaml:"storage" json:"storage" toml:"storage" env:"SHOP_STORAGE" env-default:"memory" env-description:"report storage: memory, fs or s3"`
	FSDir        string `yaml:"fs_dir" json:"fs_dir" toml:"fs_dir" env:"SHOP_FS_DIR" env-default:"./data/reports"`
	FSURLPrefix  string `yaml:"fs_url_prefix" json:"fs_url_prefix" toml:"fs_url_prefix" env:"SHOP_FS_URL_PREFIX"`
	S3Bucket     string `yaml:"s3_bucket" json:"s3_bucket" toml:"s3_bucket" env:"SHOP_S3_BUCKET"`
	S3Region     string `yaml:"s3_region" json:"s3_region" toml:"s3_region" env:"SHOP_S3_REGION" env-default:"us-east-1"`
	S3Endpoint   string `yaml:"s3_endpoint" json:"s3_endpoint" toml:"s3_endpoint" env:"SHOP_S3_ENDPOINT"`
	S3AccessKey  string `yaml:"s3_access_key_id" json:"s3_access_key_id" toml:"s3_access_key_id" env:"SHOP_S3_ACCESS_KEY_ID"`
	S3SecretKey  string `yaml:"s3_secret_access_key" json:"s3_secret_access_key" toml:"s3_secret_access_key" env:"SHOP_S3_SECRET_ACCESS_KEY"`
	S3PathStyle  bool   `yaml:"s3_path_style" json:"s3_path_style" toml:"s3_path_style" env:"SHOP_S3_PATH_STYLE" env-default:"false"`
	S3Presign    int    `yaml:"s3_presign_seconds" json:"s3_presign_seconds" toml:"s3_presign_seconds" env:"SHOP_S3_PRESIGN_SECONDS" env-default:"3600"`
	S3MakeBucket bool   `yaml:"s3_create_bucket" json:"s3_create_bucket" toml:"s3_create_bucket" env:"SHOP_S3_CREATE_BUCKET" env-default:"false"`

	URLStrategy string `yaml:"url_strategy" json:"url_strategy" toml:"url_strategy" env:"SHOP_URL_STRATEGY" env-default:"storage-delegated" env-description:"export links: storage-delegated, api or cdn"`
	APIBaseURL  string `yaml:"api_base_url" json:"api_base_url" toml:"api_base_url" env:"SHOP_API_BASE_URL" env-default:"/api/v1" env-description:"public prefix of the API routes"`
	CDNBaseURL  string `yaml:"cdn_base_url" json:"cdn_base_url" toml:"cdn_base_url" env:"SHOP_CDN_BASE_URL"`

	ShopName          string `yaml:"shop_name" json:"shop_name" toml:"shop_name" env:"SHOP_NAME" env-default:"Simple Shop"`
	Currency          string `yaml:"currency" json:"currency" toml:"currency" env:"SHOP_CURRENCY" env-default:"USD"`
	TimeZone          string `yaml:"time_zone" json:"time_zone" toml:"time_zone" env:"SHOP_TIMEZONE" env-default:"UTC" env-description:"IANA time zone of the shop"`
	LowStockThreshold int    `yaml:"low_stock_threshold" json:"low_stock_threshold" toml:"low_stock_threshold" env:"SHOP_LOW_STOCK_THRESHOLD" env-default:"5"`

	APIKeySHA256 string `yaml:"api_key_sha256" json:"api_key_sha256" toml:"api_key_sha256" env:"SHOP_API_KEY_SHA256" env-description:"SHA-256 of the API key; empty disables the check"`

	SnapshotSpec   string   `yaml:"snapshot_spec" json:"snapshot_spec" toml:"snapshot_spec" env:"SHOP_SNAPSHOT_SPEC" env-default:"0 2 * * *"`
	SnapshotViews  []string `yaml:"snapshot_views" json:"snapshot_views" toml:"snapshot_views" env:"SHOP_SNAPSHOT_VIEWS" env-separator:","`
	SnapshotFormat string   `yaml:"snapshot_format" json:"snapshot_format" toml:"snapshot_format" env:"SHOP_SNAPSHOT_FORMAT" env-default:"csv"`
}

// FromEnv reads SHOP_* environment variables.
func FromEnv() Option {
	return func(c *ServerConfig) error {
		var env EnvConfig
		if err := cleanenv.ReadEnv(&env); err != nil {
			return fmt.Errorf("read environment: %w", err)
		}
		return env.apply(c)
	}
}

// FromFile reads a YAML, JSON, TOML or .env file. Environment variables
// override values from the file.
func FromFile(path string) Option {
	return func(c *ServerConfig) error {
		var env EnvConfig
		if err := cleanenv.ReadConfig(path, &env); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return env.apply(c)
	}
}

// Usage describes the environment variables FromEnv reads.
func Usage() string {
	var env EnvConfig
	text, err := cleanenv.GetDescription(&env, nil)
	if err != nil {
		return err.Error()
	}
	return text
}

func (e EnvConfig) apply(c *ServerConfig) error {
	c.Port = e.Port
	c.Environment = e.Environment

	switch url := e.DatabaseURL; {
	case url == "" || url == "memory":
		c.DatabaseType = "memory"
		c.DatabaseURL = ""
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		c.DatabaseType = "postgres"
		c.DatabaseURL = url
	default:
		return fmt.Errorf("unsupported SHOP_DATABASE_URL format: %s (use 'memory' or 'postgres://...')", url)
	}
	c.DBSchema = e.DBSchema
	c.AutoMigrate = e.AutoMigrate

	c.StorageType = e.Storage
	c.FS = FSConfig{BaseDir: e.FSDir, URLPrefix: e.FSURLPrefix}
	c.S3 = s3storage.Config{
		Region:                 e.S3Region,
		Bucket:                 e.S3Bucket,
		AccessKeyID:            e.S3AccessKey,
		SecretAccessKey:        e.S3SecretKey,
		Endpoint:               e.S3Endpoint,
		UsePathStyle:           e.S3PathStyle,
		PresignDuration:        e.S3Presign,
		CreateBucketIfNotExist: e.S3MakeBucket,
	}

	c.URLStrategy = e.URLStrategy
	c.APIBaseURL = e.APIBaseURL
	c.CDNBaseURL = e.CDNBaseURL

	c.Shop = ShopConfig{
		Name:              e.ShopName,
		Currency:          e.Currency,
		TimeZone:          e.TimeZone,
		LowStockThreshold: e.LowStockThreshold,
	}
	c.APIKeySHA256 = e.APIKeySHA256

	c.SnapshotSpec = e.SnapshotSpec
	c.SnapshotFormat = e.SnapshotFormat
	c.SnapshotViews = nil
	for _, v := range e.SnapshotViews {
		if v = strings.TrimSpace(v); v != "" {
			c.SnapshotViews = append(c.SnapshotViews, v)
		}
	}
	return nil
}
