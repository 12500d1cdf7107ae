package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env       Env
	Minio     MinioConfig
	Local     LocalStoreConfig
	Upload    UploadConfig
	Transfer  TransferConfig
	Lifecycle LifecycleConfig
	NATS      NATSConfig
	Database  DatabaseConfig
	Server    ServerConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type MinioConfig struct {
	Endpoint                   string        `envconfig:"MINIO_ENDPOINT" required:"true"`
	BucketName                 string        `envconfig:"MINIO_BUCKET_NAME" required:"true"`
	AccessKey                  string        `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey                  string        `envconfig:"MINIO_SECRET_KEY" required:"true"`
	MultiPartPresignedDuration time.Duration `envconfig:"MINIO_MULTIPART_PRESIGNED_DURATION" default:"15m"`
	UseSSL                     bool          `envconfig:"MINIO_USE_SSL" default:"false"`
}

type LocalStoreConfig struct {
	Root string `envconfig:"LOCAL_STORE_ROOT" default:"/var/lib/file-drop"`
}

type UploadConfig struct {
	// ChunkSize must exceed the object store's minimum multipart part
	// size (5 MiB for S3-compatible stores).
	ChunkSize    int64         `envconfig:"UPLOAD_CHUNK_SIZE" default:"8388608"` // 8MB
	MaxFileSize  int64         `envconfig:"UPLOAD_MAX_FILE_SIZE" default:"53687091200"` // 50GB
	MinPartCount int           `envconfig:"UPLOAD_MIN_PART_COUNT" default:"1"`
	MaxPartCount int           `envconfig:"UPLOAD_MAX_PART_COUNT" default:"10000"`
	SessionTTL   time.Duration `envconfig:"UPLOAD_SESSION_TTL" default:"30m"`
}

type TransferConfig struct {
	// DefaultRetentionDays drives expiryDate at creation. The legacy
	// 48h flow is the same knob set to 2.
	DefaultRetentionDays int           `envconfig:"TRANSFER_RETENTION_DAYS" default:"7"`
	MaxRetentionDays     int           `envconfig:"TRANSFER_MAX_RETENTION_DAYS" default:"30"`
	DownloadURLTTL       time.Duration `envconfig:"TRANSFER_DOWNLOAD_URL_TTL" default:"3m"`
}

type LifecycleConfig struct {
	// GracePeriod is the delay between expiry and local file removal.
	// One legacy variant ran with 48h; the default follows the newer job.
	GracePeriod   time.Duration `envconfig:"LIFECYCLE_GRACE_PERIOD" default:"24h"`
	OrphanMaxAge  time.Duration `envconfig:"LIFECYCLE_ORPHAN_MAX_AGE" default:"24h"`
	ExpireEvery   time.Duration `envconfig:"LIFECYCLE_EXPIRE_EVERY" default:"24h"`
	PurgeEvery    time.Duration `envconfig:"LIFECYCLE_PURGE_EVERY" default:"24h"`
	OrphanEvery   time.Duration `envconfig:"LIFECYCLE_ORPHAN_EVERY" default:"6h"`
	StorageCallTO time.Duration `envconfig:"LIFECYCLE_STORAGE_CALL_TIMEOUT" default:"30s"`
}

type NATSConfig struct {
	URL          string `envconfig:"NATS_URL" required:"true"`
	StreamName   string `envconfig:"NATS_STREAM_NAME" default:"TRANSFERS"`
	ConsumerName string `envconfig:"NATS_CONSUMER_NAME" default:"file-drop"`
	Subject      string `envconfig:"NATS_SUBJECT" default:"transfer.>"`
	DeliverGroup string `envconfig:"NATS_DELIVER_GROUP" default:"file-drop-ops"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
