package storage

// Config holds configuration for the report store.
type Config struct {
	// Endpoint is host:port of the S3 compatible service. An https:// prefix enables TLS.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL forces TLS for endpoints given without scheme.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket receives published reports. The integrity check can create it.
	Bucket string `mapstructure:"bucket" default:"fehlmengen"`
	// Region is used when the bucket is created. Empty lets the server decide.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds connection setup and the wait for a response.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
