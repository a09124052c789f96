package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/blindcalc/internal/flagx"
)

// JsonConfig mirrors Config for JSON files. Absent or empty fields leave
// the current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC string   `json:"endpoint_addr_grpc"`
	StorageBackend   string   `json:"storage_backend"`
	DatabaseDSN      string   `json:"database_dsn"`
	SecretKey        string   `json:"secret_key"`
	LogLevel         string   `json:"log_level"`
	Domain           []string `json:"domain"`
	MaxQueryLength   int      `json:"max_query_length"`
	S3RootUser       string   `json:"s3_root_user"`
	S3RootPassword   string   `json:"s3_root_password"`
	S3Bucket         string   `json:"s3_bucket"`
	S3Region         string   `json:"s3_region"`
	S3BaseEndpoint   string   `json:"s3_base_endpoint"`
}

// parseJson loads the file named by -c/-config, if any, into config.
// An unreadable file or invalid JSON panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	if len(c.Domain) > 0 {
		config.Domain = c.Domain
	}
	if c.MaxQueryLength > 0 {
		config.MaxQueryLength = c.MaxQueryLength
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
