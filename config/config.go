// config/config.go
package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Log           LogConfiguration
	Source        SourceConfiguration
	Cache         CacheConfiguration
	Redis         RedisConfiguration
	S3            S3Configuration
	Neo4j         DatabaseConfiguration
	Elasticsearch ElasticsearchConfiguration
	Audit         AuditConfiguration
	Auth          AuthConfiguration
	RateLimit     RateLimitConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port string
}

type LogConfiguration struct {
	Dir string
}

// SourceConfiguration describes the upstream system of record
type SourceConfiguration struct {
	BaseURL         string
	ResponseTimeout time.Duration
	ConnectTimeout  time.Duration
	RetryMax        int
}

type CacheConfiguration struct {
	DefaultTTL    time.Duration
	ListTTL       time.Duration
	SingleFlight  bool
	AsyncPopulate bool
	Tiers         []string
	Memory        MemoryCacheConfiguration
}

type MemoryCacheConfiguration struct {
	CleanupInterval time.Duration
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Addr          string
	Password      string
	DB            int
	DialTimeout   time.Duration
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	PoolSize      int
	PoolTimeout   time.Duration
	Prefix        string
	EncryptionKey string
}

type S3Configuration struct {
	Bucket       string
	Region       string
	Endpoint     string
	UsePathStyle bool
	Prefix       string
}

// DatabaseConfiguration stores data for database connection
type DatabaseConfiguration struct {
	URI      string
	Username string
	Password string
	Database string
}

// ElasticsearchConfiguration stores data for Elasticsearch connection
type ElasticsearchConfiguration struct {
	URL string
}

type AuditConfiguration struct {
	Enabled bool
	Index   string
}

type AuthConfiguration struct {
	JWTSecret      string
	RequiredGroups []string
}

type RateLimitConfiguration struct {
	Requests int
	Window   time.Duration
}

var config *Configuration

// SetDefaults registers every default on the global viper instance.
func SetDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("log.dir", "")

	viper.SetDefault("source.baseURL", "https://jsonplaceholder.typicode.com")
	viper.SetDefault("source.responseTimeout", "2s")
	viper.SetDefault("source.connectTimeout", "1500ms")
	viper.SetDefault("source.retryMax", 2)

	viper.SetDefault("cache.defaultTTL", "10m")
	viper.SetDefault("cache.listTTL", "1m")
	viper.SetDefault("cache.singleFlight", true)
	viper.SetDefault("cache.asyncPopulate", false)
	viper.SetDefault("cache.tiers", []string{"memory"})
	viper.SetDefault("cache.memory.cleanupInterval", "1m")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.dialTimeout", "5s")
	viper.SetDefault("redis.readTimeout", "3s")
	viper.SetDefault("redis.writeTimeout", "3s")
	viper.SetDefault("redis.poolSize", 10)
	viper.SetDefault("redis.poolTimeout", "4s")
	viper.SetDefault("redis.prefix", "postcache")
	viper.SetDefault("redis.encryptionKey", "")

	viper.SetDefault("s3.bucket", "")
	viper.SetDefault("s3.region", "us-east-1")
	viper.SetDefault("s3.endpoint", "")
	viper.SetDefault("s3.usePathStyle", false)
	viper.SetDefault("s3.prefix", "postcache")

	viper.SetDefault("neo4j.uri", "bolt://localhost:7687")
	viper.SetDefault("neo4j.username", "neo4j")
	viper.SetDefault("neo4j.password", "")
	viper.SetDefault("neo4j.database", "neo4j")

	viper.SetDefault("elasticsearch.url", "http://localhost:9200")
	viper.SetDefault("audit.enabled", false)
	viper.SetDefault("audit.index", "cache-audit")

	viper.SetDefault("auth.jwtSecret", "")
	viper.SetDefault("auth.requiredGroups", []string{"cache-admin"})

	viper.SetDefault("rateLimit.requests", 100)
	viper.SetDefault("rateLimit.window", "1m")
}

func InitConfig() error {
	viper.AddConfigPath("config") // path to look for the config file in
	viper.SetConfigName("config") // name of the config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	// CACHE_DEFAULTTTL overrides cache.defaultTTL
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	// Unmarshal the configuration into the Configuration struct
	err := viper.Unmarshal(&config)
	if err != nil {
		return err
	}

	return nil
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool retrieves a boolean value from the configuration
func GetBool(key string) bool {
	return viper.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

func GetStringSlice(key string) []string {
	return viper.GetStringSlice(key)
}
