package config

// StoreBackend selects the shared live-state store implementation.
type StoreBackend string

const (
	// StoreBackendMemory keeps live state in-process. Single instance only.
	StoreBackendMemory StoreBackend = "memory"
	// StoreBackendRedis shares live state across instances through Redis.
	StoreBackendRedis StoreBackend = "redis"
)

// StoreConfig contains shared live-state store configuration.
type StoreConfig struct {
	// Backend selects where live job and parker state lives.
	// Valid values: memory, redis.
	Backend StoreBackend `env:"STORE_BACKEND" envDefault:"memory"`

	// Redis connection settings, used when Backend is redis.
	Redis RedisConfig `envPrefix:"REDIS_"`
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// Sanitize applies guardrails to store configuration values.
func (s *StoreConfig) Sanitize() {
	switch s.Backend {
	case StoreBackendMemory, StoreBackendRedis:
	default:
		s.Backend = StoreBackendMemory
	}
}
