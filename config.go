// Package catalog holds the configuration shared by all parts of the product catalog.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/go-arrower/catalog/postgres"
	"github.com/go-arrower/catalog/secret"
)

// EnvPrefix is the prefix of all environment variables overwriting the configuration,
// e.g. CATALOG_POSTGRES_HOST overwrites postgres.host.
const EnvPrefix = "CATALOG"

// Config is a structure used for service configuration.
// It is intended to be mapped by viper.
type Config struct {
	Environment Environment `mapstructure:"environment"`

	Postgres Postgres `mapstructure:"postgres"`
	OTEL     OTEL     `mapstructure:"otel"`
	Log      Log      `mapstructure:"log"`
	Store    Store    `mapstructure:"store"`
}

const (
	LocalEnv       Environment = "local"
	TestEnv        Environment = "test"
	DevelopmentEnv Environment = "dev"
	ProductionEnv  Environment = "prod"
)

// Environments is the list of all supported environments.
func Environments() []Environment {
	return []Environment{LocalEnv, TestEnv, DevelopmentEnv, ProductionEnv}
}

type Environment string

const (
	DriverPGx = "pgx"
	DriverPQ  = "pq"

	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type (
	Postgres struct {
		User     string        `mapstructure:"user"      json:"user"`
		Password secret.Secret `mapstructure:"password"  json:"-"`
		Database string        `mapstructure:"database"  json:"database"`
		Host     string        `mapstructure:"host"      json:"host"`
		Port     int           `mapstructure:"port"      json:"port"`
		SSLMode  string        `mapstructure:"ssl_mode"  json:"sslMode"`
		MaxConns int           `mapstructure:"max_conns" json:"maxConns"`
		// Driver is either DriverPGx or DriverPQ.
		Driver string `mapstructure:"driver" json:"driver"`
	}

	// OTEL configures the export of traces. If Host is empty, nothing is exported.
	OTEL struct {
		Host     string `mapstructure:"host"     json:"host"`
		Port     int    `mapstructure:"port"     json:"port"`
		Hostname string `mapstructure:"hostname" json:"hostname"`
	}

	Log struct {
		Level string `mapstructure:"level" json:"level"`
	}

	// Store selects the repository products are kept in.
	Store struct {
		// Kind is either StoreMemory or StorePostgres.
		Kind string `mapstructure:"kind" json:"kind"`
		// Dir is where the memory store persists its data. If empty, nothing is persisted.
		Dir string `mapstructure:"dir" json:"dir"`
	}
)

// Config returns the configuration used to connect to PostgreSQL.
func (p Postgres) Config() postgres.Config {
	return postgres.Config{ //nolint:exhaustruct // use the embedded migrations
		User:     p.User,
		Password: p.Password.Secret(),
		Database: p.Database,
		SSLMode:  p.SSLMode,
		Host:     p.Host,
		Port:     p.Port,
		MaxConns: p.MaxConns,
	}
}

// SlogLevel parses Level, e.g. "debug" or "INFO+2". An empty Level is info.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level

	if l.Level == "" {
		return slog.LevelInfo, nil
	}

	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: invalid log level: %v", ErrConfigLoadFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	return level, nil
}

// DefaultViper returns a new viper instance with all default values
// from Config set. Every value can be overwritten by an environment variable with the EnvPrefix.
func DefaultViper() *Viper {
	vip := viper.New()

	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vip.AutomaticEnv()

	vip.SetDefault("environment", "local")

	vip.SetDefault("postgres.user", "catalog")
	vip.SetDefault("postgres.password", "secret")
	vip.SetDefault("postgres.database", "catalog")
	vip.SetDefault("postgres.host", "localhost")
	vip.SetDefault("postgres.port", 5432)
	vip.SetDefault("postgres.ssl_mode", "disable")
	vip.SetDefault("postgres.max_conns", 10)
	vip.SetDefault("postgres.driver", DriverPGx)

	vip.SetDefault("otel.host", "")
	vip.SetDefault("otel.port", 4317)
	vip.SetDefault("otel.hostname", "")

	vip.SetDefault("log.level", "info")

	vip.SetDefault("store.kind", StoreMemory)
	vip.SetDefault("store.dir", "")

	return &Viper{Viper: vip}
}

// LoadConfig reads the configuration from file, if given, and the environment.
func LoadConfig(file string) (Config, error) {
	vip := DefaultViper()

	if file != "" {
		vip.SetConfigFile(file)

		if err := vip.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: could not read config file: %v", ErrConfigLoadFailed, err) //nolint:errorlint,lll // prevent err in api
		}
	}

	conf := Config{}
	if err := vip.Unmarshal(&conf); err != nil {
		return Config{}, err
	}

	return conf, nil
}

var ErrConfigLoadFailed = errors.New("loading configuration failed")

// Viper is a wrapper around viper.Viper for configuration loading.
// The only purpose is to overwrite the Unmarshal method,
// so that secret.Secret and Environment are decoded without the developer
// having to think about it when using DefaultViper.
type Viper struct {
	*viper.Viper
}

func (vip *Viper) Unmarshal(rawVal any, opts ...viper.DecoderConfigOption) error {
	opts = append(opts, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		allowedEnvironmentHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)))

	err := vip.Viper.Unmarshal(rawVal, opts...)
	if err != nil {
		return fmt.Errorf("%w: could not decode configuration into struct: %v", ErrConfigLoadFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	return nil
}

func allowedEnvironmentHookFunc() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(Environment("")) {
			return data, nil
		}

		env := Environments()
		if s, ok := data.(string); ok && slices.Contains(env, Environment(s)) {
			return data, nil
		}

		e := make([]string, 0, len(env))
		for _, env := range env {
			e = append(e, string(env))
		}

		return data, fmt.Errorf("value is not allowed, use one of: %s", strings.Join(e, ", ")) //nolint:err113,lll // accept dynamic error
	}
}
