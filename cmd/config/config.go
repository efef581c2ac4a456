package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var loadConfigOnce sync.Once
var configInstance AppConfig

func LoadConfig() AppConfig {
	loadConfigOnce.Do(func() {
		viper.SetEnvPrefix("inventar_server")
		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.SetConfigName("server")
		viper.AddConfigPath("config")
		viper.AddConfigPath("/config")
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
		configInstance = AppConfig{
			General: GeneralConfig{
				LogLevel: viper.GetString("general.log_level"),
			},
			HTTP: HTTPConfig{
				Addr:           viper.GetString("http.addr"),
				AllowedOrigins: viper.GetStringSlice("http.allowed_origins"),
			},
			Postgresql: PostgresqlConfig{
				DSN: viper.GetString("database.dsn"),
			},
			Redis: RedisConfig{
				Addr:     viper.GetString("redis.addr"),
				Password: viper.GetString("redis.password"),
				DB:       viper.GetInt("redis.db"),
			},
			Cache: CacheConfig{
				SchemaTTL: viper.GetDuration("cache.schema_ttl"),
			},
		}
	})

	return configInstance
}

type AppConfig struct {
	General    GeneralConfig
	HTTP       HTTPConfig
	Postgresql PostgresqlConfig
	Redis      RedisConfig
	Cache      CacheConfig
}

type GeneralConfig struct {
	LogLevel string
}

type HTTPConfig struct {
	Addr           string
	AllowedOrigins []string
}

type PostgresqlConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CacheConfig struct {
	SchemaTTL time.Duration
}
