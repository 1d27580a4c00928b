package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const envPrefix = "USERCENTER"

// Default 是没有配置文件时也能跑起来的默认值（sqlite + 本地端口）。
func Default() Config {
	return Config{
		HTTPServer: HTTPServerConfig{Host: "0.0.0.0", Port: 8080, Prefix: "/api/user", ShutdownTimeout: 10 * time.Second},
		GRPCServer: GRPCServerConfig{Host: "0.0.0.0", Port: 9090},
		Database: DatabaseConfig{
			Driver:        "sqlite",
			DSN:           "usercenter.db",
			Charset:       "utf8mb4",
			MaxIdle:       10,
			MaxConn:       50,
			SlowThreshold: 200 * time.Millisecond,
			AutoMigrate:   true,
		},
		MongoDB:   MongoDBConfig{Database: "usercenter", ConnectTimeout: 3 * time.Second},
		History:   HistoryConfig{Driver: "sql"},
		JWT:       JWTConfig{TTL: 7 * 24 * time.Hour, Issuer: "usercenter"},
		RateLimit: RateLimitConfig{Enabled: true, RPS: 5, Burst: 10, ClientTTL: 10 * time.Minute},
		Log:       LogConfig{Level: "info", MaxSize: 100, MaxBackups: 7, MaxAge: 30},
		Snowflake: SnowflakeConfig{NodeID: 1},
	}
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())
	return v
}

// setDefaults 把默认值注册进 viper，AutomaticEnv 只对已知 key 生效。
func setDefaults(v *viper.Viper, d Config) {
	var m map[string]any
	if err := mapstructure.Decode(d, &m); err != nil {
		panic(fmt.Errorf("encode default config: %w", err))
	}
	for k, val := range flatten("", m) {
		v.SetDefault(k, val)
	}
}

func flatten(prefix string, in map[string]any) map[string]any {
	out := make(map[string]any)
	for k, val := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := val.(map[string]any); ok {
			for sk, sv := range flatten(key, sub) {
				out[sk] = sv
			}
			continue
		}
		out[key] = val
	}
	return out
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	err := v.Unmarshal(&c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return Config{}, err
	}
	// 环境变量 JWT_SECRET 优先于配置文件。
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	return c, nil
}

func load(configPath string, watch bool) (Config, error) {
	if !fileExist(configPath) {
		return Config{}, fmt.Errorf("config file not exist, configPath=%v", configPath)
	}

	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", configPath, err)
	}
	c, err := decode(v)
	if err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", configPath, err)
	}
	publish(c)

	if watch {
		v.OnConfigChange(func(e fsnotify.Event) {
			next, err := decode(v)
			if err != nil {
				// 热更新失败保留旧配置，不影响运行中的服务。
				log.Printf("config reload failed, keep previous: file=%s err=%v", e.Name, err)
				return
			}
			log.Printf("config reloaded: file=%s op=%s", e.Name, e.Op)
			publish(next)
		})
		v.WatchConfig()
	}
	return c, nil
}
