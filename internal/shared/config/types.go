package config

import "time"

type Config struct {
	HTTPServer HTTPServerConfig `mapstructure:"httpserver"`
	GRPCServer GRPCServerConfig `mapstructure:"grpcserver"`
	Database   DatabaseConfig   `mapstructure:"database"`
	MongoDB    MongoDBConfig    `mapstructure:"mongodb"`
	History    HistoryConfig    `mapstructure:"history"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Cors       CorsConfig       `mapstructure:"cors"`
	Log        LogConfig        `mapstructure:"log"`
	Snowflake  SnowflakeConfig  `mapstructure:"snowflake"`
}

type HTTPServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// Prefix 是用户路由挂载的父路径，例如 /api/user。
	Prefix          string        `mapstructure:"prefix"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type GRPCServerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // mysql/postgres/sqlite
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
	// DSN 非空时直接使用，忽略上面的拼装字段；sqlite 下就是文件路径。
	DSN           string        `mapstructure:"dsn"`
	MaxIdle       int           `mapstructure:"max_idle"`
	MaxConn       int           `mapstructure:"max_conn"`
	SlowThreshold time.Duration `mapstructure:"slow_threshold"`
	AutoMigrate   bool          `mapstructure:"auto_migrate"`
}

type MongoDBConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type HistoryConfig struct {
	Driver string `mapstructure:"driver"` // sql/mongo
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
	Issuer string        `mapstructure:"issuer"`
}

type RateLimitConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	RPS       float64       `mapstructure:"rps"`
	Burst     int           `mapstructure:"burst"`
	ClientTTL time.Duration `mapstructure:"client_ttl"`
}

type CorsConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type LogConfig struct {
	FileDir    string `mapstructure:"file_dir"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
	Level      string `mapstructure:"level"`
	Dev        bool   `mapstructure:"dev"`
}

type SnowflakeConfig struct {
	NodeID int64 `mapstructure:"node_id"`
}
