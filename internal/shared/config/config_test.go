package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
httpserver:
  port: 18080
  prefix: /api/v2/user
  shutdown_timeout: 3s
database:
  driver: mysql
  host: 127.0.0.1
  port: 3306
  user: root
  dbname: usercenter
jwt:
  secret: from-file
  ttl: 24h
cors:
  allow_origins: ["http://a.example", "http://b.example"]
log:
  level: debug
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_文件值覆盖默认值(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	c, err := load(writeConfig(t, sampleYAML), false)
	require.NoError(t, err)

	assert.Equal(t, 18080, c.HTTPServer.Port)
	assert.Equal(t, "/api/v2/user", c.HTTPServer.Prefix)
	assert.Equal(t, 3*time.Second, c.HTTPServer.ShutdownTimeout)
	assert.Equal(t, "mysql", c.Database.Driver)
	assert.Equal(t, 24*time.Hour, c.JWT.TTL)
	assert.Equal(t, "from-file", c.JWT.Secret)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, c.Cors.AllowOrigins)

	// 未配置的 key 回落到默认值
	assert.Equal(t, "0.0.0.0", c.HTTPServer.Host)
	assert.Equal(t, 200*time.Millisecond, c.Database.SlowThreshold)
	assert.Equal(t, 10, c.RateLimit.Burst)
	assert.Equal(t, "sql", c.History.Driver)
}

func TestLoad_环境变量优先(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("USERCENTER_HTTPSERVER_PORT", "19090")

	c, err := load(writeConfig(t, sampleYAML), false)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.JWT.Secret)
	assert.Equal(t, 19090, c.HTTPServer.Port)
}

func TestLoad_文件不存在返回错误(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestPublish_更新快照并通知订阅者(t *testing.T) {
	var got Config
	OnChange(func(c Config) { got = c })

	next := Default()
	next.Log.Level = "warn"
	publish(next)

	assert.Equal(t, "warn", got.Log.Level)
	assert.Equal(t, "warn", Get().Log.Level)
}

func TestFindConfigUpward_向上查找(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, defaultConfigRelPath), []byte("log: {}\n"), 0o600))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := findConfigUpward(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, defaultConfigRelPath), path)
}
