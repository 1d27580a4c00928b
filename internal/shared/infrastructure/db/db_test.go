package db

import (
	"testing"

	"UserCenter/internal/shared/config"
	"UserCenter/modules/kit/logx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN_按驱动拼装(t *testing.T) {
	mysqlDSN, err := DSN(config.DatabaseConfig{Driver: "mysql", User: "root", Password: "pw", Host: "127.0.0.1", Port: 3306, DBName: "uc"})
	require.NoError(t, err)
	assert.Equal(t, "root:pw@tcp(127.0.0.1:3306)/uc?charset=utf8mb4&parseTime=True&loc=Local", mysqlDSN)

	pgDSN, err := DSN(config.DatabaseConfig{Driver: "postgres", User: "pg", Password: "pw", Host: "db", Port: 5432, DBName: "uc"})
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=pg password=pw dbname=uc sslmode=disable", pgDSN)

	explicit, err := DSN(config.DatabaseConfig{Driver: "sqlite", DSN: "test.db"})
	require.NoError(t, err)
	assert.Equal(t, "test.db", explicit)

	_, err = DSN(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestDSN_sqlite缺少dsn报错(t *testing.T) {
	_, err := DSN(config.DatabaseConfig{Driver: "sqlite"})
	require.Error(t, err)

	_, err = Open(config.DatabaseConfig{Driver: "sqlite"}, logx.Nop())
	require.Error(t, err)
}

func TestOpen_sqlite内存库(t *testing.T) {
	gdb, err := Open(config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:", MaxConn: 1}, logx.Nop())
	require.NoError(t, err)

	var one int
	require.NoError(t, gdb.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestOpen_不支持的驱动(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle"}, logx.Nop())
	assert.Error(t, err)
}
