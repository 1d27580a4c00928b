package logs

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	glogger "gorm.io/gorm/logger"

	"UserCenter/modules/kit/logx"
)

// GormLogger 把 gorm 的日志接到 logx.Logger，SQL 日志带上请求的 trace_id。
type GormLogger struct {
	log           logx.Logger
	level         glogger.LogLevel
	slowThreshold time.Duration
}

func NewGormLogger(l logx.Logger, level glogger.LogLevel, slowThreshold time.Duration) *GormLogger {
	if l == nil {
		l = logx.Nop()
	}
	return &GormLogger{log: l, level: level, slowThreshold: slowThreshold}
}

func (l *GormLogger) LogMode(level glogger.LogLevel) glogger.Interface {
	next := *l
	next.level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= glogger.Info {
		l.log.WithContext(ctx).Info("gorm: "+msg, zap.Any("data", data))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= glogger.Warn {
		l.log.WithContext(ctx).Warn("gorm: "+msg, zap.Any("data", data))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= glogger.Error {
		l.log.WithContext(ctx).Error("gorm: "+msg, zap.Any("data", data))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= glogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	log := l.log.WithContext(ctx)

	switch {
	// 查不到记录是业务语义，由仓储层转换，不当作 SQL 错误。
	case err != nil && !errors.Is(err, glogger.ErrRecordNotFound):
		log.Error("gorm trace error", append(fields, zap.Error(err))...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		log.Warn("gorm slow query", fields...)
	case l.level >= glogger.Info:
		log.Debug("gorm trace", fields...)
	}
}
