package telemetry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/d60-Lab/blog-admin/config"
)

// InitSentry 配置了 DSN 才启用；返回值表示是否启用以及退出前的 flush
func InitSentry(cfg config.SentryConfig) (bool, func(), error) {
	if cfg.DSN == "" {
		return false, func() {}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		AttachStacktrace: true,
	})
	if err != nil {
		return false, func() {}, fmt.Errorf("init sentry: %w", err)
	}
	return true, func() { sentry.Flush(2 * time.Second) }, nil
}
