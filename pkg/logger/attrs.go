package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

// instance_id: hostname + короткий случайный суффикс,
// чтобы различать реплики за балансировщиком
func ensureInstanceID(v string) string {
	if v != "" {
		return v
	}

	hn, err := os.Hostname()
	if err != nil || hn == "" {
		hn = "chat"
	}

	return hn + "-" + uuid.New().String()[:8]
}

func commonAttr(cfg Config) []slog.Attr {
	return []slog.Attr{
		slog.String("service", cfg.Service),
		slog.String("env", string(cfg.Env)),
		slog.String("version", cfg.Version),
		slog.String("instance_id", cfg.InstanceID),
		slog.Int("pid", os.Getpid()),
		slog.Time("started_at", time.Now()),
	}
}
