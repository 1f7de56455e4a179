package logging

import (
	"io"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// NewLogger returns a logfmt logger writing to w that drops entries below
// the named level (debug, info, warn, error).
func NewLogger(w io.Writer, lvl string) gokitlog.Logger {
	logger := gokitlog.NewLogfmtLogger(gokitlog.NewSyncWriter(w))
	logger = gokitlog.With(logger, "ts", gokitlog.DefaultTimestampUTC, "caller", gokitlog.DefaultCaller)
	return level.NewFilter(logger, allow(lvl))
}

func allow(lvl string) level.Option {
	switch lvl {
	case "debug":
		return level.AllowDebug()
	case "info":
		return level.AllowInfo()
	case "error":
		return level.AllowError()
	default:
		return level.AllowWarn()
	}
}
