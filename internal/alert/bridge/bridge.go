// Package bridge provides the server-side navigation bridge. The server
// cannot move a client between screens, so the handoff is recorded in the
// logs and the route travels back to the client in the response body.
package bridge

import "log/slog"

type Logging struct {
	logger *slog.Logger
}

func NewLogging(logger *slog.Logger) *Logging {
	return &Logging{logger: logger}
}

// Navigate records the route handoff. Params are logged as-is; they carry
// RUTs, which already appear throughout the request logs.
func (b *Logging) Navigate(route string, params map[string]string) {
	b.logger.Info("navigation handoff",
		slog.String("route", route),
		slog.Any("params", params),
	)
}
