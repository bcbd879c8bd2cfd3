/* router.go
 * Wires the document change topics to their trigger handlers on a watermill
 * router. Handlers consume only; nothing is re-published.
 */

package trigger

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.uber.org/zap"
)

// NewRouter builds the trigger router with both document topics bound.
func NewRouter(handlers *Handlers, subscriber message.Subscriber, log *zap.Logger) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, NewWatermillLogger(log))
	if err != nil {
		return nil, err
	}

	router.AddMiddleware(middleware.Recoverer)

	router.AddNoPublisherHandler(
		"triggers.matches_written",
		TopicMatches,
		subscriber,
		handlers.OnMatchWritten,
	)
	router.AddNoPublisherHandler(
		"triggers.groups_written",
		TopicGroups,
		subscriber,
		handlers.OnGroupWritten,
	)

	return router, nil
}

// zapLoggerAdapter bridges watermill's logging to zap.
type zapLoggerAdapter struct {
	log *zap.Logger
}

func NewWatermillLogger(log *zap.Logger) watermill.LoggerAdapter {
	return &zapLoggerAdapter{log: log}
}

func (a *zapLoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(zapFields(fields), zap.Error(err))...)
}

func (a *zapLoggerAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, zapFields(fields)...)
}

func (a *zapLoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, zapFields(fields)...)
}

func (a *zapLoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, zapFields(fields)...)
}

func (a *zapLoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &zapLoggerAdapter{log: a.log.With(zapFields(fields)...)}
}

func zapFields(fields watermill.LogFields) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
