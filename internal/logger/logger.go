// Package logger configure the application's logging,
// monitoring, and observability.
//
// It uses *ZeroLog* for logging and integrates with
// *New Relic* to instrument the codebase, forwarding logs,
// metrics, and traces for debugging.
package logger

import (
	"io"
	"os"

	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/tuxaco/countries-api/internal/config"
)

// LoggerService wraps the optional New Relic application instance.
//
// When New Relic is disabled (no license key), nrApp stays nil and every
// consumer treats the service as a no-op: GetApplication() returns nil and
// tracing middleware degrades gracefully.
type LoggerService struct {
	nrApp *newrelic.Application
}

// New builds the application's structured logger and the LoggerService.
//
// Behavior:
//   - Log level comes from observability config (with per-env defaults).
//   - "console" format writes human-friendly output to stderr; "json"
//     writes machine-parseable lines to stdout.
//   - If New Relic is configured, the agent is started and (when log
//     forwarding is enabled) the logger writes through the zerologWriter
//     integration so log lines are decorated with trace linking metadata
//     and forwarded to New Relic.
func New(cfg *config.Config) (*zerolog.Logger, *LoggerService, error) {
	obs := cfg.Observability

	level, err := zerolog.ParseLevel(obs.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	service := &LoggerService{}

	if obs.IsNewRelicEnabled() {
		nrApp, err := newrelic.NewApplication(
			newrelic.ConfigAppName(obs.ServiceName),
			newrelic.ConfigLicense(obs.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(obs.NewRelic.DistributedTracingEnabled),
			newrelic.ConfigAppLogForwardingEnabled(obs.NewRelic.AppLogForwardingEnabled),
		)
		if err != nil {
			return nil, nil, err
		}
		service.nrApp = nrApp
	}

	var out io.Writer
	switch {
	case obs.Logging.Format == "console":
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	case service.nrApp != nil && obs.NewRelic.AppLogForwardingEnabled:
		// zerologWriter decorates each line with trace context and ships
		// it to New Relic while still writing to stdout.
		out = zerologWriter.New(os.Stdout, service.nrApp)
	default:
		out = os.Stdout
	}

	log := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", obs.ServiceName).
		Str("env", obs.Environment).
		Logger()

	return &log, service, nil
}

// GetApplication returns the New Relic application instance, or nil when
// New Relic is disabled or the service itself is nil.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.nrApp
}

// Shutdown flushes remaining telemetry. Safe to call when disabled.
func (s *LoggerService) Shutdown() {
	if s == nil || s.nrApp == nil {
		return
	}
	// Shutdown blocks up to the given duration while data is flushed.
	s.nrApp.Shutdown(0)
}

// WithTraceContext returns a child logger annotated with the transaction's
// trace and span ids, so log lines can be correlated with distributed traces.
func WithTraceContext(log zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return log
	}

	md := txn.GetTraceMetadata()
	builder := log.With()
	if md.TraceID != "" {
		builder = builder.Str("trace.id", md.TraceID)
	}
	if md.SpanID != "" {
		builder = builder.Str("span.id", md.SpanID)
	}
	return builder.Logger()
}
