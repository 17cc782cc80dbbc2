package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/ogmeta"
)

// Ensure LoggingParser implements ogmeta.Parser.
var _ ogmeta.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with debug logging.
type LoggingParser struct {
	next   ogmeta.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next ogmeta.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the number of keys found.
func (p *LoggingParser) Parse(html string) (md *ogmeta.Metadata) {
	defer func(begin time.Time) {
		p.logger.Info("parse",
			"bytes", len(html),
			"keys", md.Len(),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return p.next.Parse(html)
}
