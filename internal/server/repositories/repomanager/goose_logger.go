package repomanager

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/bookstore/internal/logging"
	"github.com/pressly/goose/v3"
)

// gooseLogger forwards goose output to the structured logger.
type gooseLogger struct {
	ctx context.Context
	log logging.Logger
}

func newGooseLogger(ctx context.Context, l logging.Logger) goose.Logger {
	if l == nil {
		return goose.NopLogger()
	}
	return &gooseLogger{ctx: ctx, log: l.With("module", "migrations")}
}

func (g *gooseLogger) Printf(format string, v ...any) {
	g.log.Info(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf keeps goose's contract: the process exits.
func (g *gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}
