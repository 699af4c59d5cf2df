// internal/logging/logging.go
// Run logging for the CLI. The core stays log-free; the app layer
// logs progress and physical-consistency warnings (second-law
// violations, junction mismatches) through a zap logger writing to
// stderr so report output on stdout stays machine-readable.

package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console logger at the given level ("debug", "info",
// "warn", "error") writing to w. Quiet callers pass "error".
func New(w io.Writer, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: bad level %q: %w", level, err)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = "" // run output is deterministic; timestamps add noise
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		lvl,
	)
	return zap.New(core), nil
}

// Nop returns a logger that drops everything (tests, -quiet).
func Nop() *zap.Logger { return zap.NewNop() }
