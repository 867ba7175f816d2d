package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultService = "usuarios-console"

var (
	log   *zap.Logger
	sugar *zap.SugaredLogger
	level = zap.NewAtomicLevelAt(zap.InfoLevel)
)

// New builds a zap logger for service.
// env "dev" writes colored console lines; any other env writes JSON.
// An unknown level falls back to info.
func New(service, env, lvl string) (*zap.Logger, error) {
	return build(service, env, lvl, zap.NewAtomicLevel())
}

func build(service, env, lvl string, atom zap.AtomicLevel) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if env == "dev" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	parsed, err := zapcore.ParseLevel(lvl)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	atom.SetLevel(parsed)
	cfg.Level = atom

	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.InitialFields = map[string]any{"service": service}

	return cfg.Build(zap.AddCaller())
}

// Init installs the process-wide logger. It panics when zap cannot be built.
func Init(service, env, lvl string) {
	l, err := build(service, env, lvl, level)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	log = l
	sugar = l.Sugar()

	sugar.Infow("logger initialized",
		"env", env,
		"level", level.String(),
	)
}

// L returns the process-wide logger, initializing a dev logger on first use.
func L() *zap.Logger {
	if log == nil {
		Init(defaultService, "dev", "info")
	}
	return log
}

// S returns the sugared form of L.
func S() *zap.SugaredLogger {
	if sugar == nil {
		Init(defaultService, "dev", "info")
	}
	return sugar
}

// Named returns L scoped to a component, e.g. "auth" or "usuarios".
func Named(component string) *zap.Logger {
	return L().Named(component)
}

// SetLevel changes the level of the process-wide logger at runtime.
func SetLevel(lvl string) error {
	parsed, err := zapcore.ParseLevel(lvl)
	if err != nil {
		return err
	}
	level.SetLevel(parsed)
	return nil
}

// Sync flushes buffered entries; defer it in main.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
