package applog

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvLogDir          = "AIA_LOG_DIR"
	defaultLogFilePerm = 0o644
	defaultLogDirPerm  = 0o755
)

// ResolveDir resolves the log directory path.
func ResolveDir() string {
	if dir := strings.TrimSpace(os.Getenv(EnvLogDir)); dir != "" {
		return dir
	}
	return filepath.Join(".", "logs")
}

// dailyWriter appends log lines to a per-day file under the log directory.
type dailyWriter struct {
	mu  sync.Mutex
	dir string
}

func (w *dailyWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	name := "server_" + time.Now().Format("2006-01-02") + ".log"
	file, err := os.OpenFile(filepath.Join(w.dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, defaultLogFilePerm)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return file.Write(p)
}

func (w *dailyWriter) Sync() error { return nil }

// New builds the application logger: console output plus a JSON daily file.
// dev selects human-readable console encoding and debug level.
func New(dev bool) (*zap.Logger, error) {
	dir := ResolveDir()
	if err := os.MkdirAll(dir, defaultLogDirPerm); err != nil {
		return nil, err
	}

	level := zapcore.InfoLevel
	consoleCfg := zap.NewProductionEncoderConfig()
	consoleCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var consoleEnc zapcore.Encoder
	if dev {
		level = zapcore.DebugLevel
		devCfg := zap.NewDevelopmentEncoderConfig()
		devCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEnc = zapcore.NewConsoleEncoder(devCfg)
	} else {
		consoleEnc = zapcore.NewJSONEncoder(consoleCfg)
	}

	fileCfg := zap.NewProductionEncoderConfig()
	fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileEnc := zapcore.NewJSONEncoder(fileCfg)

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEnc, zapcore.Lock(os.Stdout), level),
		zapcore.NewCore(fileEnc, zapcore.AddSync(&dailyWriter{dir: dir}), level),
	)
	return zap.New(core), nil
}
