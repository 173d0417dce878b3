package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/MineClicker_Go/internal/config"
	"github.com/osse101/MineClicker_Go/internal/logger"
)

// SetupLogger installs the default logger writing to stdout and a timestamped
// session file under cfg.LogDir. The caller must close the returned file.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateLogsDir, err)
	}

	cleanupLogs(cfg.LogDir, LogFileRetentionCount)

	timestamp := time.Now().Format(LogFileTimestampFormat)
	logFileName := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, timestamp))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedOpenLogFile, err)
	}

	loggerCfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.Version, cfg.Environment)
	logger.InitLoggerWithWriter(loggerCfg, io.MultiWriter(os.Stdout, logFile))

	slog.Info(LogMsgLoggingInitialized, "level", loggerCfg.LogLevel(), "file", logFileName)
	slog.Info(LogMsgStarting,
		"environment", cfg.Environment,
		"storage", cfg.Storage,
		"version", cfg.Version)
	slog.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"db_host", cfg.DBHost,
		"db_name", cfg.DBName,
		"payout_policy", cfg.ClickPayoutPolicy,
		"dev_mode", cfg.DevMode)

	return logFile, nil
}

// cleanupLogs removes the oldest session logs so at most keep remain before
// a new one is created. Names sort by their timestamp.
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logFiles = append(logFiles, entry.Name())
		}
	}
	if len(logFiles) <= keep {
		return
	}

	sort.Strings(logFiles)
	for _, name := range logFiles[:len(logFiles)-keep] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", name, "error", err)
		}
	}
}
