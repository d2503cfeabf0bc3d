package util

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const LOG_BUFFER_SIZE = 1000

var (
	ErrLogNotInitialized      = errors.New("log object is not initialized yet")
	ErrUnknownLogLevel        = errors.New("unknown log level")
	LOG_FOLDER_NAME_WITH_PATH = ".." + string(os.PathSeparator) + "log"
	globalLogLevel            = LOG_LEVEL_INFO
	logToStderr               = false
)

const (
	LOG_LEVEL_ERROR = iota + 1
	LOG_LEVEL_WARN
	LOG_LEVEL_INFO
	LOG_LEVEL_DEBUG
)

// ServiceLogger writes leveled records to a log file through a single
// writer goroutine. Callers never block on file I/O unless the buffer is full.
type ServiceLogger struct {
	mu                sync.RWMutex
	logBuffer         chan LeveledLogger
	handle            *os.File
	wg                *sync.WaitGroup
	loggerInitialized bool
	zapLogger         *zap.Logger
}

type LeveledLogger struct {
	level  int
	logMsg string
	fields []zap.Field
}

func (m *ServiceLogger) Init(logFileName string, rewrite bool) error {
	fileWithRelPath := LOG_FOLDER_NAME_WITH_PATH + string(os.PathSeparator) + logFileName

	flags := os.O_RDWR | os.O_CREATE | os.O_APPEND
	if rewrite {
		flags = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	}

	handle, err := os.OpenFile(fileWithRelPath, flags, 0666)
	if err != nil {
		return fmt.Errorf("error opening log file %s: %w", fileWithRelPath, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.handle = handle
	m.wg = new(sync.WaitGroup)
	m.logBuffer = make(chan LeveledLogger, LOG_BUFFER_SIZE)
	m.zapLoggerInit()

	m.wg.Add(1)
	go m.logWriter()

	m.loggerInitialized = true
	return nil
}

func (m *ServiceLogger) zapLoggerInit() {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(config)

	level := GlobalLogLevelSetter()
	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(m.handle), level),
	}
	if logToStderr {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level))
	}

	m.zapLogger = zap.New(zapcore.NewTee(cores...))
}

func GlobalLogLevelSetter() zapcore.Level {
	switch globalLogLevel {
	case LOG_LEVEL_ERROR:
		return zapcore.ErrorLevel
	case LOG_LEVEL_WARN:
		return zapcore.WarnLevel
	case LOG_LEVEL_DEBUG:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLogLevel maps a config name onto one of the LOG_LEVEL_* values.
func ParseLogLevel(name string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return LOG_LEVEL_ERROR, nil
	case "warn", "warning":
		return LOG_LEVEL_WARN, nil
	case "info", "":
		return LOG_LEVEL_INFO, nil
	case "debug":
		return LOG_LEVEL_DEBUG, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, name)
	}
}

func (m *ServiceLogger) logWriter() {
	defer m.wg.Done()

	for logdata := range m.logBuffer {
		switch logdata.level {
		case LOG_LEVEL_ERROR:
			m.zapLogger.Error(logdata.logMsg, logdata.fields...)
		case LOG_LEVEL_WARN:
			m.zapLogger.Warn(logdata.logMsg, logdata.fields...)
		case LOG_LEVEL_DEBUG:
			m.zapLogger.Debug(logdata.logMsg, logdata.fields...)
		default:
			m.zapLogger.Info(logdata.logMsg, logdata.fields...)
		}
	}
}

// LogEvent joins args with spaces and queues them at the given level.
func (m *ServiceLogger) LogEvent(level int, args ...interface{}) error {
	return m.enqueue(LeveledLogger{level: level, logMsg: strings.TrimSuffix(fmt.Sprintln(args...), "\n")})
}

// LogFields queues a structured record.
func (m *ServiceLogger) LogFields(level int, msg string, fields ...zap.Field) error {
	return m.enqueue(LeveledLogger{level: level, logMsg: msg, fields: fields})
}

func (m *ServiceLogger) enqueue(entry LeveledLogger) error {
	if m == nil {
		return ErrLogNotInitialized
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.loggerInitialized {
		return ErrLogNotInitialized
	}
	if entry.level < LOG_LEVEL_ERROR || entry.level > LOG_LEVEL_DEBUG {
		entry.level = LOG_LEVEL_INFO
	}
	m.logBuffer <- entry
	return nil
}

// DeInit drains pending records and closes the log file.
func (m *ServiceLogger) DeInit() error {
	m.mu.Lock()
	if !m.loggerInitialized {
		m.mu.Unlock()
		return nil
	}
	m.loggerInitialized = false
	close(m.logBuffer)
	m.mu.Unlock()

	m.wg.Wait()

	// Sync on a stderr core reports EINVAL on some terminals, only the file matters here.
	m.zapLogger.Sync()
	return m.handle.Close()
}

func SetCommonLoggerAttributes(GlobalLogLevel int, toStderr bool) {
	globalLogLevel = GlobalLogLevel
	logToStderr = toStderr
}

func SetLoggerPath(logPath string) {
	LOG_FOLDER_NAME_WITH_PATH = logPath
}

func CheckAndCreateLogFolder(FolderNameWithPath string) error {
	_, err := os.Stat(FolderNameWithPath)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(FolderNameWithPath, 0755); err != nil {
			return fmt.Errorf("failed to create log folder %s: %w", FolderNameWithPath, err)
		}
		return nil
	}
	return err
}
