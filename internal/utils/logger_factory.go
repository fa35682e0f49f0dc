package utils

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

// LogFormat enumerates supported logging encoders.
type LogFormat string

// Supported log levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Supported log formats.
const (
	LogFormatStructured LogFormat = "structured"
	LogFormatConsole    LogFormat = "console"
)

const (
	unsupportedLogLevelTemplateConstant  = "unsupported log level %q"
	unsupportedLogFormatTemplateConstant = "unsupported log format %q"
	consoleTimeLayoutConstant            = "15:04:05"
	consoleMessageKeyConstant            = "message"
)

// LoggerOutputs groups the diagnostic logger with the human-facing console logger.
type LoggerOutputs struct {
	DiagnosticLogger *zap.Logger
	ConsoleLogger    *zap.Logger
}

// LoggerFactory creates zap loggers for the configured level and format.
type LoggerFactory struct{}

// NewLoggerFactory constructs a LoggerFactory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLoggerOutputs builds loggers writing to standard error. The console logger is a no-op unless
// the console format is requested.
func (factory *LoggerFactory) CreateLoggerOutputs(logLevel LogLevel, logFormat LogFormat) (LoggerOutputs, error) {
	zapLevel, levelError := parseLogLevel(logLevel)
	if levelError != nil {
		return LoggerOutputs{}, levelError
	}

	normalizedFormat := LogFormat(strings.ToLower(strings.TrimSpace(string(logFormat))))
	errorStream := zapcore.Lock(zapcore.AddSync(NewFlushingWriter(os.Stderr)))

	switch normalizedFormat {
	case LogFormatStructured:
		encoderConfiguration := zap.NewProductionEncoderConfig()
		encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder
		diagnosticCore := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfiguration), errorStream, zapLevel)
		return LoggerOutputs{
			DiagnosticLogger: zap.New(diagnosticCore),
			ConsoleLogger:    zap.NewNop(),
		}, nil
	case LogFormatConsole:
		diagnosticConfiguration := zap.NewDevelopmentEncoderConfig()
		diagnosticConfiguration.EncodeTime = zapcore.TimeEncoderOfLayout(consoleTimeLayoutConstant)
		diagnosticConfiguration.EncodeLevel = zapcore.CapitalLevelEncoder
		diagnosticCore := zapcore.NewCore(zapcore.NewConsoleEncoder(diagnosticConfiguration), errorStream, zapLevel)

		consoleConfiguration := zapcore.EncoderConfig{
			MessageKey:     consoleMessageKeyConstant,
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeDuration: zapcore.StringDurationEncoder,
		}
		consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleConfiguration), errorStream, zapLevel)
		return LoggerOutputs{
			DiagnosticLogger: zap.New(diagnosticCore),
			ConsoleLogger:    zap.New(consoleCore),
		}, nil
	default:
		return LoggerOutputs{}, fmt.Errorf(unsupportedLogFormatTemplateConstant, logFormat)
	}
}

func parseLogLevel(logLevel LogLevel) (zapcore.Level, error) {
	switch LogLevel(strings.ToLower(strings.TrimSpace(string(logLevel)))) {
	case LogLevelDebug:
		return zapcore.DebugLevel, nil
	case LogLevelInfo:
		return zapcore.InfoLevel, nil
	case LogLevelWarn:
		return zapcore.WarnLevel, nil
	case LogLevelError:
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf(unsupportedLogLevelTemplateConstant, logLevel)
	}
}
