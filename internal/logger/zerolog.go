package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type ZerologAdapter struct {
	logger zerolog.Logger
}

func NewZerolog(writer io.Writer, level LogLevel) *ZerologAdapter {
	logger := zerolog.New(writer).
		Level(toZerolog(level)).
		With().
		Timestamp().
		Logger()

	return &ZerologAdapter{logger: logger}
}

func NewConsoleLogger(level LogLevel) *ZerologAdapter {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return NewZerolog(consoleWriter, level)
}

// WithComponent returns a child logger tagging every event with component.
func (z *ZerologAdapter) WithComponent(component string) *ZerologAdapter {
	return &ZerologAdapter{logger: z.logger.With().Str("component", component).Logger()}
}

func (z *ZerologAdapter) Debug(msg string, fields map[string]interface{}) {
	z.write(z.logger.Debug(), msg, fields)
}

func (z *ZerologAdapter) Info(msg string, fields map[string]interface{}) {
	z.write(z.logger.Info(), msg, fields)
}

func (z *ZerologAdapter) Warning(msg string, fields map[string]interface{}) {
	z.write(z.logger.Warn(), msg, fields)
}

func (z *ZerologAdapter) Error(msg string, err error, fields map[string]interface{}) {
	z.write(z.logger.Error().Err(err), msg, fields)
}

func (z *ZerologAdapter) write(event *zerolog.Event, msg string, fields map[string]interface{}) {
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}

func toZerolog(level LogLevel) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
