package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Options selects how New writes log records.
type Options struct {
	Level string
	// JSON writes one JSON object per line instead of the console format.
	JSON bool
	// Output defaults to stderr.
	Output io.Writer
}

// ZerologAdapter implements Logger on top of zerolog. The component is
// carried as a field on every record.
type ZerologAdapter struct {
	zl zerolog.Logger
}

// New builds the application logger from the level and format the
// configuration asks for.
func New(opts Options) (*ZerologAdapter, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if !opts.JSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
			NoColor:    out != os.Stderr,
			PartsOrder: []string{
				zerolog.TimestampFieldName,
				zerolog.LevelFieldName,
				"component",
				zerolog.MessageFieldName,
			},
			FieldsExclude: []string{"component"},
		}
	}
	return NewZerolog(out, level), nil
}

// NewZerolog writes JSON records at or above level to w.
func NewZerolog(w io.Writer, level zerolog.Level) *ZerologAdapter {
	return &ZerologAdapter{
		zl: zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	emit(z.zl.Info(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	emit(z.zl.Error(), component, fields).Err(err).Msg("operation failed")
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	emit(z.zl.Warn(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	emit(z.zl.Debug(), component, fields).Msg(message)
}

// emit tags event with the component and fields. A disabled event is nil
// and zerolog ignores calls on it.
func emit(event *zerolog.Event, component string, fields map[string]interface{}) *zerolog.Event {
	return event.Str("component", component).Fields(fields)
}
