package audit

import (
	"bytes"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// LineFormatter renders entries as "2006-01-02 15:04:05,000 - INFO - message".
type LineFormatter struct{}

func (LineFormatter) Format(entry *log.Entry) ([]byte, error) {
	level := "INFO"
	switch entry.Level {
	case log.WarnLevel:
		level = "WARNING"
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		level = "ERROR"
	case log.DebugLevel, log.TraceLevel:
		level = "DEBUG"
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s,%03d - %s - %s\n",
		entry.Time.Format("2006-01-02 15:04:05"),
		entry.Time.Nanosecond()/1e6,
		level,
		entry.Message)
	return b.Bytes(), nil
}

type logrusSink struct {
	logger *log.Logger
}

// NewLogrusSink writes audit events through logger.
func NewLogrusSink(logger *log.Logger) Sink {
	return &logrusSink{logger: logger}
}

func (s *logrusSink) Emit(event Event) {
	entry := s.logger.WithTime(event.Time)
	if event.Level == LevelWarning {
		entry.Warn(event.Message)
		return
	}
	entry.Info(event.Message)
}
