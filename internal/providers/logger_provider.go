package providers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"cid/internal/structures"
)

// TypeEnum selects the log stream an entry belongs to.
type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
)

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

// GetLogTypeByRequestType maps an HTTP method to its log stream. Everything
// that is not a POST goes to the read stream.
func GetLogTypeByRequestType(requestType string) TypeEnum {
	if requestType == http.MethodPost {
		return TypePost
	}
	return TypeGet
}

// LogProvider writes one zerolog stream per log type: app.log for daemon
// lifecycle, get.log and post.log for request handling.
type LogProvider struct {
	app   zerolog.Logger
	get   zerolog.Logger
	post  zerolog.Logger
	files []*os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, err
	}
	if conf.Debug && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	lp := &LogProvider{}
	mode := os.FileMode(conf.Logger.Mode)
	for _, stream := range []struct {
		name string
		dst  *zerolog.Logger
	}{
		{"app", &lp.app},
		{"get", &lp.get},
		{"post", &lp.post},
	} {
		file, err := os.OpenFile(filepath.Join(conf.Logger.Dir, stream.name+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, mode)
		if err != nil {
			lp.Close()
			return nil, err
		}
		lp.files = append(lp.files, file)
		*stream.dst = zerolog.New(file).Level(level).With().Timestamp().Logger()
	}

	return lp, nil
}

func (lp *LogProvider) byType(t TypeEnum) *zerolog.Logger {
	switch t {
	case TypeGet:
		return &lp.get
	case TypePost:
		return &lp.post
	default:
		return &lp.app
	}
}

func (lp *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	lp.byType(t).Error().Msgf(format, args...)
}

func (lp *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	lp.byType(t).Warn().Msgf(format, args...)
}

func (lp *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	lp.byType(t).Debug().Msgf(format, args...)
}

func (lp *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	lp.byType(t).Info().Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	lp.byType(t).Fatal().Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	for _, file := range lp.files {
		_ = file.Close()
	}
}
