package logger

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the default process logger, used until main configures one.
var Log *logrus.Logger

func init() {
	Log = logrus.New()
	Log.SetFormatter(&logrus.JSONFormatter{})
	Log.SetLevel(logrus.DebugLevel)
	Log.SetOutput(os.Stdout)
}

// New returns a JSON logger writing to stdout at the given level.
func New(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(lvl)
	l.SetOutput(os.Stdout)
	return l, nil
}
