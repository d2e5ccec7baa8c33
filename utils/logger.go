package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  = newLogger(os.Stdout, logrus.InfoLevel)
	ErrorLogger = newLogger(os.Stderr, logrus.ErrorLevel)
)

func newLogger(out *os.File, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	l.SetLevel(level)
	return l
}

// InitLogger mengatur ulang level InfoLogger sesuai LOG_LEVEL.
// ErrorLogger tetap di level error.
func InitLogger(level string) {
	InfoLogger = newLogger(os.Stdout, logrus.InfoLevel)
	ErrorLogger = newLogger(os.Stderr, logrus.ErrorLevel)

	if level == "" {
		return
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		ErrorLogger.Errorf("invalid LOG_LEVEL %q, keeping info", level)
		return
	}
	InfoLogger.SetLevel(lvl)
}
