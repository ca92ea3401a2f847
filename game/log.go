package game

import "github.com/sirupsen/logrus"

var log = logrus.New()

// SetLogger makes the game package log through the given logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Logger returns the logger the game package writes to
func Logger() *logrus.Logger {
	return log
}
