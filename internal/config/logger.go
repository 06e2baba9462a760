package config

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logger writing to w. Verbose forces debug level;
// otherwise LogLevel applies (Validate has already checked it).
func (c *Config) NewLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	if c.Verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	return log
}
