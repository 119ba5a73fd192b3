package config

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"

	"campus-event-chat/config/common"
	"campus-event-chat/config/logger"
)

func NewLogger(cfg *common.Config) *logrus.Logger {
	levelName, _ := cfg.GetLogConfig()

	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		log.WithError(err).Warnf("Unknown log level %q, falling back to info", levelName)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func NewAppLogger(cfg *common.Config) *logger.AppLogger {
	levelName, dir := cfg.GetLogConfig()

	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return logger.NewLogger(dir, level)
}
