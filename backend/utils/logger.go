package utils

import (
	"log"
	"os"
)

// LoggerConfig controls the logger's output stream and format.
type LoggerConfig struct {
	Format       string // "text" or "json"
	Output       *os.File
	EnableColors bool
}

// InitLogger builds the process logger used by the request middleware
// and startup code.
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	prefix := "[Exam Portal] "

	var logger *log.Logger
	if cfg.Format == "json" {
		logger = log.New(cfg.Output, prefix, log.LstdFlags|log.LUTC)
	} else {
		if cfg.EnableColors {
			prefix = "\033[36m" + prefix + "\033[0m"
		}
		logger = log.New(cfg.Output, prefix, log.LstdFlags|log.LUTC)
	}

	return logger
}
