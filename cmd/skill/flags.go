package main

import (
	"flag"
	"os"
)

var flagRunAddr string
var flagLogLevel string
var flagConfigPath string

func parseFlags() {
	flag.StringVar(&flagRunAddr, "a", ":8080", "address and port")
	flag.StringVar(&flagLogLevel, "l", "info", "log level")
	flag.StringVar(&flagConfigPath, "c", "./config.json", "config file path")
	flag.Parse()

	if envRunAddr := os.Getenv("RUN_ADDR"); envRunAddr != "" {
		flagRunAddr = envRunAddr
	}

	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		flagLogLevel = envLogLevel
	}

	if envConfigPath := os.Getenv("CONFIG_PATH"); envConfigPath != "" {
		flagConfigPath = envConfigPath
	}
}
