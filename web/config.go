package web

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

type ServerConfig struct {
	Port string
}

// LoadServerConfig reads the server settings from the environment.
func LoadServerConfig() (*ServerConfig, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}
	return &ServerConfig{Port: port}, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("port must be a number")
	}
	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}
