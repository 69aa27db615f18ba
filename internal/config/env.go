package config

import (
	"os"
	"strconv"
)

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func requireEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", ValidationError{Field: key, Message: "required environment variable is not set"}
	}
	return v, nil
}

func getEnvUint16(key string, fallback uint16) (uint16, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		return 0, ValidationError{Field: key, Value: v, Message: "must be an integer"}
	}
	return uint16(n), nil
}

func getEnvUint32(key string, fallback uint32) (uint32, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, ValidationError{Field: key, Value: v, Message: "must be an integer"}
	}
	return uint32(n), nil
}

func getEnvFloat32(key string, fallback float32) (float32, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return 0, ValidationError{Field: key, Value: v, Message: "must be a number"}
	}
	return float32(n), nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, ValidationError{Field: key, Value: v, Message: "must be a boolean"}
	}
	return b, nil
}
