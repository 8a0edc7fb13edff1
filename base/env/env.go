package env

import (
	"os"
)

// PodName example: rugyard-api-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// EnvName example: staging
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

// AppName example: api
func AppName() string {
	return os.Getenv("APP_NAME")
}

// Or returns value, or fallback when value is empty.
func Or(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
