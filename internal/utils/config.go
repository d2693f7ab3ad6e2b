package utils

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

var ErrMutuallyExclusive = errors.New("values are mutually exclusive")

// ReturnNonDefault picks whichever of a short and long flag value was set.
// Setting both is an error.
func ReturnNonDefault[T comparable](a, b, defaultVal T) (T, error) {
	if a != defaultVal && b != defaultVal {
		return defaultVal, ErrMutuallyExclusive
	}
	if a != defaultVal {
		return a, nil
	}
	if b != defaultVal {
		return b, nil
	}
	return defaultVal, nil
}

// FirstNonEmpty returns explicit if set, else the value of the first
// environment variable in envKeys which is set and non-empty.
func FirstNonEmpty(explicit string, envKeys ...string) string {
	if explicit != "" {
		return explicit
	}
	for _, k := range envKeys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// LoadDotEnv exports the variables of the dotenv file at path. Variables
// already set in the environment win, and a missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load '%v': %w", path, err)
	}
	return nil
}
