package utils

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv pulls a .env file into the environment for dev and test runs.
// Deployed environments set ENV and provide real variables instead.
func LoadEnv() {
	if os.Getenv("ENV") != "PROD" && os.Getenv("ENV") != "DEV" {
		if err := godotenv.Load(); err != nil {
			panic(err)
		}
	}
}

func ErrorsIsAny(err error, errs ...error) bool {
	for _, e := range errs {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
