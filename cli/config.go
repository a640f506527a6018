package main

import (
	"os"
	"path"

	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// environment is CLI configuration drawn from OPENCOURSE_* environment
// variables (optionally via a .env file).
type environment struct {
	// APIAddress is the base address of the OpenCourse API.
	APIAddress string `envconfig:"API_ADDRESS" default:"http://localhost:8000/api"`
	// AllowInsecure permits TLS connections with unverifiable certificates.
	AllowInsecure bool `envconfig:"ALLOW_INSECURE"`
	// Home overrides the directory where session state is kept. It is read
	// directly rather than through an envconfig tag, because envconfig falls
	// back to the un-prefixed tag name and HOME is set nearly everywhere.
	Home string `ignored:"true"`
}

func getEnvironment() (environment, error) {
	env := environment{}
	if err := envconfig.Process("opencourse", &env); err != nil {
		return env, errors.Wrap(err, "error reading environment configuration")
	}
	env.Home = os.Getenv("OPENCOURSE_HOME")
	return env, nil
}

// getOpencourseHome locates the directory where session state is kept--
// OPENCOURSE_HOME when set, otherwise ~/.opencourse.
func getOpencourseHome(env environment) (string, error) {
	if env.Home != "" {
		return env.Home, nil
	}
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "error locating user's home directory")
	}
	return path.Join(homeDir, ".opencourse"), nil
}

// getSessionFilePath locates the file that durably holds session
// credentials across invocations.
func getSessionFilePath(env environment) (string, error) {
	opencourseHome, err := getOpencourseHome(env)
	if err != nil {
		return "", err
	}
	return path.Join(opencourseHome, "session"), nil
}
