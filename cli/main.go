package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/opencourse/opencourse/internal/signals"
	"github.com/opencourse/opencourse/internal/version"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

var log = zerolog.New(
	zerolog.ConsoleWriter{Out: os.Stderr},
).With().Timestamp().Logger().Level(zerolog.InfoLevel)

func main() {
	// A .env file is a convenience, not a requirement
	godotenv.Load() // nolint: errcheck

	app := cli.NewApp()
	app.Name = "opencourse"
	app.Usage = "Browse, take, and author OpenCourse courses"
	app.Version = fmt.Sprintf(
		"%s -- commit %s",
		version.Version(),
		version.Commit(),
	)
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    flagInsecure,
			Aliases: []string{"k"},
			Usage:   "Allow insecure API server connections when using TLS",
		},
		&cli.BoolFlag{
			Name:    flagDebug,
			Usage:   "Enable debug logging",
			EnvVars: []string{"OPENCOURSE_DEBUG"},
		},
	}
	app.Before = func(c *cli.Context) error {
		if c.Bool(flagDebug) {
			log = log.Level(zerolog.DebugLevel)
		}
		return nil
	}
	app.Commands = []*cli.Command{
		courseCommand,
		enrollmentCommand,
		loginCommand,
		logoutCommand,
		registerCommand,
		whoamiCommand,
	}
	fmt.Println()
	if err := app.RunContext(signals.Context(), os.Args); err != nil {
		fmt.Printf("\n%s\n\n", err)
		os.Exit(1)
	}
	fmt.Println()
}
