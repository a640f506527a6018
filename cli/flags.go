package main

import "github.com/urfave/cli/v2"

const (
	flagCourse   = "course"
	flagCreator  = "creator"
	flagDebug    = "debug"
	flagDuration = "duration"
	flagEmail    = "email"
	flagFile     = "file"
	flagInsecure = "insecure"
	flagName     = "name"
	flagOrder    = "order"
	flagOutput   = "output"
	flagPassword = "password"
	flagSection  = "section"
	flagTitle    = "title"
	flagVideoURL = "video-url"
)

var (
	cliFlagOutput = &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage: "Return output in the specified format; supported formats: " +
			"table, yaml, json",
		Value: "table",
	}
)
