package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/opencourse/opencourse/guards"
	"github.com/opencourse/opencourse/sdk/api"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var courseCommand = &cli.Command{
	Name:    "course",
	Usage:   "Manage courses",
	Aliases: []string{"courses"},
	Subcommands: []*cli.Command{
		{
			Name:  "create",
			Usage: "Create a new course from a file",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagFile,
					Aliases: []string{"f"},
					Usage: "A YAML or JSON file that describes the course " +
						"(required)",
					Required:  true,
					TakesFile: true,
				},
			},
			Action: courseCreate,
		},
		{
			Name:      "content",
			Usage:     "Retrieve a course's full content, video URLs included",
			ArgsUsage: "COURSE_ID",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: courseContent,
		},
		{
			Name:      "get",
			Usage:     "Retrieve a course from the public catalog",
			ArgsUsage: "COURSE_ID",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: courseGet,
		},
		{
			Name:  "list",
			Usage: "Retrieve the public course catalog",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: courseList,
		},
		{
			Name:  "mine",
			Usage: "Retrieve the courses you created",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: courseListMine,
		},
		{
			Name:      "update",
			Usage:     "Update a course you created from a file",
			ArgsUsage: "COURSE_ID",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagFile,
					Aliases: []string{"f"},
					Usage: "A YAML or JSON file that describes the course's " +
						"updated fields (required)",
					Required:  true,
					TakesFile: true,
				},
			},
			Action: courseUpdate,
		},
		{
			Name:  "section",
			Usage: "Manage a course's sections",
			Subcommands: []*cli.Command{
				{
					Name:      "update",
					Usage:     "Update a section of a course you created",
					ArgsUsage: "SECTION_ID",
					Flags: []cli.Flag{
						&cli.Int64Flag{
							Name:     flagCourse,
							Usage:    "The ID of the owning course (required)",
							Required: true,
						},
						&cli.StringFlag{
							Name:     flagTitle,
							Usage:    "The section's title (required)",
							Required: true,
						},
						&cli.IntFlag{
							Name:     flagOrder,
							Usage:    "The section's position within the course (required)",
							Required: true,
						},
					},
					Action: sectionUpdate,
				},
			},
		},
		{
			Name:  "chapter",
			Usage: "Manage a course's chapters",
			Subcommands: []*cli.Command{
				{
					Name:      "update",
					Usage:     "Update a chapter of a course you created",
					ArgsUsage: "CHAPTER_ID",
					Flags: []cli.Flag{
						&cli.Int64Flag{
							Name:     flagSection,
							Usage:    "The ID of the owning section (required)",
							Required: true,
						},
						&cli.StringFlag{
							Name:     flagTitle,
							Usage:    "The chapter's title (required)",
							Required: true,
						},
						&cli.StringFlag{
							Name:     flagVideoURL,
							Usage:    "The chapter's video URL (required)",
							Required: true,
						},
						&cli.Float64Flag{
							Name:  flagDuration,
							Usage: "The chapter's video duration in minutes",
						},
						&cli.IntFlag{
							Name:     flagOrder,
							Usage:    "The chapter's position within the section (required)",
							Required: true,
						},
					},
					Action: chapterUpdate,
				},
			},
		},
	},
}

func courseList(c *cli.Context) error {
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting opencourse client")
	}

	courses, err := client.Courses().List(c.Context)
	if err != nil {
		return err
	}

	if len(courses) == 0 {
		fmt.Println("No courses found.")
		return nil
	}

	return printCourses(courses, output)
}

func courseGet(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New(
			"course get requires one argument-- the course ID",
		)
	}
	id, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
	if err != nil {
		return errors.Errorf("invalid course ID %q", c.Args().Get(0))
	}
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting opencourse client")
	}

	course, err := client.Courses().Get(c.Context, id)
	if err != nil {
		return err
	}

	return printCourse(course, output)
}

func courseContent(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New(
			"course content requires one argument-- the course ID",
		)
	}
	id, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
	if err != nil {
		return errors.Errorf("invalid course ID %q", c.Args().Get(0))
	}
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	if _, err := ensureAllowed(c, guards.Authenticated); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting opencourse client")
	}

	course, err := client.Courses().Content(c.Context, id)
	if err != nil {
		return err
	}

	return printCourse(course, output)
}

func courseListMine(c *cli.Context) error {
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	if _, err := ensureAllowed(c, guards.Creator); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting opencourse client")
	}

	courses, err := client.Courses().ListMine(c.Context)
	if err != nil {
		return err
	}

	if len(courses) == 0 {
		fmt.Println("You have not created any courses yet.")
		return nil
	}

	return printCourses(courses, output)
}

func printCourses(courses []api.Course, output string) error {
	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "TITLE", "CREATOR", "HOURS", "SECTIONS", "AGE")
		for _, course := range courses {
			table.AddRow(
				course.ID,
				course.Title,
				course.Creator,
				course.TotalHours,
				len(course.Sections),
				shortAge(course.Created),
			)
		}
		fmt.Println(table)

	case "yaml":
		yamlBytes, err := yaml.Marshal(courses)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from list courses operation",
			)
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(courses, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from list courses operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}

func printCourse(course api.Course, output string) error {
	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "TITLE", "CREATOR", "HOURS", "AGE")
		table.AddRow(
			course.ID,
			course.Title,
			course.Creator,
			course.TotalHours,
			shortAge(course.Created),
		)
		fmt.Println(table)

		for _, section := range course.Sections {
			fmt.Printf("\nSection %d: %s\n", section.Order, section.Title)
			chaptersTable := uitable.New()
			chaptersTable.AddRow("", "CHAPTER", "TITLE", "MINUTES", "VIDEO")
			for _, chapter := range section.Chapters {
				chaptersTable.AddRow(
					"",
					chapter.Order,
					chapter.Title,
					chapter.VideoDuration,
					chapter.VideoURL,
				)
			}
			fmt.Println(chaptersTable)
		}

	case "yaml":
		yamlBytes, err := yaml.Marshal(course)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get course operation",
			)
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(course, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get course operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}

// shortAge renders the elapsed time since t in a compact single-unit form.
func shortAge(t time.Time) string {
	if t.IsZero() {
		return "<unknown>"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
