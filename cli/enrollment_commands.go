package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/opencourse/opencourse/guards"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var enrollmentCommand = &cli.Command{
	Name:    "enrollment",
	Usage:   "Manage your course enrollments",
	Aliases: []string{"enrollments"},
	Subcommands: []*cli.Command{
		{
			Name:      "create",
			Usage:     "Enroll in a course",
			ArgsUsage: "COURSE_ID",
			Action:    enrollmentCreate,
		},
		{
			Name:  "list",
			Usage: "Retrieve your enrollments",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: enrollmentList,
		},
	},
}

func enrollmentCreate(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New(
			"enrollment create requires one argument-- the course ID",
		)
	}
	id, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
	if err != nil {
		return errors.Errorf("invalid course ID %q", c.Args().Get(0))
	}

	if _, err := ensureAllowed(c, guards.Authenticated); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting opencourse client")
	}

	if err := client.Enrollments().Create(c.Context, id); err != nil {
		return err
	}

	fmt.Printf("Enrolled in course %d.\n", id)

	return nil
}

func enrollmentList(c *cli.Context) error {
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

	enrollments, err := client.Enrollments().ListMine(c.Context)
	if err != nil {
		return err
	}

	if len(enrollments) == 0 {
		fmt.Println("You are not enrolled in any courses.")
		return nil
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "TITLE", "HOURS", "STATUS", "AGE")
		for _, enrollment := range enrollments {
			table.AddRow(
				enrollment.ID,
				enrollment.Title,
				enrollment.TotalHours,
				enrollment.Status,
				shortAge(enrollment.EnrolledOn),
			)
		}
		fmt.Println(table)

	case "yaml":
		yamlBytes, err := yaml.Marshal(enrollments)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from list enrollments operation",
			)
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(enrollments, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from list enrollments operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}
