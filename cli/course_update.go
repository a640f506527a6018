package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/opencourse/opencourse/guards"
	"github.com/opencourse/opencourse/sdk/api"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/xeipuuv/gojsonschema"
)

// courseUpdateSchema covers only the course's own fields. The edit endpoint
// replaces those alone; sections and chapters are edited individually.
const courseUpdateSchema = `
{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"title": "CourseUpdate",
	"type": "object",
	"required": ["title", "description"],
	"additionalProperties": false,
	"properties": {
		"title": {
			"type": "string",
			"minLength": 1,
			"maxLength": 250
		},
		"description": {
			"type": "string",
			"minLength": 1
		},
		"requirements": {
			"type": "string"
		}
	}
}
`

var courseUpdateSchemaLoader = gojsonschema.NewStringLoader(courseUpdateSchema)

func courseUpdate(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New(
			"course update requires one argument-- the course ID",
		)
	}
	id, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
	if err != nil {
		return errors.Errorf("invalid course ID %q", c.Args().Get(0))
	}
	filename := c.String(flagFile)

	if _, err := ensureAllowed(c, guards.Creator); err != nil {
		return err
	}

	spec, err := readCourseUpdate(filename)
	if err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting opencourse client")
	}

	course, err := client.Courses().Update(c.Context, id, spec)
	if err != nil {
		return err
	}

	fmt.Printf("Updated course %q.\n", course.Title)

	return nil
}

func sectionUpdate(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New(
			"section update requires one argument-- the section ID",
		)
	}
	id, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
	if err != nil {
		return errors.Errorf("invalid section ID %q", c.Args().Get(0))
	}

	if _, err := ensureAllowed(c, guards.Creator); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting opencourse client")
	}

	section, err := client.Courses().UpdateSection(
		c.Context,
		id,
		api.SectionSpec{
			Course: c.Int64(flagCourse),
			Title:  c.String(flagTitle),
			Order:  c.Int(flagOrder),
		},
	)
	if err != nil {
		return err
	}

	fmt.Printf("Updated section %q.\n", section.Title)

	return nil
}

func chapterUpdate(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New(
			"chapter update requires one argument-- the chapter ID",
		)
	}
	id, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
	if err != nil {
		return errors.Errorf("invalid chapter ID %q", c.Args().Get(0))
	}

	if _, err := ensureAllowed(c, guards.Creator); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting opencourse client")
	}

	chapter, err := client.Courses().UpdateChapter(
		c.Context,
		id,
		api.ChapterSpec{
			Section:       c.Int64(flagSection),
			Title:         c.String(flagTitle),
			VideoURL:      c.String(flagVideoURL),
			VideoDuration: c.Float64(flagDuration),
			Order:         c.Int(flagOrder),
		},
	)
	if err != nil {
		return err
	}

	fmt.Printf("Updated chapter %q.\n", chapter.Title)

	return nil
}

func readCourseUpdate(filename string) (api.CourseSpec, error) {
	spec := api.CourseSpec{}

	specBytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return spec, errors.Wrapf(err, "error reading course file %s", filename)
	}

	if strings.HasSuffix(filename, ".yaml") ||
		strings.HasSuffix(filename, ".yml") {
		if specBytes, err = yaml.YAMLToJSON(specBytes); err != nil {
			return spec, errors.Wrapf(
				err,
				"error converting course file %s to JSON",
				filename,
			)
		}
	}

	validationResult, err := gojsonschema.Validate(
		courseUpdateSchemaLoader,
		gojsonschema.NewBytesLoader(specBytes),
	)
	if err != nil {
		return spec, errors.Wrap(err, "error validating course update")
	}
	if !validationResult.Valid() {
		verrStrs := make([]string, len(validationResult.Errors()))
		for i, verr := range validationResult.Errors() {
			verrStrs[i] = verr.String()
		}
		return spec, errors.Errorf(
			"course update failed validation: %s",
			strings.Join(verrStrs, "; "),
		)
	}

	if err = json.Unmarshal(specBytes, &spec); err != nil {
		return spec, errors.Wrapf(
			err,
			"error unmarshaling course file %s",
			filename,
		)
	}

	return spec, nil
}
