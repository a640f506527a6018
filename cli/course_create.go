package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/opencourse/opencourse/guards"
	"github.com/opencourse/opencourse/sdk/api"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/xeipuuv/gojsonschema"
)

// courseDefinition is the file format for `course create`: the course spec
// plus its full section and chapter outline, created in one pass.
type courseDefinition struct {
	api.CourseSpec
	Sections []sectionDefinition `json:"sections,omitempty"`
}

type sectionDefinition struct {
	Title    string              `json:"title"`
	Chapters []chapterDefinition `json:"chapters,omitempty"`
}

type chapterDefinition struct {
	Title         string  `json:"title"`
	VideoURL      string  `json:"videoURL"`
	VideoDuration float64 `json:"videoDuration"`
}

const courseSchema = `
{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"title": "Course",
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
		},
		"sections": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["title"],
				"additionalProperties": false,
				"properties": {
					"title": {
						"type": "string",
						"minLength": 1,
						"maxLength": 250
					},
					"chapters": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["title", "videoURL"],
							"additionalProperties": false,
							"properties": {
								"title": {
									"type": "string",
									"minLength": 1,
									"maxLength": 250
								},
								"videoURL": {
									"type": "string",
									"format": "uri"
								},
								"videoDuration": {
									"type": "number",
									"minimum": 0
								}
							}
						}
					}
				}
			}
		}
	}
}
`

var courseSchemaLoader = gojsonschema.NewStringLoader(courseSchema)

func courseCreate(c *cli.Context) error {
	filename := c.String(flagFile)

	if _, err := ensureAllowed(c, guards.Creator); err != nil {
		return err
	}

	definition, err := readCourseDefinition(filename)
	if err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting opencourse client")
	}

	course, err := client.Courses().Create(c.Context, definition.CourseSpec)
	if err != nil {
		return err
	}
	fmt.Printf("Created course %q with ID %d.\n", course.Title, course.ID)

	for i, sectionDef := range definition.Sections {
		section, err := client.Courses().CreateSection(
			c.Context,
			api.SectionSpec{
				Course: course.ID,
				Title:  sectionDef.Title,
				Order:  i + 1,
			},
		)
		if err != nil {
			return errors.Wrapf(
				err,
				"error creating section %q; course %d was left incomplete",
				sectionDef.Title,
				course.ID,
			)
		}
		for j, chapterDef := range sectionDef.Chapters {
			if _, err := client.Courses().CreateChapter(
				c.Context,
				api.ChapterSpec{
					Section:       section.ID,
					Title:         chapterDef.Title,
					VideoURL:      chapterDef.VideoURL,
					VideoDuration: chapterDef.VideoDuration,
					Order:         j + 1,
				},
			); err != nil {
				return errors.Wrapf(
					err,
					"error creating chapter %q; course %d was left incomplete",
					chapterDef.Title,
					course.ID,
				)
			}
		}
		fmt.Printf(
			"Created section %q with %d chapters.\n",
			section.Title,
			len(sectionDef.Chapters),
		)
	}

	return nil
}

func readCourseDefinition(filename string) (courseDefinition, error) {
	definition := courseDefinition{}

	definitionBytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return definition, errors.Wrapf(
			err,
			"error reading course file %s",
			filename,
		)
	}

	if strings.HasSuffix(filename, ".yaml") ||
		strings.HasSuffix(filename, ".yml") {
		if definitionBytes, err = yaml.YAMLToJSON(definitionBytes); err != nil {
			return definition, errors.Wrapf(
				err,
				"error converting course file %s to JSON",
				filename,
			)
		}
	}

	if err = validateCourseDefinition(definitionBytes); err != nil {
		return definition, err
	}

	if err = json.Unmarshal(definitionBytes, &definition); err != nil {
		return definition, errors.Wrapf(
			err,
			"error unmarshaling course file %s",
			filename,
		)
	}

	return definition, nil
}

func validateCourseDefinition(definitionBytes []byte) error {
	validationResult, err := gojsonschema.Validate(
		courseSchemaLoader,
		gojsonschema.NewBytesLoader(definitionBytes),
	)
	if err != nil {
		return errors.Wrap(err, "error validating course definition")
	}
	if !validationResult.Valid() {
		verrStrs := make([]string, len(validationResult.Errors()))
		for i, verr := range validationResult.Errors() {
			verrStrs[i] = verr.String()
		}
		return errors.Errorf(
			"course definition failed validation: %s",
			strings.Join(verrStrs, "; "),
		)
	}
	return nil
}
