package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Chapter is a single viewable item within a Section. VideoURL is omitted by
// the server for callers who are neither enrolled in nor the creator of the
// owning course.
type Chapter struct {
	ID            int64   `json:"id"`
	Section       int64   `json:"section,omitempty"`
	Title         string  `json:"title"`
	VideoURL      string  `json:"video_url,omitempty"`
	VideoDuration float64 `json:"video_duration"`
	Order         int     `json:"order"`
}

// Section is an ordered grouping of Chapters within a Course.
type Section struct {
	ID       int64     `json:"id"`
	Course   int64     `json:"course,omitempty"`
	Title    string    `json:"title"`
	Order    int       `json:"order"`
	Chapters []Chapter `json:"chapters,omitempty"`
}

// Course is a course as the API represents it. The server includes nested
// Sections in every representation; list consumers are free to ignore them.
type Course struct {
	ID           int64     `json:"id"`
	Creator      string    `json:"creator,omitempty"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Thumbnail    string    `json:"thumbnail,omitempty"`
	Requirements string    `json:"requirements,omitempty"`
	TotalHours   float64   `json:"total_hours"`
	Sections     []Section `json:"sections,omitempty"`
	Created      time.Time `json:"created_at"`
}

// CourseSpec describes a course to be created. Creator, total hours, and
// timestamps are assigned server-side.
type CourseSpec struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements,omitempty"`
}

// SectionSpec describes a section to be created within an existing course.
type SectionSpec struct {
	Course int64  `json:"course"`
	Title  string `json:"title"`
	Order  int    `json:"order"`
}

// ChapterSpec describes a chapter to be created within an existing section.
type ChapterSpec struct {
	Section       int64   `json:"section"`
	Title         string  `json:"title"`
	VideoURL      string  `json:"video_url"`
	VideoDuration float64 `json:"video_duration"`
	Order         int     `json:"order"`
}

// CoursesClient is the specialized client for the OpenCourse API's course
// endpoints.
type CoursesClient interface {
	// List retrieves the public course catalog.
	List(ctx context.Context) ([]Course, error)
	// Get retrieves a single course, with its sections and chapters.
	Get(ctx context.Context, id int64) (Course, error)
	// Content retrieves a course through the player endpoint, which the
	// server restricts to the course's creator and enrolled users and which
	// includes chapter video URLs.
	Content(ctx context.Context, id int64) (Course, error)
	// ListMine retrieves the courses created by the authenticated user.
	ListMine(ctx context.Context) ([]Course, error)
	// Create creates a new course.
	Create(ctx context.Context, spec CourseSpec) (Course, error)
	// Update replaces an existing course's fields. The server restricts this
	// to the course's creator.
	Update(ctx context.Context, id int64, spec CourseSpec) (Course, error)
	// CreateSection creates a new section within a course the authenticated
	// user created.
	CreateSection(ctx context.Context, spec SectionSpec) (Section, error)
	// UpdateSection replaces an existing section's fields.
	UpdateSection(
		ctx context.Context,
		id int64,
		spec SectionSpec,
	) (Section, error)
	// CreateChapter creates a new chapter within a section of a course the
	// authenticated user created.
	CreateChapter(ctx context.Context, spec ChapterSpec) (Chapter, error)
	// UpdateChapter replaces an existing chapter's fields.
	UpdateChapter(
		ctx context.Context,
		id int64,
		spec ChapterSpec,
	) (Chapter, error)
}

type coursesClient struct {
	*baseClient
}

// NewCoursesClient returns a specialized client for the OpenCourse API's
// course endpoints.
func NewCoursesClient(
	apiAddress string,
	apiToken string,
	allowInsecure bool,
) CoursesClient {
	return &coursesClient{
		baseClient: newBaseClient(apiAddress, apiToken, allowInsecure),
	}
}

func (c *coursesClient) List(ctx context.Context) ([]Course, error) {
	courses := []Course{}
	return courses, c.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodGet,
			path:        "courses/",
			successCode: http.StatusOK,
			respObj:     &courses,
		},
	)
}

func (c *coursesClient) Get(ctx context.Context, id int64) (Course, error) {
	course := Course{}
	return course, c.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodGet,
			path:         fmt.Sprintf("courses/%d/", id),
			successCode:  http.StatusOK,
			respObj:      &course,
			notFoundType: "Course",
			notFoundID:   strconv.FormatInt(id, 10),
		},
	)
}

func (c *coursesClient) Content(
	ctx context.Context,
	id int64,
) (Course, error) {
	course := Course{}
	return course, c.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodGet,
			path:         fmt.Sprintf("courses/%d/player/", id),
			authHeaders:  c.bearerTokenAuthHeaders(),
			successCode:  http.StatusOK,
			respObj:      &course,
			notFoundType: "Course",
			notFoundID:   strconv.FormatInt(id, 10),
		},
	)
}

func (c *coursesClient) ListMine(ctx context.Context) ([]Course, error) {
	courses := []Course{}
	return courses, c.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodGet,
			path:        "courses/my-courses/",
			authHeaders: c.bearerTokenAuthHeaders(),
			successCode: http.StatusOK,
			respObj:     &courses,
		},
	)
}

func (c *coursesClient) Create(
	ctx context.Context,
	spec CourseSpec,
) (Course, error) {
	course := Course{}
	return course, c.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodPost,
			path:        "courses/create/",
			authHeaders: c.bearerTokenAuthHeaders(),
			reqBodyObj:  spec,
			successCode: http.StatusCreated,
			respObj:     &course,
		},
	)
}

func (c *coursesClient) Update(
	ctx context.Context,
	id int64,
	spec CourseSpec,
) (Course, error) {
	course := Course{}
	return course, c.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodPut,
			path:         fmt.Sprintf("courses/%d/edit/", id),
			authHeaders:  c.bearerTokenAuthHeaders(),
			reqBodyObj:   spec,
			successCode:  http.StatusOK,
			respObj:      &course,
			notFoundType: "Course",
			notFoundID:   strconv.FormatInt(id, 10),
		},
	)
}

func (c *coursesClient) CreateSection(
	ctx context.Context,
	spec SectionSpec,
) (Section, error) {
	section := Section{}
	return section, c.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodPost,
			path:        "courses/sections/create/",
			authHeaders: c.bearerTokenAuthHeaders(),
			reqBodyObj:  spec,
			successCode: http.StatusCreated,
			respObj:     &section,
		},
	)
}

func (c *coursesClient) UpdateSection(
	ctx context.Context,
	id int64,
	spec SectionSpec,
) (Section, error) {
	section := Section{}
	return section, c.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodPut,
			path:         fmt.Sprintf("courses/sections/%d/edit/", id),
			authHeaders:  c.bearerTokenAuthHeaders(),
			reqBodyObj:   spec,
			successCode:  http.StatusOK,
			respObj:      &section,
			notFoundType: "Section",
			notFoundID:   strconv.FormatInt(id, 10),
		},
	)
}

func (c *coursesClient) CreateChapter(
	ctx context.Context,
	spec ChapterSpec,
) (Chapter, error) {
	chapter := Chapter{}
	return chapter, c.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodPost,
			path:        "courses/chapters/create/",
			authHeaders: c.bearerTokenAuthHeaders(),
			reqBodyObj:  spec,
			successCode: http.StatusCreated,
			respObj:     &chapter,
		},
	)
}

func (c *coursesClient) UpdateChapter(
	ctx context.Context,
	id int64,
	spec ChapterSpec,
) (Chapter, error) {
	chapter := Chapter{}
	return chapter, c.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodPut,
			path:         fmt.Sprintf("courses/chapters/%d/edit/", id),
			authHeaders:  c.bearerTokenAuthHeaders(),
			reqBodyObj:   spec,
			successCode:  http.StatusOK,
			respObj:      &chapter,
			notFoundType: "Chapter",
			notFoundID:   strconv.FormatInt(id, 10),
		},
	)
}
