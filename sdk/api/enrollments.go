package api

import (
	"context"
	"net/http"
	"time"
)

// Enrollment is an enrollment as the my-enrollments endpoint represents it:
// flattened course facts plus the enrollment's own status and timestamp.
type Enrollment struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Thumbnail  string    `json:"thumbnail,omitempty"`
	TotalHours float64   `json:"total_hours"`
	Status     string    `json:"status"`
	EnrolledOn time.Time `json:"enrolled_on"`
}

// EnrollmentsClient is the specialized client for the OpenCourse API's
// enrollment endpoints.
type EnrollmentsClient interface {
	// Create enrolls the authenticated user in the specified course.
	Create(ctx context.Context, courseID int64) error
	// ListMine retrieves the authenticated user's enrollments.
	ListMine(ctx context.Context) ([]Enrollment, error)
}

type enrollmentsClient struct {
	*baseClient
}

// NewEnrollmentsClient returns a specialized client for the OpenCourse API's
// enrollment endpoints.
func NewEnrollmentsClient(
	apiAddress string,
	apiToken string,
	allowInsecure bool,
) EnrollmentsClient {
	return &enrollmentsClient{
		baseClient: newBaseClient(apiAddress, apiToken, allowInsecure),
	}
}

func (e *enrollmentsClient) Create(
	ctx context.Context,
	courseID int64,
) error {
	return e.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodPost,
			path:        "courses/enroll/",
			authHeaders: e.bearerTokenAuthHeaders(),
			reqBodyObj: struct {
				Course int64 `json:"course"`
			}{
				Course: courseID,
			},
			successCode: http.StatusCreated,
		},
	)
}

func (e *enrollmentsClient) ListMine(
	ctx context.Context,
) ([]Enrollment, error) {
	enrollments := []Enrollment{}
	return enrollments, e.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodGet,
			path:        "courses/my-enrollments/",
			authHeaders: e.bearerTokenAuthHeaders(),
			successCode: http.StatusOK,
			respObj:     &enrollments,
		},
	)
}
