package api

// Client is the general interface for the OpenCourse API. It does little
// more than expose functions for obtaining more specialized clients for
// different areas of concern, like account management or course management.
type Client interface {
	// Accounts returns a specialized client for account management.
	Accounts() AccountsClient
	// Courses returns a specialized client for course management.
	Courses() CoursesClient
	// Enrollments returns a specialized client for enrollment management.
	Enrollments() EnrollmentsClient
}

type client struct {
	// accountsClient is a specialized client for account management.
	accountsClient AccountsClient
	// coursesClient is a specialized client for course management.
	coursesClient CoursesClient
	// enrollmentsClient is a specialized client for enrollment management.
	enrollmentsClient EnrollmentsClient
}

// NewClient returns an OpenCourse API client.
func NewClient(apiAddress, apiToken string, allowInsecure bool) Client {
	return &client{
		accountsClient: NewAccountsClient(apiAddress, apiToken, allowInsecure),
		coursesClient:  NewCoursesClient(apiAddress, apiToken, allowInsecure),
		enrollmentsClient: NewEnrollmentsClient(
			apiAddress,
			apiToken,
			allowInsecure,
		),
	}
}

func (c *client) Accounts() AccountsClient {
	return c.accountsClient
}

func (c *client) Courses() CoursesClient {
	return c.coursesClient
}

func (c *client) Enrollments() EnrollmentsClient {
	return c.enrollmentsClient
}
