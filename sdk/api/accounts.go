package api

import (
	"context"
	"net/http"
)

// Credentials are the email/password pair presented to the OpenCourse API to
// begin a session.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthDetails is the API's response to a successful login. Both tokens are
// opaque to this SDK; no claims are parsed and no expiry is tracked
// client-side.
type AuthDetails struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
	Email        string `json:"email"`
	UserName     string `json:"user_name"`
	Role         string `json:"role"`
}

// Registration describes a new account. Group selects the role the account
// is created with; the server defaults it to Student when left empty.
type Registration struct {
	Email    string `json:"email"`
	UserName string `json:"user_name"`
	Password string `json:"password"`
	Group    string `json:"group,omitempty"`
}

// Account groups are the values the API accepts in Registration.Group.
const (
	GroupStudent = "Student"
	GroupCreator = "Creator"
)

// AccountsClient is the specialized client for the OpenCourse API's accounts
// endpoints.
type AccountsClient interface {
	// Login exchanges credentials for session tokens. A rejection by the
	// server surfaces as a *meta.ErrAuthentication.
	Login(ctx context.Context, credentials Credentials) (AuthDetails, error)
	// Register creates a new account. It does NOT authenticate the caller; a
	// subsequent Login is required to begin a session.
	Register(ctx context.Context, registration Registration) error
}

type accountsClient struct {
	*baseClient
}

// NewAccountsClient returns a specialized client for the OpenCourse API's
// accounts endpoints.
func NewAccountsClient(
	apiAddress string,
	apiToken string,
	allowInsecure bool,
) AccountsClient {
	return &accountsClient{
		baseClient: newBaseClient(apiAddress, apiToken, allowInsecure),
	}
}

func (a *accountsClient) Login(
	ctx context.Context,
	credentials Credentials,
) (AuthDetails, error) {
	authDetails := AuthDetails{}
	return authDetails, a.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodPost,
			path:        "accounts/login/",
			reqBodyObj:  credentials,
			successCode: http.StatusOK,
			respObj:     &authDetails,
		},
	)
}

func (a *accountsClient) Register(
	ctx context.Context,
	registration Registration,
) error {
	return a.executeRequest(
		ctx,
		outboundRequest{
			method:      http.MethodPost,
			path:        "accounts/register/",
			reqBodyObj:  registration,
			successCode: http.StatusCreated,
		},
	)
}
