package main

import (
	"github.com/opencourse/opencourse/guards"
	"github.com/opencourse/opencourse/sdk/api"
	"github.com/opencourse/opencourse/sessions"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func getSessionManager(c *cli.Context) (*sessions.Manager, error) {
	env, err := getEnvironment()
	if err != nil {
		return nil, err
	}
	store, err := getStore(env)
	if err != nil {
		return nil, err
	}
	accountsClient := api.NewAccountsClient(
		env.APIAddress,
		"",
		c.Bool(flagInsecure),
	)
	service := sessions.NewService(accountsClient, store, log)
	return sessions.NewManager(service, log), nil
}

// ensureAllowed starts the session manager and blocks until the given guard
// reaches a verdict, translating a denial into a command error. On success
// the started manager is returned for callers that need session details.
func ensureAllowed(
	c *cli.Context,
	guard guards.Guard,
) (*sessions.Manager, error) {
	sessionManager, err := getSessionManager(c)
	if err != nil {
		return nil, err
	}
	sessionManager.Start()
	outcome, err := guards.Resolve(c.Context, sessionManager, guard)
	if err != nil {
		return nil, err
	}
	switch outcome.Decision {
	case guards.Allow:
		return sessionManager, nil
	case guards.Deny:
		if outcome.Notice != "" {
			return nil, errors.New(outcome.Notice)
		}
		return nil, errors.New(
			"you are not logged in; please use `opencourse login` to continue",
		)
	default:
		return nil, errors.New("session check did not complete")
	}
}
