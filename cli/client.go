package main

import (
	"github.com/opencourse/opencourse/sdk/api"
	"github.com/opencourse/opencourse/sessions"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func getClient(c *cli.Context) (api.Client, error) {
	env, err := getEnvironment()
	if err != nil {
		return nil, err
	}
	store, err := getStore(env)
	if err != nil {
		return nil, err
	}
	// An absent token is fine here. Unauthenticated requests simply
	// carry no Authorization header and public endpoints still work.
	apiToken, _ := store.Get(sessions.KeyAccessToken)
	return api.NewClient(
		env.APIAddress,
		apiToken,
		c.Bool(flagInsecure),
	), nil
}

func getStore(env environment) (sessions.Store, error) {
	sessionFilePath, err := getSessionFilePath(env)
	if err != nil {
		return nil, err
	}
	store, err := sessions.NewFileStore(sessionFilePath)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error opening session file %q",
			sessionFilePath,
		)
	}
	return store, nil
}
