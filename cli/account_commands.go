package main

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/opencourse/opencourse/guards"
	"github.com/opencourse/opencourse/sessions"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/ssh/terminal"
)

var loginCommand = &cli.Command{
	Name:  "login",
	Usage: "Log in to OpenCourse",
	Description: "Exchanges an email address and password for session " +
		"credentials, which are persisted for use by subsequent commands.",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagEmail,
			Aliases: []string{"e"},
			Usage:   "Log in as the user with the specified email address",
		},
		&cli.StringFlag{
			Name:    flagPassword,
			Aliases: []string{"p"},
			Usage: "Specify the password for non-interactive login; if not " +
				"set, the password is prompted for",
		},
	},
	Action: login,
}

var logoutCommand = &cli.Command{
	Name:   "logout",
	Usage:  "Log out of OpenCourse",
	Action: logout,
}

var registerCommand = &cli.Command{
	Name:  "register",
	Usage: "Register a new OpenCourse account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagEmail,
			Aliases: []string{"e"},
			Usage:   "Register with the specified email address",
		},
		&cli.StringFlag{
			Name:    flagName,
			Aliases: []string{"n"},
			Usage:   "Register with the specified display name",
		},
		&cli.StringFlag{
			Name:    flagPassword,
			Aliases: []string{"p"},
			Usage: "Specify the password for non-interactive registration; " +
				"if not set, the password is prompted for",
		},
		&cli.BoolFlag{
			Name:  flagCreator,
			Usage: "Register as a creator, able to author courses",
		},
	},
	Action: register,
}

var whoamiCommand = &cli.Command{
	Name:   "whoami",
	Usage:  "Show the identity of the current session",
	Action: whoami,
}

func login(c *cli.Context) error {
	email := c.String(flagEmail)
	password := c.String(flagPassword)

	if email == "" || password == "" {
		if !terminal.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New(
				"both --email and --password are required for " +
					"non-interactive login",
			)
		}
	}
	for email == "" {
		if err := survey.AskOne(
			&survey.Input{Message: "Email address"},
			&email,
		); err != nil {
			return err
		}
	}
	for password == "" {
		if err := survey.AskOne(
			&survey.Password{Message: "Password"},
			&password,
		); err != nil {
			return err
		}
	}

	sessionManager, err := getSessionManager(c)
	if err != nil {
		return err
	}
	if err := sessionManager.Login(c.Context, email, password); err != nil {
		return err
	}

	fmt.Printf("\nYou are logged in as %s.\n", email)

	return nil
}

func logout(c *cli.Context) error {
	sessionManager, err := getSessionManager(c)
	if err != nil {
		return err
	}
	if err := sessionManager.Logout(); err != nil {
		return errors.Wrap(err, "error clearing session")
	}

	fmt.Println("Logout was successful.")

	return nil
}

func register(c *cli.Context) error {
	email := c.String(flagEmail)
	userName := c.String(flagName)
	password := c.String(flagPassword)
	role := sessions.RoleStudent
	if c.Bool(flagCreator) {
		role = sessions.RoleCreator
	}

	if email == "" || userName == "" || password == "" {
		if !terminal.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New(
				"--email, --name, and --password are all required for " +
					"non-interactive registration",
			)
		}
	}
	for email == "" {
		if err := survey.AskOne(
			&survey.Input{Message: "Email address"},
			&email,
		); err != nil {
			return err
		}
	}
	for userName == "" {
		if err := survey.AskOne(
			&survey.Input{Message: "Display name"},
			&userName,
		); err != nil {
			return err
		}
	}
	for password == "" {
		if err := survey.AskOne(
			&survey.Password{Message: "Password"},
			&password,
		); err != nil {
			return err
		}
	}

	sessionManager, err := getSessionManager(c)
	if err != nil {
		return err
	}
	if err := sessionManager.Register(
		c.Context,
		email,
		userName,
		password,
		role,
	); err != nil {
		return err
	}

	fmt.Printf(
		"\nAccount %s created. Use `opencourse login` to start a session.\n",
		email,
	)

	return nil
}

func whoami(c *cli.Context) error {
	sessionManager, err := ensureAllowed(c, guards.Authenticated)
	if err != nil {
		return err
	}
	snapshot := sessionManager.Snapshot()

	fmt.Printf(
		"You are logged in as %s (%s), role %s.\n",
		snapshot.UserName,
		snapshot.Email,
		snapshot.Role,
	)

	return nil
}
