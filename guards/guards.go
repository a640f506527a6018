// Package guards decides whether a protected screen is reachable for the
// current session. A guard is a pure function of a session Snapshot: while
// the session state is still loading it reports Checking-- callers render a
// neutral placeholder, never content and never a redirect-- and once the
// state is ready it reports exactly one of Allow or Deny. Denial is a state,
// not an error.
package guards

import (
	"context"

	"github.com/opencourse/opencourse/sessions"
)

// Decision is a guard's verdict on a single evaluation.
type Decision int

const (
	// Checking means the session state is still loading and no verdict can
	// be given yet.
	Checking Decision = iota
	// Allow means the protected content may be rendered.
	Allow
	// Deny means the protected content must not be rendered; the Outcome
	// says whether to redirect or to render a notice in place.
	Deny
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "ALLOW"
	case Deny:
		return "DENY"
	}
	return "CHECKING"
}

// Well-known destinations for denied navigation.
const (
	// LoginPath is where an unauthenticated user is redirected. The redirect
	// replaces history so the denied screen is not reachable via "back".
	LoginPath = "/login"
	// HomePath is offered as the way out of an in-place access-denied
	// notice.
	HomePath = "/"
)

// CreatorNotice is the in-place notice shown to an authenticated
// non-creator who attempts to reach a creator-only screen.
const CreatorNotice = "You need to be a creator to access this page."

// Outcome is the full result of evaluating a guard. Redirect and Notice are
// mutually exclusive and only ever set on a Deny.
type Outcome struct {
	Decision Decision
	// Redirect, when non-empty, is the path the user must be sent to
	// instead, replacing the current history entry.
	Redirect string
	// Notice, when non-empty, is rendered in place of the protected content,
	// with no redirect.
	Notice string
}

// Guard evaluates a session Snapshot into an Outcome. Guards are pure: they
// may be re-evaluated against every new Snapshot, and the verdict for a
// given Snapshot never varies.
type Guard func(sessions.Snapshot) Outcome

// Authenticated is the guard for screens that require any session at all.
func Authenticated(snapshot sessions.Snapshot) Outcome {
	if !snapshot.Ready {
		return Outcome{Decision: Checking}
	}
	if !snapshot.Authenticated {
		return Outcome{Decision: Deny, Redirect: LoginPath}
	}
	return Outcome{Decision: Allow}
}

// Creator is the guard for screens that require a creator session. An
// unauthenticated user is redirected to login; an authenticated non-creator
// gets an in-place notice instead, since sending them to login could not
// help.
func Creator(snapshot sessions.Snapshot) Outcome {
	if !snapshot.Ready {
		return Outcome{Decision: Checking}
	}
	if !snapshot.Authenticated {
		return Outcome{Decision: Deny, Redirect: LoginPath}
	}
	if !snapshot.IsCreator() {
		return Outcome{Decision: Deny, Notice: CreatorNotice}
	}
	return Outcome{Decision: Allow}
}

// SessionWatcher is the slice of the session Manager guards depend on.
type SessionWatcher interface {
	// Watch delivers the current session Snapshot and every subsequent
	// transition until ctx is done.
	Watch(ctx context.Context) <-chan sessions.Snapshot
}

// Resolve evaluates a guard against the live session state, blocking while
// the verdict is Checking. It returns the first terminal Outcome, which is
// guaranteed to postdate the session's startup check-- a guard waits, it
// never guesses. Cancellation of ctx abandons the pending evaluation.
func Resolve(
	ctx context.Context,
	sessionState SessionWatcher,
	guard Guard,
) (Outcome, error) {
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	snapshots := sessionState.Watch(watchCtx)
	for {
		select {
		case <-ctx.Done():
			return Outcome{Decision: Checking}, ctx.Err()
		case snapshot := <-snapshots:
			if outcome := guard(snapshot); outcome.Decision != Checking {
				return outcome, nil
			}
		}
	}
}
