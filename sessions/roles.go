package sessions

// Role is the authorization role attached to a session. The API is the sole
// authority on role assignment; this package only relays what the server
// said at login.
type Role string

const (
	// RoleStudent identifies a user who may browse and enroll in courses.
	RoleStudent Role = "STUDENT"
	// RoleCreator identifies a user who may also author and manage courses.
	RoleCreator Role = "CREATOR"
)
