package constant

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	DefaultUserRole = RoleUser

	// ContextUserKey is the fiber locals key the session guard stores the
	// authenticated account under.
	ContextUserKey = "currentUser"

	// TokenCookieName is the cookie the login handler sets and the guard
	// falls back to when no Authorization header is present.
	TokenCookieName = "token"
)
