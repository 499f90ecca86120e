package domain

// Identity keys set on the gin context by the auth middleware. Plain strings:
// gin's Context.Value only consults its key store for string keys, so a named
// key type would silently miss.
const (
	KeyUserID    = "UserID"
	KeyUserEmail = "Email"
	KeyUserRole  = "Role"
)

// Roles carried in the auth token.
const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)
