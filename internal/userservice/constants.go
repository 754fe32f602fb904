package userservice

const (
	// Error messages for user service operations
	ErrFailedToHashPassword = "failed to hash password" // #nosec G101
	ErrFailedToRegisterUser = "failed to register user"
	ErrRetrievingUser       = "error retrieving user"
	ErrUserNotFound         = "user not found"
	ErrNoUserWithEmail      = "no user found with this email address"
	ErrIncorrectPassword    = "incorrect password"
	ErrInvalidEmail         = "must use a valid email address"
	ErrMissingUsername      = "username is required"
)
