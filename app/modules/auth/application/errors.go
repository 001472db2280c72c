package authservice

import "errors"

// ErrInvalidCredentials is returned when a username/password pair does
// not match a stored admin credential. The same error covers unknown
// usernames and wrong passwords so the two cases are indistinguishable
// to a caller.
var ErrInvalidCredentials = errors.New("invalid admin credentials")
