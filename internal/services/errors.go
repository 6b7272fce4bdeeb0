package services

import "errors"

// ErrNotFound is returned when a slug, id, or username does not resolve to a
// stored record. Existence is always checked before ownership, so a missing
// record reports not-found regardless of who is asking.
var ErrNotFound = errors.New("record not found")

// ErrForbidden is returned when an authenticated actor is not the author of
// the record they are trying to mutate.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicateAccount is returned on registration when the email or username
// is already taken.
var ErrDuplicateAccount = errors.New("email or username already in use")

// ErrEmailTaken is returned on profile update when the new email belongs to
// another account.
var ErrEmailTaken = errors.New("email already in use")

// ErrUsernameTaken is returned on profile update when the new username
// belongs to another account.
var ErrUsernameTaken = errors.New("username already in use")

// ErrInvalidCredentials is returned on login for both an unknown email and a
// wrong password, so the response never reveals whether the email exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrSelfFollow is returned when a user attempts to follow themselves.
var ErrSelfFollow = errors.New("you can't follow yourself")
