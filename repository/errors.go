package repository

import "errors"

// errProfileMissing aborts a users.json update without writing
var errProfileMissing = errors.New("profile not found")
