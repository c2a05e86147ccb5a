package service

import (
	"errors"

	"gorm.io/gorm"
)

// Error kinds returned by every service operation. The HTTP layer maps
// them to status codes; raw storage errors never cross this boundary.
var (
	ErrNotFound           = errors.New("not found")           // 404
	ErrForbidden          = errors.New("forbidden")           // 403
	ErrConflict           = errors.New("conflict")            // 409
	ErrInvalidArgument    = errors.New("invalid argument")    // 400
	ErrInvalidState       = errors.New("invalid state")       // 400
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
)

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
