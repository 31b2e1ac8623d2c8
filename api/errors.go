package api

import "fmt"

var (
	ErrInvalidRequest = fmt.Errorf("invalid request")
	ErrInternalServer = fmt.Errorf("Internal server error")
)

var (
	ErrUserNotFound      = fmt.Errorf("User not found")
	ErrUserAlreadyExists = fmt.Errorf("User already exists")
)

var (
	ErrRecipeNotFound     = fmt.Errorf("Recipe not found")
	ErrRecipeInsertFailed = fmt.Errorf("Failed to add recipe")
	ErrInsufficientCoins  = fmt.Errorf("Insufficient coins")
)

var (
	ErrMissingAuthorization = fmt.Errorf("missing or malformed Authorization header")
)
