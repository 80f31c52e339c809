package domain

import (
	"errors"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrParseUUID     = errors.New("failed to parse UUID")
	ErrTokenNotFound = errors.New("failed to token not found")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")
)

// Error taxonomy shared by every feature package. Handlers map these to
// HTTP statuses: validation and conflict sentinels to 400, absence
// sentinels to 404, anything else to 500.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrTagNotFound        = errors.New("tag not found")

	ErrIngredientExists = errors.New("ingredient with this name and measurement unit already exists")
	ErrEmailTaken       = errors.New("email already in use")
	ErrUsernameTaken    = errors.New("username already in use")

	ErrSelfFollow       = errors.New("self-follow is not allowed")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrFollowNotFound   = errors.New("follow does not exist")

	ErrAlreadyFavorited = errors.New("recipe already in favorites")
	ErrNotFavorited     = errors.New("recipe is not in favorites")
	ErrAlreadyInCart    = errors.New("recipe already in shopping cart")
	ErrNotInCart        = errors.New("recipe is not in shopping cart")

	ErrCookingTimeOutOfRange = errors.New("cooking_time is out of allowed range")
	ErrAmountOutOfRange      = errors.New("ingredient amount is out of allowed range")
	ErrNoIngredientLines     = errors.New("recipe must contain at least one ingredient")
	ErrNotRecipeAuthor       = errors.New("only the author can modify the recipe")

	ErrInvalidCredentials = errors.New("invalid email or password")
)
