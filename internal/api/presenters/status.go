package presenters

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Temni23/foodgram-backend/domain"
)

// StatusForError maps the shared error taxonomy to HTTP statuses:
// absence to 404, validation and duplicate-pair conflicts to 400,
// anything unrecognized to 500.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrFollowNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrSelfFollow),
		errors.Is(err, domain.ErrAlreadyFollowing),
		errors.Is(err, domain.ErrAlreadyFavorited),
		errors.Is(err, domain.ErrNotFavorited),
		errors.Is(err, domain.ErrAlreadyInCart),
		errors.Is(err, domain.ErrNotInCart),
		errors.Is(err, domain.ErrIngredientExists),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrCookingTimeOutOfRange),
		errors.Is(err, domain.ErrAmountOutOfRange),
		errors.Is(err, domain.ErrNoIngredientLines),
		errors.Is(err, domain.ErrNotRecipeAuthor),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
