package recipe

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Temni23/foodgram-backend/domain"
	"github.com/Temni23/foodgram-backend/entities"
	"github.com/Temni23/foodgram-backend/internal/utils"
	"github.com/Temni23/foodgram-backend/pkg/catalog"
)

type (
	// UserReader is the slice of the user store the recipe features need:
	// the author subscription flag and the shopping-list header name.
	UserReader interface {
		IsFollowing(ctx context.Context, userID, followingID string) (bool, error)
		GetUsernameByID(ctx context.Context, id string) (string, error)
	}

	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, authorID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID, authorID string) error
		GetRecipeDetail(ctx context.Context, recipeID, viewerID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, viewerID string, filter domain.RecipeFilter, page, limit int) ([]domain.RecipeResponse, int64, error)

		FavoriteRecipe(ctx context.Context, userID, recipeID string) (domain.RecipeSummary, error)
		UnfavoriteRecipe(ctx context.Context, userID, recipeID string) error
		AddToCart(ctx context.Context, userID, recipeID string) (domain.RecipeSummary, error)
		RemoveFromCart(ctx context.Context, userID, recipeID string) error

		BuildShoppingList(ctx context.Context, userID string) (domain.ShoppingList, error)
	}

	recipeService struct {
		recipeRepository  RecipeRepository
		catalogRepository catalog.CatalogRepository
		userReader        UserReader
	}
)

func NewRecipeService(recipeRepository RecipeRepository, catalogRepository catalog.CatalogRepository, userReader UserReader) RecipeService {
	return &recipeService{
		recipeRepository:  recipeRepository,
		catalogRepository: catalogRepository,
		userReader:        userReader,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.RecipeResponse, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	tags, lines, err := s.resolveComposition(ctx, req.CookingTime, req.TagIDs, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorUUID,
		Name:        req.Name,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	if err := s.recipeRepository.CreateRecipe(ctx, recipe, tags, lines); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipe.ID.String(), authorID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, authorID string) (domain.RecipeResponse, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if recipe.AuthorID.String() != authorID {
		return domain.RecipeResponse{}, domain.ErrNotRecipeAuthor
	}

	tags, lines, err := s.resolveComposition(ctx, req.CookingTime, req.TagIDs, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	// Author identity never changes on update.
	recipe.Name = req.Name
	recipe.Image = req.Image
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime
	recipe.Tags = nil
	recipe.Ingredients = nil
	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, tags, lines); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID, authorID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID, authorID string) error {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID.String() != authorID {
		return domain.ErrNotRecipeAuthor
	}
	return s.recipeRepository.DeleteRecipe(ctx, recipe.ID)
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID, viewerID string) (domain.RecipeResponse, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return s.toRecipeResponse(ctx, recipe, viewerID)
}

func (s *recipeService) GetRecipes(ctx context.Context, viewerID string, filter domain.RecipeFilter, page, limit int) ([]domain.RecipeResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, viewerID, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		item, err := s.toRecipeResponse(ctx, recipe, viewerID)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, item)
	}
	return res, count, nil
}

func (s *recipeService) FavoriteRecipe(ctx context.Context, userID, recipeID string) (domain.RecipeSummary, error) {
	userUUID, recipe, err := s.membershipTarget(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeSummary{}, err
	}

	favorited, err := s.recipeRepository.IsFavorited(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeSummary{}, err
	}
	if favorited {
		return domain.RecipeSummary{}, domain.ErrAlreadyFavorited
	}

	if err := s.recipeRepository.AddFavorite(ctx, userUUID, recipe.ID); err != nil {
		// Concurrent adds race on the unique pair; the loser gets a conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeSummary{}, domain.ErrAlreadyFavorited
		}
		return domain.RecipeSummary{}, err
	}
	return toRecipeSummary(recipe), nil
}

func (s *recipeService) UnfavoriteRecipe(ctx context.Context, userID, recipeID string) error {
	if _, _, err := s.membershipTarget(ctx, userID, recipeID); err != nil {
		return err
	}

	rows, err := s.recipeRepository.RemoveFavorite(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFavorited
	}
	return nil
}

func (s *recipeService) AddToCart(ctx context.Context, userID, recipeID string) (domain.RecipeSummary, error) {
	userUUID, recipe, err := s.membershipTarget(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeSummary{}, err
	}

	inCart, err := s.recipeRepository.IsInCart(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeSummary{}, err
	}
	if inCart {
		return domain.RecipeSummary{}, domain.ErrAlreadyInCart
	}

	if err := s.recipeRepository.AddToCart(ctx, userUUID, recipe.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeSummary{}, domain.ErrAlreadyInCart
		}
		return domain.RecipeSummary{}, err
	}
	return toRecipeSummary(recipe), nil
}

func (s *recipeService) RemoveFromCart(ctx context.Context, userID, recipeID string) error {
	if _, _, err := s.membershipTarget(ctx, userID, recipeID); err != nil {
		return err
	}

	rows, err := s.recipeRepository.RemoveFromCart(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotInCart
	}
	return nil
}

func (s *recipeService) BuildShoppingList(ctx context.Context, userID string) (domain.ShoppingList, error) {
	username, err := s.userReader.GetUsernameByID(ctx, userID)
	if err != nil {
		return domain.ShoppingList{}, domain.ErrUserNotFound
	}

	names, err := s.recipeRepository.GetCartRecipeNames(ctx, userID)
	if err != nil {
		return domain.ShoppingList{}, err
	}

	items, err := s.recipeRepository.AggregateCart(ctx, userID)
	if err != nil {
		return domain.ShoppingList{}, err
	}

	return domain.ShoppingList{
		Username:    username,
		RecipeNames: names,
		Items:       items,
		GeneratedAt: time.Now(),
	}, nil
}

func (s *recipeService) getRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrParseUUID
	}
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) membershipTarget(ctx context.Context, userID, recipeID string) (uuid.UUID, *entities.Recipe, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, nil, domain.ErrParseUUID
	}
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return userUUID, recipe, nil
}

// resolveComposition validates the shared amount bounds and resolves tag and
// ingredient references before any row is written.
func (s *recipeService) resolveComposition(ctx context.Context, cookingTime int, tagIDs []string, ingredients []domain.RecipeIngredientRequest) ([]entities.Tag, []entities.RecipeIngredient, error) {
	min, max := utils.AmountBounds()
	if cookingTime < min || cookingTime > max {
		return nil, nil, domain.ErrCookingTimeOutOfRange
	}
	if len(ingredients) == 0 {
		return nil, nil, domain.ErrNoIngredientLines
	}

	tagUUIDs := make([]uuid.UUID, 0, len(tagIDs))
	for _, id := range tagIDs {
		tagUUID, err := uuid.Parse(id)
		if err != nil {
			return nil, nil, domain.ErrParseUUID
		}
		tagUUIDs = append(tagUUIDs, tagUUID)
	}
	tags, err := s.catalogRepository.GetTagsByIDs(ctx, tagUUIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(tagUUIDs) {
		return nil, nil, domain.ErrTagNotFound
	}

	lines := make([]entities.RecipeIngredient, 0, len(ingredients))
	ingredientUUIDs := make([]uuid.UUID, 0, len(ingredients))
	for _, line := range ingredients {
		if line.Amount < min || line.Amount > max {
			return nil, nil, domain.ErrAmountOutOfRange
		}
		ingredientUUID, err := uuid.Parse(line.IngredientID)
		if err != nil {
			return nil, nil, domain.ErrParseUUID
		}
		ingredientUUIDs = append(ingredientUUIDs, ingredientUUID)
		lines = append(lines, entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: ingredientUUID,
			Amount:       line.Amount,
		})
	}

	known, err := s.catalogRepository.GetIngredientsByIDs(ctx, ingredientUUIDs)
	if err != nil {
		return nil, nil, err
	}
	knownIDs := make(map[uuid.UUID]struct{}, len(known))
	for _, ingredient := range known {
		knownIDs[ingredient.ID] = struct{}{}
	}
	for _, id := range ingredientUUIDs {
		if _, ok := knownIDs[id]; !ok {
			return nil, nil, domain.ErrIngredientNotFound
		}
	}

	return tags, lines, nil
}

func (s *recipeService) toRecipeResponse(ctx context.Context, recipe *entities.Recipe, viewerID string) (domain.RecipeResponse, error) {
	isFavorited, err := s.recipeRepository.IsFavorited(ctx, viewerID, recipe.ID.String())
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	isInCart, err := s.recipeRepository.IsInCart(ctx, viewerID, recipe.ID.String())
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	author := domain.UserResponse{ID: recipe.AuthorID.String()}
	if recipe.Author != nil {
		isSubscribed := false
		if viewerID != recipe.AuthorID.String() {
			isSubscribed, err = s.userReader.IsFollowing(ctx, viewerID, recipe.AuthorID.String())
			if err != nil {
				return domain.RecipeResponse{}, err
			}
		}
		author = domain.UserResponse{
			ID:           recipe.Author.ID.String(),
			Email:        recipe.Author.Email,
			Username:     recipe.Author.Username,
			FirstName:    recipe.Author.FirstName,
			LastName:     recipe.Author.LastName,
			IsSubscribed: isSubscribed,
		}
	}

	tags := make([]domain.TagResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, domain.TagResponse{
			ID:    tag.ID.String(),
			Name:  tag.Name,
			Color: tag.Color,
			Slug:  tag.Slug,
		})
	}

	lines := make([]domain.RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		item := domain.RecipeIngredientResponse{
			ID:     line.IngredientID.String(),
			Amount: line.Amount,
		}
		if line.Ingredient != nil {
			item.Name = line.Ingredient.Name
			item.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
		lines = append(lines, item)
	}

	return domain.RecipeResponse{
		ID:               recipe.ID.String(),
		Author:           author,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		Tags:             tags,
		Ingredients:      lines,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		CreatedAt:        recipe.CreatedAt,
	}, nil
}

func toRecipeSummary(recipe *entities.Recipe) domain.RecipeSummary {
	return domain.RecipeSummary{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}
