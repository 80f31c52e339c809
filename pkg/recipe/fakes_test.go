package recipe

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Temni23/foodgram-backend/domain"
	"github.com/Temni23/foodgram-backend/entities"
)

type fakeRecipeRepo struct {
	recipes   map[uuid.UUID]*entities.Recipe
	lines     map[uuid.UUID][]entities.RecipeIngredient
	tags      map[uuid.UUID][]entities.Tag
	favorites map[string]bool
	carts     map[string]bool
	catalog   map[uuid.UUID]entities.Ingredient
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{
		recipes:   make(map[uuid.UUID]*entities.Recipe),
		lines:     make(map[uuid.UUID][]entities.RecipeIngredient),
		tags:      make(map[uuid.UUID][]entities.Tag),
		favorites: make(map[string]bool),
		carts:     make(map[string]bool),
		catalog:   make(map[uuid.UUID]entities.Ingredient),
	}
}

func pairKey(userID, recipeID string) string {
	return userID + "|" + recipeID
}

func (f *fakeRecipeRepo) CreateRecipe(_ context.Context, recipe *entities.Recipe, tags []entities.Tag, lines []entities.RecipeIngredient) error {
	for i := range lines {
		lines[i].RecipeID = recipe.ID
	}
	f.recipes[recipe.ID] = recipe
	f.tags[recipe.ID] = tags
	f.lines[recipe.ID] = lines
	return nil
}

func (f *fakeRecipeRepo) UpdateRecipe(_ context.Context, recipe *entities.Recipe, tags []entities.Tag, lines []entities.RecipeIngredient) error {
	for i := range lines {
		lines[i].RecipeID = recipe.ID
	}
	f.recipes[recipe.ID] = recipe
	f.tags[recipe.ID] = tags
	f.lines[recipe.ID] = lines
	return nil
}

func (f *fakeRecipeRepo) DeleteRecipe(_ context.Context, id uuid.UUID) error {
	delete(f.recipes, id)
	delete(f.lines, id)
	delete(f.tags, id)
	for key := range f.favorites {
		if strings.HasSuffix(key, "|"+id.String()) {
			delete(f.favorites, key)
		}
	}
	for key := range f.carts {
		if strings.HasSuffix(key, "|"+id.String()) {
			delete(f.carts, key)
		}
	}
	return nil
}

func (f *fakeRecipeRepo) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	recipe, ok := f.recipes[recipeID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// re-join lines with the catalog, the way the store-backed query does
	clone := *recipe
	clone.Tags = f.tags[recipeID]
	clone.Ingredients = nil
	for _, line := range f.lines[recipeID] {
		if ingredient, ok := f.catalog[line.IngredientID]; ok {
			line.Ingredient = &ingredient
		}
		clone.Ingredients = append(clone.Ingredients, line)
	}
	return &clone, nil
}

func (f *fakeRecipeRepo) GetRecipes(ctx context.Context, viewerID string, filter domain.RecipeFilter, page, limit int) ([]*entities.Recipe, int64, error) {
	var res []*entities.Recipe
	for id := range f.recipes {
		if filter.IsFavorited && !f.favorites[pairKey(viewerID, id.String())] {
			continue
		}
		if filter.IsInShoppingCart && !f.carts[pairKey(viewerID, id.String())] {
			continue
		}
		recipe, _ := f.GetRecipeByID(ctx, id.String())
		res = append(res, recipe)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, int64(len(res)), nil
}

func (f *fakeRecipeRepo) GetRecipesByAuthor(_ context.Context, authorID string, limit int) ([]*entities.Recipe, int64, error) {
	var res []*entities.Recipe
	for _, recipe := range f.recipes {
		if recipe.AuthorID.String() == authorID {
			res = append(res, recipe)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	count := int64(len(res))
	if len(res) > limit {
		res = res[:limit]
	}
	return res, count, nil
}

func (f *fakeRecipeRepo) IsFavorited(_ context.Context, userID, recipeID string) (bool, error) {
	return f.favorites[pairKey(userID, recipeID)], nil
}

func (f *fakeRecipeRepo) AddFavorite(_ context.Context, userID, recipeID uuid.UUID) error {
	key := pairKey(userID.String(), recipeID.String())
	if f.favorites[key] {
		return gorm.ErrDuplicatedKey
	}
	f.favorites[key] = true
	return nil
}

func (f *fakeRecipeRepo) RemoveFavorite(_ context.Context, userID, recipeID string) (int64, error) {
	key := pairKey(userID, recipeID)
	if !f.favorites[key] {
		return 0, nil
	}
	delete(f.favorites, key)
	return 1, nil
}

func (f *fakeRecipeRepo) IsInCart(_ context.Context, userID, recipeID string) (bool, error) {
	return f.carts[pairKey(userID, recipeID)], nil
}

func (f *fakeRecipeRepo) AddToCart(_ context.Context, userID, recipeID uuid.UUID) error {
	key := pairKey(userID.String(), recipeID.String())
	if f.carts[key] {
		return gorm.ErrDuplicatedKey
	}
	f.carts[key] = true
	return nil
}

func (f *fakeRecipeRepo) RemoveFromCart(_ context.Context, userID, recipeID string) (int64, error) {
	key := pairKey(userID, recipeID)
	if !f.carts[key] {
		return 0, nil
	}
	delete(f.carts, key)
	return 1, nil
}

func (f *fakeRecipeRepo) cartRecipeIDs(userID string) []uuid.UUID {
	var ids []uuid.UUID
	for id := range f.recipes {
		if f.carts[pairKey(userID, id.String())] {
			ids = append(ids, id)
		}
	}
	return ids
}

func (f *fakeRecipeRepo) GetCartRecipeNames(_ context.Context, userID string) ([]string, error) {
	names := []string{}
	for _, id := range f.cartRecipeIDs(userID) {
		names = append(names, f.recipes[id].Name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeRecipeRepo) AggregateCart(_ context.Context, userID string) ([]domain.ShoppingListItem, error) {
	totals := make(map[string]*domain.ShoppingListItem)
	for _, id := range f.cartRecipeIDs(userID) {
		for _, line := range f.lines[id] {
			ingredient := f.catalog[line.IngredientID]
			key := ingredient.Name + "|" + ingredient.MeasurementUnit
			if item, ok := totals[key]; ok {
				item.Total += line.Amount
				continue
			}
			totals[key] = &domain.ShoppingListItem{
				Name:            ingredient.Name,
				MeasurementUnit: ingredient.MeasurementUnit,
				Total:           line.Amount,
			}
		}
	}

	items := []domain.ShoppingListItem{}
	for _, item := range totals {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

type fakeCatalogRepo struct {
	ingredients map[uuid.UUID]entities.Ingredient
	tags        map[uuid.UUID]entities.Tag
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		ingredients: make(map[uuid.UUID]entities.Ingredient),
		tags:        make(map[uuid.UUID]entities.Tag),
	}
}

func (f *fakeCatalogRepo) GetIngredients(_ context.Context, namePrefix string) ([]*entities.Ingredient, error) {
	var res []*entities.Ingredient
	for id := range f.ingredients {
		ingredient := f.ingredients[id]
		if namePrefix == "" || strings.HasPrefix(ingredient.Name, namePrefix) {
			res = append(res, &ingredient)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (f *fakeCatalogRepo) GetIngredientByID(_ context.Context, id string) (*entities.Ingredient, error) {
	ingredientID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	ingredient, ok := f.ingredients[ingredientID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &ingredient, nil
}

func (f *fakeCatalogRepo) GetIngredientsByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
	var res []*entities.Ingredient
	for _, id := range ids {
		if ingredient, ok := f.ingredients[id]; ok {
			clone := ingredient
			res = append(res, &clone)
		}
	}
	return res, nil
}

func (f *fakeCatalogRepo) IngredientExists(_ context.Context, name, measurementUnit string) (bool, error) {
	for _, ingredient := range f.ingredients {
		if ingredient.Name == name && ingredient.MeasurementUnit == measurementUnit {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCatalogRepo) CreateIngredient(_ context.Context, ingredient *entities.Ingredient) error {
	f.ingredients[ingredient.ID] = *ingredient
	return nil
}

func (f *fakeCatalogRepo) GetTags(_ context.Context) ([]*entities.Tag, error) {
	var res []*entities.Tag
	for id := range f.tags {
		tag := f.tags[id]
		res = append(res, &tag)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (f *fakeCatalogRepo) GetTagByID(_ context.Context, id string) (*entities.Tag, error) {
	tagID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	tag, ok := f.tags[tagID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &tag, nil
}

func (f *fakeCatalogRepo) GetTagsByIDs(_ context.Context, ids []uuid.UUID) ([]entities.Tag, error) {
	var res []entities.Tag
	for _, id := range ids {
		if tag, ok := f.tags[id]; ok {
			res = append(res, tag)
		}
	}
	return res, nil
}

type fakeUserReader struct {
	usernames map[string]string
	follows   map[string]bool
}

func newFakeUserReader() *fakeUserReader {
	return &fakeUserReader{
		usernames: make(map[string]string),
		follows:   make(map[string]bool),
	}
}

func (f *fakeUserReader) IsFollowing(_ context.Context, userID, followingID string) (bool, error) {
	return f.follows[pairKey(userID, followingID)], nil
}

func (f *fakeUserReader) GetUsernameByID(_ context.Context, id string) (string, error) {
	username, ok := f.usernames[id]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return username, nil
}
