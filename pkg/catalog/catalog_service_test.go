package catalog

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Temni23/foodgram-backend/domain"
	"github.com/Temni23/foodgram-backend/entities"
)

type fakeCatalogRepo struct {
	ingredients map[uuid.UUID]*entities.Ingredient
	tags        map[uuid.UUID]*entities.Tag
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		ingredients: make(map[uuid.UUID]*entities.Ingredient),
		tags:        make(map[uuid.UUID]*entities.Tag),
	}
}

func (f *fakeCatalogRepo) GetIngredients(_ context.Context, namePrefix string) ([]*entities.Ingredient, error) {
	var res []*entities.Ingredient
	for _, ingredient := range f.ingredients {
		if namePrefix == "" || strings.HasPrefix(ingredient.Name, namePrefix) {
			res = append(res, ingredient)
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
	return ingredient, nil
}

func (f *fakeCatalogRepo) GetIngredientsByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
	var res []*entities.Ingredient
	for _, id := range ids {
		if ingredient, ok := f.ingredients[id]; ok {
			res = append(res, ingredient)
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
	exists, _ := f.IngredientExists(context.Background(), ingredient.Name, ingredient.MeasurementUnit)
	if exists {
		return gorm.ErrDuplicatedKey
	}
	f.ingredients[ingredient.ID] = ingredient
	return nil
}

func (f *fakeCatalogRepo) GetTags(_ context.Context) ([]*entities.Tag, error) {
	var res []*entities.Tag
	for _, tag := range f.tags {
		res = append(res, tag)
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
	return tag, nil
}

func (f *fakeCatalogRepo) GetTagsByIDs(_ context.Context, ids []uuid.UUID) ([]entities.Tag, error) {
	var res []entities.Tag
	for _, id := range ids {
		if tag, ok := f.tags[id]; ok {
			res = append(res, *tag)
		}
	}
	return res, nil
}

func TestCreateIngredient(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new ingredient", func(t *testing.T) {
		service := NewCatalogService(newFakeCatalogRepo())

		res, err := service.CreateIngredient(ctx, domain.CreateIngredientRequest{
			Name: "flour", MeasurementUnit: "g",
		})
		require.NoError(t, err)
		assert.Equal(t, "flour", res.Name)
		assert.Equal(t, "g", res.MeasurementUnit)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("identical name and unit conflicts", func(t *testing.T) {
		service := NewCatalogService(newFakeCatalogRepo())

		_, err := service.CreateIngredient(ctx, domain.CreateIngredientRequest{
			Name: "flour", MeasurementUnit: "g",
		})
		require.NoError(t, err)

		_, err = service.CreateIngredient(ctx, domain.CreateIngredientRequest{
			Name: "flour", MeasurementUnit: "g",
		})
		assert.ErrorIs(t, err, domain.ErrIngredientExists)
	})

	t.Run("same name with another unit is a distinct row", func(t *testing.T) {
		service := NewCatalogService(newFakeCatalogRepo())

		_, err := service.CreateIngredient(ctx, domain.CreateIngredientRequest{
			Name: "flour", MeasurementUnit: "g",
		})
		require.NoError(t, err)

		_, err = service.CreateIngredient(ctx, domain.CreateIngredientRequest{
			Name: "flour", MeasurementUnit: "kg",
		})
		assert.NoError(t, err)
	})
}

func TestGetIngredients(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCatalogRepo()
	service := NewCatalogService(repo)

	for _, row := range []domain.CreateIngredientRequest{
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "milk", MeasurementUnit: "ml"},
	} {
		_, err := service.CreateIngredient(ctx, row)
		require.NoError(t, err)
	}

	all, err := service.GetIngredients(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "milk", all[0].Name)

	salted, err := service.GetIngredients(ctx, "sa")
	require.NoError(t, err)
	require.Len(t, salted, 1)
	assert.Equal(t, "salt", salted[0].Name)
}

func TestGetIngredientByID(t *testing.T) {
	ctx := context.Background()
	service := NewCatalogService(newFakeCatalogRepo())

	created, err := service.CreateIngredient(ctx, domain.CreateIngredientRequest{
		Name: "flour", MeasurementUnit: "g",
	})
	require.NoError(t, err)

	res, err := service.GetIngredientByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "flour", res.Name)

	_, err = service.GetIngredientByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)

	_, err = service.GetIngredientByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestImportIngredients(t *testing.T) {
	ctx := context.Background()
	service := NewCatalogService(newFakeCatalogRepo())

	_, err := service.CreateIngredient(ctx, domain.CreateIngredientRequest{
		Name: "flour", MeasurementUnit: "g",
	})
	require.NoError(t, err)

	imported, skipped, err := service.ImportIngredients(ctx, []domain.CreateIngredientRequest{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "milk", MeasurementUnit: "ml"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	assert.Equal(t, 2, skipped)
}

func TestGetTags(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCatalogRepo()
	service := NewCatalogService(repo)

	breakfast := &entities.Tag{ID: uuid.New(), Name: "breakfast", Color: "#E26C2D", Slug: "breakfast"}
	dinner := &entities.Tag{ID: uuid.New(), Name: "dinner", Color: "#49B64E", Slug: "dinner"}
	repo.tags[breakfast.ID] = breakfast
	repo.tags[dinner.ID] = dinner

	tags, err := service.GetTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "breakfast", tags[0].Name)
	assert.Equal(t, "breakfast", tags[0].Slug)

	tag, err := service.GetTagByID(ctx, dinner.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "dinner", tag.Name)

	_, err = service.GetTagByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}
