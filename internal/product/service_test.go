package product

import (
	"context"
	"testing"

	"github.com/thomsonxavier/kaviecommerce/internal/kvstore"
	"github.com/thomsonxavier/kaviecommerce/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(NewRepository(kvstore.NewMemoryStore()))
}

func shampooInput() CreateInput {
	return CreateInput{
		Name:     "Aloe Vera Shampoo",
		Category: CategoryPersonalCare,
		Type:     "Shampoo",
		Sizes: []Size{
			{Value: "200ml", Price: 199},
			{Value: "400ml", Price: 349},
		},
		Ingredients: []string{"Aloe Vera Extract", "Coconut Oil"},
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("SlugFromName", func(t *testing.T) {
		svc := newTestService(t)

		p, err := svc.Create(ctx, shampooInput())
		require.NoError(t, err)
		assert.Equal(t, "aloe-vera-shampoo", p.ID)
		assert.True(t, p.InStock)
		assert.Equal(t, []string{}, p.Images)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("ExplicitID", func(t *testing.T) {
		svc := newTestService(t)
		input := shampooInput()
		input.ID = "shampoo-aloe-vera"

		p, err := svc.Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "shampoo-aloe-vera", p.ID)
	})

	t.Run("InvalidCategory", func(t *testing.T) {
		svc := newTestService(t)
		input := shampooInput()
		input.Category = "Garden Care"

		_, err := svc.Create(ctx, input)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("TooManyImages", func(t *testing.T) {
		svc := newTestService(t)
		input := shampooInput()
		input.Images = []string{"1", "2", "3", "4", "5", "6"}

		_, err := svc.Create(ctx, input)
		assert.ErrorIs(t, err, ErrTooManyImages)
	})

	t.Run("NoSizes", func(t *testing.T) {
		svc := newTestService(t)
		input := shampooInput()
		input.Sizes = nil

		_, err := svc.Create(ctx, input)
		assert.ErrorIs(t, err, ErrNoSizes)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	t.Run("EmptyCatalog", func(t *testing.T) {
		products, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []*Product{}, products)
	})

	t.Run("AfterCreate", func(t *testing.T) {
		_, err := svc.Create(ctx, shampooInput())
		require.NoError(t, err)

		input := shampooInput()
		input.Name = "Neem Soap"
		input.Type = "Soap"
		_, err = svc.Create(ctx, input)
		require.NoError(t, err)

		products, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "aloe-vera-shampoo", products[0].ID)
		assert.Equal(t, "neem-soap", products[1].ID)
	})

	t.Run("RecreateDoesNotDoubleList", func(t *testing.T) {
		_, err := svc.Create(ctx, shampooInput())
		require.NoError(t, err)

		products, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Create(ctx, shampooInput())
	require.NoError(t, err)

	t.Run("PartialUpdate", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, UpdateInput{
			Description: utils.StrPtr("Now with extra aloe."),
			InStock:     utils.BoolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, "Now with extra aloe.", updated.Description)
		assert.False(t, updated.InStock)
		// untouched fields stay
		assert.Equal(t, created.Name, updated.Name)
		assert.Equal(t, created.Sizes, updated.Sizes)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := svc.Update(ctx, "no-such-product", UpdateInput{})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("TooManyImages", func(t *testing.T) {
		images := []string{"1", "2", "3", "4", "5", "6"}
		_, err := svc.Update(ctx, created.ID, UpdateInput{Images: &images})
		assert.ErrorIs(t, err, ErrTooManyImages)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Create(ctx, shampooInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	// record gone and index entry gone
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	products, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	t.Run("NotFound", func(t *testing.T) {
		err := svc.Delete(ctx, "no-such-product")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestProduct_SizePrice(t *testing.T) {
	p := &Product{Sizes: []Size{{Value: "200ml", Price: 199}}}

	price, ok := p.SizePrice("200ml")
	assert.True(t, ok)
	assert.Equal(t, 199.0, price)

	_, ok = p.SizePrice("1l")
	assert.False(t, ok)
}
