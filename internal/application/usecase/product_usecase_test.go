package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qkart/internal/application/usecase"
	"qkart/internal/domain/common"
)

func TestProductSearch(t *testing.T) {
	products := usecase.NewProductUsecase(newStore().Products())
	ctx := context.Background()

	all, err := products.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	fashion, err := products.Search(ctx, "FASHION")
	require.NoError(t, err)
	assert.Len(t, fashion, 2)

	racquet, err := products.Search(ctx, "racquet")
	require.NoError(t, err)
	require.Len(t, racquet, 1)
	assert.Equal(t, "p50", racquet[0].ID)
}

func TestProductGetByID(t *testing.T) {
	products := usecase.NewProductUsecase(newStore().Products())

	p, err := products.GetByID(context.Background(), "p7")
	require.NoError(t, err)
	assert.Equal(t, 7.25, p.Cost)

	_, err = products.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
