// internal/application/usecase/product_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	"qkart/internal/domain/common"
	productdom "qkart/internal/domain/product"
)

// ProductUsecase is the read-only catalogue.
type ProductUsecase struct {
	repo productdom.Repository
}

func NewProductUsecase(repo productdom.Repository) *ProductUsecase {
	return &ProductUsecase{repo: repo}
}

func (uc *ProductUsecase) List(ctx context.Context) ([]productdom.Product, error) {
	ps, err := uc.repo.List(ctx)
	if err != nil {
		return nil, common.Internal("product list failed", err)
	}
	if ps == nil {
		ps = []productdom.Product{}
	}
	return ps, nil
}

func (uc *ProductUsecase) GetByID(ctx context.Context, id string) (*productdom.Product, error) {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return nil, common.BadRequest("\"productId\" is required")
	}
	p, err := uc.repo.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, productdom.ErrNotFound) {
			return nil, common.NotFound("Product not found")
		}
		return nil, common.Internal("product lookup failed", err)
	}
	return p, nil
}

// Search filters the catalogue by name or category. Empty text returns everything.
func (uc *ProductUsecase) Search(ctx context.Context, text string) ([]productdom.Product, error) {
	all, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return all, nil
	}

	out := make([]productdom.Product, 0, len(all))
	for _, p := range all {
		if p.Matches(text) {
			out = append(out, p)
		}
	}
	return out, nil
}
