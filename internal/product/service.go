package product

import (
	"context"
	"time"

	"github.com/thomsonxavier/kaviecommerce/internal/logger"
	"github.com/thomsonxavier/kaviecommerce/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input CreateInput) (*Product, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Product, error) {
	log := logger.FromCtx(ctx)

	if !input.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	if len(input.Sizes) == 0 {
		return nil, ErrNoSizes
	}
	if len(input.Images) > MaxImages {
		return nil, ErrTooManyImages
	}

	id := input.ID
	if id == "" {
		id = utils.Slugify(input.Name)
	}

	now := time.Now().UTC()
	p := &Product{
		ID:          id,
		Name:        input.Name,
		Category:    input.Category,
		Type:        input.Type,
		Sizes:       input.Sizes,
		Images:      input.Images,
		Description: input.Description,
		Ingredients: input.Ingredients,
		InStock:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.InStock != nil {
		p.InStock = *input.InStock
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Ingredients == nil {
		p.Ingredients = []string{}
	}

	if err := s.repo.Save(ctx, p); err != nil {
		log.Error("failed to create product",
			zap.String("product_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	log.Info("product created", zap.String("product_id", id))
	return p, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateInput) (*Product, error) {
	log := logger.FromCtx(ctx)

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Images != nil && len(*input.Images) > MaxImages {
		return nil, ErrTooManyImages
	}
	if input.Category != nil && !input.Category.Valid() {
		return nil, ErrInvalidCategory
	}

	if input.Name != nil && *input.Name != "" {
		p.Name = *input.Name
	}
	if input.Category != nil {
		p.Category = *input.Category
	}
	if input.Type != nil && *input.Type != "" {
		p.Type = *input.Type
	}
	if len(input.Sizes) > 0 {
		p.Sizes = input.Sizes
	}
	if input.Images != nil {
		p.Images = *input.Images
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Ingredients != nil {
		p.Ingredients = *input.Ingredients
	}
	if input.InStock != nil {
		p.InStock = *input.InStock
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		log.Error("failed to update product",
			zap.String("product_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx)

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete product",
			zap.String("product_id", id),
			zap.Error(err),
		)
		return err
	}

	log.Info("product deleted", zap.String("product_id", id))
	return nil
}
