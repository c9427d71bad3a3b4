package bundles

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockwatchhq/stockwatch-backend/pkg/db"
	"github.com/stockwatchhq/stockwatch-backend/pkg/db/models"
	"github.com/stockwatchhq/stockwatch-backend/pkg/enums"
	pkgerrors "github.com/stockwatchhq/stockwatch-backend/pkg/errors"
)

// maxBundleDepth bounds the cycle walk so a corrupt graph cannot hang the API.
const maxBundleDepth = 32

// Service exposes bundle composition operations.
type Service interface {
	AddComponent(ctx context.Context, bundleProductID, componentProductID uuid.UUID, quantity int) (*ComponentDTO, error)
	ListComponents(ctx context.Context, bundleProductID uuid.UUID) ([]ComponentDTO, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo        *Repository
	productRepo productLoader
}

// NewService constructs a bundle service instance.
func NewService(repo *Repository, productRepo productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bundle repository required")
	}
	if productRepo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo, productRepo: productRepo}, nil
}

// AddComponent attaches a component to a bundle after checking that the new
// edge keeps the composition graph acyclic.
func (s *service) AddComponent(ctx context.Context, bundleProductID, componentProductID uuid.UUID, quantity int) (*ComponentDTO, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}
	if bundleProductID == componentProductID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a bundle cannot contain itself")
	}

	bundle, err := s.loadProduct(ctx, bundleProductID, "bundle product not found")
	if err != nil {
		return nil, err
	}
	if bundle.ProductType != enums.ProductTypeBundle {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not a bundle").WithDetails(map[string]any{"product_id": bundleProductID})
	}

	component, err := s.loadProduct(ctx, componentProductID, "component product not found")
	if err != nil {
		return nil, err
	}
	if component.CompanyID != bundle.CompanyID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "component belongs to a different company")
	}

	if err := s.ensureAcyclic(ctx, bundleProductID, componentProductID); err != nil {
		return nil, err
	}

	link := &models.ProductBundle{
		BundleProductID:    bundleProductID,
		ComponentProductID: componentProductID,
		Quantity:           quantity,
	}
	created, err := s.repo.Create(ctx, link)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_product_bundles_pair") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "component is already part of this bundle").WithDetails(map[string]any{
				"bundle_product_id":    bundleProductID,
				"component_product_id": componentProductID,
			})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert bundle component")
	}
	return NewComponentDTO(created), nil
}

// ListComponents returns the direct components of a bundle.
func (s *service) ListComponents(ctx context.Context, bundleProductID uuid.UUID) ([]ComponentDTO, error) {
	if _, err := s.loadProduct(ctx, bundleProductID, "bundle product not found"); err != nil {
		return nil, err
	}
	links, err := s.repo.ListComponents(ctx, bundleProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list bundle components")
	}
	dtos := make([]ComponentDTO, 0, len(links))
	for i := range links {
		dtos = append(dtos, *NewComponentDTO(&links[i]))
	}
	return dtos, nil
}

// ensureAcyclic walks down from the candidate component. If the bundle is
// reachable, the new edge would close a loop.
func (s *service) ensureAcyclic(ctx context.Context, bundleProductID, componentProductID uuid.UUID) error {
	frontier := []uuid.UUID{componentProductID}
	visited := map[uuid.UUID]struct{}{componentProductID: {}}

	for depth := 0; len(frontier) > 0; depth++ {
		if depth >= maxBundleDepth {
			return pkgerrors.New(pkgerrors.CodeValidation, "bundle nesting too deep")
		}
		next, err := s.repo.ComponentIDs(ctx, frontier)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: walk bundle graph")
		}
		frontier = frontier[:0]
		for _, id := range next {
			if id == bundleProductID {
				return pkgerrors.New(pkgerrors.CodeValidation, "adding this component would create a cycle").WithDetails(map[string]any{
					"bundle_product_id":    bundleProductID,
					"component_product_id": componentProductID,
				})
			}
			if _, seen := visited[id]; seen {
				continue
			}
			visited[id] = struct{}{}
			frontier = append(frontier, id)
		}
	}
	return nil
}

func (s *service) loadProduct(ctx context.Context, id uuid.UUID, notFoundMsg string) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMsg)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return product, nil
}
