package ports

import (
	"context"

	"github.com/ferremas/storefront-api/internal/core/domain"
)

// CatalogGateway reads the external product/branch/seller catalog.
// Failures are reported as *domain.ExternalError.
type CatalogGateway interface {
	Articles(ctx context.Context) ([]domain.Article, error)
	Branches(ctx context.Context) ([]domain.Branch, error)
	Sellers(ctx context.Context) ([]domain.Seller, error)
}

// MarkPromotionInput carries the promotion flag change for an article.
type MarkPromotionInput struct {
	ArticleID   string
	IsPromocion bool
	Descuento   *float64
}

// ContactSellerInput carries a client's request to be contacted by a seller.
type ContactSellerInput struct {
	SellerID     string
	ClientID     string
	Mensaje      string
	TipoContacto string
}

// CatalogService exposes catalog reads plus the simulated, non-persistent
// article flag updates.
type CatalogService interface {
	ListArticles(ctx context.Context, currency string) ([]domain.Article, error)
	GetArticle(ctx context.Context, id, currency string) (*domain.Article, error)
	ListPromotions(ctx context.Context) ([]domain.Article, error)
	ListNovelties(ctx context.Context) ([]domain.Article, error)
	MarkNovelty(ctx context.Context, id string, flag bool) (*domain.Article, error)
	MarkPromotion(ctx context.Context, input MarkPromotionInput) (*domain.Article, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
	ListSellers(ctx context.Context) ([]domain.Seller, error)
	GetSeller(ctx context.Context, id string) (*domain.Seller, error)
	ContactSeller(ctx context.Context, input ContactSellerInput) (*domain.ContactRequest, error)
}
