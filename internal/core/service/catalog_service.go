package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ferremas/storefront-api/internal/core/domain"
	"github.com/ferremas/storefront-api/internal/core/ports"
)

// CatalogService serves reads from the external catalog. Flag updates are
// simulated: the caller gets a modified copy and nothing is written back.
type CatalogService struct {
	gateway  ports.CatalogGateway
	currency ports.CurrencyService
	logger   zerolog.Logger
	now      func() time.Time
}

func NewCatalogService(gateway ports.CatalogGateway, currency ports.CurrencyService, logger zerolog.Logger) *CatalogService {
	return &CatalogService{gateway: gateway, currency: currency, logger: logger, now: time.Now}
}

// ListArticles returns the full catalog, with USD prices when currency is USD.
func (s *CatalogService) ListArticles(ctx context.Context, currency string) ([]domain.Article, error) {
	articles, err := s.gateway.Articles(ctx)
	if err != nil {
		return nil, err
	}
	return s.priced(ctx, articles, currency)
}

func (s *CatalogService) GetArticle(ctx context.Context, id, currency string) (*domain.Article, error) {
	article, err := s.findArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	priced, err := s.priced(ctx, []domain.Article{*article}, currency)
	if err != nil {
		return nil, err
	}
	return &priced[0], nil
}

func (s *CatalogService) ListPromotions(ctx context.Context) ([]domain.Article, error) {
	articles, err := s.gateway.Articles(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Promotions(articles), nil
}

func (s *CatalogService) ListNovelties(ctx context.Context) ([]domain.Article, error) {
	articles, err := s.gateway.Articles(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Novelties(articles), nil
}

// MarkNovelty returns the article flagged as requested. The flag is not persisted.
func (s *CatalogService) MarkNovelty(ctx context.Context, id string, flag bool) (*domain.Article, error) {
	article, err := s.findArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	marked := article.WithNovelty(flag)
	s.logger.Info().Str("article_id", id).Bool("is_novedad", flag).Msg("novelty flag simulated")
	return &marked, nil
}

// MarkPromotion returns the article with the promotion flag and discount set.
// Nothing is persisted.
func (s *CatalogService) MarkPromotion(ctx context.Context, in ports.MarkPromotionInput) (*domain.Article, error) {
	article, err := s.findArticle(ctx, in.ArticleID)
	if err != nil {
		return nil, err
	}
	marked := article.WithPromotion(in.IsPromocion, in.Descuento)
	s.logger.Info().Str("article_id", in.ArticleID).Bool("is_promocion", in.IsPromocion).Msg("promotion flag simulated")
	return &marked, nil
}

func (s *CatalogService) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return s.gateway.Branches(ctx)
}

func (s *CatalogService) ListSellers(ctx context.Context) ([]domain.Seller, error) {
	return s.gateway.Sellers(ctx)
}

func (s *CatalogService) GetSeller(ctx context.Context, id string) (*domain.Seller, error) {
	sellers, err := s.gateway.Sellers(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FindSeller(sellers, id)
}

// ContactSeller acknowledges a contact request for an existing seller.
// No message is delivered.
func (s *CatalogService) ContactSeller(ctx context.Context, in ports.ContactSellerInput) (*domain.ContactRequest, error) {
	seller, err := s.GetSeller(ctx, in.SellerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("seller_id", seller.ID).
		Str("client_id", in.ClientID).
		Str("tipo_contacto", in.TipoContacto).
		Msg("seller contact requested")

	return &domain.ContactRequest{
		Vendedor:     seller.Nombre,
		Cliente:      in.ClientID,
		Fecha:        s.now().UTC(),
		Estado:       domain.ContactPending,
		TipoContacto: in.TipoContacto,
		Mensaje:      in.Mensaje,
	}, nil
}

func (s *CatalogService) findArticle(ctx context.Context, id string) (*domain.Article, error) {
	articles, err := s.gateway.Articles(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FindArticle(articles, id)
}

func (s *CatalogService) priced(ctx context.Context, articles []domain.Article, currency string) ([]domain.Article, error) {
	if domain.NormalizeCurrency(currency) != domain.CurrencyUSD {
		return articles, nil
	}
	return s.currency.WithUSDPrices(ctx, articles)
}
