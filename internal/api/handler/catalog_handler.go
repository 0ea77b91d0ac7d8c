package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ferremas/storefront-api/internal/core/ports"
)

// CatalogHandler serves articles, branches and sellers from the external catalog.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListArticles returns the full catalog.
//
// @Summary      List articles
// @Tags         articulos
// @Produce      json
// @Security     BearerAuth
// @Param        currency  query     string  false  "USD adds precio_usd and exchange_rate"
// @Success      200       {array}   domain.Article
// @Failure      401       {object}  ErrorResponse
// @Failure      403       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /api/articulos [get]
func (h *CatalogHandler) ListArticles(c echo.Context) error {
	articles, err := h.service.ListArticles(c.Request().Context(), c.QueryParam("currency"))
	if err != nil {
		return failed(msgCatalogFailed, err)
	}
	return c.JSON(http.StatusOK, articles)
}

// GetArticle returns a single article.
//
// @Summary      Get article
// @Tags         articulos
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true   "Article id"
// @Param        currency  query     string  false  "USD adds precio_usd and exchange_rate"
// @Success      200       {object}  domain.Article
// @Failure      404       {object}  ErrorResponse
// @Router       /api/articulos/{id} [get]
func (h *CatalogHandler) GetArticle(c echo.Context) error {
	article, err := h.service.GetArticle(c.Request().Context(), c.Param("id"), c.QueryParam("currency"))
	if err != nil {
		return failed(msgCatalogFailed, err)
	}
	return c.JSON(http.StatusOK, article)
}

// ListPromotions returns the articles on promotion.
//
// @Summary      List promotions
// @Tags         articulos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Article
// @Router       /api/articulos/promociones [get]
func (h *CatalogHandler) ListPromotions(c echo.Context) error {
	articles, err := h.service.ListPromotions(c.Request().Context())
	if err != nil {
		return failed(msgCatalogFailed, err)
	}
	return c.JSON(http.StatusOK, articles)
}

// ListNovelties returns the newest additions to the catalog.
//
// @Summary      List novelties
// @Tags         articulos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Article
// @Router       /api/articulos/novedades [get]
func (h *CatalogHandler) ListNovelties(c echo.Context) error {
	articles, err := h.service.ListNovelties(c.Request().Context())
	if err != nil {
		return failed(msgCatalogFailed, err)
	}
	return c.JSON(http.StatusOK, articles)
}

// MarkNovelty flags an article as a novelty. The change is not persisted.
//
// @Summary      Mark novelty
// @Tags         articulos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Article id"
// @Param        body  body      noveltyRequest  true  "Flag"
// @Success      200   {object}  domain.Article
// @Failure      404   {object}  ErrorResponse
// @Router       /api/articulos/{id}/novedad [post]
func (h *CatalogHandler) MarkNovelty(c echo.Context) error {
	var req noveltyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidPayload)
	}

	article, err := h.service.MarkNovelty(c.Request().Context(), c.Param("id"), req.IsNovedad)
	if err != nil {
		return failed(msgUpdateFailed, err)
	}
	return c.JSON(http.StatusOK, article)
}

// MarkPromotion flags an article as on promotion. The change is not persisted.
//
// @Summary      Mark promotion
// @Tags         articulos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Article id"
// @Param        body  body      promotionRequest  true  "Flag and discount"
// @Success      200   {object}  domain.Article
// @Failure      404   {object}  ErrorResponse
// @Router       /api/articulos/{id}/promocion [post]
func (h *CatalogHandler) MarkPromotion(c echo.Context) error {
	var req promotionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidPayload)
	}

	article, err := h.service.MarkPromotion(c.Request().Context(), ports.MarkPromotionInput{
		ArticleID:   c.Param("id"),
		IsPromocion: req.IsPromocion,
		Descuento:   req.Descuento,
	})
	if err != nil {
		return failed(msgUpdateFailed, err)
	}
	return c.JSON(http.StatusOK, article)
}

// ListBranches returns every branch.
//
// @Summary      List branches
// @Tags         sucursales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Branch
// @Router       /api/sucursales [get]
func (h *CatalogHandler) ListBranches(c echo.Context) error {
	branches, err := h.service.ListBranches(c.Request().Context())
	if err != nil {
		return failed(msgCatalogFailed, err)
	}
	return c.JSON(http.StatusOK, branches)
}

// ListSellers returns every seller.
//
// @Summary      List sellers
// @Tags         vendedores
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Seller
// @Failure      403  {object}  ErrorResponse
// @Router       /api/vendedores [get]
func (h *CatalogHandler) ListSellers(c echo.Context) error {
	sellers, err := h.service.ListSellers(c.Request().Context())
	if err != nil {
		return failed(msgCatalogFailed, err)
	}
	return c.JSON(http.StatusOK, sellers)
}

// GetSeller returns a single seller.
//
// @Summary      Get seller
// @Tags         vendedores
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Seller id"
// @Success      200  {object}  domain.Seller
// @Failure      404  {object}  ErrorResponse
// @Router       /api/vendedores/{id} [get]
func (h *CatalogHandler) GetSeller(c echo.Context) error {
	seller, err := h.service.GetSeller(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failed(msgCatalogFailed, err)
	}
	return c.JSON(http.StatusOK, seller)
}

// ContactSeller records a client's request to be contacted by a seller.
// No notification is delivered.
//
// @Summary      Contact seller
// @Tags         vendedores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Seller id"
// @Param        body  body      contactRequest  true  "Message"
// @Success      200   {object}  contactResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/vendedores/{id}/contacto [post]
func (h *CatalogHandler) ContactSeller(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidPayload)
	}

	contact, err := h.service.ContactSeller(c.Request().Context(), ports.ContactSellerInput{
		SellerID:     c.Param("id"),
		ClientID:     claims.Subject,
		Mensaje:      req.Mensaje,
		TipoContacto: req.TipoContacto,
	})
	if err != nil {
		return failed(msgContactFailed, err)
	}
	return c.JSON(http.StatusOK, contactResponse{Message: msgContactSent, Detalles: *contact})
}
