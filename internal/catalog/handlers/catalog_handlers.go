package handlers

import (
	"context"
	"net/http"

	"github.com/gartstein/catalog/internal/catalog/models"
	"github.com/gartstein/catalog/internal/catalog/query"
	"go.uber.org/zap"
)

// CatalogController defines the business logic interface
// that the HTTP handlers will invoke.
type CatalogController interface {
	ListCompanies(ctx context.Context, page int) (models.Page[models.Company], error)
	CompaniesByType(ctx context.Context, businessType string, page int) (models.Page[models.Company], error)
	CompaniesByCity(ctx context.Context, city string, page int) (models.Page[models.Company], error)
	CompaniesByCounty(ctx context.Context, county string, page int) (models.Page[models.Company], error)
	CompanyBySlug(ctx context.Context, slug string) (*models.Company, error)
	Megamenu(ctx context.Context) (models.Megamenu, error)

	ListMoments(ctx context.Context, page, limit int) (models.Page[models.Moment], error)
	MomentsExpiringSoon(ctx context.Context) (models.List[models.Moment], error)
	MomentByID(ctx context.Context, id models.ID) (*models.Moment, error)
	MomentsByBusiness(ctx context.Context, businessID models.ID, page, limit int) (models.Page[models.Moment], error)

	ListDrops(ctx context.Context, page, limit int) (models.Page[models.Drop], error)
	DropsEndingSoon(ctx context.Context) (models.List[models.Drop], error)
	DropByID(ctx context.Context, id models.ID) (*models.Drop, error)
	DropsByBusiness(ctx context.Context, businessID models.ID, page, limit int) (models.Page[models.Drop], error)
}

// CatalogHandler translates HTTP requests into CatalogController calls.
type CatalogHandler struct {
	service CatalogController
	logger  *zap.Logger
}

// NewCatalogHandler constructs a new CatalogHandler with the given service and logger.
func NewCatalogHandler(service CatalogController, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.Named("http_handler"),
	}
}

func pageParam(r *http.Request) int {
	return query.ParsePage(r.URL.Query().Get("page"))
}

// limitParam returns 0 when the request does not set a usable limit, leaving
// the default to the service.
func limitParam(r *http.Request) int {
	return query.ParseLimit(r.URL.Query().Get("limit"), 0)
}

// respond writes v, or maps err for collection.
func respond[T any](h *CatalogHandler, w http.ResponseWriter, collection models.Collection, v T, err error) {
	if err != nil {
		h.mapServiceError(w, collection, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *CatalogHandler) listCompanies(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	page, err := h.service.ListCompanies(r.Context(), pageParam(r))
	respond(h, w, models.Companies, page, err)
}

func (h *CatalogHandler) companiesByType(w http.ResponseWriter, r *http.Request, params map[string]string) {
	page, err := h.service.CompaniesByType(r.Context(), params["type"], pageParam(r))
	respond(h, w, models.Companies, page, err)
}

func (h *CatalogHandler) companiesByCity(w http.ResponseWriter, r *http.Request, params map[string]string) {
	page, err := h.service.CompaniesByCity(r.Context(), params["city"], pageParam(r))
	respond(h, w, models.Companies, page, err)
}

func (h *CatalogHandler) companiesByCounty(w http.ResponseWriter, r *http.Request, params map[string]string) {
	page, err := h.service.CompaniesByCounty(r.Context(), params["county"], pageParam(r))
	respond(h, w, models.Companies, page, err)
}

func (h *CatalogHandler) megamenu(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	menu, err := h.service.Megamenu(r.Context())
	respond(h, w, models.Companies, models.Data[models.Megamenu]{Data: menu}, err)
}

func (h *CatalogHandler) companyBySlug(w http.ResponseWriter, r *http.Request, params map[string]string) {
	company, err := h.service.CompanyBySlug(r.Context(), params["slug"])
	respond(h, w, models.Companies, company, err)
}

func (h *CatalogHandler) listMoments(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	page, err := h.service.ListMoments(r.Context(), pageParam(r), limitParam(r))
	respond(h, w, models.Moments, page, err)
}

func (h *CatalogHandler) momentsExpiringSoon(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	list, err := h.service.MomentsExpiringSoon(r.Context())
	respond(h, w, models.Moments, list, err)
}

func (h *CatalogHandler) momentByID(w http.ResponseWriter, r *http.Request, params map[string]string) {
	moment, err := h.service.MomentByID(r.Context(), models.ID(params["id"]))
	respond(h, w, models.Moments, moment, err)
}

func (h *CatalogHandler) momentsByBusiness(w http.ResponseWriter, r *http.Request, params map[string]string) {
	page, err := h.service.MomentsByBusiness(r.Context(), models.ID(params["businessId"]), pageParam(r), limitParam(r))
	respond(h, w, models.Moments, page, err)
}

func (h *CatalogHandler) listDrops(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	page, err := h.service.ListDrops(r.Context(), pageParam(r), limitParam(r))
	respond(h, w, models.Drops, page, err)
}

func (h *CatalogHandler) dropsEndingSoon(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	list, err := h.service.DropsEndingSoon(r.Context())
	respond(h, w, models.Drops, list, err)
}

func (h *CatalogHandler) dropByID(w http.ResponseWriter, r *http.Request, params map[string]string) {
	drop, err := h.service.DropByID(r.Context(), models.ID(params["id"]))
	respond(h, w, models.Drops, drop, err)
}

func (h *CatalogHandler) dropsByBusiness(w http.ResponseWriter, r *http.Request, params map[string]string) {
	page, err := h.service.DropsByBusiness(r.Context(), models.ID(params["businessId"]), pageParam(r), limitParam(r))
	respond(h, w, models.Drops, page, err)
}
