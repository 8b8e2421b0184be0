// Package controller implements the catalog service layer: it loads a fresh
// collection snapshot for every call and runs the query engine over it.
package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gartstein/catalog/internal/catalog/clock"
	e "github.com/gartstein/catalog/internal/catalog/errors"
	"github.com/gartstein/catalog/internal/catalog/models"
	"github.com/gartstein/catalog/internal/catalog/monitoring"
	"github.com/gartstein/catalog/internal/catalog/query"
	"go.uber.org/zap"
)

// SnapshotSource returns the stored JSON array of a collection.
type SnapshotSource interface {
	Load(ctx context.Context, collection models.Collection) ([]byte, error)
}

// Limits bounds the size of the views the service returns.
type Limits struct {
	// CompanyPageSize is the fixed page size of company lists.
	CompanyPageSize int
	// DefaultLimit is the page size of moment and drop lists unless the caller overrides it.
	DefaultLimit      int
	ExpiringSoonCount int
	EndingSoonCount   int
	MegamenuItems     int
}

// DefaultLimits matches the sizes the front-end was built against.
func DefaultLimits() Limits {
	return Limits{
		CompanyPageSize:   query.DefaultLimit,
		DefaultLimit:      query.DefaultLimit,
		ExpiringSoonCount: query.ExpiringSoonCount,
		EndingSoonCount:   query.EndingSoonCount,
		MegamenuItems:     query.MegamenuItems,
	}
}

// CatalogService answers the catalog queries.
type CatalogService struct {
	source SnapshotSource
	clock  clock.Clock
	limits Limits
	logger *zap.Logger
}

// NewCatalogService constructs a CatalogService reading snapshots from source.
func NewCatalogService(source SnapshotSource, clk clock.Clock, limits Limits, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		source: source,
		clock:  clk,
		limits: limits,
		logger: logger.Named("catalog_service"),
	}
}

// ListCompanies pages through all companies.
func (s *CatalogService) ListCompanies(ctx context.Context, page int) (models.Page[models.Company], error) {
	companies, err := s.companies(ctx)
	if err != nil {
		return models.Page[models.Company]{}, err
	}
	return query.Paginate(companies, page, s.limits.CompanyPageSize), nil
}

// CompaniesByType pages through the companies of one business type.
func (s *CatalogService) CompaniesByType(ctx context.Context, businessType string, page int) (models.Page[models.Company], error) {
	return s.filterCompanies(ctx, query.OfType(businessType), page)
}

// CompaniesByCity pages through the companies with a location in city.
func (s *CatalogService) CompaniesByCity(ctx context.Context, city string, page int) (models.Page[models.Company], error) {
	return s.filterCompanies(ctx, query.InCity(city), page)
}

// CompaniesByCounty pages through the companies with a location in county.
func (s *CatalogService) CompaniesByCounty(ctx context.Context, county string, page int) (models.Page[models.Company], error) {
	return s.filterCompanies(ctx, query.InCounty(county), page)
}

// CompanyBySlug returns the company with the given slug, or ErrNotFound.
func (s *CatalogService) CompanyBySlug(ctx context.Context, slug string) (*models.Company, error) {
	companies, err := s.companies(ctx)
	if err != nil {
		return nil, err
	}
	c, err := query.FindCompany(companies, slug)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Megamenu builds the navigation structure from the current companies.
func (s *CatalogService) Megamenu(ctx context.Context) (models.Megamenu, error) {
	companies, err := s.companies(ctx)
	if err != nil {
		return models.Megamenu{}, err
	}
	return query.BuildMegamenu(companies, query.MenuSections, s.limits.MegamenuItems), nil
}

// ListMoments pages through all moments.
func (s *CatalogService) ListMoments(ctx context.Context, page, limit int) (models.Page[models.Moment], error) {
	moments, err := load[models.Moment](ctx, s, models.Moments)
	if err != nil {
		return models.Page[models.Moment]{}, err
	}
	return query.Paginate(moments, page, s.limitOrDefault(limit)), nil
}

// MomentsExpiringSoon lists the running moments closest to their end.
func (s *CatalogService) MomentsExpiringSoon(ctx context.Context) (models.List[models.Moment], error) {
	moments, err := load[models.Moment](ctx, s, models.Moments)
	if err != nil {
		return models.List[models.Moment]{}, err
	}
	return query.ExpiringSoon(moments, s.clock.Now(), s.limits.ExpiringSoonCount), nil
}

// MomentByID returns the moment with the given id, or ErrNotFound.
func (s *CatalogService) MomentByID(ctx context.Context, id models.ID) (*models.Moment, error) {
	return findByID[models.Moment](ctx, s, models.Moments, id)
}

// MomentsByBusiness pages through the moments published by one company.
func (s *CatalogService) MomentsByBusiness(ctx context.Context, businessID models.ID, page, limit int) (models.Page[models.Moment], error) {
	return filterOwned[models.Moment](ctx, s, models.Moments, businessID, page, s.limitOrDefault(limit))
}

// ListDrops pages through all drops.
func (s *CatalogService) ListDrops(ctx context.Context, page, limit int) (models.Page[models.Drop], error) {
	drops, err := load[models.Drop](ctx, s, models.Drops)
	if err != nil {
		return models.Page[models.Drop]{}, err
	}
	return query.Paginate(drops, page, s.limitOrDefault(limit)), nil
}

// DropsEndingSoon lists the available drops with the fewest items left.
func (s *CatalogService) DropsEndingSoon(ctx context.Context) (models.List[models.Drop], error) {
	drops, err := load[models.Drop](ctx, s, models.Drops)
	if err != nil {
		return models.List[models.Drop]{}, err
	}
	return query.EndingSoon(drops, s.limits.EndingSoonCount), nil
}

// DropByID returns the drop with the given id, or ErrNotFound.
func (s *CatalogService) DropByID(ctx context.Context, id models.ID) (*models.Drop, error) {
	return findByID[models.Drop](ctx, s, models.Drops, id)
}

// DropsByBusiness pages through the drops published by one company.
func (s *CatalogService) DropsByBusiness(ctx context.Context, businessID models.ID, page, limit int) (models.Page[models.Drop], error) {
	return filterOwned[models.Drop](ctx, s, models.Drops, businessID, page, s.limitOrDefault(limit))
}

func (s *CatalogService) companies(ctx context.Context) ([]models.Company, error) {
	return load[models.Company](ctx, s, models.Companies)
}

func (s *CatalogService) filterCompanies(ctx context.Context, keep func(models.Company) bool, page int) (models.Page[models.Company], error) {
	companies, err := s.companies(ctx)
	if err != nil {
		return models.Page[models.Company]{}, err
	}
	return query.Paginate(query.Filter(companies, keep), page, s.limits.CompanyPageSize), nil
}

func (s *CatalogService) limitOrDefault(limit int) int {
	if limit < 1 {
		return s.limits.DefaultLimit
	}
	return limit
}

func findByID[T interface {
	query.Record
	query.Owned
}](ctx context.Context, s *CatalogService, collection models.Collection, id models.ID) (*T, error) {
	items, err := load[T](ctx, s, collection)
	if err != nil {
		return nil, err
	}
	item, err := query.FindByID(items, id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func filterOwned[T query.Owned](ctx context.Context, s *CatalogService, collection models.Collection, businessID models.ID, page, limit int) (models.Page[T], error) {
	items, err := load[T](ctx, s, collection)
	if err != nil {
		return models.Page[T]{}, err
	}
	return query.Paginate(query.Filter(items, query.OwnedBy[T](businessID)), page, limit), nil
}

// load reads and decodes one collection snapshot. A source failure is reported
// as ErrUnavailable and a snapshot that is not a JSON array of records as
// ErrInvalidInput.
func load[T any](ctx context.Context, s *CatalogService, collection models.Collection) ([]T, error) {
	data, err := s.source.Load(ctx, collection)
	if err != nil {
		monitoring.TrackSnapshotLoad(string(collection), monitoring.ResultUnavailable, 0)
		if errors.Is(err, e.ErrUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", e.ErrUnavailable, collection.FileName(), err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		monitoring.TrackSnapshotLoad(string(collection), monitoring.ResultInvalid, 0)
		s.logger.Debug("Snapshot is not valid JSON",
			zap.String("collection", string(collection)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s: %v", e.ErrInvalidInput, collection.FileName(), err)
	}

	monitoring.TrackSnapshotLoad(string(collection), monitoring.ResultOK, len(items))
	return items, nil
}
