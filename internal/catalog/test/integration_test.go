package test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/gartstein/catalog/internal/catalog/cache"
	"github.com/gartstein/catalog/internal/catalog/clock"
	"github.com/gartstein/catalog/internal/catalog/controller"
	"github.com/gartstein/catalog/internal/catalog/db"
	e "github.com/gartstein/catalog/internal/catalog/errors"
	"github.com/gartstein/catalog/internal/catalog/events"
	"github.com/gartstein/catalog/internal/catalog/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const (
	kafkaBroker = "localhost:9092"
	redisURL    = "redis://localhost:6379/0"
)

const companiesSnapshot = `[
	{"id":"1","slug":"cafe-central","companyDetails":{"businessType":"cafenea","name":"Cafe Central"},"locations":[{"address":{"city":"Brașov","county":"Brașov"}}]},
	{"id":"2","slug":"patiseria-ana","companyDetails":{"businessType":"patiserie","name":"Patiseria Ana"},"locations":[{"address":{"city":"Sibiu","county":"Sibiu"}}]}
]`

type IntegrationTestSuite struct {
	suite.Suite
	dbRepo      *db.Repository
	redis       *redis.Client
	logger      *zap.Logger
	testTimeout time.Duration
}

// TestIntegrationSuite needs Postgres, Kafka and Redis on localhost, e.g. from
// docker compose, and runs only when CATALOG_INTEGRATION is set.
func TestIntegrationSuite(t *testing.T) {
	if testing.Short() || os.Getenv("CATALOG_INTEGRATION") == "" {
		t.Skip("Skipping integration tests")
	}
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.logger = zap.NewNop()
	s.testTimeout = 30 * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	var err error
	s.dbRepo, err = db.NewRepository(ctx, &db.Config{
		Host:     "localhost",
		Port:     5432,
		User:     "test",
		Password: "test",
		DBName:   "test",
		SSLMode:  "disable",
	})
	if err != nil {
		s.T().Fatal("Database initialization failed:", err)
	}

	s.redis, err = cache.NewClient(redisURL)
	if err != nil {
		s.T().Fatal("Redis initialization failed:", err)
	}
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.dbRepo != nil {
		_ = s.dbRepo.Close()
	}
}

func (s *IntegrationTestSuite) TestImportThenQuery() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	n, err := s.dbRepo.Replace(ctx, models.Companies, []byte(companiesSnapshot))
	s.Require().NoError(err)
	s.Equal(2, n)

	svc := controller.NewCatalogService(s.dbRepo, clock.NewSystem(), controller.DefaultLimits(), s.logger)

	page, err := svc.CompaniesByCity(ctx, "brasov", 1)
	s.Require().NoError(err)
	s.Require().Len(page.Data, 1)
	s.Equal("cafe-central", page.Data[0].Slug)

	_, err = svc.CompanyBySlug(ctx, "missing")
	s.ErrorIs(err, e.ErrNotFound)

	menu, err := svc.Megamenu(ctx)
	s.Require().NoError(err)
	patiserii, ok := menu.Section("patiserii")
	s.Require().True(ok)
	s.Len(patiserii.Items, 1)
}

func (s *IntegrationTestSuite) TestImportEventInvalidatesCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	topic := fmt.Sprintf("catalog.collections.%s", uuid.NewString())

	_, err := s.dbRepo.Replace(ctx, models.Drops, []byte(`[{"id":"d1","business":{"id":"1"},"available":2}]`))
	s.Require().NoError(err)

	snapshots := cache.New(s.redis, s.dbRepo, time.Minute, s.logger)
	svc := controller.NewCatalogService(snapshots, clock.NewSystem(), controller.DefaultLimits(), s.logger)

	// Warm the cache with the first import.
	first, err := svc.ListDrops(ctx, 1, 0)
	s.Require().NoError(err)
	s.Equal(1, first.Pagination.TotalItems)

	producer, err := events.NewProducer(ctx, []string{kafkaBroker}, s.logger, topic)
	s.Require().NoError(err)

	invalidated := make(chan models.Collection, 1)
	consumer := events.NewConsumer([]string{kafkaBroker}, "catalog-it-"+uuid.NewString(), topic, s.logger)
	consumer.RegisterHandler(func(ctx context.Context, ev events.Event) error {
		if err := snapshots.Invalidate(ctx, ev.Collection); err != nil {
			return err
		}
		invalidated <- ev.Collection
		return nil
	})
	consumerCtx, stopConsumer := context.WithCancel(ctx)
	consumer.Start(consumerCtx)
	defer func() {
		stopConsumer()
		<-consumer.Done()
		consumer.Close()
	}()

	n, err := s.dbRepo.Replace(ctx, models.Drops, []byte(`[{"id":"d1","business":{"id":"1"},"available":2},{"id":"d2","business":{"id":"1"},"available":1}]`))
	s.Require().NoError(err)
	producer.Produce(events.CollectionImported, models.Drops, n)
	producer.Close()

	select {
	case c := <-invalidated:
		s.Equal(models.Drops, c)
	case <-ctx.Done():
		s.T().Fatal("Timeout: no collection_imported event received")
	}

	second, err := svc.DropsEndingSoon(ctx)
	s.Require().NoError(err)
	ids := make([]models.ID, 0, len(second.Data))
	for _, d := range second.Data {
		ids = append(ids, d.ID)
	}
	assert.Equal(s.T(), []models.ID{"d2", "d1"}, ids)
}
