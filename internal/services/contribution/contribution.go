// Package contribution содержит бизнес-логику работы с докладами:
// создание доклада со связями авторства, чтение и список с производными
// полями взноса, удаление и назначение скидки, а также кеширование чтений.
package contribution

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/conference-registry/internal/models"
	"github.com/magabrotheeeer/conference-registry/internal/registration"
)

// ContributionRepository определяет методы для работы с докладами в хранилище.
type ContributionRepository interface {
	// CreateContribution выполняет атомарный workflow создания доклада.
	CreateContribution(ctx context.Context, userUID string, req models.DummyContribution) (*models.Contribution, error)
	// ReadContribution возвращает доклад владельца с авторствами.
	ReadContribution(ctx context.Context, userUID string, id int) (*models.Contribution, error)
	// ListContributions возвращает доклады владельца с пагинацией.
	ListContributions(ctx context.Context, userUID string, limit, offset int) ([]*models.Contribution, error)
	// RemoveContribution удаляет доклад владельца, возвращает число удалённых строк.
	RemoveContribution(ctx context.Context, userUID string, id int) (int, error)
	// UpdateDiscount выставляет скидку доклада, возвращает UID владельца.
	UpdateDiscount(ctx context.Context, id, discount int) (string, error)
	// CreateAffiliation вставляет новую аффилиацию.
	CreateAffiliation(ctx context.Context, aff models.Affiliation) (int, error)
	// ListAffiliations возвращает аффилиации с пагинацией.
	ListAffiliations(ctx context.Context, limit, offset int) ([]*models.Affiliation, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с докладами.
//
// В кеше лежат только хранимые поля доклада: период и сумма взноса
// выводятся калькулятором после каждого чтения, поэтому смена дедлайна
// переклассифицирует и закешированные доклады.
type Service struct {
	repo  ContributionRepository
	cache Cache
	fees  *registration.FeeCalculator
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo ContributionRepository, cache Cache, fees *registration.FeeCalculator, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		fees:  fees,
		log:   log,
	}
}

// withFee дополняет доклад производными полями взноса.
func (s *Service) withFee(c *models.Contribution) *models.ContributionInfo {
	period, fee := s.fees.Fee(c.Created, c.Discount)
	return &models.ContributionInfo{
		Contribution:       *c,
		RegistrationPeriod: period,
		RegistrationFee:    fee,
	}
}

// Create выполняет workflow создания доклада от имени владельца и
// возвращает созданный доклад с полями взноса.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyContribution) (*models.ContributionInfo, error) {
	created, err := s.repo.CreateContribution(ctx, userUID, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new contribution",
		slog.Int("id", created.ID),
		slog.Int("authorships", len(created.Authorships)))

	cacheKey := contributionCacheKey(userUID, created.ID)
	if err := s.cache.Set(cacheKey, created, time.Hour); err != nil {
		s.log.Warn("failed to cache contribution", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return s.withFee(created), nil
}

// Read возвращает доклад владельца с полями взноса, используя кеш или
// репозиторий.
func (s *Service) Read(ctx context.Context, userUID string, id int) (*models.ContributionInfo, error) {
	var cached *models.Contribution
	cacheKey := contributionCacheKey(userUID, id)
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && cached != nil {
		return s.withFee(cached), nil
	}

	result, err := s.repo.ReadContribution(ctx, userUID, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache contribution", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return s.withFee(result), nil
}

// List возвращает доклады владельца с полями взноса.
func (s *Service) List(ctx context.Context, userUID string, limit, offset int) ([]*models.ContributionInfo, error) {
	entries, err := s.repo.ListContributions(ctx, userUID, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*models.ContributionInfo, 0, len(entries))
	for _, entry := range entries {
		result = append(result, s.withFee(entry))
	}
	return result, nil
}

// Remove удаляет доклад владельца и инвалидирует кеш.
func (s *Service) Remove(ctx context.Context, userUID string, id int) (int, error) {
	cacheKey := contributionCacheKey(userUID, id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.RemoveContribution(ctx, userUID, id)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, models.ErrContributionNotFound
	}
	return count, nil
}

// SetDiscount выставляет скидку доклада и инвалидирует кеш владельца.
// Административная операция, маршрут закрыт ролевым middleware.
func (s *Service) SetDiscount(ctx context.Context, id, discount int) error {
	ownerUID, err := s.repo.UpdateDiscount(ctx, id, discount)
	if err != nil {
		return err
	}

	cacheKey := contributionCacheKey(ownerUID, id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	s.log.Info("updated contribution discount", slog.Int("id", id), slog.Int("discount", discount))
	return nil
}

// CreateAffiliation сохраняет новую аффилиацию и возвращает её ID.
func (s *Service) CreateAffiliation(ctx context.Context, req models.DummyAffiliation) (int, error) {
	aff := models.Affiliation{
		Institution:   req.Institution,
		Department:    req.Department,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		ZipCode:       req.ZipCode,
		Country:       req.Country,
	}
	id, err := s.repo.CreateAffiliation(ctx, aff)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new affiliation", slog.Int("id", id))
	return id, nil
}

// ListAffiliations возвращает аффилиации с пагинацией.
func (s *Service) ListAffiliations(ctx context.Context, limit, offset int) ([]*models.Affiliation, error) {
	return s.repo.ListAffiliations(ctx, limit, offset)
}

func contributionCacheKey(userUID string, id int) string {
	return fmt.Sprintf("contribution:%s:%d", userUID, id)
}
