package usecase

import (
	"context"
	"fmt"

	"codev-directory-backend/internal/domain"
	"codev-directory-backend/internal/ranking"
	"codev-directory-backend/pkg/apperror"
	"codev-directory-backend/pkg/logger"
	"codev-directory-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// CodevOptions bounds listing and export sizes.
type CodevOptions struct {
	DefaultPageSize int
	MaxPageSize     int
	ExportMaxRows   int
}

type codevUsecase struct {
	repo     domain.CodevRepository
	cache    domain.CodevSnapshotCache
	validate *validator.Validate
	opts     CodevOptions
}

func NewCodevUsecase(repo domain.CodevRepository, cache domain.CodevSnapshotCache, validate *validator.Validate, opts CodevOptions) domain.CodevUsecase {
	if opts.DefaultPageSize < 1 {
		opts.DefaultPageSize = 12
	}
	if opts.MaxPageSize < 1 {
		opts.MaxPageSize = 100
	}
	if opts.ExportMaxRows < 1 {
		opts.ExportMaxRows = 5000
	}
	return &codevUsecase{
		repo:     repo,
		cache:    cache,
		validate: validate,
		opts:     opts,
	}
}

// ListCodevs ranks the directory snapshot, applies the filter and returns one page.
func (u *codevUsecase) ListCodevs(ctx context.Context, query domain.CodevListQuery) (*domain.PaginatedResult[domain.RankedCodev], error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize == 0 {
		query.PageSize = u.opts.DefaultPageSize
	}
	if query.PageSize > u.opts.MaxPageSize {
		query.PageSize = u.opts.MaxPageSize
	}

	if err := u.validate.Struct(query); err != nil {
		return nil, apperror.Invalid("Invalid directory query", validation.FormatValidationErrors(err))
	}

	snapshot, err := u.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	ranked := ranking.PrioritizedAndFilteredCodevs(snapshot, query.FilterAdminAndFailed, query.Filter)

	total := len(ranked)
	totalPages := total / query.PageSize
	if total%query.PageSize > 0 {
		totalPages++
	}

	start := (query.Page - 1) * query.PageSize
	if start > total {
		start = total
	}
	end := start + query.PageSize
	if end > total {
		end = total
	}

	data := make([]domain.RankedCodev, 0, end-start)
	for i := start; i < end; i++ {
		data = append(data, decorate(ranked[i], i+1))
	}

	return &domain.PaginatedResult[domain.RankedCodev]{
		Data:       data,
		Total:      int64(total),
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetCodev returns one profile with its position in the unfiltered ranking.
// Profiles newer than the snapshot are read straight from the repository and
// carry position 0.
func (u *codevUsecase) GetCodev(ctx context.Context, id string) (*domain.RankedCodev, error) {
	if id == "" {
		return nil, apperror.BadRequest("Codev id is required")
	}

	snapshot, err := u.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	for i, p := range ranking.PrioritizeCodevs(snapshot, false) {
		if p.ID == id {
			card := decorate(p, i+1)
			return &card, nil
		}
	}

	profile, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch codev %s: %w", id, err)
	}
	if profile == nil {
		return nil, apperror.NotFound("Codev not found")
	}
	card := decorate(*profile, 0)
	return &card, nil
}

func (u *codevUsecase) GetFilterOptions(ctx context.Context) (*domain.CodevFilterOptions, error) {
	opts, err := u.repo.FilterOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load filter options: %w", err)
	}
	return opts, nil
}

// RefreshSnapshot reloads every profile from the database and overwrites the cache.
func (u *codevUsecase) RefreshSnapshot(ctx context.Context) (int, error) {
	profiles, err := u.repo.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch codevs: %w", err)
	}
	if err := u.cache.Set(ctx, profiles); err != nil {
		return 0, fmt.Errorf("failed to store snapshot: %w", err)
	}
	return len(profiles), nil
}

// snapshot serves from the cache when possible. Cache failures are logged and
// never fail the request.
func (u *codevUsecase) snapshot(ctx context.Context) ([]domain.CodevProfile, error) {
	profiles, ok, err := u.cache.Get(ctx)
	if err != nil {
		logger.Log.Warn("Directory snapshot cache read failed", "error", err)
	}
	if ok {
		return profiles, nil
	}

	profiles, err = u.repo.FetchAll(ctx)
	if err != nil {
		return nil, apperror.ServiceUnavailable("Directory is temporarily unavailable", fmt.Errorf("failed to fetch codevs: %w", err))
	}

	if err := u.cache.Set(ctx, profiles); err != nil {
		logger.Log.Warn("Directory snapshot cache write failed", "error", err)
	}
	return profiles, nil
}

func decorate(p domain.CodevProfile, position int) domain.RankedCodev {
	return domain.RankedCodev{
		CodevProfile: p,
		Position:     position,
		Badge:        ranking.RankLevelOfBadge(p.Level, p.CodevPoints),
		LevelScore:   ranking.CalculateLevelScore(p.Level),
		BadgeCount:   ranking.NumberOfBadges(p.Level),
		HasImage:     p.ImageURL != nil && *p.ImageURL != "",
		Experienced:  ranking.HasWorkExperience(p.WorkExperience),
	}
}
