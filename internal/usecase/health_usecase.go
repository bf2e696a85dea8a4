package usecase

import (
	"context"
	"time"

	"codev-directory-backend/internal/domain"
)

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	repo  domain.CodevRepository
	cache domain.CodevSnapshotCache
}

func NewHealthUsecase(repo domain.CodevRepository, cache domain.CodevSnapshotCache) HealthUsecase {
	return &healthUsecase{repo: repo, cache: cache}
}

// Check reports per-dependency status. Only the database is required for the
// service to be healthy; the cache degrades to direct reads.
func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok", "database": "ok", "cache": "ok"}
	healthy := true

	if err := u.repo.Ping(ctx); err != nil {
		status["database"] = "unavailable"
		status["status"] = "degraded"
		healthy = false
	}
	if err := u.cache.Ping(ctx); err != nil {
		status["cache"] = "unavailable"
	}
	return status, healthy
}
