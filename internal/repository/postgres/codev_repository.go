package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"codev-directory-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

const profileColumns = `
	c.id, COALESCE(c.first_name, ''), COALESCE(c.last_name, ''), COALESCE(c.username, ''),
	COALESCE(c.role_id, 0), COALESCE(c.application_status, ''),
	c.image_url, c.years_of_experience, c.availability_status,
	c.display_position, c.internal_status, c.level`

type codevRepository struct {
	db *pgxpool.Pool
}

func NewCodevRepository(db *pgxpool.Pool) domain.CodevRepository {
	return &codevRepository{db: db}
}

// FetchAll loads the full directory snapshot. Row order is stable (created_at, id)
// so that ranking ties resolve the same way on every load.
func (r *codevRepository) FetchAll(ctx context.Context) ([]domain.CodevProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM codev c ORDER BY c.created_at, c.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch codevs: %w", err)
	}
	defer rows.Close()

	profiles := []domain.CodevProfile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read codevs: %w", err)
	}

	if err := r.attachRelations(ctx, profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *codevRepository) GetByID(ctx context.Context, id string) (*domain.CodevProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM codev c WHERE c.id = $1`

	p, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	profiles := []domain.CodevProfile{p}
	if err := r.attachRelations(ctx, profiles); err != nil {
		return nil, err
	}
	return &profiles[0], nil
}

func (r *codevRepository) FilterOptions(ctx context.Context) (*domain.CodevFilterOptions, error) {
	opts := &domain.CodevFilterOptions{
		Positions:    []string{},
		Availability: []string{},
		Projects:     []domain.ProjectRef{},
		ActiveStatus: []string{domain.ActiveStatusActive, domain.ActiveStatusInactive},
	}

	var positions, statuses []string
	err := r.db.QueryRow(ctx, `
		SELECT
			COALESCE((SELECT array_agg(DISTINCT display_position ORDER BY display_position)
			          FROM codev WHERE display_position IS NOT NULL AND display_position <> ''), '{}'),
			COALESCE((SELECT array_agg(DISTINCT internal_status ORDER BY internal_status)
			          FROM codev WHERE internal_status IS NOT NULL AND internal_status <> ''), '{}')`,
	).Scan(pq.Array(&positions), pq.Array(&statuses))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filter options: %w", err)
	}
	if positions != nil {
		opts.Positions = positions
	}
	if statuses != nil {
		opts.Availability = statuses
	}

	rows, err := r.db.Query(ctx, `SELECT id, COALESCE(name, '') FROM projects ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.ProjectRef
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		opts.Projects = append(opts.Projects, p)
	}
	return opts, rows.Err()
}

func (r *codevRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanProfile(row pgx.Row) (domain.CodevProfile, error) {
	var p domain.CodevProfile
	var level []byte

	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Username,
		&p.RoleID, &p.ApplicationStatus,
		&p.ImageURL, &p.YearsOfExperience, &p.AvailabilityStatus,
		&p.DisplayPosition, &p.InternalStatus, &level,
	)
	if err != nil {
		return p, err
	}

	if len(level) > 0 {
		if err := json.Unmarshal(level, &p.Level); err != nil {
			return p, fmt.Errorf("codev %s: invalid level json: %w", p.ID, err)
		}
	}
	return p, nil
}

// attachRelations loads work experience, project membership and skill points for
// the given profiles concurrently and stitches them on in place. Profiles without
// related rows keep nil slices.
func (r *codevRepository) attachRelations(ctx context.Context, profiles []domain.CodevProfile) error {
	if len(profiles) == 0 {
		return nil
	}

	ids := make([]string, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
	}

	var (
		experience map[string][]domain.WorkExperience
		projects   map[string][]domain.ProjectRef
		points     map[string][]domain.CodevPoint
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		experience, err = r.fetchWorkExperience(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		projects, err = r.fetchProjects(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		points, err = r.fetchPoints(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range profiles {
		id := profiles[i].ID
		profiles[i].WorkExperience = experience[id]
		profiles[i].Projects = projects[id]
		profiles[i].CodevPoints = points[id]
	}
	return nil
}

func (r *codevRepository) fetchWorkExperience(ctx context.Context, ids []string) (map[string][]domain.WorkExperience, error) {
	query := `
		SELECT id, codev_id, COALESCE(position, ''), COALESCE(company_name, ''), date_from, date_to
		FROM work_experience
		WHERE codev_id = ANY($1)
		ORDER BY date_from DESC NULLS LAST, id`

	rows, err := r.db.Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch work experience: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.WorkExperience)
	for rows.Next() {
		var w domain.WorkExperience
		var codevID string
		var from, to *time.Time
		if err := rows.Scan(&w.ID, &codevID, &w.Position, &w.CompanyName, &from, &to); err != nil {
			return nil, err
		}
		w.StartDate, w.EndDate = from, to
		out[codevID] = append(out[codevID], w)
	}
	return out, rows.Err()
}

func (r *codevRepository) fetchProjects(ctx context.Context, ids []string) (map[string][]domain.ProjectRef, error) {
	query := `
		SELECT pm.codev_id, p.id, COALESCE(p.name, '')
		FROM project_members pm
		JOIN projects p ON p.id = pm.project_id
		WHERE pm.codev_id = ANY($1)
		ORDER BY p.name, p.id`

	rows, err := r.db.Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.ProjectRef)
	for rows.Next() {
		var codevID string
		var p domain.ProjectRef
		if err := rows.Scan(&codevID, &p.ID, &p.Name); err != nil {
			return nil, err
		}
		out[codevID] = append(out[codevID], p)
	}
	return out, rows.Err()
}

func (r *codevRepository) fetchPoints(ctx context.Context, ids []string) (map[string][]domain.CodevPoint, error) {
	query := `
		SELECT codev_id, skill_category_id, COALESCE(points, 0)
		FROM codev_points
		WHERE codev_id = ANY($1)
		ORDER BY skill_category_id, id`

	rows, err := r.db.Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch codev points: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.CodevPoint)
	for rows.Next() {
		var codevID string
		var cp domain.CodevPoint
		if err := rows.Scan(&codevID, &cp.SkillCategoryID, &cp.Points); err != nil {
			return nil, err
		}
		out[codevID] = append(out[codevID], cp)
	}
	return out, rows.Err()
}
