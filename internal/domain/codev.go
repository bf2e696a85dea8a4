package domain

import (
	"context"
	"time"
)

// AdminRoleID is the role_id reserved for portal administrators.
const AdminRoleID = 1

// Application pipeline stages
const (
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusFailed   = "failed"
	ApplicationStatusApplying = "applying"
	ApplicationStatusPending  = "pending"
)

// ActiveStatus filter values, matched against AvailabilityStatus
const (
	ActiveStatusActive   = "active"
	ActiveStatusInactive = "inactive"
)

type WorkExperience struct {
	ID          string     `json:"id"`
	Position    string     `json:"position"`
	CompanyName string     `json:"company_name"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// CodevPoint is the point total a profile has earned in one skill category.
type CodevPoint struct {
	SkillCategoryID string `json:"skill_category_id"`
	Points          int    `json:"points"`
}

// CodevProfile is a contributor profile as read from the directory.
// Pointer and slice fields are optional; nil means the value was never set.
type CodevProfile struct {
	ID                 string           `json:"id"`
	FirstName          string           `json:"first_name"`
	LastName           string           `json:"last_name"`
	Username           string           `json:"username"`
	RoleID             int              `json:"role_id"`
	ApplicationStatus  string           `json:"application_status"`
	ImageURL           *string          `json:"image_url,omitempty"`
	WorkExperience     []WorkExperience `json:"work_experience,omitempty"`
	YearsOfExperience  *float64         `json:"years_of_experience,omitempty"`
	AvailabilityStatus *bool            `json:"availability_status,omitempty"`
	DisplayPosition    *string          `json:"display_position,omitempty"`
	InternalStatus     *string          `json:"internal_status,omitempty"`
	Projects           []ProjectRef     `json:"projects,omitempty"`
	Level              map[string]int   `json:"level,omitempty"`
	CodevPoints        []CodevPoint     `json:"codev_points,omitempty"`
}

// FullName joins first and last name, falling back to the username.
func (p CodevProfile) FullName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	case p.LastName != "":
		return p.LastName
	default:
		return p.Username
	}
}

// CodevFilter holds four independent inclusion lists. An empty list places
// no constraint on its dimension.
type CodevFilter struct {
	Positions    []string `json:"positions,omitempty" validate:"dive,max=100,trimmed,no_emoji"`
	Projects     []string `json:"projects,omitempty" validate:"dive,max=100,trimmed"`
	Availability []string `json:"availability,omitempty" validate:"dive,max=50,trimmed,no_emoji"`
	ActiveStatus []string `json:"active_status,omitempty" validate:"dive,oneof=active inactive"`
}

// BadgeRank is the competitive signal derived from a profile's levels and points.
type BadgeRank struct {
	MaxLevel         int  `json:"max_level"`
	HasLevel2OrAbove bool `json:"has_level_2_or_above"`
	TotalPoints      int  `json:"total_points"`
	ValidBadgeCount  int  `json:"valid_badge_count"`
}

// RankedCodev is a directory card: the profile plus the signals it was ranked by.
type RankedCodev struct {
	CodevProfile
	Position    int       `json:"position"`
	Badge       BadgeRank `json:"badge"`
	LevelScore  int       `json:"level_score"`
	BadgeCount  int       `json:"badge_count"`
	HasImage    bool      `json:"has_image"`
	Experienced bool      `json:"experienced"`
}

// CodevListQuery is the directory listing request.
type CodevListQuery struct {
	Filter               CodevFilter
	FilterAdminAndFailed bool
	Page                 int `validate:"min=1"`
	PageSize             int `validate:"min=1,max=100"`
}

// CodevExportRequest represents the export configuration
type CodevExportRequest struct {
	Query   CodevListQuery
	Columns []string // Selected columns; empty means all
	Format  string   // "xlsx" (default) or "csv"
}

// ExportableColumns lists all columns that can be exported
var ExportableColumns = []string{
	"position",
	"full_name",
	"username",
	"display_position",
	"internal_status",
	"application_status",
	"years_of_experience",
	"valid_badge_count",
	"max_level",
	"total_points",
	"level_score",
	"active",
}

// CodevFilterOptions contains all available filter options for the UI
type CodevFilterOptions struct {
	Positions    []string     `json:"positions"`
	Availability []string     `json:"availability"`
	Projects     []ProjectRef `json:"projects"`
	ActiveStatus []string     `json:"active_status"`
}

// PaginatedResult wraps a page of results with its totals.
type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

type CodevRepository interface {
	FetchAll(ctx context.Context) ([]CodevProfile, error)
	GetByID(ctx context.Context, id string) (*CodevProfile, error)
	FilterOptions(ctx context.Context) (*CodevFilterOptions, error)
	Ping(ctx context.Context) error
}

// CodevSnapshotCache stores the full profile snapshot between directory requests.
// Get may report a hit together with an error when it falls back to a local copy.
type CodevSnapshotCache interface {
	Get(ctx context.Context) ([]CodevProfile, bool, error)
	Set(ctx context.Context, profiles []CodevProfile) error
	Ping(ctx context.Context) error
}

type CodevUsecase interface {
	ListCodevs(ctx context.Context, query CodevListQuery) (*PaginatedResult[RankedCodev], error)
	GetCodev(ctx context.Context, id string) (*RankedCodev, error)
	GetFilterOptions(ctx context.Context) (*CodevFilterOptions, error)
	ExportCodevs(ctx context.Context, req CodevExportRequest) ([]byte, string, error)
	RefreshSnapshot(ctx context.Context) (int, error)
}
