package ranking

import (
	"slices"
	"strings"

	"codev-directory-backend/internal/domain"
)

// FilterCodevs keeps the profiles that pass every non-empty dimension of the
// filter, preserving their order. Within one dimension any listed value matches.
//
// Availability values are upper-cased before comparison while internal_status
// is compared as stored, so "available" matches "AVAILABLE" but not "available".
func FilterCodevs(codevs []domain.CodevProfile, filter domain.CodevFilter) []domain.CodevProfile {
	availability := make([]string, len(filter.Availability))
	for i, s := range filter.Availability {
		availability[i] = strings.ToUpper(s)
	}

	out := make([]domain.CodevProfile, 0, len(codevs))
	for i := range codevs {
		p := &codevs[i]
		if !matchesPosition(p, filter.Positions) ||
			!matchesProject(p, filter.Projects) ||
			!matchesAvailability(p, availability) ||
			!matchesActiveStatus(p, filter.ActiveStatus) {
			continue
		}
		out = append(out, *p)
	}
	return out
}

func matchesPosition(p *domain.CodevProfile, positions []string) bool {
	if len(positions) == 0 {
		return true
	}
	return p.DisplayPosition != nil && slices.Contains(positions, *p.DisplayPosition)
}

func matchesProject(p *domain.CodevProfile, projects []string) bool {
	if len(projects) == 0 {
		return true
	}
	return slices.ContainsFunc(p.Projects, func(ref domain.ProjectRef) bool {
		return slices.Contains(projects, ref.ID)
	})
}

func matchesAvailability(p *domain.CodevProfile, upper []string) bool {
	if len(upper) == 0 {
		return true
	}
	return p.InternalStatus != nil && slices.Contains(upper, *p.InternalStatus)
}

// matchesActiveStatus treats a missing availability_status as inactive.
func matchesActiveStatus(p *domain.CodevProfile, statuses []string) bool {
	if len(statuses) == 0 {
		return true
	}
	active := p.AvailabilityStatus != nil && *p.AvailabilityStatus
	for _, s := range statuses {
		switch s {
		case domain.ActiveStatusActive:
			if active {
				return true
			}
		case domain.ActiveStatusInactive:
			if !active {
				return true
			}
		}
	}
	return false
}
