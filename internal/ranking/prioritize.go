package ranking

import (
	"slices"

	"codev-directory-backend/internal/domain"
)

// sortKey is everything the comparator looks at, computed once per profile.
type sortKey struct {
	level2      bool
	badgeCount  int
	image       bool
	experienced bool
	years       float64
}

type decorated struct {
	key     sortKey
	profile domain.CodevProfile
}

func keyOf(p *domain.CodevProfile) sortKey {
	rank := RankLevelOfBadge(p.Level, p.CodevPoints)
	return sortKey{
		level2:      rank.HasLevel2OrAbove,
		badgeCount:  rank.ValidBadgeCount,
		image:       hasImage(p),
		experienced: HasWorkExperience(p.WorkExperience),
		years:       yearsOfExperience(p),
	}
}

// compareKeys orders a before b (negative) when a is the stronger profile.
func compareKeys(a, b sortKey) int {
	if a.level2 != b.level2 {
		return boolFirst(a.level2)
	}
	if a.badgeCount != b.badgeCount {
		if a.badgeCount > b.badgeCount {
			return -1
		}
		return 1
	}
	if a.image != b.image {
		return boolFirst(a.image)
	}
	if a.experienced != b.experienced {
		return boolFirst(a.experienced)
	}
	switch {
	case a.years > b.years:
		return -1
	case a.years < b.years:
		return 1
	}
	return 0
}

func boolFirst(a bool) int {
	if a {
		return -1
	}
	return 1
}

// Excluded reports whether a profile is hidden from the public directory:
// administrators and applications that failed or are still in progress.
func Excluded(p *domain.CodevProfile) bool {
	return p.RoleID == domain.AdminRoleID ||
		p.ApplicationStatus == domain.ApplicationStatusFailed ||
		p.ApplicationStatus == domain.ApplicationStatusApplying
}

// PrioritizeCodevs returns a new slice ordered strongest first. Profiles that
// tie on every key keep their input order. When filterAdminAndFailed is set,
// excluded profiles are dropped before sorting. The input is not modified.
func PrioritizeCodevs(codevs []domain.CodevProfile, filterAdminAndFailed bool) []domain.CodevProfile {
	items := make([]decorated, 0, len(codevs))
	for i := range codevs {
		if filterAdminAndFailed && Excluded(&codevs[i]) {
			continue
		}
		items = append(items, decorated{key: keyOf(&codevs[i]), profile: codevs[i]})
	}

	slices.SortStableFunc(items, func(a, b decorated) int {
		return compareKeys(a.key, b.key)
	})

	out := make([]domain.CodevProfile, len(items))
	for i, it := range items {
		out[i] = it.profile
	}
	return out
}

// PrioritizedAndFilteredCodevs ranks first and then filters the ranked list.
func PrioritizedAndFilteredCodevs(codevs []domain.CodevProfile, filterAdminAndFailed bool, filter domain.CodevFilter) []domain.CodevProfile {
	return FilterCodevs(PrioritizeCodevs(codevs, filterAdminAndFailed), filter)
}
