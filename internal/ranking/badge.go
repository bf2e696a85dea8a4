package ranking

import "codev-directory-backend/internal/domain"

// RankLevelOfBadge cross-references a profile's levels with its point records.
// A level only counts when it is positive and the same skill category has a
// points record; everything else is ignored. Either input being nil yields
// the zero BadgeRank.
func RankLevelOfBadge(level map[string]int, points []domain.CodevPoint) domain.BadgeRank {
	if level == nil || points == nil {
		return domain.BadgeRank{}
	}

	// first record wins for duplicated categories
	pointsByCategory := make(map[string]int, len(points))
	for _, p := range points {
		if _, seen := pointsByCategory[p.SkillCategoryID]; !seen {
			pointsByCategory[p.SkillCategoryID] = p.Points
		}
	}

	var rank domain.BadgeRank
	for category, lvl := range level {
		if lvl <= 0 {
			continue
		}
		pts, ok := pointsByCategory[category]
		if !ok {
			continue
		}

		rank.ValidBadgeCount++
		rank.TotalPoints += pts
		if lvl > rank.MaxLevel {
			rank.MaxLevel = lvl
		}
		if lvl >= 2 {
			rank.HasLevel2OrAbove = true
		}
	}

	return rank
}
