// Package ranking orders and filters directory profiles so that the most
// qualified and complete Codevs surface first. Everything here is a pure
// transform over a caller-supplied snapshot.
package ranking

import "codev-directory-backend/internal/domain"

// CalculateLevelScore sums every level in the mapping. A nil mapping scores 0.
func CalculateLevelScore(level map[string]int) int {
	total := 0
	for _, v := range level {
		total += v
	}
	return total
}

// NumberOfBadges counts the skill categories present in the mapping.
func NumberOfBadges(level map[string]int) int {
	return len(level)
}

func HasWorkExperience(entries []domain.WorkExperience) bool {
	return len(entries) > 0
}

func hasImage(p *domain.CodevProfile) bool {
	return p.ImageURL != nil && *p.ImageURL != ""
}

func yearsOfExperience(p *domain.CodevProfile) float64 {
	if p.YearsOfExperience == nil {
		return 0
	}
	return *p.YearsOfExperience
}
