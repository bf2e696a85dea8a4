package ranking_test

import (
	"fmt"
	"math/rand"
	"testing"

	"codev-directory-backend/internal/domain"
	"codev-directory-backend/internal/ranking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func ids(profiles []domain.CodevProfile) []string {
	out := make([]string, len(profiles))
	for i, p := range profiles {
		out[i] = p.ID
	}
	return out
}

func withBadges(id string, levels map[string]int) domain.CodevProfile {
	points := make([]domain.CodevPoint, 0, len(levels))
	for k := range levels {
		points = append(points, domain.CodevPoint{SkillCategoryID: k, Points: 10})
	}
	return domain.CodevProfile{ID: id, ApplicationStatus: "accepted", Level: levels, CodevPoints: points}
}

func TestPrioritizeCodevs_KeyOrder(t *testing.T) {
	level2 := withBadges("level2", map[string]int{"a": 2})
	twoBadges := withBadges("two-badges", map[string]int{"a": 1, "b": 1})
	oneBadge := withBadges("one-badge", map[string]int{"a": 1})
	withImage := domain.CodevProfile{ID: "image", ImageURL: strPtr("https://cdn/x.png")}
	emptyImage := domain.CodevProfile{ID: "empty-image", ImageURL: strPtr("")}
	experienced := domain.CodevProfile{ID: "experienced", WorkExperience: []domain.WorkExperience{{ID: "w"}}}
	senior := domain.CodevProfile{ID: "senior", YearsOfExperience: floatPtr(8)}
	junior := domain.CodevProfile{ID: "junior", YearsOfExperience: floatPtr(1.5)}
	bare := domain.CodevProfile{ID: "bare"}

	input := []domain.CodevProfile{bare, emptyImage, junior, senior, experienced, withImage, oneBadge, twoBadges, level2}

	got := ranking.PrioritizeCodevs(input, false)

	assert.Equal(t, []string{
		"level2", "two-badges", "one-badge", "image", "experienced", "senior", "junior", "bare", "empty-image",
	}, ids(got))
}

func TestPrioritizeCodevs_Level2BeatsBadgeCount(t *testing.T) {
	many := withBadges("many", map[string]int{"a": 1, "b": 1, "c": 1, "d": 1})
	strong := withBadges("strong", map[string]int{"a": 3})

	got := ranking.PrioritizeCodevs([]domain.CodevProfile{many, strong}, false)
	assert.Equal(t, []string{"strong", "many"}, ids(got))
}

func TestPrioritizeCodevs_UnbackedLevelsDoNotCount(t *testing.T) {
	unbacked := domain.CodevProfile{ID: "unbacked", Level: map[string]int{"a": 5, "b": 5}}
	backed := withBadges("backed", map[string]int{"a": 1})

	got := ranking.PrioritizeCodevs([]domain.CodevProfile{unbacked, backed}, false)
	assert.Equal(t, []string{"backed", "unbacked"}, ids(got))
}

func TestPrioritizeCodevs_Stability(t *testing.T) {
	tieA := domain.CodevProfile{ID: "tie-a", YearsOfExperience: floatPtr(2)}
	tieB := domain.CodevProfile{ID: "tie-b", YearsOfExperience: floatPtr(2)}
	others := []domain.CodevProfile{
		withBadges("badge", map[string]int{"x": 2}),
		{ID: "image", ImageURL: strPtr("pic.png")},
		{ID: "nothing"},
	}

	all := append([]domain.CodevProfile{tieA, tieB}, others...)
	for _, perm := range permutations(len(all)) {
		input := make([]domain.CodevProfile, len(all))
		for i, j := range perm {
			input[i] = all[j]
		}
		aFirst := indexOf(ids(input), "tie-a") < indexOf(ids(input), "tie-b")

		got := ids(ranking.PrioritizeCodevs(input, false))
		require.Len(t, got, len(all))
		assert.Equal(t, aFirst, indexOf(got, "tie-a") < indexOf(got, "tie-b"), "input %v", ids(input))
		assert.Equal(t, []string{"badge", "image"}, got[:2])
		assert.Equal(t, "nothing", got[4])
	}
}

func TestPrioritizeCodevs_AdminAndFailedExclusion(t *testing.T) {
	input := []domain.CodevProfile{
		{ID: "admin", RoleID: domain.AdminRoleID, ApplicationStatus: "accepted"},
		{ID: "failed", RoleID: 2, ApplicationStatus: "failed"},
		{ID: "applying", RoleID: 2, ApplicationStatus: "applying"},
		{ID: "ordinary", RoleID: 2, ApplicationStatus: "accepted"},
	}

	filtered := ranking.PrioritizeCodevs(input, true)
	assert.Equal(t, []string{"ordinary"}, ids(filtered))

	all := ranking.PrioritizeCodevs(input, false)
	assert.Len(t, all, 4)
	assert.ElementsMatch(t, []string{"admin", "failed", "applying", "ordinary"}, ids(all))
}

func TestPrioritizeCodevs_DoesNotMutateInput(t *testing.T) {
	input := []domain.CodevProfile{
		{ID: "low"},
		{ID: "high", YearsOfExperience: floatPtr(10)},
		{ID: "admin", RoleID: domain.AdminRoleID},
	}
	before := ids(input)

	_ = ranking.PrioritizeCodevs(input, true)

	assert.Equal(t, before, ids(input))
}

func TestPrioritizeCodevs_EmptyInput(t *testing.T) {
	got := ranking.PrioritizeCodevs(nil, true)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPrioritizedAndFilteredCodevs_IsComposition(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	codevs := randomProfiles(rng, 60)

	filters := []domain.CodevFilter{
		{},
		{Positions: []string{"Frontend Developer"}},
		{Availability: []string{"available"}, ActiveStatus: []string{"active"}},
		{Projects: []string{"p1", "p3"}, ActiveStatus: []string{"inactive"}},
		{Positions: []string{"Backend Developer", "QA"}, Availability: []string{"busy", "AVAILABLE"}},
	}

	for i, f := range filters {
		for _, flag := range []bool{false, true} {
			t.Run(fmt.Sprintf("filter_%d_flag_%t", i, flag), func(t *testing.T) {
				want := ranking.FilterCodevs(ranking.PrioritizeCodevs(codevs, flag), f)
				got := ranking.PrioritizedAndFilteredCodevs(codevs, flag, f)
				assert.Equal(t, ids(want), ids(got))
			})
		}
	}
}

func randomProfiles(rng *rand.Rand, n int) []domain.CodevProfile {
	positions := []string{"Frontend Developer", "Backend Developer", "QA"}
	statuses := []string{"AVAILABLE", "BUSY", "available"}
	apps := []string{"accepted", "failed", "applying", "pending"}
	categories := []string{"a", "b", "c"}

	out := make([]domain.CodevProfile, n)
	for i := range out {
		p := domain.CodevProfile{
			ID:                fmt.Sprintf("c%02d", i),
			RoleID:            1 + rng.Intn(3),
			ApplicationStatus: apps[rng.Intn(len(apps))],
			DisplayPosition:   strPtr(positions[rng.Intn(len(positions))]),
			InternalStatus:    strPtr(statuses[rng.Intn(len(statuses))]),
			Projects:          []domain.ProjectRef{{ID: fmt.Sprintf("p%d", rng.Intn(4))}},
		}
		if rng.Intn(2) == 0 {
			p.ImageURL = strPtr("img.png")
		}
		if rng.Intn(2) == 0 {
			p.WorkExperience = []domain.WorkExperience{{ID: "w"}}
		}
		if rng.Intn(3) > 0 {
			p.YearsOfExperience = floatPtr(float64(rng.Intn(4)))
		}
		if rng.Intn(3) > 0 {
			p.AvailabilityStatus = boolPtr(rng.Intn(2) == 0)
		}
		p.Level = map[string]int{}
		for _, c := range categories {
			if rng.Intn(2) == 0 {
				p.Level[c] = rng.Intn(3)
			}
			if rng.Intn(2) == 0 {
				p.CodevPoints = append(p.CodevPoints, domain.CodevPoint{SkillCategoryID: c, Points: rng.Intn(100)})
			}
		}
		out[i] = p
	}
	return out
}

func permutations(n int) [][]int {
	var out [][]int
	var rec func(prefix []int, used []bool)
	rec = func(prefix []int, used []bool) {
		if len(prefix) == n {
			out = append(out, append([]int(nil), prefix...))
			return
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			rec(append(prefix, i), used)
			used[i] = false
		}
	}
	rec(nil, make([]bool, n))
	return out
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
