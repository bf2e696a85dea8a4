package validation_test

import (
	"errors"
	"testing"

	"codev-directory-backend/internal/domain"
	"codev-directory-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQueryValidation(t *testing.T) {
	v := validation.New()

	t.Run("Should accept a valid query", func(t *testing.T) {
		q := domain.CodevListQuery{
			Filter: domain.CodevFilter{
				Positions:    []string{"Frontend Developer"},
				Availability: []string{"available"},
				ActiveStatus: []string{"active", "inactive"},
			},
			Page:     1,
			PageSize: 12,
		}
		assert.NoError(t, v.Struct(q))
	})

	t.Run("Should reject unknown active status", func(t *testing.T) {
		q := domain.CodevListQuery{
			Filter:   domain.CodevFilter{ActiveStatus: []string{"ACTIVE"}},
			Page:     1,
			PageSize: 12,
		}
		err := v.Struct(q)
		require.Error(t, err)
		msgs := validation.FormatValidationErrors(err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "Active status filter: must be one of: active, inactive", msgs[0])
	})

	t.Run("Should reject emoji and padded values", func(t *testing.T) {
		q := domain.CodevListQuery{
			Filter: domain.CodevFilter{
				Positions:    []string{"Dev 🚀"},
				Availability: []string{" available"},
			},
			Page:     1,
			PageSize: 12,
		}
		msgs := validation.FormatValidationErrors(v.Struct(q))
		assert.ElementsMatch(t, []string{
			"Position filter: must not contain emoji or special symbols",
			"Availability filter: must not start or end with spaces",
		}, msgs)
	})

	t.Run("Should bound pagination", func(t *testing.T) {
		q := domain.CodevListQuery{Page: 0, PageSize: 500}
		msgs := validation.FormatValidationErrors(v.Struct(q))
		assert.ElementsMatch(t, []string{
			"Page: must be at least 1",
			"Page size: must be at most 100",
		}, msgs)
	})
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	msgs := validation.FormatValidationErrors(errors.New("boom"))
	assert.Equal(t, []string{"boom"}, msgs)
}
