package service_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditIntent(t *testing.T) {
	t.Run("EmptySlotMeansCreateMode", func(t *testing.T) {
		e := service.NewEditIntent()

		_, ok := e.Take()
		assert.False(t, ok)
	})

	t.Run("TakeConsumesOnce", func(t *testing.T) {
		e := service.NewEditIntent()
		p := domain.Product{
			ID: "1", Name: "Mug", Images: []string{"https://img/mug"},
		}

		e.Set(p)

		got, ok := e.Take()
		require.True(t, ok)
		assert.Equal(t, "Mug", got.Name)

		_, ok = e.Take()
		assert.False(t, ok)
	})

	t.Run("LegacyImageNormalizedOnTake", func(t *testing.T) {
		e := service.NewEditIntent()
		e.Set(domain.Product{ID: "1", Image: "https://img/legacy"})

		got, ok := e.Take()

		require.True(t, ok)
		assert.Equal(t, []string{"https://img/legacy"}, got.Images)
	})

	t.Run("SetReplacesUnconsumedIntent", func(t *testing.T) {
		e := service.NewEditIntent()
		e.Set(domain.Product{ID: "1"})
		e.Set(domain.Product{ID: "2"})

		got, ok := e.Take()
		require.True(t, ok)
		assert.Equal(t, "2", got.ID)
	})
}
