package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory catalog store backend keeping the
// backends' lexicographic listing contract.
type fakeStore struct {
	data map[string][]byte
	err  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (s *fakeStore) List(
	ctx context.Context, prefix string,
) ([]storage.Entry, error) {
	if s.err != nil {
		return nil, s.err
	}
	var keys []string
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var entries []storage.Entry
	for _, k := range keys {
		entries = append(entries, storage.Entry{Key: k, Value: s.data[k]})
	}
	return entries, nil
}

func (s *fakeStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	v, ok := s.data[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return v, nil
}

func (s *fakeStore) Put(ctx context.Context, key string, value []byte) error {
	if s.err != nil {
		return s.err
	}
	s.data[key] = value
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.data, key)
	return nil
}

func validInput() domain.ProductInput {
	return domain.ProductInput{
		Name:        "Desk Lamp",
		Type:        "Furniture",
		Price:       29.99,
		Quantity:    4,
		Description: "warm light desk lamp",
		Images:      []string{"https://img/lamp"},
	}
}

func TestSaveProduct(t *testing.T) {
	t.Run("CreateAssignsFreshID", func(t *testing.T) {
		kv := newFakeStore()
		repo := storage.NewCatalogRepository(kv, "")

		p1, err := repo.SaveProduct(t.Context(), validInput())
		require.NoError(t, err)
		p2, err := repo.SaveProduct(t.Context(), validInput())
		require.NoError(t, err)

		assert.NotEmpty(t, p1.ID)
		assert.NotEmpty(t, p2.ID)
		assert.NotEqual(t, p1.ID, p2.ID)

		ps, err := repo.ListProducts(t.Context())
		require.NoError(t, err)
		require.Len(t, ps, 2)
		assert.Equal(t, p1, ps[0])
		assert.Equal(t, p2, ps[1])
	})

	t.Run("LegacyImageFieldMirrorsFirstImage", func(t *testing.T) {
		kv := newFakeStore()
		repo := storage.NewCatalogRepository(kv, "")

		input := validInput()
		input.Images = []string{"https://img/a", "https://img/b"}

		p, err := repo.SaveProduct(t.Context(), input)

		require.NoError(t, err)
		assert.Equal(t, "https://img/a", p.Image)
	})

	t.Run("ExistingIDReplacesRecordEntirely", func(t *testing.T) {
		kv := newFakeStore()
		repo := storage.NewCatalogRepository(kv, "")

		p, err := repo.SaveProduct(t.Context(), validInput())
		require.NoError(t, err)

		repl := domain.ProductInput{
			ID:          p.ID,
			Name:        "Floor Lamp",
			Type:        "Lighting",
			Price:       59.99,
			Quantity:    2,
			Description: "tall floor lamp",
			Images:      []string{"https://img/floor"},
		}
		_, err = repo.SaveProduct(t.Context(), repl)
		require.NoError(t, err)

		ps, err := repo.ListProducts(t.Context())
		require.NoError(t, err)
		require.Len(t, ps, 1)

		got := ps[0]
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, "Floor Lamp", got.Name)
		assert.Equal(t, "Lighting", got.Type)
		assert.Equal(t, []string{"https://img/floor"}, got.Images)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		kv := newFakeStore()
		kv.err = errors.New("connection refused")
		repo := storage.NewCatalogRepository(kv, "")

		_, err := repo.SaveProduct(t.Context(), validInput())
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestListProducts(t *testing.T) {
	t.Run("EmptyCatalogIsNotAnError", func(t *testing.T) {
		repo := storage.NewCatalogRepository(newFakeStore(), "")

		ps, err := repo.ListProducts(t.Context())

		require.NoError(t, err)
		assert.Empty(t, ps)
	})

	t.Run("StoreKeyWinsOverEmbeddedID", func(t *testing.T) {
		kv := newFakeStore()
		rec, err := json.Marshal(map[string]any{
			"id": "stale-id", "name": "Mug", "type": "Kitchen",
			"price": 9.5, "quantity": 3, "description": "ceramic mug",
			"images": []string{"https://img/mug"},
		})
		require.NoError(t, err)
		kv.data["public/products/1700000000000"] = rec

		repo := storage.NewCatalogRepository(kv, "")

		ps, err := repo.ListProducts(t.Context())
		require.NoError(t, err)
		require.Len(t, ps, 1)
		assert.Equal(t, "1700000000000", ps[0].ID)
	})

	t.Run("LegacySingleImageRecord", func(t *testing.T) {
		kv := newFakeStore()
		rec, err := json.Marshal(map[string]any{
			"name": "Mug", "type": "Kitchen", "price": 9.5,
			"quantity": 3, "description": "ceramic mug",
			"image": "https://img/mug",
		})
		require.NoError(t, err)
		kv.data["public/products/1"] = rec

		repo := storage.NewCatalogRepository(kv, "")

		ps, err := repo.ListProducts(t.Context())
		require.NoError(t, err)
		require.Len(t, ps, 1)
		assert.Equal(t, []string{"https://img/mug"}, ps[0].Images)
		assert.Equal(t, "https://img/mug", ps[0].Image)
	})

	t.Run("SkipsUndecodableRecord", func(t *testing.T) {
		kv := newFakeStore()
		kv.data["public/products/bad"] = []byte("{broken")

		repo := storage.NewCatalogRepository(kv, "")

		ps, err := repo.ListProducts(t.Context())
		require.NoError(t, err)
		assert.Empty(t, ps)
	})

	t.Run("UnreachableStore", func(t *testing.T) {
		kv := newFakeStore()
		kv.err = errors.New("connection refused")
		repo := storage.NewCatalogRepository(kv, "")

		_, err := repo.ListProducts(t.Context())
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		kv := newFakeStore()
		repo := storage.NewCatalogRepository(kv, "")

		p, err := repo.SaveProduct(t.Context(), validInput())
		require.NoError(t, err)

		got, err := repo.GetProduct(t.Context(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	})

	t.Run("Missing", func(t *testing.T) {
		repo := storage.NewCatalogRepository(newFakeStore(), "")

		_, err := repo.GetProduct(t.Context(), "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("RemovedFromListing", func(t *testing.T) {
		kv := newFakeStore()
		repo := storage.NewCatalogRepository(kv, "")

		p, err := repo.SaveProduct(t.Context(), validInput())
		require.NoError(t, err)

		require.NoError(t, repo.DeleteProduct(t.Context(), p.ID))

		ps, err := repo.ListProducts(t.Context())
		require.NoError(t, err)
		assert.Empty(t, ps)
	})

	t.Run("SecondDeleteIsNotFound", func(t *testing.T) {
		kv := newFakeStore()
		repo := storage.NewCatalogRepository(kv, "")

		p, err := repo.SaveProduct(t.Context(), validInput())
		require.NoError(t, err)

		require.NoError(t, repo.DeleteProduct(t.Context(), p.ID))

		err = repo.DeleteProduct(t.Context(), p.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("MissingID", func(t *testing.T) {
		repo := storage.NewCatalogRepository(newFakeStore(), "")

		err := repo.DeleteProduct(t.Context(), "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
