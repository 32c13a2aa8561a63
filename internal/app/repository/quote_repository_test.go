package repository

import (
	"testing"
	"time"

	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/4ndreams/GPS-sub000/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteRepository_CreateAndFind(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	repo := NewQuoteRepository(testDB)
	width, height := 72.5, 201.0
	quote := &model.Quote{
		ContactName: "Javiera Muñoz",
		Email:       "javiera@example.com",
		RUT:         "18.765.432-7",
		Comuna:      "Ñuñoa",
		Status:      model.QuoteStatusPending,
		Items: []model.QuoteItem{
			{Description: "Puerta a medida", Quantity: 2, WidthCm: &width, HeightCm: &height},
		},
	}
	require.NoError(t, repo.Create(quote))

	found, err := repo.FindByID(quote.ID)
	require.NoError(t, err)
	assert.Equal(t, "18.765.432-7", found.RUT)
	require.Len(t, found.Items, 1)
	assert.Equal(t, 72.5, *found.Items[0].WidthCm)

	pending, err := repo.CountByStatus(model.QuoteStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)
}

func TestQuoteRepository_ExpireStale(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	repo := NewQuoteRepository(testDB)
	now := time.Now()
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	quotes := []*model.Quote{
		{ContactName: "a", Email: "a@example.com", RUT: "12.345.678-5", Status: model.QuoteStatusAnswered, ExpiresAt: &past},
		{ContactName: "b", Email: "b@example.com", RUT: "12.345.678-5", Status: model.QuoteStatusAnswered, ExpiresAt: &future},
		{ContactName: "c", Email: "c@example.com", RUT: "12.345.678-5", Status: model.QuoteStatusPending},
		{ContactName: "d", Email: "d@example.com", RUT: "12.345.678-5", Status: model.QuoteStatusAccepted, ExpiresAt: &past},
	}
	for _, q := range quotes {
		require.NoError(t, repo.Create(q))
	}

	// Pending cut-off in the future catches the fresh pending quote.
	n, err := repo.ExpireStale(now, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	expired, err := repo.FindAll(model.QuoteStatusExpired)
	require.NoError(t, err)
	names := []string{}
	for _, q := range expired {
		names = append(names, q.ContactName)
	}
	assert.ElementsMatch(t, []string{"a", "c"}, names)
}

func TestProductRepository_SizesRoundTrip(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	repo := NewProductRepository(testDB)
	p := &model.Product{
		SKU:      "PTA-TEST",
		Name:     "Puerta de prueba",
		Category: model.CategoryDoor,
		Sizes:    model.StringList{"70x200", "80x200"},
		Price:    45990,
	}
	require.NoError(t, repo.Create(p))

	found, err := repo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StringList{"70x200", "80x200"}, found.Sizes)

	list, total, err := repo.FindAll(ProductFilter{Category: model.CategoryMolding})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}
