package service

import (
	"strings"
	"testing"

	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/4ndreams/GPS-sub000/internal/app/repository"
	"github.com/4ndreams/GPS-sub000/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setupProductServiceTest(t *testing.T) ProductService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewProductService(repository.NewProductRepository(testDB))
}

func TestProductService_CreateProduct(t *testing.T) {
	svc := setupProductServiceTest(t)

	tests := []struct {
		name    string
		product model.Product
		wantErr error
	}{
		{
			name:    "Door gets generated SKU",
			product: model.Product{Name: "Puerta Lenga", Category: model.CategoryDoor, Price: 129990, StockQuantity: 4},
		},
		{
			name:    "Unknown category",
			product: model.Product{Name: "Ventana", Category: "ventana", Price: 1000},
			wantErr: ErrInvalidCategory,
		},
		{
			name:    "Zero price",
			product: model.Product{Name: "Tapajunta", Category: model.CategoryMolding},
			wantErr: ErrInvalidProductPrice,
		},
		{
			name:    "Negative stock",
			product: model.Product{Name: "Bisagra", Category: model.CategoryAccessory, Price: 1990, StockQuantity: -1},
			wantErr: ErrInvalidStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.product
			err := svc.CreateProduct(&p)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, p.ID)
			assert.Equal(t, "PUE-PUERTA-LENGA", p.SKU)
		})
	}
}

func TestProductService_ListAndGet(t *testing.T) {
	svc := setupProductServiceTest(t)

	for _, p := range []model.Product{
		{Name: "Puerta Roble", Category: model.CategoryDoor, Material: "Roble", Price: 89990},
		{Name: "Puerta MDF", Category: model.CategoryDoor, Material: "MDF", Price: 39990},
		{Name: "Moldura Pino", Category: model.CategoryMolding, Material: "Pino", Price: 2490},
	} {
		p := p
		require.NoError(t, svc.CreateProduct(&p))
	}

	doors, total, err := svc.ListProducts(ProductListOptions{Category: model.CategoryDoor})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, doors, 2)

	pino, total, err := svc.ListProducts(ProductListOptions{Search: " pino "})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Moldura Pino", pino[0].Name)

	_, _, err = svc.ListProducts(ProductListOptions{Category: "ventana"})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	found, err := svc.GetProductByID(doors[0].ID)
	require.NoError(t, err)
	assert.Equal(t, doors[0].Name, found.Name)

	_, err = svc.GetProductByID(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_UpdateDeleteAndImage(t *testing.T) {
	svc := setupProductServiceTest(t)

	p := model.Product{Name: "Puerta Roble", Category: model.CategoryDoor, Price: 89990}
	require.NoError(t, svc.CreateProduct(&p))

	update := model.Product{ID: p.ID, Name: "Puerta Roble Americano", Category: model.CategoryDoor, Price: 94990}
	require.NoError(t, svc.UpdateProduct(&update))
	assert.Equal(t, p.SKU, update.SKU)

	withImage, err := svc.SetImage(p.ID, "https://cdn.example.com/products/roble.jpg")
	require.NoError(t, err)
	assert.Equal(t, "Puerta Roble Americano", withImage.Name)
	assert.Equal(t, "https://cdn.example.com/products/roble.jpg", withImage.ImageURL)

	require.NoError(t, svc.DeleteProduct(p.ID))
	assert.ErrorIs(t, svc.DeleteProduct(p.ID), ErrProductNotFound)
	assert.ErrorIs(t, svc.UpdateProduct(&update), ErrProductNotFound)
}

func TestProductService_ImportCatalogue(t *testing.T) {
	svc := setupProductServiceTest(t)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"nombre", "categoria", "material", "medidas", "precio", "stock"},
		{"Puerta Roble", "puerta", "Roble", "70x200,80x200", 89990, 5},
		{"Cornisa", "moldura", "Pino", "", 3990, 40},
		{"Ventana", "ventana", "Aluminio", "", 1000, 1},
	}
	for i, row := range rows {
		row := row
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	result, err := svc.ImportCatalogue(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 4, result.Skipped[0].Row)

	all, total, err := svc.ListProducts(ProductListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}

func TestProductService_ImportCatalogueRejectsNonWorkbook(t *testing.T) {
	svc := setupProductServiceTest(t)

	_, err := svc.ImportCatalogue(strings.NewReader("nombre;precio\nPuerta;1000\n"))
	assert.ErrorIs(t, err, ErrInvalidCatalogue)
}
