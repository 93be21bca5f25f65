package repo

import (
	"context"

	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/transport"
	"gorm.io/gorm"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

type ProductRepo struct {
	DB *gorm.DB
}

// ProductFilter mirrors the list query parameters. Nil range bounds mean the
// side is open; Name matches as a substring of name OR description.
type ProductFilter struct {
	Name     string
	MinPrice *float64
	MaxPrice *float64
	MinStock *int
	MaxStock *int
	Page     int
	PerPage  int
}

// Clamp normalizes pagination in place: page below 1 becomes 1, perPage below 1
// falls back to the default and anything above MaxPerPage is capped.
func (f *ProductFilter) Clamp() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}
}

func (f *ProductFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Name != "" {
		pattern := "%" + f.Name + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	switch {
	case f.MinPrice != nil && f.MaxPrice != nil:
		q = q.Where("price BETWEEN ? AND ?", *f.MinPrice, *f.MaxPrice)
	case f.MinPrice != nil:
		q = q.Where("price >= ?", *f.MinPrice)
	case f.MaxPrice != nil:
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	switch {
	case f.MinStock != nil && f.MaxStock != nil:
		q = q.Where("stock BETWEEN ? AND ?", *f.MinStock, *f.MaxStock)
	case f.MinStock != nil:
		q = q.Where("stock >= ?", *f.MinStock)
	case f.MaxStock != nil:
		q = q.Where("stock <= ?", *f.MaxStock)
	}

	return q
}

type PageInfo struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

// FindAll runs the filtered catalog query. Filter groups combine with AND, the
// name group is an OR over name/description, ordering is id DESC so newest
// products come first.
func (r *ProductRepo) FindAll(ctx context.Context, f ProductFilter) ([]models.Product, PageInfo, error) {
	f.Clamp()

	var total int64
	if err := f.apply(r.DB.WithContext(ctx).Model(&models.Product{})).Count(&total).Error; err != nil {
		return nil, PageInfo{}, err
	}

	items := make([]models.Product, 0, f.PerPage)
	err := f.apply(r.DB.WithContext(ctx).Model(&models.Product{})).
		Order("id DESC").
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Find(&items).Error
	if err != nil {
		return nil, PageInfo{}, err
	}

	info := PageInfo{
		TotalItems:  total,
		TotalPages:  (total + int64(f.PerPage) - 1) / int64(f.PerPage),
		CurrentPage: f.Page,
	}
	return items, info, nil
}

func (r *ProductRepo) FindOne(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepo) Create(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

// Update applies a partial patch; nil fields stay untouched.
func (r *ProductRepo) Update(ctx context.Context, id uint, patch transport.UpdateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}

	if err := r.DB.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
