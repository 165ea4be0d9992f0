package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"paraisopos/internal/model"
)

// ProductoRepository is the read side of the catalog. The catalog is
// maintained by the back office; this service only resolves scans.
type ProductoRepository interface {
	FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("codigo = ? AND activo", codigo).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}
