// Package gateway is the boundary to the hosted remote store. Adapters
// translate between the remote schema's underscore field names (is_sale,
// discount_price, payment_method, created_at) and the internal models; the
// remote naming never leaks past this package.
package gateway

import (
	"context"
	"errors"

	"storefront-backend/models"
)

// ErrNotFound is returned by update/delete operations when no record with
// the given id exists remotely.
var ErrNotFound = errors.New("gateway: record not found")

// Gateway is the typed CRUD contract against the four remote collections.
// Inserts return the persisted record: the authoritative id is assigned by
// the backend when the incoming record carries none. Sales and purchases
// are append-only; no update or delete is exposed for them.
type Gateway interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	InsertProduct(ctx context.Context, p models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) error
	DeleteProduct(ctx context.Context, id string) error

	ListUsers(ctx context.Context) ([]models.User, error)
	InsertUser(ctx context.Context, u models.User) (models.User, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) error
	DeleteUser(ctx context.Context, id string) error

	ListSales(ctx context.Context) ([]models.Sale, error)
	InsertSale(ctx context.Context, s models.Sale) (models.Sale, error)

	ListPurchases(ctx context.Context) ([]models.Purchase, error)
	InsertPurchase(ctx context.Context, p models.Purchase) (models.Purchase, error)
}
