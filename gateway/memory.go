package gateway

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"storefront-backend/models"
)

// Memory is an in-process Gateway used by tests and by the "memory" demo
// backend. The error fields, when set, are returned by the corresponding
// operation class so callers can exercise failure paths.
type Memory struct {
	mu sync.Mutex

	products  []models.Product
	users     []models.User
	sales     []models.Sale
	purchases []models.Purchase

	ListErr   error
	InsertErr error
	UpdateErr error
	DeleteErr error

	// Counts remote calls by operation name, e.g. "InsertSale".
	Calls map[string]int
}

func NewMemory() *Memory {
	return &Memory{Calls: make(map[string]int)}
}

func (m *Memory) record(op string) {
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[op]++
}

func (m *Memory) ListProducts(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ListProducts")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]models.Product(nil), m.products...), nil
}

func (m *Memory) InsertProduct(ctx context.Context, p models.Product) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("InsertProduct")
	if m.InsertErr != nil {
		return models.Product{}, m.InsertErr
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m.products = append(m.products, p)
	return p, nil
}

func (m *Memory) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("UpdateProduct")
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i := range m.products {
		if m.products[i].ID == id {
			patch.Apply(&m.products[i])
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("DeleteProduct")
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ListUsers")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]models.User(nil), m.users...), nil
}

func (m *Memory) InsertUser(ctx context.Context, u models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("InsertUser")
	if m.InsertErr != nil {
		return models.User{}, m.InsertErr
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	m.users = append(m.users, u)
	return u, nil
}

func (m *Memory) UpdateUser(ctx context.Context, id string, patch models.UserPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("UpdateUser")
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i := range m.users {
		if m.users[i].ID == id {
			patch.Apply(&m.users[i])
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("DeleteUser")
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i := range m.users {
		if m.users[i].ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) ListSales(ctx context.Context) ([]models.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ListSales")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]models.Sale(nil), m.sales...), nil
}

func (m *Memory) InsertSale(ctx context.Context, s models.Sale) (models.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("InsertSale")
	if m.InsertErr != nil {
		return models.Sale{}, m.InsertErr
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.Items = append([]models.CartItem(nil), s.Items...)
	m.sales = append(m.sales, s)
	return s, nil
}

func (m *Memory) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ListPurchases")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]models.Purchase(nil), m.purchases...), nil
}

func (m *Memory) InsertPurchase(ctx context.Context, p models.Purchase) (models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("InsertPurchase")
	if m.InsertErr != nil {
		return models.Purchase{}, m.InsertErr
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Items = append([]models.PurchaseItem(nil), p.Items...)
	m.purchases = append(m.purchases, p)
	return p, nil
}
