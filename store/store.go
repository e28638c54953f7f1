// Package store holds the single mirrored application state: the four
// remote collections, both cart buffers, the volatile session, and the
// catalog filter. It is the only package that talks to the gateway.
// Mutations are applied optimistically in memory first and then propagated;
// a remote failure leaves the local state as the de facto truth until the
// next full Load.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"storefront-backend/gateway"
	"storefront-backend/models"
)

// Result tags how far a mutating action got. The action has always been
// applied locally when a Result is returned. Confirmed reports whether the
// primary remote write succeeded; RemoteErr carries any remote failure the
// action observed, including follow-up stock adjustments after a confirmed
// insert. Callers decide whether a local-only outcome is acceptable.
type Result struct {
	Confirmed bool
	RemoteErr error
}

func confirmed() Result          { return Result{Confirmed: true} }
func localOnly(err error) Result { return Result{RemoteErr: err} }

// Store is the process-wide state container.
type Store struct {
	mu  sync.RWMutex
	gw  gateway.Gateway
	log *zap.Logger

	products  []models.Product
	users     []models.User
	sales     []models.Sale
	purchases []models.Purchase

	cart    *Cart
	posCart *Cart

	currentUser *models.User

	searchQuery      string
	selectedCategory string
	selectedBrand    string

	degraded bool
}

// New builds a Store around the injected gateway. Both carts clamp
// quantities to a floor of one.
func New(gw gateway.Gateway, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		gw:      gw,
		log:     log,
		cart:    NewCart(1),
		posCart: NewCart(1),
	}
}

// Load fetches all four collections and replaces the in-memory mirrors.
// When products and users both come back empty it seeds the bootstrap
// catalog and admin and re-populates from the insert results so the
// gateway-assigned ids are picked up. On any fetch error it falls back to
// the bootstrap dataset held purely in memory and flags degraded mode.
func (s *Store) Load(ctx context.Context) error {
	products, err := s.gw.ListProducts(ctx)
	if err != nil {
		return s.enterDegraded(err)
	}
	sales, err := s.gw.ListSales(ctx)
	if err != nil {
		return s.enterDegraded(err)
	}
	users, err := s.gw.ListUsers(ctx)
	if err != nil {
		return s.enterDegraded(err)
	}
	purchases, err := s.gw.ListPurchases(ctx)
	if err != nil {
		return s.enterDegraded(err)
	}

	if len(products) == 0 && len(users) == 0 {
		products, users = s.seed(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.sales = sales
	s.users = users
	s.purchases = purchases
	s.degraded = false
	return nil
}

// enterDegraded installs the bootstrap dataset without persistence. This is
// a usable mode, not a fatal state; the error flag is readable via Degraded.
func (s *Store) enterDegraded(cause error) error {
	s.log.Error("loading remote data failed, serving bootstrap dataset", zap.Error(cause))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = seedProducts()
	s.users = seedUsers()
	s.sales = nil
	s.purchases = nil
	s.degraded = true
	return cause
}

// seed inserts the bootstrap catalog and admin user. Seed records are sent
// without ids so the gateway assigns authoritative ones. Insert failures
// are logged and the in-memory copy keeps its client-side record.
func (s *Store) seed(ctx context.Context) ([]models.Product, []models.User) {
	s.log.Info("empty backend, seeding bootstrap data")

	products := seedProducts()
	for i := range products {
		products[i].ID = ""
		inserted, err := s.gw.InsertProduct(ctx, products[i])
		if err != nil {
			s.log.Error("seeding product failed", zap.String("name", products[i].Name), zap.Error(err))
			continue
		}
		products[i] = inserted
	}

	users := seedUsers()
	for i := range users {
		users[i].ID = ""
		inserted, err := s.gw.InsertUser(ctx, users[i])
		if err != nil {
			s.log.Error("seeding user failed", zap.String("email", users[i].Email), zap.Error(err))
			continue
		}
		users[i] = inserted
	}
	return products, users
}

// Degraded reports whether the last Load fell back to the bootstrap data.
func (s *Store) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

// Cart returns the storefront basket.
func (s *Store) Cart() *Cart { return s.cart }

// POSCart returns the point-of-sale basket.
func (s *Store) POSCart() *Cart { return s.posCart }

// Products returns a copy of the mirrored catalog.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.products...)
}

// Product looks a product up by id in the mirror.
func (s *Store) Product(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		if s.products[i].ID == id {
			return s.products[i], true
		}
	}
	return models.Product{}, false
}

// Users returns a copy of the mirrored user collection.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User(nil), s.users...)
}

// Sales returns a copy of the mirrored sale history, newest first.
func (s *Store) Sales() []models.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Sale(nil), s.sales...)
}

// Purchases returns a copy of the mirrored purchase history, newest first.
func (s *Store) Purchases() []models.Purchase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Purchase(nil), s.purchases...)
}
