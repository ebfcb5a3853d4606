// internal/adapters/out/memory/store.go
package memory

import (
	"context"
	"sync"

	cartdom "qkart/internal/domain/cart"
	productdom "qkart/internal/domain/product"
	userdom "qkart/internal/domain/user"
)

// Store is a process-local document store for tests and local runs.
// All repositories share one mutex so CommitCheckout is atomic.
type Store struct {
	mu       sync.Mutex
	users    map[string]userdom.User // id -> user
	emails   map[string]string       // email -> id
	carts    map[string]cartdom.Cart // email -> cart
	products []productdom.Product
}

func NewStore(products ...productdom.Product) *Store {
	s := &Store{
		users:  map[string]userdom.User{},
		emails: map[string]string{},
		carts:  map[string]cartdom.Cart{},
	}
	s.products = append(s.products, products...)
	return s
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Carts() *CartRepository       { return &CartRepository{s: s} }
func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }

// SeedProducts replaces the catalogue.
func (s *Store) SeedProducts(ps []productdom.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]productdom.Product(nil), ps...)
}

func (s *Store) Close() error { return nil }

// CommitCheckout runs fn on copies under the store lock and writes both back on success.
func (s *Store) CommitCheckout(ctx context.Context, userID, email string, fn cartdom.CheckoutFunc) (*userdom.User, *cartdom.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, nil, userdom.ErrNotFound
	}
	c, ok := s.carts[userdom.NormalizeEmail(email)]
	if !ok {
		return nil, nil, cartdom.ErrNotFound
	}
	c = cloneCart(c)

	if err := fn(&u, &c); err != nil {
		return nil, nil, err
	}

	s.users[u.ID] = u
	s.carts[c.Email] = cloneCart(c)

	outU, outC := u, cloneCart(c)
	return &outU, &outC, nil
}

// ----------------------------
// Users
// ----------------------------

type UserRepository struct{ s *Store }

func (r *UserRepository) GetByID(ctx context.Context, id string) (*userdom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, userdom.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userdom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.s.emails[userdom.NormalizeEmail(email)]
	if !ok {
		return nil, userdom.ErrNotFound
	}
	u := r.s.users[id]
	return &u, nil
}

func (r *UserRepository) GetAddressByID(ctx context.Context, id string) (*userdom.AddressView, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := u.Projection()
	return &v, nil
}

func (r *UserRepository) Create(ctx context.Context, u *userdom.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email := userdom.NormalizeEmail(u.Email)
	if _, taken := r.s.emails[email]; taken {
		return userdom.ErrConflict
	}
	if _, taken := r.s.users[u.ID]; taken {
		return userdom.ErrConflict
	}
	r.s.users[u.ID] = *u
	r.s.emails[email] = u.ID
	return nil
}

func (r *UserRepository) Save(ctx context.Context, u *userdom.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, ok := r.s.users[u.ID]
	if !ok {
		return userdom.ErrNotFound
	}
	if prev.Email != u.Email {
		if owner, taken := r.s.emails[u.Email]; taken && owner != u.ID {
			return userdom.ErrConflict
		}
		delete(r.s.emails, prev.Email)
		r.s.emails[u.Email] = u.ID
	}
	r.s.users[u.ID] = *u
	return nil
}

// ----------------------------
// Carts
// ----------------------------

type CartRepository struct{ s *Store }

func (r *CartRepository) GetByEmail(ctx context.Context, email string) (*cartdom.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.carts[userdom.NormalizeEmail(email)]
	if !ok {
		return nil, cartdom.ErrNotFound
	}
	c = cloneCart(c)
	return &c, nil
}

func (r *CartRepository) Create(ctx context.Context, c *cartdom.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.carts[c.Email]; ok {
		return cartdom.ErrAlreadyExists
	}
	r.s.carts[c.Email] = cloneCart(*c)
	return nil
}

func (r *CartRepository) Save(ctx context.Context, c *cartdom.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.carts[c.Email] = cloneCart(*c)
	return nil
}

// ----------------------------
// Products
// ----------------------------

type ProductRepository struct{ s *Store }

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*productdom.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, productdom.ErrNotFound
}

func (r *ProductRepository) List(ctx context.Context) ([]productdom.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return append([]productdom.Product{}, r.s.products...), nil
}

func cloneCart(c cartdom.Cart) cartdom.Cart {
	items := make([]cartdom.Item, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}
