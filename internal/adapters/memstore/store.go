// internal/adapters/memstore/store.go
package memstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ammerola/stockdesk/internal/core/domain"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCategoryInUse     = errors.New("category has products")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateSKU      = errors.New("sku already exists")
)

// QueryParams selects one page of a collection
type QueryParams struct {
	Page   int
	Limit  int
	Search string
}

// offset returns the index of the first item of the page
func (p QueryParams) offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Account is a stored user with its password hash
type Account struct {
	User         domain.User
	PasswordHash []byte
}

// Store keeps categories, products, movements and accounts in memory.
// Ids are sequential integers rendered as strings.
type Store struct {
	mu         sync.RWMutex
	seq        int
	categories map[domain.ID]domain.Category
	products   map[domain.ID]domain.Product
	movements  map[domain.ID][]domain.Movement
	accounts   map[string]Account
	now        func() time.Time
	logger     *slog.Logger
}

// New creates an empty store
func New(logger *slog.Logger) *Store {
	return &Store{
		categories: make(map[domain.ID]domain.Category),
		products:   make(map[domain.ID]domain.Product),
		movements:  make(map[domain.ID][]domain.Movement),
		accounts:   make(map[string]Account),
		now:        time.Now,
		logger:     logger.With(slog.String("component", "memstore")),
	}
}

func (s *Store) nextID() domain.ID {
	s.seq++
	return domain.ID(strconv.Itoa(s.seq))
}

// page sorts items by numeric id and cuts out the requested page
func page[T any](items []T, id func(T) domain.ID, params QueryParams) ([]T, int) {
	sort.Slice(items, func(i, j int) bool {
		a, _ := strconv.Atoi(id(items[i]).String())
		b, _ := strconv.Atoi(id(items[j]).String())
		return a < b
	})

	total := len(items)
	if params.Limit <= 0 {
		return items, total
	}

	// compare page numbers so huge pages cannot overflow the offset
	if params.Page > 1 && params.Page-1 > (total-1)/params.Limit {
		return []T{}, total
	}
	start := params.offset()
	if start >= total {
		return []T{}, total
	}
	end := total
	if params.Limit < total-start {
		end = start + params.Limit
	}
	return items[start:end], total
}

func matches(query string, fields ...string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// FindAllCategories returns one page of categories whose name matches the search
func (s *Store) FindAllCategories(_ context.Context, params QueryParams) ([]domain.Category, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if matches(params.Search, c.Name) {
			items = append(items, c)
		}
	}

	result, total := page(items, func(c domain.Category) domain.ID { return c.ID }, params)
	return result, total, nil
}

// FindCategoryByName returns the category with the given name, ignoring case
func (s *Store) FindCategoryByName(_ context.Context, name string) (domain.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return domain.Category{}, false
}

// SaveCategory creates a category
func (s *Store) SaveCategory(_ context.Context, name string) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := domain.Category{ID: s.nextID(), Name: strings.TrimSpace(name)}
	s.categories[c.ID] = c
	return c, nil
}

// UpdateCategory renames a category and the copies embedded in its products
func (s *Store) UpdateCategory(_ context.Context, id domain.ID, name string) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return domain.Category{}, fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	c.Name = strings.TrimSpace(name)
	s.categories[id] = c

	for pid, p := range s.products {
		if p.CategoryID == id {
			p.Category = &domain.Category{ID: c.ID, Name: c.Name}
			s.products[pid] = p
		}
	}
	return c, nil
}

// DeleteCategory removes a category that no product references
func (s *Store) DeleteCategory(_ context.Context, id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	for _, p := range s.products {
		if p.CategoryID == id {
			return fmt.Errorf("category %s: %w", id, ErrCategoryInUse)
		}
	}
	delete(s.categories, id)
	return nil
}

// FindAllProducts returns one page of products whose name or SKU matches the search
func (s *Store) FindAllProducts(_ context.Context, params QueryParams) ([]domain.Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if matches(params.Search, p.Name, p.SKU) {
			items = append(items, p)
		}
	}

	result, total := page(items, func(p domain.Product) domain.ID { return p.ID }, params)
	return result, total, nil
}

// FindProductByID returns one product
func (s *Store) FindProductByID(_ context.Context, id domain.ID) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return p, nil
}

// SaveProduct creates a product. A positive initial stock is recorded as an
// entry movement.
func (s *Store) SaveProduct(_ context.Context, p domain.Product, actor *domain.Actor) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.linkCategory(&p); err != nil {
		return domain.Product{}, err
	}
	if err := s.checkSKU(p.SKU, ""); err != nil {
		return domain.Product{}, err
	}

	p.ID = s.nextID()
	s.products[p.ID] = p

	if p.Stock > 0 {
		s.record(p.ID, domain.MovementEntry, p.Stock, "Stock inicial", actor)
	}
	return p, nil
}

// UpdateProduct replaces the editable fields of a product. An empty image
// keeps the current one.
func (s *Store) UpdateProduct(_ context.Context, id domain.ID, p domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if err := s.linkCategory(&p); err != nil {
		return domain.Product{}, err
	}
	if err := s.checkSKU(p.SKU, id); err != nil {
		return domain.Product{}, err
	}

	p.ID = id
	if p.Image == "" {
		p.Image = current.Image
	}
	s.products[id] = p
	return p, nil
}

// DeleteProduct removes a product and its history
func (s *Store) DeleteProduct(_ context.Context, id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	delete(s.products, id)
	delete(s.movements, id)
	return nil
}

// Sell removes quantity units and records an exit movement
func (s *Store) Sell(_ context.Context, id domain.ID, adj domain.StockAdjustment, actor *domain.Actor) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if adj.Quantity > p.Stock {
		return domain.Product{}, fmt.Errorf("product %s has %d: %w", id, p.Stock, ErrInsufficientStock)
	}

	p.Stock -= adj.Quantity
	s.products[id] = p
	s.record(id, domain.MovementExit, adj.Quantity, adj.Reason, actor)
	return p, nil
}

// AddStock adds quantity units and records an entry movement
func (s *Store) AddStock(_ context.Context, id domain.ID, adj domain.StockAdjustment, actor *domain.Actor) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	p.Stock += adj.Quantity
	s.products[id] = p
	s.record(id, domain.MovementEntry, adj.Quantity, adj.Reason, actor)
	return p, nil
}

// Movements returns the history of a product, newest first
func (s *Store) Movements(_ context.Context, id domain.ID) ([]domain.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.products[id]; !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	history := s.movements[id]
	out := make([]domain.Movement, len(history))
	for i := range history {
		out[i] = history[len(history)-1-i]
	}
	return out, nil
}

// record appends a movement; callers hold the write lock
func (s *Store) record(product domain.ID, kind domain.MovementType, qty int, reason string, actor *domain.Actor) {
	s.movements[product] = append(s.movements[product], domain.Movement{
		ID:        s.nextID(),
		Type:      kind,
		Quantity:  qty,
		Reason:    strings.TrimSpace(reason),
		Actor:     actor,
		CreatedAt: s.now().UTC(),
	})
}

func (s *Store) linkCategory(p *domain.Product) error {
	c, ok := s.categories[p.CategoryID]
	if !ok {
		return fmt.Errorf("category %s: %w", p.CategoryID, ErrNotFound)
	}
	p.Category = &domain.Category{ID: c.ID, Name: c.Name}
	return nil
}

func (s *Store) checkSKU(sku string, self domain.ID) error {
	if sku == "" {
		return nil
	}
	for id, p := range s.products {
		if id != self && strings.EqualFold(p.SKU, sku) {
			return fmt.Errorf("%s: %w", sku, ErrDuplicateSKU)
		}
	}
	return nil
}

// SaveAccount registers a user. Emails are unique, ignoring case.
func (s *Store) SaveAccount(_ context.Context, user domain.User, hash []byte) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(user.Email))
	if _, exists := s.accounts[key]; exists {
		return domain.User{}, fmt.Errorf("%s: %w", key, ErrDuplicateEmail)
	}

	user.ID = s.nextID()
	user.Email = key
	s.accounts[key] = Account{User: user, PasswordHash: hash}
	return user, nil
}

// FindAccount looks an account up by email
func (s *Store) FindAccount(_ context.Context, email string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return Account{}, fmt.Errorf("account %s: %w", email, ErrNotFound)
	}
	return a, nil
}

// Stats reports collection sizes
func (s *Store) Stats() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	movements := 0
	for _, m := range s.movements {
		movements += len(m)
	}
	return map[string]int{
		"categories": len(s.categories),
		"products":   len(s.products),
		"movements":  movements,
		"accounts":   len(s.accounts),
	}
}
