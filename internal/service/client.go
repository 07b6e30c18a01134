package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"clientrepo/internal/model"
	"clientrepo/internal/repository"
	"clientrepo/internal/repository/query"
)

var (
	ErrNotFound     = errors.New("client not found")
	ErrConflict     = errors.New("client with the same last name and haircut counter already exists")
	ErrInvalidInput = errors.New("invalid input")
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ClientStore is the repository surface the service needs. query.Repository
// satisfies it for every backend.
type ClientStore interface {
	GetByID(ctx context.Context, id int64) (*model.Client, error)
	Add(ctx context.Context, c model.Client) (int64, error)
	ReplaceByID(ctx context.Context, id int64, c model.Client) (bool, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
	Page(ctx context.Context, k, n int, opts ...query.Option) ([]model.Client, error)
	CountWhere(ctx context.Context, p query.Predicate) (int, error)
}

// Filter narrows listings and counts. Zero values match everything.
type Filter struct {
	LastName    string
	MinDiscount *float64
	MaxDiscount *float64
}

// ListParams selects one page of a filtered, optionally sorted listing.
type ListParams struct {
	Filter
	Page int
	Size int
	Sort repository.SortField
	Desc bool
}

// ClientInput is the writable part of a client.
type ClientInput struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	FatherName     string  `json:"father_name"`
	HaircutCounter int     `json:"haircut_counter"`
	Discount       float64 `json:"discount"`
}

// ClientListResult is the service-level DTO for paginated clients.
type ClientListResult struct {
	Items []model.Client `json:"data"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

// ClientService defines the use cases for managing clients.
type ClientService interface {
	// List returns one page of clients matching p and the total number of matches.
	List(ctx context.Context, p ListParams) (*ClientListResult, error)

	// Count returns how many clients match f.
	Count(ctx context.Context, f Filter) (int, error)

	// Get returns a single client by its ID.
	Get(ctx context.Context, id int64) (*model.Client, error)

	// Create validates in and stores it under a freshly assigned ID.
	Create(ctx context.Context, in ClientInput) (*model.Client, error)

	// Replace overwrites the client with the given ID, keeping the ID.
	Replace(ctx context.Context, id int64, in ClientInput) (*model.Client, error)

	// Delete removes a client by ID.
	Delete(ctx context.Context, id int64) error
}

// clientService serializes every store call; the store has a single owner.
type clientService struct {
	mu    sync.Mutex
	store ClientStore
}

// NewClientService constructs a new ClientService.
func NewClientService(store ClientStore) ClientService {
	return &clientService{store: store}
}

func (s *clientService) List(ctx context.Context, p ListParams) (*ClientListResult, error) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Size <= 0 {
		p.Size = defaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}

	pred, err := p.Filter.predicate()
	if err != nil {
		return nil, err
	}
	opts := []query.Option{query.Where(pred)}
	if p.Sort != "" {
		order, err := comparator(p.Sort)
		if err != nil {
			return nil, err
		}
		opts = append(opts, query.OrderBy(order))
		if p.Desc {
			opts = append(opts, query.Reverse())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Page(ctx, p.Page, p.Size, opts...)
	if err != nil {
		return nil, err
	}
	total, err := s.store.CountWhere(ctx, pred)
	if err != nil {
		return nil, err
	}
	return &ClientListResult{Items: items, Total: total, Page: p.Page, Size: p.Size}, nil
}

func (s *clientService) Count(ctx context.Context, f Filter) (int, error) {
	pred, err := f.predicate()
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.CountWhere(ctx, pred)
}

func (s *clientService) Get(ctx context.Context, id int64) (*model.Client, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *clientService) Create(ctx context.Context, in ClientInput) (*model.Client, error) {
	c, err := in.client()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.store.Add(ctx, c)
	if err != nil {
		return nil, err
	}
	if id == repository.NotAdded {
		return nil, ErrConflict
	}
	c.ID = id
	return &c, nil
}

func (s *clientService) Replace(ctx context.Context, id int64, in ClientInput) (*model.Client, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}
	c, err := in.client()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// ReplaceByID reports both a missing target and a key collision as false.
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	ok, err := s.store.ReplaceByID(ctx, id, c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}
	c.ID = id
	return &c, nil
}

func (s *clientService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (in ClientInput) client() (model.Client, error) {
	c, err := model.NewClient(
		strings.TrimSpace(in.FirstName),
		strings.TrimSpace(in.LastName),
		strings.TrimSpace(in.FatherName),
		in.HaircutCounter,
		in.Discount,
	)
	if err != nil {
		return model.Client{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return c, nil
}

// predicate returns nil when f matches everything.
func (f Filter) predicate() (query.Predicate, error) {
	if f.MinDiscount != nil && f.MaxDiscount != nil && *f.MinDiscount > *f.MaxDiscount {
		return nil, fmt.Errorf("%w: min_discount is greater than max_discount", ErrInvalidInput)
	}

	var ps []query.Predicate
	if f.LastName != "" {
		name := f.LastName
		ps = append(ps, func(c model.Client) bool { return strings.EqualFold(c.LastName, name) })
	}
	if f.MinDiscount != nil {
		lo := *f.MinDiscount
		ps = append(ps, func(c model.Client) bool { return c.Discount >= lo })
	}
	if f.MaxDiscount != nil {
		hi := *f.MaxDiscount
		ps = append(ps, func(c model.Client) bool { return c.Discount <= hi })
	}
	if len(ps) == 0 {
		return nil, nil
	}
	return query.All(ps...), nil
}

func comparator(field repository.SortField) (query.Compare, error) {
	switch field {
	case repository.SortByID:
		return query.ByID, nil
	case repository.SortByLastName:
		return query.ByLastName, nil
	case repository.SortByHaircut:
		return query.ByHaircutCounter, nil
	case repository.SortByDiscount:
		return query.ByDiscount, nil
	default:
		return nil, fmt.Errorf("%w: unknown sort field %q", ErrInvalidInput, field)
	}
}
