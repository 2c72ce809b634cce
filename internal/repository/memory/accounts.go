package memory

import (
	"context"
	"sort"
	"time"

	"github.com/stayhub/hotel-booking-backend/internal/model"
	"github.com/stayhub/hotel-booking-backend/internal/repository"
)

type userRepo struct{ s *Store }

func (r userRepo) GetByID(_ context.Context, id int) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.RoleName = r.s.roles[u.RoleID].Name
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u.RoleName = r.s.roles[u.RoleID].Name
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepo) Create(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.roles[u.RoleID]; !ok {
		return repository.ErrForeignKey
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	u.ID = r.s.id()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = *u
	return nil
}

type countryRepo struct{ s *Store }

func (r countryRepo) GetAll(_ context.Context) ([]model.Country, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Country{}
	for _, c := range r.s.countries {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r countryRepo) GetByID(_ context.Context, id int) (*model.Country, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.countries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r countryRepo) Create(_ context.Context, c *model.Country) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.conflicts(c) {
		return repository.ErrDuplicate
	}
	now := time.Now().UTC()
	c.ID = r.s.id()
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.countries[c.ID] = *c
	return nil
}

func (r countryRepo) Update(_ context.Context, c *model.Country) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.countries[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.conflicts(c) {
		return repository.ErrDuplicate
	}
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	r.s.countries[c.ID] = *c
	return nil
}

func (r countryRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.countries[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.countries, id)
	return nil
}

func (r countryRepo) conflicts(c *model.Country) bool {
	for _, existing := range r.s.countries {
		if existing.ID != c.ID && (existing.Name == c.Name || existing.Code == c.Code) {
			return true
		}
	}
	return false
}

type currencyRepo struct{ s *Store }

func (r currencyRepo) GetAll(_ context.Context) ([]model.Currency, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Currency{}
	for _, c := range r.s.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r currencyRepo) GetByID(_ context.Context, id int) (*model.Currency, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.currencies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r currencyRepo) Create(_ context.Context, c *model.Currency) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.conflicts(c) {
		return repository.ErrDuplicate
	}
	now := time.Now().UTC()
	c.ID = r.s.id()
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.currencies[c.ID] = *c
	return nil
}

func (r currencyRepo) Update(_ context.Context, c *model.Currency) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.currencies[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.conflicts(c) {
		return repository.ErrDuplicate
	}
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	r.s.currencies[c.ID] = *c
	return nil
}

func (r currencyRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.currencies[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.currencies, id)
	return nil
}

func (r currencyRepo) conflicts(c *model.Currency) bool {
	for _, existing := range r.s.currencies {
		if existing.ID != c.ID && existing.Code == c.Code {
			return true
		}
	}
	return false
}
