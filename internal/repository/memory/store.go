// Package memory is an in-process implementation of the repository
// interfaces. It enforces the same unique and foreign key rules as the
// Postgres schema and is used by service and handler tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/stayhub/hotel-booking-backend/internal/model"
	"github.com/stayhub/hotel-booking-backend/internal/repository"
)

type pair struct {
	roleID       int
	permissionID int
}

// Store holds every table behind one mutex.
type Store struct {
	mu sync.Mutex

	nextID int

	roles       map[int]model.Role
	permissions map[int]model.Permission
	grants      map[pair]struct{}
	users       map[int]model.User
	countries   map[int]model.Country
	currencies  map[int]model.Currency

	// failures injected per operation name, e.g. "role_permissions.create".
	failures map[string]error
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		roles:       make(map[int]model.Role),
		permissions: make(map[int]model.Permission),
		grants:      make(map[pair]struct{}),
		users:       make(map[int]model.User),
		countries:   make(map[int]model.Country),
		currencies:  make(map[int]model.Currency),
		failures:    make(map[string]error),
	}
}

// FailOn makes the named operation return err until cleared with a nil err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) failure(op string) error {
	return s.failures[op]
}

func (s *Store) id() int {
	s.nextID++
	return s.nextID
}

// AddRole seeds a role and returns it.
func (s *Store) AddRole(name string) model.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := model.Role{ID: s.id(), Name: name}
	s.roles[r.ID] = r
	return r
}

// AddPermission seeds a permission and returns it.
func (s *Store) AddPermission(name string) model.Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	p := model.Permission{ID: s.id(), Name: name, CreatedAt: now, UpdatedAt: now}
	s.permissions[p.ID] = p
	return p
}

// Grant seeds a role-permission pair without any checks.
func (s *Store) Grant(roleID, permissionID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grants[pair{roleID, permissionID}] = struct{}{}
}

// GrantCount returns the number of stored role-permission pairs.
func (s *Store) GrantCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.grants)
}

// Roles returns the store as a RoleRepository.
func (s *Store) Roles() repository.RoleRepository { return roleRepo{s} }

// Permissions returns the store as a PermissionRepository.
func (s *Store) Permissions() repository.PermissionRepository { return permissionRepo{s} }

// RolePermissions returns the store as a RolePermissionRepository.
func (s *Store) RolePermissions() repository.RolePermissionRepository { return rolePermissionRepo{s} }

// Users returns the store as a UserRepository.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// Countries returns the store as a CountryRepository.
func (s *Store) Countries() repository.CountryRepository { return countryRepo{s} }

// Currencies returns the store as a CurrencyRepository.
func (s *Store) Currencies() repository.CurrencyRepository { return currencyRepo{s} }

func sortedPermissions(m map[int]model.Permission, keep func(model.Permission) bool) []model.Permission {
	out := []model.Permission{}
	for _, p := range m {
		if keep == nil || keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
