package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stayhub/hotel-booking-backend/internal/model"
	"github.com/stayhub/hotel-booking-backend/internal/repository"
)

type CountryService interface {
	GetAllCountries(ctx context.Context) ([]model.Country, error)
	GetCountry(ctx context.Context, id int) (*model.Country, error)
	CreateCountry(ctx context.Context, name, code string) (*model.Country, error)
	UpdateCountry(ctx context.Context, id int, name, code string) (*model.Country, error)
	DeleteCountry(ctx context.Context, id int) error
}

type countryService struct {
	countryRepo repository.CountryRepository
}

func NewCountryService(countryRepo repository.CountryRepository) CountryService {
	return &countryService{countryRepo: countryRepo}
}

func (s *countryService) GetAllCountries(ctx context.Context) ([]model.Country, error) {
	return s.countryRepo.GetAll(ctx)
}

func (s *countryService) GetCountry(ctx context.Context, id int) (*model.Country, error) {
	country, err := s.countryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, referenceError(err, "country", id)
	}
	return country, nil
}

func (s *countryService) CreateCountry(ctx context.Context, name, code string) (*model.Country, error) {
	name, code = strings.TrimSpace(name), strings.ToUpper(strings.TrimSpace(code))
	if name == "" || code == "" {
		return nil, Validation("name and code are required")
	}

	country := &model.Country{Name: name, Code: code}
	if err := s.countryRepo.Create(ctx, country); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Conflict("country %q or code %q already exists", name, code)
		}
		return nil, fmt.Errorf("create country: %w", err)
	}
	return country, nil
}

func (s *countryService) UpdateCountry(ctx context.Context, id int, name, code string) (*model.Country, error) {
	country, err := s.GetCountry(ctx, id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		country.Name = name
	}
	if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
		country.Code = code
	}

	if err := s.countryRepo.Update(ctx, country); err != nil {
		return nil, referenceError(err, "country", id)
	}
	return country, nil
}

func (s *countryService) DeleteCountry(ctx context.Context, id int) error {
	if err := s.countryRepo.Delete(ctx, id); err != nil {
		return referenceError(err, "country", id)
	}
	return nil
}

type CurrencyService interface {
	GetAllCurrencies(ctx context.Context) ([]model.Currency, error)
	GetCurrency(ctx context.Context, id int) (*model.Currency, error)
	CreateCurrency(ctx context.Context, name, code, symbol string) (*model.Currency, error)
	UpdateCurrency(ctx context.Context, id int, name, code, symbol string) (*model.Currency, error)
	DeleteCurrency(ctx context.Context, id int) error
}

type currencyService struct {
	currencyRepo repository.CurrencyRepository
}

func NewCurrencyService(currencyRepo repository.CurrencyRepository) CurrencyService {
	return &currencyService{currencyRepo: currencyRepo}
}

func (s *currencyService) GetAllCurrencies(ctx context.Context) ([]model.Currency, error) {
	return s.currencyRepo.GetAll(ctx)
}

func (s *currencyService) GetCurrency(ctx context.Context, id int) (*model.Currency, error) {
	currency, err := s.currencyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, referenceError(err, "currency", id)
	}
	return currency, nil
}

func (s *currencyService) CreateCurrency(ctx context.Context, name, code, symbol string) (*model.Currency, error) {
	name, code = strings.TrimSpace(name), strings.ToUpper(strings.TrimSpace(code))
	if name == "" || code == "" {
		return nil, Validation("name and code are required")
	}

	currency := &model.Currency{Name: name, Code: code, Symbol: strings.TrimSpace(symbol)}
	if err := s.currencyRepo.Create(ctx, currency); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Conflict("currency %q already exists", code)
		}
		return nil, fmt.Errorf("create currency: %w", err)
	}
	return currency, nil
}

func (s *currencyService) UpdateCurrency(ctx context.Context, id int, name, code, symbol string) (*model.Currency, error) {
	currency, err := s.GetCurrency(ctx, id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		currency.Name = name
	}
	if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
		currency.Code = code
	}
	if symbol = strings.TrimSpace(symbol); symbol != "" {
		currency.Symbol = symbol
	}

	if err := s.currencyRepo.Update(ctx, currency); err != nil {
		return nil, referenceError(err, "currency", id)
	}
	return currency, nil
}

func (s *currencyService) DeleteCurrency(ctx context.Context, id int) error {
	if err := s.currencyRepo.Delete(ctx, id); err != nil {
		return referenceError(err, "currency", id)
	}
	return nil
}

// referenceError maps repository sentinels for country and currency writes.
func referenceError(err error, entity string, id int) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return NotFound("%s %d not found", entity, id)
	case errors.Is(err, repository.ErrDuplicate):
		return Conflict("%s %d conflicts with an existing record", entity, id)
	case errors.Is(err, repository.ErrForeignKey):
		return Conflict("%s %d is in use", entity, id)
	}
	return fmt.Errorf("%s %d: %w", entity, id, err)
}
