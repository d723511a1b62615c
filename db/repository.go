package db

import (
	"context"
	"errors"

	"lookup-tracker/models"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repository defines a common interface for all repositories
type Repository interface {
	Close() error
}

// SearchRepository is the append-only store for lookup history. It exposes
// inserts and aggregate reads only; no update or delete is available to any
// caller.
type SearchRepository interface {
	Repository
	CreatePhone(ctx context.Context, search *models.PhoneSearch) error
	CreateIP(ctx context.Context, search *models.IPSearch) error
	CountByCountry(ctx context.Context, kind models.SearchKind, limit int) ([]models.CountryCount, error)
	FindRecent(ctx context.Context, limit int) ([]models.SearchEvent, error)
	CountByKind(ctx context.Context, kind models.SearchKind) (int, error)
}
