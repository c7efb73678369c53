package member

import (
	"context"
)

// Repository defines the interface for member persistence
type Repository interface {
	// FindByID finds a member by its ID
	FindByID(ctx context.Context, id uint) (*Member, error)

	// FindAll finds all members, newest first
	FindAll(ctx context.Context) ([]Member, error)

	// FindActive finds all active members, newest first
	FindActive(ctx context.Context) ([]Member, error)

	// FindByNationalID finds a member by cedula
	FindByNationalID(ctx context.Context, nationalID string) (*Member, error)

	// FindByEmail finds a member by email
	FindByEmail(ctx context.Context, email string) (*Member, error)

	// Search finds members whose name, surname, cedula or member code
	// contains the query, case-insensitively
	Search(ctx context.Context, query string) ([]Member, error)

	// Count counts all members, active or not
	Count(ctx context.Context) (int64, error)

	// CountActive counts active members
	CountActive(ctx context.Context) (int64, error)

	// Save creates or updates a member
	Save(ctx context.Context, member *Member) error

	// Delete removes a member permanently. Returns ErrNotFound when no
	// row was affected.
	Delete(ctx context.Context, id uint) error
}
