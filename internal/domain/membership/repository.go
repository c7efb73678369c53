package membership

import (
	"context"
	"time"
)

// Repository defines the interface for membership persistence
type Repository interface {
	// FindByID finds a membership by its ID
	FindByID(ctx context.Context, id uint) (*Membership, error)

	// FindAll finds all memberships
	FindAll(ctx context.Context) ([]Membership, error)

	// FindByMember finds all memberships for a member, most recent end
	// date first
	FindByMember(ctx context.Context, memberID uint) ([]Membership, error)

	// FindActiveByMember finds the member's active memberships, most
	// recent end date first. More than one entry indicates a violated
	// invariant that the lifecycle service repairs on the next create.
	FindActiveByMember(ctx context.Context, memberID uint) ([]Membership, error)

	// FindLatestByMember finds the member's most recent membership by end
	// date regardless of state. Returns ErrNotFound when the member has
	// no memberships at all.
	FindLatestByMember(ctx context.Context, memberID uint) (*Membership, error)

	// FindByStatus finds memberships in the given state, most recent end
	// date first
	FindByStatus(ctx context.Context, status Status) ([]Membership, error)

	// FindActiveEndingBetween finds active memberships whose end date
	// falls in [from, to], soonest first
	FindActiveEndingBetween(ctx context.Context, from, to time.Time) ([]Membership, error)

	// CountByStatus counts memberships in the given state
	CountByStatus(ctx context.Context, status Status) (int64, error)

	// Save creates or updates a membership
	Save(ctx context.Context, membership *Membership) error
}
