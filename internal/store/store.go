// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/avoronov/webdump-bot/internal/domain"
)

// Repository defines the interface for persisting user credentials.
type Repository interface {
	// GetCredential retrieves the credential for a user.
	// Returns (nil, nil) when no record exists.
	GetCredential(ctx context.Context, userID string) (*domain.Credential, error)

	// PutCredential creates or overwrites the credential for a user.
	PutCredential(ctx context.Context, cred *domain.Credential) error

	// DeleteCredential removes the credential for a user.
	// Deleting a missing record is not an error.
	DeleteCredential(ctx context.Context, userID string) error

	// Ping verifies database connectivity and returns an error if the database is unreachable.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
