package database

import "context"

type DatabaseService interface {
	CreateDatabase(ctx context.Context) error
	DoesDatabaseExist(ctx context.Context) bool
	Close() error

	// CreateInvocation stores inv and returns its ID. An empty inv.ID is replaced
	// by a generated one and a zero CreatedAt by the current time.
	CreateInvocation(ctx context.Context, inv *Invocation) (string, error)
	// GetInvocations returns up to limit invocations, newest first. limit <= 0 returns all.
	GetInvocations(ctx context.Context, limit int) ([]*Invocation, error)
	// GetInvocationByID returns nil without error when id is unknown
	GetInvocationByID(ctx context.Context, id string) (*Invocation, error)
	DeleteInvocation(ctx context.Context, id string) error
}
