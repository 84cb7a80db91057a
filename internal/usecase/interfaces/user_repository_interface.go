package interfaces

import (
	"context"

	"trades_marketplace/internal/domain/entities"
)

// IUserRepository abstracts DynamoDB persistence for accounts.
type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	GetByEmail(ctx context.Context, email string) (entities.User, error)
	// ChangeRole moves the user from one role to another and stores the
	// audit record in the same transaction. A user no longer holding
	// change.FromRole yields ErrStaleUser.
	ChangeRole(ctx context.Context, change entities.RoleChange) (entities.User, error)
}

// ISessionRepository stores login sessions keyed by token hash.
// Expired sessions are reported as missing (zero Session).
type ISessionRepository interface {
	Create(ctx context.Context, s entities.Session) error
	Get(ctx context.Context, tokenHash string) (entities.Session, error)
	Delete(ctx context.Context, tokenHash string) error
}

// ILoginCodeRepository is the time-bounded single-use code store.
type ILoginCodeRepository interface {
	// Put stores c, replacing any earlier code for the same email.
	Put(ctx context.Context, c entities.LoginCode) error
	Get(ctx context.Context, email string) (entities.LoginCode, error)
	// Consume deletes the code only if it still has codeHash, so a code can be redeemed once.
	Consume(ctx context.Context, email, codeHash string) error
	// IncrementAttempts records a failed verification and returns the new count.
	IncrementAttempts(ctx context.Context, email string) (int, error)
}
