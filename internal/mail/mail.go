package mail

import "context"

// Dispatcher delivers credential lifecycle emails. Implementations only get
// the recipient and the opaque token; templates and transport are theirs.
type Dispatcher interface {
	SendVerification(ctx context.Context, email, token string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}
