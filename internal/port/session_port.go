package port

import (
	"context"
	"github.com/nikolayk812/pos-demo/internal/domain"
)

type SessionRepository interface {
	// GetSession returns the stored session or domain.NewSession defaults.
	GetSession(ctx context.Context, ownerID string) (domain.Session, error)
	SaveSession(ctx context.Context, session domain.Session) error
}
