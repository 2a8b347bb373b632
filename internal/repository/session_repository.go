package repository

import (
	"context"
	"fmt"
	"github.com/nikolayk812/pos-demo/internal/domain"
	"github.com/nikolayk812/pos-demo/internal/port"
)

type sessionRepository struct {
	store *Store
	st    *state
}

func NewSession(store *Store) port.SessionRepository {
	return &sessionRepository{store: store}
}

func NewSessionWithTx(tx *Tx) port.SessionRepository {
	return &sessionRepository{st: tx.state}
}

func (r *sessionRepository) GetSession(ctx context.Context, ownerID string) (domain.Session, error) {
	if ownerID == "" {
		return domain.Session{}, domain.ErrOwnerIDEmpty
	}

	return withRead(ctx, r.store, r.st, func(st *state) (domain.Session, error) {
		session, ok := st.sessions[ownerID]
		if !ok {
			return domain.NewSession(ownerID), nil
		}
		return session, nil
	})
}

func (r *sessionRepository) SaveSession(ctx context.Context, session domain.Session) error {
	if session.OwnerID == "" {
		return domain.ErrOwnerIDEmpty
	}

	_, err := withTx(ctx, r.store, r.st, func(st *state) (struct{}, error) {
		st.sessions[session.OwnerID] = session
		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}
