package domain

// Session is the per-terminal view configuration: theme and category filter.
type Session struct {
	OwnerID  string
	Dark     bool
	Category string
}

func NewSession(ownerID string) Session {
	return Session{
		OwnerID:  ownerID,
		Dark:     true,
		Category: CategoryAll,
	}
}
