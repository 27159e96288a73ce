package session

import "context"

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// Purger is implemented by stores that need expired rows removed
// periodically. Redis expires keys by itself.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

// Pinger is implemented by stores backed by a server or a database file.
type Pinger interface {
	Ping(ctx context.Context) error
}
