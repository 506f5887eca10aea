package domain

import "context"

// MemberStore looks up and writes registered requesters.
type MemberStore interface {
	IsRegistered(ctx context.Context, userID string) (bool, error)
	// GetMember returns nil and no error when the user is not registered.
	GetMember(ctx context.Context, userID string) (*Member, error)
	RegisterMember(ctx context.Context, m Member) error
}

// RecordStore persists a finished consultation and returns the storage location name.
type RecordStore interface {
	SaveRecord(ctx context.Context, userID string, rec Record) (string, error)
}

// Storage combines both collaborators; every backend implements it.
type Storage interface {
	MemberStore
	RecordStore
}

// Notifier reports noteworthy dialogue outcomes to operators.
type Notifier interface {
	NotifyRegistration(userID string, m Member)
	NotifyRecord(userID, title string)
	NotifyEscalation(userID, reason string, err error)
}
