package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Action() ActionRepository
	User() UserRepository

	Close() error
}
