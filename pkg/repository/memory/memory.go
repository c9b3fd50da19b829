package memory

import (
	"github.com/cherish-app/cherish/pkg/domain/interfaces"
)

type Memory struct {
	action *actionRepository
	user   *userRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		action: newActionRepository(),
		user:   newUserRepository(),
	}
}

func (m *Memory) Action() interfaces.ActionRepository {
	return m.action
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Close() error {
	return nil
}
