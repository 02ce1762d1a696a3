package repo

// UserContext — кто залогинен в CLI.
type UserContext struct {
	ID    int64
	Login string
}

// UserContextStore абстракция для хранения контекста пользователя (последний вход).
type UserContextStore interface {
	SaveUser(u UserContext) error
	LoadUser() (UserContext, error)
}
