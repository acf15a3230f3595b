package errors

// Error несет человекочитаемое сообщение для клиента и категорию ошибки (одну из общих ошибок выше).
// errors.Is(err, ErrNotFound) и т.п. работает через Unwrap.
type Error struct {
	Kind    error
	Message string
}

// New создает ошибку категории kind с сообщением message
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}
