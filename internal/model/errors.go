package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated возвращается при изменяющей операции без текущего пользователя.
	ErrUnauthenticated = errors.New("user not authenticated")
	// ErrNotFound возвращается, если книга, выдача или пользователь не найдены.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable возвращается при попытке взять книгу без свободных экземпляров.
	ErrUnavailable = errors.New("no available copies")
	// ErrAlreadyReturned возвращается при повторном возврате выдачи.
	ErrAlreadyReturned = errors.New("book already returned")
	// ErrAlreadyExtended возвращается при повторном продлении выдачи.
	ErrAlreadyExtended = errors.New("loan has already been extended once")
	// ErrUnverified возвращается при входе пользователя с неподтверждённой почтой.
	ErrUnverified = errors.New("email not verified")
)

// ErrCannotExtendReturned возвращается при попытке продлить уже возвращённую книгу.
var ErrCannotExtendReturned = fmt.Errorf("cannot extend a returned book: %w", ErrAlreadyReturned)
