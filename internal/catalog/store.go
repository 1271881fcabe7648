// Package catalog хранит каталог книг и количество доступных экземпляров.
package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mmeshcher/libib/internal/model"
	"github.com/mmeshcher/libib/internal/validation"
)

// Store - единственный владелец списка книг и их доступности.
type Store struct {
	mu    sync.RWMutex
	books []model.Book
	index map[string]int
}

// NewStore создаёт каталог из начального набора книг. Данные не перепроверяются.
func NewStore(books []model.Book) *Store {
	s := &Store{
		books: make([]model.Book, len(books)),
		index: make(map[string]int, len(books)),
	}
	copy(s.books, books)
	for i, b := range s.books {
		s.index[b.ID] = i
	}
	return s
}

// List возвращает все книги каталога.
func (s *Store) List() []model.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]model.Book, len(s.books))
	copy(res, s.books)
	return res
}

// Get возвращает книгу по идентификатору.
func (s *Store) Get(id string) (model.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return model.Book{}, false
	}
	return s.books[i], true
}

// Search фильтрует каталог по подстроке в названии, авторе, жанре или ISBN.
// Пустой запрос возвращает весь каталог. Порядок исходного списка сохраняется.
func (s *Store) Search(query string) []model.Book {
	if strings.TrimSpace(query) == "" {
		return s.List()
	}

	lower := strings.ToLower(query)

	var isbn string
	if validation.IsValidISBN(query) {
		isbn = validation.NormalizeISBN(query)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]model.Book, 0)
	for _, b := range s.books {
		if matches(b, query, lower, isbn) {
			res = append(res, b)
		}
	}
	return res
}

func matches(b model.Book, query, lower, isbn string) bool {
	switch {
	case strings.Contains(strings.ToLower(b.Title), lower),
		strings.Contains(strings.ToLower(b.Author), lower),
		strings.Contains(strings.ToLower(b.Genre), lower),
		strings.Contains(b.ISBN, query):
		return true
	case isbn != "":
		return validation.NormalizeISBN(b.ISBN) == isbn
	default:
		return false
	}
}

// AdjustAvailability изменяет число доступных экземпляров на delta (+1 или -1).
// Проверка предусловий лежит на вызывающей стороне: значение не ограничивается.
func (s *Store) AdjustAvailability(bookID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[bookID]
	if !ok {
		return fmt.Errorf("book %s: %w", bookID, model.ErrNotFound)
	}
	s.books[i].AvailableCopies += delta
	return nil
}
