// Package notification хранит уведомления пользователей.
package notification

import (
	"sync"

	"github.com/mmeshcher/libib/internal/clock"
	"github.com/mmeshcher/libib/internal/model"
)

// Sink - единственный владелец уведомлений. Списки хранятся по пользователям, новые - первыми.
type Sink struct {
	mu     sync.RWMutex
	byUser map[string][]model.Notification
	newID  model.IDFunc
	clock  clock.Clock
}

// NewSink создаёт хранилище уведомлений с начальным набором записей.
func NewSink(initial []model.Notification, newID model.IDFunc, clk clock.Clock) *Sink {
	s := &Sink{
		byUser: make(map[string][]model.Notification),
		newID:  newID,
		clock:  clk,
	}
	for _, n := range initial {
		s.byUser[n.UserID] = append(s.byUser[n.UserID], n)
	}
	return s
}

// Append создаёт непрочитанное уведомление и добавляет его в начало списка пользователя.
func (s *Sink) Append(userID, message string, typ model.NotificationType, relatedID string) model.Notification {
	n := model.Notification{
		ID:        s.newID("notification"),
		UserID:    userID,
		Message:   message,
		Type:      typ,
		CreatedAt: s.clock.Now(),
		RelatedID: relatedID,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUser[userID]
	updated := make([]model.Notification, 0, len(list)+1)
	updated = append(updated, n)
	updated = append(updated, list...)
	s.byUser[userID] = updated

	return n
}

// List возвращает уведомления пользователя, начиная с самых новых.
func (s *Sink) List(userID string) []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.byUser[userID]
	res := make([]model.Notification, len(list))
	copy(res, list)
	return res
}

// MarkRead отмечает уведомление пользователя прочитанным. Неизвестный id игнорируется.
func (s *Sink) MarkRead(userID, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUser[userID]
	for i := range list {
		if list[i].ID == id {
			list[i].Read = true
			return
		}
	}
}

// MarkAllRead отмечает прочитанными все уведомления пользователя.
func (s *Sink) MarkAllRead(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUser[userID]
	for i := range list {
		list[i].Read = true
	}
}

// UnreadCount возвращает число непрочитанных уведомлений пользователя.
func (s *Sink) UnreadCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.byUser[userID] {
		if !n.Read {
			count++
		}
	}
	return count
}
