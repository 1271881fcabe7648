package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/libib/internal/model"
)

// StartDueReminders периодически рассылает напоминания о сроках возврата до отмены контекста.
// При interval <= 0 сразу возвращает управление.
func (s *Service) StartDueReminders(ctx context.Context, interval, window time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.RemindDue(window); n > 0 {
				s.logger.Info("due reminders sent", zap.Int("count", n))
			}
		}
	}
}

// RemindDue добавляет уведомления типа "due" по активным выдачам: одно при входе в окно
// window перед сроком и одно при просрочке. Напоминание повторяется только после смены срока.
func (s *Service) RemindDue(window time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	sent := 0

	active := s.borrows.ListActive()
	s.forgetInactive(active)

	for _, b := range active {
		title := s.bookTitle(b.BookID)

		switch {
		case b.Overdue(now):
			if due, ok := s.remindedOverdue[b.ID]; ok && due.Equal(b.DueDate) {
				continue
			}
			s.notifications.Append(b.UserID,
				fmt.Sprintf("'%s' is overdue. Please return it as soon as possible.", title),
				model.NotificationDue, b.ID)
			s.remindedOverdue[b.ID] = b.DueDate
			sent++
		case b.DueDate.Sub(now) <= window:
			if due, ok := s.remindedSoon[b.ID]; ok && due.Equal(b.DueDate) {
				continue
			}
			s.notifications.Append(b.UserID,
				fmt.Sprintf("'%s' is due on %s.", title, b.DueDate.Format(dateLayout)),
				model.NotificationDue, b.ID)
			s.remindedSoon[b.ID] = b.DueDate
			sent++
		}
	}

	return sent
}

// forgetInactive удаляет отметки о напоминаниях для выдач, которые больше не активны.
func (s *Service) forgetInactive(active []model.Borrow) {
	ids := make(map[string]struct{}, len(active))
	for _, b := range active {
		ids[b.ID] = struct{}{}
	}

	for id := range s.remindedSoon {
		if _, ok := ids[id]; !ok {
			delete(s.remindedSoon, id)
		}
	}
	for id := range s.remindedOverdue {
		if _, ok := ids[id]; !ok {
			delete(s.remindedOverdue, id)
		}
	}
}
