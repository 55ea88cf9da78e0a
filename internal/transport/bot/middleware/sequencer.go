package middleware

import (
	"sync"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

// turn — очередь апдейта: ждём wait, по завершении закрываем done.
type turn struct {
	wait <-chan struct{}
	done chan struct{}
}

// Sequencer обрабатывает апдейты одного пользователя строго по одному и в
// порядке получения. Очередь выстраивается в Updates, до того как BotHandler
// раздаст апдейты по горутинам; Handler ждёт своей очереди.
// Апдейты разных пользователей друг друга не ждут.
type Sequencer struct {
	mu    sync.Mutex
	tails map[int64]chan struct{}
	turns map[int][]turn
}

func NewSequencer() *Sequencer {
	return &Sequencer{
		tails: make(map[int64]chan struct{}),
		turns: make(map[int][]turn),
	}
}

// Updates пропускает апдейты дальше, записывая каждый в очередь его
// пользователя. Канал закрывается вслед за in.
func (s *Sequencer) Updates(in <-chan telego.Update) <-chan telego.Update {
	out := make(chan telego.Update)

	go func() {
		defer close(out)

		for update := range in {
			s.enqueue(update)
			out <- update
		}
	}()

	return out
}

func (s *Sequencer) enqueue(update telego.Update) {
	o, ok := originOf(update)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	done := make(chan struct{})
	s.turns[update.UpdateID] = append(s.turns[update.UpdateID], turn{wait: s.tails[o.userID], done: done})
	s.tails[o.userID] = done
}

func (s *Sequencer) take(update telego.Update) (turn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queued := s.turns[update.UpdateID]
	if len(queued) == 0 {
		return turn{}, false
	}

	if len(queued) == 1 {
		delete(s.turns, update.UpdateID)
	} else {
		s.turns[update.UpdateID] = queued[1:]
	}

	return queued[0], true
}

func (s *Sequencer) release(userID int64, t turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	close(t.done)

	if s.tails[userID] == t.done {
		delete(s.tails, userID)
	}
}

// Handler — middleware к Updates. Апдейты, прошедшие мимо Updates,
// обрабатываются без очереди.
func (s *Sequencer) Handler() th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		t, ok := s.take(update)
		if !ok {
			return ctx.Next(update)
		}

		o, _ := originOf(update)

		if t.wait != nil {
			select {
			case <-t.wait:
			case <-ctx.Done():
				// очередь следующего апдейта не должна наступить раньше предыдущего
				go func() {
					<-t.wait
					s.release(o.userID, t)
				}()

				return ctx.Err()
			}
		}

		defer s.release(o.userID, t)

		return ctx.Next(update)
	}
}
