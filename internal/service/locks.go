package service

import (
	"context"
	"sync"
)

// auctionLocks — мьютексы по id аукциона. Ставки на разные аукционы не конкурируют,
// ожидание прерывается по контексту. Пустые слоты удаляются.
type auctionLocks struct {
	mu    sync.Mutex
	slots map[int64]*lockSlot
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

func newAuctionLocks() *auctionLocks {
	return &auctionLocks{slots: make(map[int64]*lockSlot)}
}

// acquire блокирует аукцион id. Возвращённый release нужно вызвать ровно один раз.
func (l *auctionLocks) acquire(ctx context.Context, id int64) (release func(), err error) {
	l.mu.Lock()
	s, ok := l.slots[id]
	if !ok {
		s = &lockSlot{ch: make(chan struct{}, 1)}
		l.slots[id] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
		return func() {
			<-s.ch
			l.unref(id, s)
		}, nil
	case <-ctx.Done():
		l.unref(id, s)
		return nil, ctx.Err()
	}
}

func (l *auctionLocks) unref(id int64, s *lockSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, id)
	}
}

// size — число живых слотов (для тестов).
func (l *auctionLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
