package service

import "time"

// Clock — источник текущего времени для проверки открытости аукционов.
type Clock interface {
	Now() time.Time
}

// SystemClock возвращает время в UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
