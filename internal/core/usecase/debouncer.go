package usecase

import (
	"sync"
	"time"
)

// Debouncer откладывает выполнение задачи: каждый новый Schedule
// отменяет ранее запланированную задачу и заново отсчитывает задержку.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	// seq защищает от срабатывания таймера, который уже был заменен,
	// но успел запустить свою функцию до Stop
	seq uint64
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule планирует fn через delay после последнего вызова
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		fn()
	})
}

// Cancel отменяет запланированную задачу. Возвращает true, если она была.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.seq++
	return true
}

// Pending - есть ли запланированная задача
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
