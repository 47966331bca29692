package systems

import (
	"ursa-server/internal/domain"
)

// SightingMemory - ограниченная история последних позиций игрока (FIFO)
// плюс счетчик обнаружений в скользящем окне, управляющий адаптивным флагом.
type SightingMemory struct {
	buf   []domain.Vec2
	head  int // индекс самой старой записи
	count int

	delay           int // detection delay
	window          int // adaptive memory window
	minPatrolChange int

	streak         int // тиков подряд с alerted
	timesDetected  int
	sinceDetection int
}

// NewSightingMemory создает память емкостью capacity (минимум 1)
func NewSightingMemory(capacity, delay, window, minPatrolChange int) *SightingMemory {
	if capacity < 1 {
		capacity = 1
	}
	m := &SightingMemory{
		buf:             make([]domain.Vec2, capacity),
		delay:           delay,
		window:          window,
		minPatrolChange: minPatrolChange,
	}
	m.sinceDetection = m.saturation()
	return m
}

// RecordIfSpotted вызывается раз в тик. Возвращает spotted: alerted держится
// непрерывно не меньше delay тиков. В этом случае позиция игрока попадает в память.
func (m *SightingMemory) RecordIfSpotted(alerted bool, playerPos domain.Vec2) bool {
	if !alerted {
		m.streak = 0
		if m.sinceDetection < m.saturation() {
			m.sinceDetection++
		}
		if m.sinceDetection > m.window {
			m.timesDetected = 0
		}
		return false
	}

	m.sinceDetection = 0
	if m.streak < m.delay {
		m.streak++
		// Фронт: серия впервые достигла порога
		if m.streak == m.delay {
			m.timesDetected++
		}
	}

	if m.streak < m.delay {
		return false
	}

	m.push(playerPos)
	return true
}

func (m *SightingMemory) push(p domain.Vec2) {
	capacity := len(m.buf)
	if m.count < capacity {
		m.buf[(m.head+m.count)%capacity] = p
		m.count++
		return
	}
	// Переполнение: вытесняем самую старую
	m.buf[m.head] = p
	m.head = (m.head + 1) % capacity
}

// saturation - потолок счетчика тиков без обнаружения.
// Счетчик читают и окно адаптивности, и память погони, поэтому он не ограничен окном.
func (m *SightingMemory) saturation() int {
	return maxCounter
}

// Latest возвращает самое свежее наблюдение
func (m *SightingMemory) Latest() (domain.Vec2, bool) {
	if m.count == 0 {
		return domain.Vec2{}, false
	}
	return m.buf[(m.head+m.count-1)%len(m.buf)], true
}

// Recent возвращает копию истории, начиная с самого свежего
func (m *SightingMemory) Recent() []domain.Vec2 {
	out := make([]domain.Vec2, m.count)
	for i := 0; i < m.count; i++ {
		out[i] = m.buf[(m.head+m.count-1-i)%len(m.buf)]
	}
	return out
}

func (m *SightingMemory) Len() int { return m.count }

func (m *SightingMemory) Cap() int { return len(m.buf) }

func (m *SightingMemory) TimesDetected() int { return m.timesDetected }

func (m *SightingMemory) SinceDetection() int { return m.sinceDetection }

// Adaptive - агент часто видел игрока в последнее время
func (m *SightingMemory) Adaptive() bool {
	return m.timesDetected >= m.minPatrolChange &&
		m.sinceDetection <= m.window &&
		m.count > 0
}

// ResetStreak сбрасывает только текущую серию (выход из оглушения).
// История и счетчик обнаружений сохраняются.
func (m *SightingMemory) ResetStreak() {
	m.streak = 0
}

// Reset - полная очистка при перезапуске уровня
func (m *SightingMemory) Reset() {
	for i := range m.buf {
		m.buf[i] = domain.Vec2{}
	}
	m.head, m.count = 0, 0
	m.streak = 0
	m.timesDetected = 0
	m.sinceDetection = m.saturation()
}
