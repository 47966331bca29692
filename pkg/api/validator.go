package api

import (
	"errors"
	"math"
)

// MaxStunTicks - верхняя граница оглушения из админки (10 секунд при 30 тиках)
const MaxStunTicks = 300

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p MovePayload) Validate() error {
	if math.IsNaN(p.Dx) || math.IsNaN(p.Dy) || math.IsInf(p.Dx, 0) || math.IsInf(p.Dy, 0) {
		return errors.New("movement vector must be finite")
	}
	if math.Hypot(p.Dx, p.Dy) > 1+1e-9 {
		return errors.New("movement vector longer than 1")
	}
	return nil
}

func (p StunPayload) Validate() error {
	if p.AgentID == "" {
		return errors.New("agentId is required")
	}
	if p.Ticks <= 0 || p.Ticks > MaxStunTicks {
		return errors.New("ticks out of range")
	}
	return nil
}
