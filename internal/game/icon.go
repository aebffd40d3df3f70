package game

import (
	"math/rand"

	"github.com/vovakirdan/service-drop/internal/core"
)

// Service is one falling icon variant and the role it is meant for.
type Service struct {
	ID     string
	Label  string
	RoleID string
}

// FallingIcon is the icon currently on screen. Positions are pixels.
type FallingIcon struct {
	Service Service
	X       int
	Y       int
}

// Rect returns the icon's collision rectangle at its current position.
func (f FallingIcon) Rect(size int) core.Rect {
	return f.RectAt(f.Y, size)
}

// RectAt returns the icon's collision rectangle at another vertical offset.
func (f FallingIcon) RectAt(y, size int) core.Rect {
	return core.NewRect(f.X, y, size, size)
}

// ServicePool picks the next falling service.
type ServicePool struct {
	services []Service
	rng      *rand.Rand
}

// NewServicePool creates a pool drawing from services with the given RNG.
func NewServicePool(services []Service, rng *rand.Rand) *ServicePool {
	return &ServicePool{
		services: services,
		rng:      rng,
	}
}

// Next returns a random service from the pool.
func (p *ServicePool) Next() Service {
	if len(p.services) == 1 {
		return p.services[0]
	}
	return p.services[p.rng.Intn(len(p.services))]
}
