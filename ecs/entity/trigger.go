package entity

import (
	"fmt"

	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

// NewWaveTrigger builds the zone that starts the encounter on first touch.
func NewWaveTrigger(w *ecs.World, x, y, radius float64) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.WaveTriggerComponent.Kind(), &component.WaveTrigger{}); err != nil {
		return 0, fmt.Errorf("trigger: add trigger tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("trigger: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{
		Radius: radius,
		Role:   component.ColliderTrigger,
	}); err != nil {
		return 0, fmt.Errorf("trigger: add collider: %w", err)
	}

	return entity, nil
}
