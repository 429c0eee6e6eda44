package ecs

import (
	"github.com/phanxgames/scrolltween"
	"github.com/phanxgames/scrolltween/timeline"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Appearance is the animatable state of an entity.
type Appearance struct {
	Frame scrolltween.Rect
	Alpha float64
}

// Name identifies an entity to a Resolver.
type Name string

var (
	AppearanceComponent = donburi.NewComponentType[Appearance]()
	NameComponent       = donburi.NewComponentType[Name]()
)

// EntityHost is a PropertyHost that writes an entity's Appearance. Once the
// entity is removed from its world the host reports itself disposed and
// actions stop writing to it.
type EntityHost struct {
	world  donburi.World
	entity donburi.Entity
}

var _ scrolltween.PropertyHost = (*EntityHost)(nil)

// NewEntityHost returns a host for entity, which must have an Appearance.
func NewEntityHost(world donburi.World, entity donburi.Entity) *EntityHost {
	return &EntityHost{world: world, entity: entity}
}

// Entity returns the host's entity.
func (h *EntityHost) Entity() donburi.Entity {
	return h.entity
}

func (h *EntityHost) appearance() *Appearance {
	if !h.world.Valid(h.entity) {
		return nil
	}
	entry := h.world.Entry(h.entity)
	if !entry.HasComponent(AppearanceComponent) {
		return nil
	}
	return AppearanceComponent.Get(entry)
}

// IsDisposed reports whether the entity is gone or lost its Appearance.
func (h *EntityHost) IsDisposed() bool {
	return h.appearance() == nil
}

// Frame returns the entity's frame.
func (h *EntityHost) Frame() scrolltween.Rect {
	if a := h.appearance(); a != nil {
		return a.Frame
	}
	return scrolltween.Rect{}
}

// SetFrame sets the entity's frame.
func (h *EntityHost) SetFrame(r scrolltween.Rect) {
	if a := h.appearance(); a != nil {
		a.Frame = r
	}
}

// Alpha returns the entity's opacity.
func (h *EntityHost) Alpha() float64 {
	if a := h.appearance(); a != nil {
		return a.Alpha
	}
	return 0
}

// SetAlpha sets the entity's opacity.
func (h *EntityHost) SetAlpha(alpha float64) {
	if a := h.appearance(); a != nil {
		a.Alpha = alpha
	}
}

// Resolver resolves timeline targets to entities with a matching Name and an
// Appearance.
type Resolver struct {
	World donburi.World
}

var _ timeline.Resolver = Resolver{}

var namedQuery = donburi.NewQuery(filter.Contains(NameComponent, AppearanceComponent))

// Resolve implements timeline.Resolver. The first matching entity wins.
func (r Resolver) Resolve(target string) (scrolltween.PropertyHost, bool) {
	var found *EntityHost
	namedQuery.Each(r.World, func(entry *donburi.Entry) {
		if found == nil && string(*NameComponent.Get(entry)) == target {
			found = NewEntityHost(r.World, entry.Entity())
		}
	})
	if found == nil {
		return nil, false
	}
	return found, true
}
