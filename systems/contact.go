package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/forage/components"
)

// OverlapHandler reacts to its entity touching another collider.
// tag is the tag of the other entity.
type OverlapHandler interface {
	OnOverlap(self, other ecs.Entity, tag components.Tag)
}

type contactPair struct {
	self, other ecs.Entity
}

type collider struct {
	e      ecs.Entity
	pos    r3.Vec
	radius float64
	tag    components.Tag
}

// ContactSystem detects sphere overlaps and dispatches enter events to the
// handler registered for the tag of the touching entity. A pair fires once
// when it starts overlapping and again only after it has separated.
type ContactSystem struct {
	filter   ecs.Filter3[components.Transform, components.Collider, components.Tagged]
	handlers map[components.Tag]OverlapHandler

	colliders []collider
	active    map[contactPair]bool
	next      map[contactPair]bool
	pending   []contactPair
}

// NewContactSystem creates a contact system for the colliders of w.
func NewContactSystem(w *ecs.World) *ContactSystem {
	return &ContactSystem{
		filter:   *ecs.NewFilter3[components.Transform, components.Collider, components.Tagged](w),
		handlers: make(map[components.Tag]OverlapHandler),
		active:   make(map[contactPair]bool),
		next:     make(map[contactPair]bool),
	}
}

// Register routes overlaps of entities tagged tag to h.
func (s *ContactSystem) Register(tag components.Tag, h OverlapHandler) {
	s.handlers[tag] = h
}

// Update finds new overlaps and notifies the handlers. Handlers run after the
// world query is closed.
func (s *ContactSystem) Update() {
	s.colliders = s.colliders[:0]
	query := s.filter.Query()
	for query.Next() {
		tr, col, tag := query.Get()
		s.colliders = append(s.colliders, collider{
			e:      query.Entity(),
			pos:    tr.Position,
			radius: col.Radius,
			tag:    tag.Tag,
		})
	}

	clear(s.next)
	s.pending = s.pending[:0]

	for i := range s.colliders {
		a := &s.colliders[i]
		if _, ok := s.handlers[a.tag]; !ok {
			continue
		}
		for j := range s.colliders {
			if i == j {
				continue
			}
			b := &s.colliders[j]
			reach := a.radius + b.radius
			if r3.Norm2(r3.Sub(a.pos, b.pos)) > reach*reach {
				continue
			}
			pair := contactPair{self: a.e, other: b.e}
			s.next[pair] = true
			if !s.active[pair] {
				s.pending = append(s.pending, pair)
			}
		}
	}

	s.active, s.next = s.next, s.active

	tags := make(map[ecs.Entity]components.Tag, len(s.colliders))
	for _, c := range s.colliders {
		tags[c.e] = c.tag
	}
	for _, p := range s.pending {
		s.handlers[tags[p.self]].OnOverlap(p.self, p.other, tags[p.other])
	}
}

// Reset forgets all tracked overlaps.
func (s *ContactSystem) Reset() {
	clear(s.active)
	clear(s.next)
}
