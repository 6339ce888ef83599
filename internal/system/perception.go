package system

import (
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
)

// CanPerception reports whether target perceives self: same depth, and
// self inside the box spanned by target's own perception radius. The box
// includes its low edge and excludes its high edge.
func CanPerception(self, target *ecs.Entity) bool {
	if self == target {
		return false
	}
	tp := ecs.Get[*component.Position](target, component.CPosition)
	sp := ecs.Get[*component.Position](self, component.CPosition)
	if tp == nil || sp == nil || tp.Z != sp.Z {
		return false
	}
	per := ecs.Get[*component.Perception](target, component.CPerception)
	if per == nil {
		return false
	}
	r := per.Radius
	return tp.X < sp.X+r && tp.Y < sp.Y+r && tp.X >= sp.X-r && tp.Y >= sp.Y-r
}

// BroadcastMessage dispatches eventType to every perceiving entity that can
// perceive e. Only entities that themselves perceive may broadcast.
func BroadcastMessage(w *ecs.World, e *ecs.Entity, eventType string, messages ...string) int {
	if !e.HasSystem(component.CPerception) {
		return 0
	}
	n := 0
	for _, t := range w.GetQueries(ecs.Query{Is: []ecs.SystemID{component.CPerception}}) {
		if CanPerception(e, t) {
			t.DispatchEvent(eventType, MessageEvent{Source: e, Messages: messages})
			n++
		}
	}
	return n
}
