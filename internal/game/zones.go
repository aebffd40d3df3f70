package game

import (
	"github.com/vovakirdan/service-drop/internal/core"
)

// ZoneID identifies one of the four role zones.
// The numeric order is the order zones are tested for collisions.
type ZoneID int

const (
	ZoneUpperLeft ZoneID = iota
	ZoneUpperRight
	ZoneLowerLeft
	ZoneLowerRight
)

// ZoneCount is the number of role zones.
const ZoneCount = 4

// String returns a short name for the zone.
func (z ZoneID) String() string {
	switch z {
	case ZoneUpperLeft:
		return "upper-left"
	case ZoneUpperRight:
		return "upper-right"
	case ZoneLowerLeft:
		return "lower-left"
	case ZoneLowerRight:
		return "lower-right"
	default:
		return "unknown"
	}
}

// Role is a character group a service can be delivered to.
type Role struct {
	ID    string
	Label string
}

// Zone is a static drop target on screen.
type Zone struct {
	ID   ZoneID
	Role Role
	Rect core.Rect
}

// ZoneTable holds the four zones in collision-test order.
type ZoneTable [ZoneCount]Zone

// ComputeZones returns the four zone rectangles for a screen.
// Upper zones sit just above the vertical midpoint, lower zones on the bottom edge,
// each one icon square in its corner. Division truncates to the pixel grid.
func ComputeZones(screenW, screenH, iconSize int) [ZoneCount]core.Rect {
	mid := screenH / 2
	return [ZoneCount]core.Rect{
		ZoneUpperLeft:  core.NewRectEdges(0, mid-iconSize, iconSize, mid),
		ZoneUpperRight: core.NewRectEdges(screenW-iconSize, mid-iconSize, screenW, mid),
		ZoneLowerLeft:  core.NewRectEdges(0, screenH-iconSize, iconSize, screenH),
		ZoneLowerRight: core.NewRectEdges(screenW-iconSize, screenH-iconSize, screenW, screenH),
	}
}

// NewZoneTable builds the zone table, assigning roles in zone order.
func NewZoneTable(roles [ZoneCount]Role, screenW, screenH, iconSize int) ZoneTable {
	rects := ComputeZones(screenW, screenH, iconSize)

	var t ZoneTable
	for i := range t {
		t[i] = Zone{
			ID:   ZoneID(i),
			Role: roles[i],
			Rect: rects[i],
		}
	}
	return t
}

// Match returns the first zone, in ZoneID order, that strictly overlaps r.
func (t ZoneTable) Match(r core.Rect) (Zone, bool) {
	for _, z := range t {
		if r.Intersects(z.Rect) {
			return z, true
		}
	}
	return Zone{}, false
}

// ByRole returns the zone assigned to a role.
func (t ZoneTable) ByRole(roleID string) (Zone, bool) {
	for _, z := range t {
		if z.Role.ID == roleID {
			return z, true
		}
	}
	return Zone{}, false
}
