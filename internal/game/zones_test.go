package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/service-drop/internal/core"
)

func TestComputeZonesFormula(t *testing.T) {
	rects := ComputeZones(1000, 2000, 300)

	assert.Equal(t, core.NewRectEdges(0, 700, 300, 1000), rects[ZoneUpperLeft])
	assert.Equal(t, core.NewRectEdges(700, 700, 1000, 1000), rects[ZoneUpperRight])
	assert.Equal(t, core.NewRectEdges(0, 1700, 300, 2000), rects[ZoneLowerLeft])
	assert.Equal(t, core.NewRectEdges(700, 1700, 1000, 2000), rects[ZoneLowerRight])
}

func TestComputeZonesTruncatesMidpoint(t *testing.T) {
	rects := ComputeZones(1080, 2401, 300)

	// 2401/2 truncates to 1200
	assert.Equal(t, 900, rects[ZoneUpperLeft].Top())
	assert.Equal(t, 1200, rects[ZoneUpperLeft].Bottom())
	assert.Equal(t, 2101, rects[ZoneLowerRight].Top())
}

func TestZonesDisjointWithIconArea(t *testing.T) {
	sizes := []struct{ w, h, s int }{
		{600, 600, 300},
		{1000, 2000, 300},
		{1080, 2400, 300},
		{2000, 1200, 300},
		{601, 777, 300},
		{64, 64, 32},
	}

	for _, sz := range sizes {
		t.Run(fmt.Sprintf("%dx%d/%d", sz.w, sz.h, sz.s), func(t *testing.T) {
			rects := ComputeZones(sz.w, sz.h, sz.s)
			for i := range rects {
				assert.Equal(t, sz.s*sz.s, rects[i].W*rects[i].H, "zone %d area", i)
				for j := i + 1; j < len(rects); j++ {
					assert.False(t, rects[i].Intersects(rects[j]), "zones %d and %d overlap", i, j)
				}
			}
		})
	}
}

func TestZoneTableMatchFirstWins(t *testing.T) {
	table := NewZoneTable(testRoles(), 1000, 2000, 300)

	tests := []struct {
		name string
		rect core.Rect
		want ZoneID
		hit  bool
	}{
		{"covers everything", core.NewRect(0, 0, 1000, 2000), ZoneUpperLeft, true},
		{"right column spans B and D", core.NewRect(700, 700, 300, 1300), ZoneUpperRight, true},
		{"bottom row spans C and D", core.NewRect(0, 1750, 1000, 100), ZoneLowerLeft, true},
		{"only D", core.NewRect(650, 1690, 300, 300), ZoneLowerRight, true},
		{"center column", core.NewRect(350, 0, 300, 2000), 0, false},
		{"touching A from above", core.NewRect(0, 400, 300, 300), 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			z, ok := table.Match(tc.rect)
			require.Equal(t, tc.hit, ok)
			if ok {
				assert.Equal(t, tc.want, z.ID)
				assert.Equal(t, testRoles()[tc.want], z.Role)
			}
		})
	}
}

func TestZoneTableByRole(t *testing.T) {
	table := NewZoneTable(testRoles(), 1000, 2000, 300)

	z, ok := table.ByRole("adult")
	require.True(t, ok)
	assert.Equal(t, ZoneLowerLeft, z.ID)

	_, ok = table.ByRole("robot")
	assert.False(t, ok)
}

func TestZoneIDString(t *testing.T) {
	assert.Equal(t, "upper-left", ZoneUpperLeft.String())
	assert.Equal(t, "lower-right", ZoneLowerRight.String())
	assert.Equal(t, "unknown", ZoneID(9).String())
}

func testRoles() [ZoneCount]Role {
	return [ZoneCount]Role{
		{ID: "infant", Label: "Infant"},
		{ID: "child", Label: "Child"},
		{ID: "adult", Label: "Adult"},
		{ID: "public", Label: "General Public"},
	}
}
