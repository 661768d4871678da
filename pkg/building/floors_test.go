// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package building

import (
	"math"
	"testing"

	"github.com/asset3d/facility-service/internal/types"
)

func room(name string, floor, assetCount int) *types.RoomWithCount {
	return &types.RoomWithCount{
		Room:       types.Room{ID: "room-" + name, Name: name, FloorNumber: floor},
		AssetCount: assetCount,
	}
}

func TestBuildFloors_GroupsAndSorts(t *testing.T) {
	rooms := []*types.RoomWithCount{
		room("Attic Storage", 3, 1),
		room("Reception", 1, 2),
		room("Office A", 2, 4),
		room("Office B", 2, 3),
	}

	groups := BuildFloors(nil, rooms)

	if len(groups) != 3 {
		t.Fatalf("expected 3 floors, got %d", len(groups))
	}

	for i, want := range []int{1, 2, 3} {
		if groups[i].Number != want {
			t.Errorf("floor %d: expected number %d, got %d", i, want, groups[i].Number)
		}
	}

	second := groups[1]
	if len(second.Rooms) != 2 {
		t.Errorf("expected 2 rooms on floor 2, got %d", len(second.Rooms))
	}
	if second.AssetCount != 7 {
		t.Errorf("expected summed asset count 7 on floor 2, got %d", second.AssetCount)
	}
}

func TestBuildFloors_ExplicitDefinitionsAreCanonical(t *testing.T) {
	floors := []*types.Floor{
		{ID: "floor-1", Number: 1, Name: "Ground Floor"},
		{ID: "floor-5", Number: 5, Name: "Penthouse"},
	}
	rooms := []*types.RoomWithCount{
		room("Reception", 1, 2),
		room("Server Room", 2, 1),
	}

	groups := BuildFloors(floors, rooms)

	if len(groups) != 3 {
		t.Fatalf("expected 3 floors, got %d", len(groups))
	}

	if groups[0].ID != "floor-1" || groups[0].Name != "Ground Floor" {
		t.Errorf("expected defined floor 1 to keep its id and name, got %+v", groups[0])
	}

	// Floor 2 has no definition and is synthesized from its room.
	if groups[1].Number != 2 || groups[1].ID != "" {
		t.Errorf("expected synthesized floor 2, got %+v", groups[1])
	}
	if groups[1].Name != "Floor 2" {
		t.Errorf("expected synthesized name %q, got %q", "Floor 2", groups[1].Name)
	}

	// The penthouse definition has no rooms but is still emitted.
	last := groups[2]
	if last.Number != 5 || last.Name != "Penthouse" {
		t.Errorf("expected empty defined floor 5, got %+v", last)
	}
	if len(last.Rooms) != 0 || last.AssetCount != 0 {
		t.Errorf("expected empty floor 5 with zero assets, got %+v", last)
	}
}

func TestBuildFloors_NegativeAndZeroNumbers(t *testing.T) {
	rooms := []*types.RoomWithCount{
		room("Parking", -1, 0),
		room("Lobby", 0, 1),
		room("Office", 1, 1),
	}

	groups := BuildFloors(nil, rooms)

	if len(groups) != 3 {
		t.Fatalf("expected 3 floors, got %d", len(groups))
	}
	for i, want := range []int{-1, 0, 1} {
		if groups[i].Number != want {
			t.Errorf("floor %d: expected number %d, got %d", i, want, groups[i].Number)
		}
	}
}

func TestBuildFloors_Empty(t *testing.T) {
	groups := BuildFloors(nil, nil)
	if len(groups) != 0 {
		t.Fatalf("expected no floors, got %d", len(groups))
	}
}

func TestFloorNumber_Normalization(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	nan := math.NaN()
	inf := math.Inf(1)

	testCases := []struct {
		name     string
		input    *float64
		expected int
	}{
		{"missing defaults to 1", nil, 1},
		{"NaN defaults to 1", &nan, 1},
		{"infinity defaults to 1", &inf, 1},
		{"integer value", f(3), 3},
		{"fractional value truncates", f(2.7), 2},
		{"negative floor", f(-1), -1},
		{"zero floor", f(0), 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := floorNumber(tc.input); got != tc.expected {
				t.Errorf("expected %d, got %d", tc.expected, got)
			}
		})
	}
}
