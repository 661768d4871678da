// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package building

import (
	"fmt"
	"sort"

	"github.com/asset3d/facility-service/internal/types"
)

// FloorGroup is one level of the derived building structure: an explicit
// floor definition when one exists, otherwise a floor synthesized from
// the rooms that reference its number.
type FloorGroup struct {
	ID         string                 `json:"id,omitempty"`
	Number     int                    `json:"number"`
	Name       string                 `json:"name"`
	Rooms      []*types.RoomWithCount `json:"rooms"`
	AssetCount int                    `json:"assetCount"`
}

// BuildFloors groups flat rooms into ordered floors. Explicit floor
// definitions are canonical: their ids and names survive, and they show
// up even when no room sits on them. Rooms on a number with no
// definition get a synthesized floor. The result is sorted by floor
// number, ascending.
func BuildFloors(floors []*types.Floor, rooms []*types.RoomWithCount) []*FloorGroup {
	byNumber := make(map[int]*FloorGroup, len(floors))
	for _, f := range floors {
		byNumber[f.Number] = &FloorGroup{
			ID:     f.ID,
			Number: f.Number,
			Name:   f.Name,
			Rooms:  []*types.RoomWithCount{},
		}
	}

	for _, r := range rooms {
		g, ok := byNumber[r.FloorNumber]
		if !ok {
			g = &FloorGroup{
				Number: r.FloorNumber,
				Name:   fmt.Sprintf("Floor %d", r.FloorNumber),
				Rooms:  []*types.RoomWithCount{},
			}
			byNumber[r.FloorNumber] = g
		}
		g.Rooms = append(g.Rooms, r)
		g.AssetCount += r.AssetCount
	}

	groups := make([]*FloorGroup, 0, len(byNumber))
	for _, g := range byNumber {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Number < groups[j].Number
	})

	return groups
}
