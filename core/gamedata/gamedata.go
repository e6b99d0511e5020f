package gamedata

import (
	"strconv"
	"strings"
)

// World is a single game world.
type World struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

// DataCenter groups one or more worlds.
type DataCenter struct {
	Name   string   `json:"name"`
	Region string   `json:"region"`
	Worlds []uint32 `json:"worlds"`
}

// WorldDc is a resolved world-or-datacenter query target. Exactly one of
// IsWorld/IsDc is set.
type WorldDc struct {
	IsWorld   bool
	WorldID   uint32
	WorldName string
	IsDc      bool
	DcName    string
}

// Provider is the read-only game reference data catalog. Implementations
// must be safe for concurrent use; the request path only reads.
type Provider interface {
	// AvailableWorlds maps world ID to world name for all known worlds.
	AvailableWorlds() map[uint32]string
	// DataCenters returns all known datacenters.
	DataCenters() []DataCenter
	// IsMarketable reports whether the item can appear on the market.
	IsMarketable(itemID uint32) bool
}

// ResolveWorldDc interprets input as a world name, a numeric world ID, or a
// datacenter name (case-insensitive), in that order. The second return value
// is the set of world IDs the target spans: one for a world, all members for
// a datacenter.
func ResolveWorldDc(p Provider, input string) (WorldDc, []uint32, bool) {
	worlds := p.AvailableWorlds()

	for id, name := range worlds {
		if strings.EqualFold(name, input) {
			return WorldDc{IsWorld: true, WorldID: id, WorldName: name}, []uint32{id}, true
		}
	}

	if id, err := strconv.ParseUint(input, 10, 32); err == nil {
		if name, ok := worlds[uint32(id)]; ok {
			return WorldDc{IsWorld: true, WorldID: uint32(id), WorldName: name}, []uint32{uint32(id)}, true
		}
	}

	for _, dc := range p.DataCenters() {
		if strings.EqualFold(dc.Name, input) {
			ids := make([]uint32, len(dc.Worlds))
			copy(ids, dc.Worlds)
			return WorldDc{IsDc: true, DcName: dc.Name}, ids, true
		}
	}

	return WorldDc{}, nil, false
}
