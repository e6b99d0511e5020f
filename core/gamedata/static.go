package gamedata

// Static is an in-memory Provider for tests and local development.
type Static struct {
	Worlds     map[uint32]string
	DCs        []DataCenter
	Marketable map[uint32]struct{}
}

func (s *Static) AvailableWorlds() map[uint32]string { return s.Worlds }

func (s *Static) DataCenters() []DataCenter { return s.DCs }

func (s *Static) IsMarketable(itemID uint32) bool {
	if s.Marketable == nil {
		return true
	}
	_, ok := s.Marketable[itemID]
	return ok
}
