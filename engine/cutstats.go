package engine

// CutStatistics collects counts for each pruning/cutoff mechanism.
type CutStatistics struct {
	TTCutoffs       uint64
	BetaCutoffs     uint64
	LMRReductions   uint64
	LMRResearches   uint64
	PVSResearches   uint64
	Extensions      uint64
	AspirationFails uint64
	TimeoutNodes    uint64
}

func (s *Searcher) dumpCutStats() {
	s.log.Info().
		Uint64("tt_cutoffs", s.stats.TTCutoffs).
		Uint64("beta_cutoffs", s.stats.BetaCutoffs).
		Uint64("lmr_reductions", s.stats.LMRReductions).
		Uint64("lmr_researches", s.stats.LMRResearches).
		Uint64("pvs_researches", s.stats.PVSResearches).
		Uint64("extensions", s.stats.Extensions).
		Uint64("aspiration_fails", s.stats.AspirationFails).
		Uint64("timeout_nodes", s.stats.TimeoutNodes).
		Msg("cut statistics")
}
