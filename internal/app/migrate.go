package app

// MigrateLegacyLock reads a pre-spk APT/pip lock file at path and
// returns spk request shorthand strings ready to hand to Resolve.
func (s *Service) MigrateLegacyLock(path string) ([]string, error) {
	entries, err := s.Legacy.LoadLegacyLock(path)
	if err != nil {
		return nil, err
	}
	return s.Legacy.MigrateToRequests(entries)
}
