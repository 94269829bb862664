package store

// UseFastKDF lowers scrypt cost so tests stay quick.
func (s *SessionFileStore) UseFastKDF() { s.params = scryptParams{N: 1 << 10, R: 8, P: 1} }
