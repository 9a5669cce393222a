package fm

// SetParser replaces the per-file parser used by the next scan.
func SetParser(db *Database, parse func(path string) []Face) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.parse = parse
}

// ParseFile exposes the default per-file parser.
func ParseFile(db *Database, path string) []Face {
	return db.parseFile(path)
}
