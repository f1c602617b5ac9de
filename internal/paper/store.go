package paper

// FileStore persists papers as plain files. It is the default store of a
// repository; the paths come from the repository layout.
type FileStore struct{}

// Save writes p to its two files.
func (FileStore) Save(p *Paper, bibPath, metaPath string) error {
	return p.Save(bibPath, metaPath)
}

// Load reads a paper from its two files.
func (FileStore) Load(bibPath, metaPath string) (*Paper, error) {
	return Load(bibPath, metaPath)
}
