package files

import "github.com/pika-pm/pika/pkg/model"

// OwnerTable is a map-backed OwnerIndex for callers that do not bring
// their own ownership store.
type OwnerTable struct {
	owners map[string]*model.Package
}

// NewOwnerTable creates an empty ownership table.
func NewOwnerTable() *OwnerTable {
	return &OwnerTable{owners: make(map[string]*model.Package)}
}

// SetOwner records the package owning a path, replacing any previous
// owner.
func (t *OwnerTable) SetOwner(path string, owner *model.Package) {
	t.owners[path] = owner
}

// Owner returns the package owning a path, or nil.
func (t *OwnerTable) Owner(path string) *model.Package {
	return t.owners[path]
}

// RemoveOwner drops a path from the table.
func (t *OwnerTable) RemoveOwner(path string) {
	delete(t.owners, path)
}

// ForEach visits every (path, owner) pair. Iteration order is
// unspecified.
func (t *OwnerTable) ForEach(fn func(path string, owner *model.Package)) {
	for path, owner := range t.owners {
		fn(path, owner)
	}
}
