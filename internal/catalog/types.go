package catalog

// Category classifies a framework. The set is closed: manifest entries with
// any other value fail schema validation at load time.
type Category string

const (
	CategoryArchitecture Category = "architecture"
	CategoryDevelopment  Category = "development"
	CategoryTesting      Category = "testing"
	CategoryOperations   Category = "operations"
	CategoryProcess      Category = "process"
)

// Categories lists all valid category values in display order.
var Categories = []Category{
	CategoryArchitecture,
	CategoryDevelopment,
	CategoryTesting,
	CategoryOperations,
	CategoryProcess,
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryArchitecture, CategoryDevelopment, CategoryTesting,
		CategoryOperations, CategoryProcess:
		return true
	}
	return false
}

// Entry is one installable framework as declared in the manifest.
// Entries are immutable once loaded.
type Entry struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Description  string   `yaml:"description" json:"description"`
	Category     Category `yaml:"category" json:"category"`
	Version      string   `yaml:"version" json:"version"`
	FileName     string   `yaml:"fileName" json:"fileName"`
	Dependencies []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
}

// manifest is the top-level structure of frameworks.yaml.
type manifest struct {
	Frameworks []Entry `yaml:"frameworks"`
}
