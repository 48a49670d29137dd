package auth

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// AdminOrReadOnly lets everyone read and only staff write.
	AdminOrReadOnly = "admin_or_read_only"
	// AuthenticatedToCreate lets authenticated users read and create, staff
	// do anything, and anonymous callers nothing.
	AuthenticatedToCreate = "authenticated_to_create"
)

//go:embed permissions.yaml
var defaultPermissions []byte

// Permissions maps API resources to permission classes.
type Permissions struct {
	Default   string            `yaml:"default"`
	Resources map[string]string `yaml:"resources"`
}

// LoadPermissions reads the permission table from path, or the embedded
// defaults when path is empty.
func LoadPermissions(path string) (Permissions, error) {
	raw := defaultPermissions
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Permissions{}, fmt.Errorf("read permissions: %w", err)
		}
		raw = b
	}
	return ParsePermissions(raw)
}

func ParsePermissions(raw []byte) (Permissions, error) {
	var p Permissions
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Permissions{}, fmt.Errorf("parse permissions: %w", err)
	}
	if p.Default == "" {
		p.Default = AdminOrReadOnly
	}
	if err := checkClass(p.Default); err != nil {
		return Permissions{}, err
	}
	for resource, class := range p.Resources {
		if err := checkClass(class); err != nil {
			return Permissions{}, fmt.Errorf("resource %s: %w", resource, err)
		}
	}
	return p, nil
}

// ClassFor returns the permission class guarding resource.
func (p Permissions) ClassFor(resource string) string {
	if class, ok := p.Resources[resource]; ok {
		return class
	}
	return p.Default
}

func checkClass(class string) error {
	switch class {
	case AdminOrReadOnly, AuthenticatedToCreate:
		return nil
	default:
		return fmt.Errorf("unknown permission class %q", class)
	}
}
