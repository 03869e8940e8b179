package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/folium/pkg/adapters/memory"
	"github.com/aretw0/loam"
)

// BlockTypeMetadata is the frontmatter of a block type definition file.
type BlockTypeMetadata struct {
	Name     string `json:"name" mapstructure:"name"`
	Title    string `json:"title" mapstructure:"title"`
	Category string `json:"category" mapstructure:"category"`
}

// Registry implements editor.BlockTypes over block type definitions kept in
// a Loam repository, one document per type.
//
// Definitions are read once by Load; call Reload to pick up changes.
type Registry struct {
	*memory.Registry
	Repo *loam.TypedRepository[BlockTypeMetadata]
}

// Open initializes a read-only Loam repository at path and loads it.
func Open(ctx context.Context, path string) (*Registry, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return Load(ctx, loam.NewTypedRepository[BlockTypeMetadata](repo))
}

// Load reads every block type of repo.
func Load(ctx context.Context, repo *loam.TypedRepository[BlockTypeMetadata]) (*Registry, error) {
	r := &Registry{Registry: memory.NewRegistry(), Repo: repo}
	if err := r.Reload(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-reads the repository and registers what it finds. Types are
// registered in document ID order; types removed from the repository stay
// registered.
func (r *Registry) Reload(ctx context.Context) error {
	docs, err := r.Repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loam list failed: %w", err)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	seen := make(map[string]string, len(docs))
	types := make([]memory.BlockType, 0, len(docs))
	for _, doc := range docs {
		name := doc.Data.Name
		if name == "" {
			name = trimExtension(doc.ID)
		}
		if existing, ok := seen[name]; ok {
			return fmt.Errorf("collision detected: block type '%s' is defined in both '%s' and '%s'", name, existing, doc.ID)
		}
		seen[name] = doc.ID

		types = append(types, memory.BlockType{
			Name:     name,
			Title:    doc.Data.Title,
			Category: doc.Data.Category,
		})
	}

	r.Register(types...)
	return nil
}

func trimExtension(id string) string {
	return filepath.ToSlash(strings.TrimSuffix(id, filepath.Ext(id)))
}
