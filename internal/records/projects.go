package records

import (
	"context"
	"fmt"
	"time"

	"github.com/athuyarain/burme-mark/internal/domain"
	"github.com/athuyarain/burme-mark/internal/store"
)

const defaultProjectCode = "// မင်္ဂလာပါ! ကုဒ်ရေးကြည့်ပါ\nconsole.log(\"Hello from Burme Mark!\");"

// Projects is the code project list, most recent first. The store maintains
// the invariant that at least one project always exists.
type Projects struct {
	kv store.KV
}

// NewProjects returns a project store over the given persistence port.
func NewProjects(kv store.KV) *Projects {
	return &Projects{kv: kv}
}

// All returns the persisted projects without seeding a default. Read-only
// callers (history aggregation, backup export) use this so recall paths
// never write.
func (p *Projects) All(ctx context.Context) []domain.CodeProject {
	return loadList[domain.CodeProject](ctx, p.kv, store.KeyProjects)
}

// Load returns all projects, most recent first. An empty or corrupt store is
// seeded with a fresh default project so the editor always has something to
// open.
func (p *Projects) Load(ctx context.Context) []domain.CodeProject {
	projects := p.All(ctx)
	if len(projects) > 0 {
		return projects
	}
	seeded := []domain.CodeProject{newDefaultProject(1)}
	if err := p.SaveAll(ctx, seeded); err != nil {
		// The caller still gets a usable in-memory project.
		return seeded
	}
	return seeded
}

// SaveAll overwrites the project list.
func (p *Projects) SaveAll(ctx context.Context, projects []domain.CodeProject) error {
	return saveList(ctx, p.kv, store.KeyProjects, projects)
}

// Create prepends a new default-named project and returns it.
func (p *Projects) Create(ctx context.Context) (domain.CodeProject, error) {
	existing := p.Load(ctx)
	project := newDefaultProject(len(existing) + 1)
	if err := p.SaveAll(ctx, append([]domain.CodeProject{project}, existing...)); err != nil {
		return domain.CodeProject{}, err
	}
	return project, nil
}

// Update applies the patch to the project with the given id and refreshes its
// timestamp. An unknown id is a silent no-op: found is false and the store is
// untouched.
func (p *Projects) Update(ctx context.Context, id string, patch domain.ProjectPatch) (updated domain.CodeProject, found bool, err error) {
	projects := p.All(ctx)
	for i := range projects {
		if projects[i].ID != id {
			continue
		}
		if patch.Name != nil {
			projects[i].Name = *patch.Name
		}
		if patch.Language != nil {
			projects[i].Language = *patch.Language
		}
		if patch.Code != nil {
			projects[i].Code = *patch.Code
		}
		if patch.Output != nil {
			projects[i].Output = *patch.Output
		}
		projects[i].Timestamp = time.Now()
		if err := p.SaveAll(ctx, projects); err != nil {
			return domain.CodeProject{}, false, err
		}
		return projects[i], true, nil
	}
	return domain.CodeProject{}, false, nil
}

// Get returns the project with the given id.
func (p *Projects) Get(ctx context.Context, id string) (domain.CodeProject, error) {
	for _, project := range p.All(ctx) {
		if project.ID == id {
			return project, nil
		}
	}
	return domain.CodeProject{}, fmt.Errorf("get %q: %w", id, domain.ErrProjectNotFound)
}

// Remove deletes the project with the given id. Removing the last remaining
// project is rejected with domain.ErrLastProject and leaves the store
// unchanged; an unknown id is a silent no-op.
func (p *Projects) Remove(ctx context.Context, id string) error {
	projects := p.All(ctx)
	if len(projects) <= 1 {
		return domain.ErrLastProject
	}
	remaining := make([]domain.CodeProject, 0, len(projects)-1)
	for _, project := range projects {
		if project.ID == id {
			continue
		}
		remaining = append(remaining, project)
	}
	if len(remaining) == len(projects) {
		return nil
	}
	return p.SaveAll(ctx, remaining)
}

// Clear resets the store to a single fresh default project.
func (p *Projects) Clear(ctx context.Context) error {
	return p.SaveAll(ctx, []domain.CodeProject{newDefaultProject(1)})
}

func newDefaultProject(ordinal int) domain.CodeProject {
	return domain.CodeProject{
		ID:        domain.NewID(),
		Name:      fmt.Sprintf("Project %d", ordinal),
		Language:  "javascript",
		Code:      defaultProjectCode,
		Timestamp: time.Now(),
	}
}
