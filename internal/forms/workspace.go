package forms

import "sync"

// Workspace is the admin view's working copy of the template list. Deletions
// and resets touch only this copy; the Registry stays canonical. The copy is
// not persisted and starts fresh on process start.
type Workspace struct {
	mu        sync.Mutex
	templates []Template
}

func NewWorkspace(r *Registry) *Workspace {
	return &Workspace{templates: r.Templates()}
}

func (w *Workspace) List() []Template {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Template, len(w.templates))
	copy(out, w.templates)
	return out
}

// Delete removes a template from the working copy. Reports whether the id was
// present.
func (w *Workspace) Delete(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, t := range w.templates {
		if t.ID == id {
			w.templates = append(w.templates[:i], w.templates[i+1:]...)
			return true
		}
	}
	return false
}

// Reset restores the working copy from the canonical registry.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.templates = (&Registry{}).Templates()
}
