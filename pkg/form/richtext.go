package form

import "sync"

// Editor is the view side of a rich-text field.
type Editor interface {
	SetContent(content string)
}

// EditorFunc adapts a function to the Editor interface.
type EditorFunc func(content string)

// SetContent calls f(content).
func (f EditorFunc) SetContent(content string) {
	f(content)
}

// RichText binds one source-of-truth string to an optional editor. Load
// events push down into the editor; user edits pull up into the value.
type RichText struct {
	mu      sync.Mutex
	content string
	editor  Editor
}

// Attach binds e and immediately shows the current content in it.
func (r *RichText) Attach(e Editor) {
	r.mu.Lock()
	r.editor = e
	content := r.content
	r.mu.Unlock()

	if e != nil {
		e.SetContent(content)
	}
}

// Push replaces the content from outside the editor and forces the editor
// to display it.
func (r *RichText) Push(content string) {
	r.mu.Lock()
	r.content = content
	e := r.editor
	r.mu.Unlock()

	if e != nil {
		e.SetContent(content)
	}
}

// Edit records a change made in the editor. The editor is not written back.
func (r *RichText) Edit(content string) {
	r.mu.Lock()
	r.content = content
	r.mu.Unlock()
}

// Content returns the current value.
func (r *RichText) Content() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content
}
