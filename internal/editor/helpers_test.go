package editor

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"xedit/internal/gateway"
)

// memFS is an in-memory FileSystem keyed by absolute path.
type memFS struct {
	files   map[string]string
	dirs    map[string]bool
	listErr map[string]error
	writes  []string
}

func newMemFS(files map[string]string) *memFS {
	fs := &memFS{
		files:   make(map[string]string),
		dirs:    make(map[string]bool),
		listErr: make(map[string]error),
	}
	for path, content := range files {
		if strings.HasSuffix(path, "/") {
			fs.addDir(strings.TrimSuffix(path, "/"))
			continue
		}
		fs.files[path] = content
		fs.addDir(filepath.Dir(path))
	}
	return fs
}

func (m *memFS) addDir(dir string) {
	for dir != "/" && dir != "." && !m.dirs[dir] {
		m.dirs[dir] = true
		dir = filepath.Dir(dir)
	}
}

func (m *memFS) Read(_ context.Context, path string) (string, error) {
	content, ok := m.files[path]
	if !ok {
		return "", &gateway.IOError{Op: "read", Path: path, Kind: gateway.KindNotFound}
	}
	return content, nil
}

func (m *memFS) Write(_ context.Context, path, text string) error {
	if !m.dirs[filepath.Dir(path)] {
		return &gateway.IOError{Op: "write", Path: path, Kind: gateway.KindNotFound}
	}
	m.files[path] = text
	m.writes = append(m.writes, path)
	return nil
}

func (m *memFS) List(_ context.Context, path string) ([]gateway.Entry, error) {
	if err := m.listErr[path]; err != nil {
		return nil, err
	}
	if !m.dirs[path] {
		return nil, &gateway.IOError{Op: "list", Path: path, Kind: gateway.KindNotFound}
	}
	var entries []gateway.Entry
	for f := range m.files {
		if filepath.Dir(f) == path {
			entries = append(entries, gateway.Entry{Name: filepath.Base(f), Path: f})
		}
	}
	for d := range m.dirs {
		if filepath.Dir(d) == path {
			entries = append(entries, gateway.Entry{Name: filepath.Base(d), Path: d, IsDir: true})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// stubPicker answers every prompt with a fixed path; an empty path cancels.
type stubPicker struct {
	file, dir, save string
	asked          []string
}

func (p *stubPicker) pick(kind, path string) (string, error) {
	p.asked = append(p.asked, kind)
	if path == "" {
		return "", gateway.ErrDialogClosed
	}
	return path, nil
}

func (p *stubPicker) PickOpenFile(context.Context) (string, error) {
	return p.pick("file", p.file)
}

func (p *stubPicker) PickOpenDirectory(context.Context) (string, error) {
	return p.pick("dir", p.dir)
}

func (p *stubPicker) PickSavePath(context.Context) (string, error) {
	return p.pick("save", p.save)
}

// harness drives a controller the way the UI loop does, but synchronously.
type harness struct {
	t    *testing.T
	c    *Controller
	env  Env
	held []Command
}

func newHarness(t *testing.T, fs gateway.FileSystem, picker gateway.Picker) *harness {
	return &harness{t: t, c: New(nil), env: Env{FS: fs, Picker: picker}}
}

// send applies msg and runs every resulting command to completion.
func (h *harness) send(msg Msg) {
	h.t.Helper()
	queue := h.c.Update(msg)
	for len(queue) > 0 {
		cmd := queue[0]
		queue = queue[1:]
		queue = append(queue, h.c.Update(cmd.Run(context.Background(), h.env))...)
	}
}

// hold applies msg but keeps its commands so their results can be delivered later.
func (h *harness) hold(msg Msg) {
	h.held = append(h.held, h.c.Update(msg)...)
}

// result runs held command i and returns its message without delivering it.
func (h *harness) result(i int) Msg {
	return h.held[i].Run(context.Background(), h.env)
}

// deliver applies a result message produced earlier.
func (h *harness) deliver(msg Msg) {
	h.t.Helper()
	for _, cmd := range h.c.Update(msg) {
		h.send(cmd.Run(context.Background(), h.env))
	}
}

func (h *harness) rows() []string {
	var out []string
	for _, r := range h.c.Snapshot().Tree.Rows() {
		name := strings.Repeat("  ", r.Depth) + r.Name
		if r.IsDir() {
			name += "/"
		}
		out = append(out, name)
	}
	return out
}
