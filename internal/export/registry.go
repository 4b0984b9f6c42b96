package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/san-kum/tradenet/internal/ingest"
	"github.com/san-kum/tradenet/internal/render"
)

var ErrUnsupportedFormat = errors.New("export: unsupported format")

// Writer encodes a snapshot in one format.
type Writer func(w io.Writer, s *Snapshot) error

type Registry struct {
	writers map[string]Writer
}

func NewRegistry() *Registry {
	r := &Registry{writers: make(map[string]Writer)}

	r.writers["svg"] = func(w io.Writer, s *Snapshot) error { return render.WriteSVG(w, s.Scene()) }
	r.writers["png"] = func(w io.Writer, s *Snapshot) error { return render.WritePNG(w, s.Scene()) }
	r.writers["html"] = func(w io.Writer, s *Snapshot) error { return render.WriteHTML(w, s.Scene(), s.Name) }
	r.writers["json"] = func(w io.Writer, s *Snapshot) error {
		return ingest.Encode(w, ingest.FromGraph(s.Graph, s.Positions))
	}

	return r
}

func (r *Registry) Register(format string, w Writer) {
	r.writers[strings.ToLower(format)] = w
}

func (r *Registry) Get(format string) (Writer, error) {
	w, ok := r.writers[strings.ToLower(strings.TrimPrefix(format, "."))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedFormat, format, strings.Join(r.Formats(), ", "))
	}
	return w, nil
}

func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.writers))
	for name := range r.writers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
