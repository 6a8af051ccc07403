package filestore

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// Local resolves payment-proof references against an uploads root.
type Local struct {
	fs afero.Fs
}

// NewLocal roots the store at dir on the OS filesystem.
func NewLocal(dir string) *Local {
	return New(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

func New(fs afero.Fs) *Local {
	return &Local{fs: fs}
}

// clean maps a stored reference (plain path or URL) to a path inside the root.
func clean(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		ref = u.Path
	}
	ref = strings.TrimPrefix(path.Clean("/"+ref), "/")
	return strings.TrimPrefix(ref, "uploads/")
}

func (l *Local) Exists(ref string) (bool, error) {
	if ref == "" {
		return false, nil
	}
	ok, err := afero.Exists(l.fs, clean(ref))
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", ref, err)
	}
	return ok, nil
}

func (l *Local) Remove(ref string) error {
	if err := l.fs.Remove(clean(ref)); err != nil {
		return fmt.Errorf("remove %s: %w", ref, err)
	}
	return nil
}
