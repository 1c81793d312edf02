package providers

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"visitors/internal/structures"
)

// NewFsProvider returns the OS filesystem rooted at store.root, so relative
// record paths resolve the same way they would from that working directory.
func NewFsProvider(conf *structures.Config) (afero.Fs, error) {
	root, err := filepath.Abs(conf.Store.Root)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve store root %q: %w", conf.Store.Root, err)
	}
	return afero.NewBasePathFs(afero.NewOsFs(), root), nil
}
