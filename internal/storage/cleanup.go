package storage

import "github.com/spf13/afero"

// RemoveIfEmpty deletes dir if and only if it exists and is empty. It must
// not run while a save could still be writing into dir.
func RemoveIfEmpty(fs afero.Fs, dir string) (bool, error) {
	exists, err := afero.DirExists(fs, dir)
	if err != nil || !exists {
		return false, err
	}

	empty, err := afero.IsEmpty(fs, dir)
	if err != nil || !empty {
		return false, err
	}

	if err = fs.Remove(dir); err != nil {
		return false, err
	}
	return true, nil
}
