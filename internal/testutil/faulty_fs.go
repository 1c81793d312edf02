package testutil

import (
	"os"
	"sync"

	"github.com/spf13/afero"
)

// FaultyFs wraps an afero.Fs, records every call and returns the configured
// error instead of delegating when one is set.
type FaultyFs struct {
	afero.Fs

	StatErr     error
	OpenErr     error
	OpenFileErr error
	MkdirErr    error
	WriteErr    error
	RemoveErr   error

	mu    sync.Mutex
	Calls []string
}

func NewFaultyFs(inner afero.Fs) *FaultyFs {
	if inner == nil {
		inner = afero.NewMemMapFs()
	}
	return &FaultyFs{Fs: inner}
}

func (f *FaultyFs) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
}

func (f *FaultyFs) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

func (f *FaultyFs) Stat(name string) (os.FileInfo, error) {
	f.record("stat " + name)
	if f.StatErr != nil {
		return nil, f.StatErr
	}
	return f.Fs.Stat(name)
}

func (f *FaultyFs) Open(name string) (afero.File, error) {
	f.record("open " + name)
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	return f.Fs.Open(name)
}

func (f *FaultyFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	f.record("openfile " + name)
	if f.OpenFileErr != nil {
		return nil, f.OpenFileErr
	}
	file, err := f.Fs.OpenFile(name, flag, perm)
	if err != nil || f.WriteErr == nil {
		return file, err
	}
	return &faultyFile{File: file, err: f.WriteErr}, nil
}

func (f *FaultyFs) MkdirAll(path string, perm os.FileMode) error {
	f.record("mkdirall " + path)
	if f.MkdirErr != nil {
		return f.MkdirErr
	}
	return f.Fs.MkdirAll(path, perm)
}

func (f *FaultyFs) Remove(name string) error {
	f.record("remove " + name)
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	return f.Fs.Remove(name)
}

type faultyFile struct {
	afero.File
	err error
}

func (f *faultyFile) Write(_ []byte) (int, error) {
	return 0, f.err
}
