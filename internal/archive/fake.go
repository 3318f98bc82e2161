package archive

import (
	"context"
	"io"
)

// FakeRunner is an in-memory Runner substitute for hermetic tests that
// exercise the snapshot protocol without invoking a real tar binary.
type FakeRunner struct {
	// CreateFunc, if set, is called instead of the default no-op.
	CreateFunc func(ctx context.Context, indexPath, archivePath, workingRoot string, excludes []string, out io.Writer) error

	// ExtractFunc, if set, is called instead of the default no-op.
	ExtractFunc func(ctx context.Context, archivePath, workingRoot string) error

	// ListFunc, if set, is called instead of the default no-op.
	ListFunc func(ctx context.Context, archivePath string, out io.Writer) error

	CreateCalls  []FakeCreateCall
	ExtractCalls []FakeExtractCall
	ListCalls    []FakeListCall
}

// FakeListCall records one List invocation for assertions.
type FakeListCall struct {
	ArchivePath string
}

// FakeCreateCall records one Create invocation for assertions.
type FakeCreateCall struct {
	IndexPath, ArchivePath, WorkingRoot string
	Excludes                           []string
}

// FakeExtractCall records one Extract invocation for assertions.
type FakeExtractCall struct {
	ArchivePath, WorkingRoot string
}

// Create records the call and delegates to CreateFunc, if set.
func (f *FakeRunner) Create(ctx context.Context, indexPath, archivePath, workingRoot string, excludes []string, out io.Writer) error {
	f.CreateCalls = append(f.CreateCalls, FakeCreateCall{indexPath, archivePath, workingRoot, excludes})
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, indexPath, archivePath, workingRoot, excludes, out)
	}
	return nil
}

// Extract records the call and delegates to ExtractFunc, if set.
func (f *FakeRunner) Extract(ctx context.Context, archivePath, workingRoot string) error {
	f.ExtractCalls = append(f.ExtractCalls, FakeExtractCall{archivePath, workingRoot})
	if f.ExtractFunc != nil {
		return f.ExtractFunc(ctx, archivePath, workingRoot)
	}
	return nil
}

// List records the call and delegates to ListFunc, if set.
func (f *FakeRunner) List(ctx context.Context, archivePath string, out io.Writer) error {
	f.ListCalls = append(f.ListCalls, FakeListCall{archivePath})
	if f.ListFunc != nil {
		return f.ListFunc(ctx, archivePath, out)
	}
	return nil
}
