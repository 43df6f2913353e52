package mirror

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ghmirror/pkg/github"
)

// MockGitClient is a mock implementation of GitClient for testing
type MockGitClient struct {
	mock.Mock
}

func (m *MockGitClient) Clone(ctx context.Context, path, url string) error {
	args := m.Called(ctx, path, url)
	return args.Error(0)
}

func (m *MockGitClient) Update(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func testRepos() []github.Repository {
	return []github.Repository{
		{Name: "a", SSHURL: "git@host:alice/a.git"},
		{Name: "b", SSHURL: "git@host:alice/b.git"},
	}
}

func TestReconcileClonesIntoEmptyRoot(t *testing.T) {
	root := t.TempDir()

	git := &MockGitClient{}
	git.On("Clone", mock.Anything, filepath.Join(root, "a"), "git@host:alice/a.git").Return(nil).Once()
	git.On("Clone", mock.Anything, filepath.Join(root, "b"), "git@host:alice/b.git").Return(nil).Once()

	var out, diag bytes.Buffer
	reconciler := NewReconciler(git, &out, &diag)

	err := reconciler.Reconcile(context.Background(), testRepos(), root, false)
	require.NoError(t, err)

	git.AssertExpectations(t)
	assert.Equal(t, "cloning a\ncloning b\n", out.String())
	assert.Empty(t, diag.String())
}

func TestReconcileUpdatesExistingMirror(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "a"), 0755))

	git := &MockGitClient{}
	git.On("Update", mock.Anything, filepath.Join(root, "a")).Return(nil).Once()
	git.On("Clone", mock.Anything, filepath.Join(root, "b"), "git@host:alice/b.git").Return(nil).Once()

	var out, diag bytes.Buffer
	reconciler := NewReconciler(git, &out, &diag)

	err := reconciler.Reconcile(context.Background(), testRepos(), root, false)
	require.NoError(t, err)

	git.AssertExpectations(t)
	git.AssertNumberOfCalls(t, "Clone", 1)
	git.AssertNumberOfCalls(t, "Update", 1)
	assert.Equal(t, "updating a\ncloning b\n", out.String())
}

func TestReconcileIsIdempotent(t *testing.T) {
	root := t.TempDir()

	git := &MockGitClient{}
	git.On("Clone", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		// A successful clone leaves a mirror directory behind.
		require.NoError(t, os.MkdirAll(args.String(1), 0755))
	}).Return(nil).Twice()
	git.On("Update", mock.Anything, mock.Anything).Return(nil).Twice()

	var out bytes.Buffer
	reconciler := NewReconciler(git, &out, &bytes.Buffer{})

	// First run clones everything, the second run updates everything.
	require.NoError(t, reconciler.Reconcile(context.Background(), testRepos(), root, false))
	require.NoError(t, reconciler.Reconcile(context.Background(), testRepos(), root, false))

	git.AssertExpectations(t)
	assert.Equal(t, "cloning a\ncloning b\nupdating a\nupdating b\n", out.String())
}

func TestReconcileDryRun(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "a"), 0755))

	git := &MockGitClient{} // no expectations: any git call fails the test

	var out, diag bytes.Buffer
	reconciler := NewReconciler(git, &out, &diag)

	err := reconciler.Reconcile(context.Background(), testRepos(), root, true)
	require.NoError(t, err)

	assert.Equal(t, "updating a\ncloning b\n", out.String())
	assert.Equal(t, "a -> git@host:alice/a.git\nb -> git@host:alice/b.git\n", diag.String())

	// Nothing was created for the missing repository.
	_, statErr := os.Stat(filepath.Join(root, "b"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestReconcileStopsAtFirstFailure(t *testing.T) {
	root := t.TempDir()

	git := &MockGitClient{}
	git.On("Clone", mock.Anything, filepath.Join(root, "a"), "git@host:alice/a.git").Return(errors.New("clone failed")).Once()

	var out bytes.Buffer
	reconciler := NewReconciler(git, &out, &bytes.Buffer{})

	err := reconciler.Reconcile(context.Background(), testRepos(), root, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clone failed")

	// The second repository was never processed.
	git.AssertExpectations(t)
	git.AssertNumberOfCalls(t, "Clone", 1)
	assert.Equal(t, "cloning a\n", out.String())
}

func TestReconcileRejectsUnsafeNames(t *testing.T) {
	tests := []struct {
		name     string
		repoName string
	}{
		{name: "empty", repoName: ""},
		{name: "dot", repoName: "."},
		{name: "dotdot", repoName: ".."},
		{name: "path separator", repoName: "alice/evil"},
		{name: "backslash", repoName: `alice\evil`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			git := &MockGitClient{}
			reconciler := NewReconciler(git, &bytes.Buffer{}, &bytes.Buffer{})

			repos := []github.Repository{{Name: tt.repoName, SSHURL: "git@host:alice/x.git"}}
			err := reconciler.Reconcile(context.Background(), repos, t.TempDir(), false)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "refusing to mirror repository")
		})
	}
}

func TestReconcileFailsOnNonDirectoryPath(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a"), []byte("in the way"), 0644))

	git := &MockGitClient{}
	reconciler := NewReconciler(git, &bytes.Buffer{}, &bytes.Buffer{})

	repos := []github.Repository{{Name: "a", SSHURL: "git@host:alice/a.git"}}
	err := reconciler.Reconcile(context.Background(), repos, root, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}
