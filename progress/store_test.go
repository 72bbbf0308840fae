package progress

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "progress.json"))

	p := store.Load("course-1")

	assert.False(t, p.IsEnrolled)
	assert.NotNil(t, p.CompletedTopics)
	assert.Empty(t, p.CompletedTopics)
	assert.Nil(t, p.LastVisited)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "progress.json"))

	last := "2-1"
	saved := CourseProgress{
		IsEnrolled:      true,
		CompletedTopics: []string{"1-0", "1-1"},
		LastVisited:     &last,
	}
	require.NoError(t, store.Save("course-1", saved))

	p := store.Load("course-1")
	assert.True(t, p.IsEnrolled)
	assert.Equal(t, []string{"1-0", "1-1"}, p.CompletedTopics)
	require.NotNil(t, p.LastVisited)
	assert.Equal(t, "2-1", *p.LastVisited)

	// Other course ids stay untouched.
	other := store.Load("course-2")
	assert.False(t, other.IsEnrolled)
	assert.Empty(t, other.CompletedTopics)
}

func TestSaveOverwritesWholeRecord(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "progress.json"))

	require.NoError(t, store.Save("course-1", CourseProgress{
		IsEnrolled:      true,
		CompletedTopics: []string{"1-0", "1-1", "2-0"},
	}))
	require.NoError(t, store.Save("course-1", CourseProgress{
		CompletedTopics: []string{"1-0"},
	}))

	p := store.Load("course-1")
	assert.False(t, p.IsEnrolled)
	assert.Equal(t, []string{"1-0"}, p.CompletedTopics)
}

func TestCorruptFileReadsAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	store := NewFileStore(path)

	p := store.Load("course-1")
	assert.False(t, p.IsEnrolled)
	assert.Empty(t, p.CompletedTopics)

	// The next Save rewrites the file cleanly.
	require.NoError(t, store.Save("course-1", CourseProgress{IsEnrolled: true}))
	assert.True(t, store.Load("course-1").IsEnrolled)
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "progress.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save("course-1", CourseProgress{IsEnrolled: true}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestAddTopicKeepsSetUnique(t *testing.T) {
	p := Default()
	p.AddTopic("1-0")
	p.AddTopic("1-0")
	p.AddTopic("1-1")

	assert.Equal(t, []string{"1-0", "1-1"}, p.CompletedTopics)
	assert.True(t, p.HasTopic("1-0"))
	assert.False(t, p.HasTopic("2-0"))
}

func TestMergeUnionsTopicsAndKeepsEnrollmentSticky(t *testing.T) {
	local := CourseProgress{
		CompletedTopics: []string{"1-0", "1-1"},
	}
	remote := CourseProgress{
		IsEnrolled:      true,
		CompletedTopics: []string{"1-1", "2-0"},
	}

	merged := Merge(local, remote)

	assert.True(t, merged.IsEnrolled)
	assert.ElementsMatch(t, []string{"1-0", "1-1", "2-0"}, merged.CompletedTopics)
}

func TestMergeLocalLastVisitedWins(t *testing.T) {
	localLast := "3-0"
	remoteLast := "1-0"

	merged := Merge(
		CourseProgress{LastVisited: &localLast},
		CourseProgress{LastVisited: &remoteLast},
	)
	require.NotNil(t, merged.LastVisited)
	assert.Equal(t, "3-0", *merged.LastVisited)

	// Remote fills in when local never visited anything.
	merged = Merge(CourseProgress{}, CourseProgress{LastVisited: &remoteLast})
	require.NotNil(t, merged.LastVisited)
	assert.Equal(t, "1-0", *merged.LastVisited)
}
