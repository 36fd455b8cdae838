package services

import (
	"errors"
	"iter"
	"testing"
	"time"

	"note-cache/models"
	"note-cache/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==================== MOCKS ====================

// MockNoteRepository is a mock implementation of NoteRepository interface
type MockNoteRepository struct {
	mock.Mock
}

// Ensure MockNoteRepository implements NoteRepository interface
var _ NoteRepository = (*MockNoteRepository)(nil)

func (m *MockNoteRepository) GetNote(key string) (*models.Note, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteRepository) CreateNote(note *models.Note) (bool, error) {
	args := m.Called(note)
	return args.Bool(0), args.Error(1)
}

func (m *MockNoteRepository) UpdateNote(note *models.Note) (bool, error) {
	args := m.Called(note)
	return args.Bool(0), args.Error(1)
}

func (m *MockNoteRepository) DeleteNote(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func (m *MockNoteRepository) ListNotes(opts models.ListOptions) iter.Seq2[models.Note, error] {
	args := m.Called(opts)
	return args.Get(0).(iter.Seq2[models.Note, error])
}

func (m *MockNoteRepository) SearchNotes(query string, opts models.ListOptions) iter.Seq2[models.Note, error] {
	args := m.Called(query, opts)
	return args.Get(0).(iter.Seq2[models.Note, error])
}

func seqOf(notes ...models.Note) iter.Seq2[models.Note, error] {
	return func(yield func(models.Note, error) bool) {
		for _, n := range notes {
			if !yield(n, nil) {
				return
			}
		}
	}
}

func failingSeq(err error, before ...models.Note) iter.Seq2[models.Note, error] {
	return func(yield func(models.Note, error) bool) {
		for _, n := range before {
			if !yield(n, nil) {
				return
			}
		}
		yield(models.Note{}, err)
	}
}

var fixedNow = time.Date(2025, 10, 18, 9, 30, 0, 0, time.UTC)

func newTestNoteService(repo *MockNoteRepository) *NoteService {
	ns := NewNoteService(repo, validator.New())
	ns.now = func() time.Time { return fixedNow }
	return ns
}

// ==================== TESTS ====================

func TestNoteService_Create(t *testing.T) {
	t.Run("Success - key, title and preview derived", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("CreateNote", mock.AnythingOfType("*models.Note")).Return(true, nil)

		tags := []string{"work"}
		note, err := newTestNoteService(repo).Create("Groceries\nmilk\n  eggs", tags)
		require.NoError(t, err)

		assert.Len(t, note.Key, 32)
		assert.NotContains(t, note.Key, "-")
		assert.Equal(t, "Groceries", note.Title)
		assert.Equal(t, "milk eggs", note.ContentPreview)
		assert.Equal(t, fixedNow, note.CreationDate)
		assert.Equal(t, fixedNow, note.ModificationDate)
		assert.Equal(t, []string{"work"}, note.Tags)
		assert.Equal(t, []string{}, note.SystemTags)

		tags[0] = "mutated"
		assert.Equal(t, "work", note.Tags[0], "tags must be copied")
		repo.AssertExpectations(t)
	})

	t.Run("Generated keys are unique", func(t *testing.T) {
		assert.NotEqual(t, NewNoteKey(), NewNoteKey())
	})

	t.Run("Invalid tag is rejected before writing", func(t *testing.T) {
		repo := new(MockNoteRepository)

		_, err := newTestNoteService(repo).Create("text", []string{"two words"})
		var validationErrs validator.ValidationErrors
		assert.ErrorAs(t, err, &validationErrs)
		repo.AssertNotCalled(t, "CreateNote", mock.Anything)
	})

	t.Run("Key collision", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("CreateNote", mock.Anything).Return(false, nil)

		_, err := newTestNoteService(repo).Create("text", nil)
		assert.ErrorIs(t, err, ErrNoteAlreadyExists)
	})

	t.Run("Storage error", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("CreateNote", mock.Anything).Return(false, errors.New("disk full"))

		_, err := newTestNoteService(repo).Create("text", nil)
		assert.EqualError(t, err, "disk full")
	})
}

func TestNoteService_Get(t *testing.T) {
	tests := []struct {
		name          string
		mockSetup     func(*MockNoteRepository)
		expectedKey   string
		expectedError error
	}{
		{
			name: "Success - Note exists",
			mockSetup: func(repo *MockNoteRepository) {
				repo.On("GetNote", "k1").Return(&models.Note{Key: "k1"}, nil)
			},
			expectedKey: "k1",
		},
		{
			name: "Note not found",
			mockSetup: func(repo *MockNoteRepository) {
				repo.On("GetNote", "k1").Return(nil, nil)
			},
			expectedError: ErrNoteNotFound,
		},
		{
			name: "Database error",
			mockSetup: func(repo *MockNoteRepository) {
				repo.On("GetNote", "k1").Return(nil, assert.AnError)
			},
			expectedError: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockNoteRepository)
			tt.mockSetup(repo)

			note, err := newTestNoteService(repo).Get("k1")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, note)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedKey, note.Key)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestNoteService_Save(t *testing.T) {
	t.Run("Refreshes derived fields", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("UpdateNote", mock.MatchedBy(func(n *models.Note) bool {
			return n.Title == "New title" && n.ModificationDate.Equal(fixedNow)
		})).Return(true, nil)

		note := &models.Note{Key: "k1", Title: "Old", Content: "New title\nbody"}
		require.NoError(t, newTestNoteService(repo).Save(note))
		assert.Equal(t, "body", note.ContentPreview)
		repo.AssertExpectations(t)
	})

	t.Run("Missing note", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("UpdateNote", mock.Anything).Return(false, nil)

		err := newTestNoteService(repo).Save(&models.Note{Key: "gone"})
		assert.ErrorIs(t, err, ErrNoteNotFound)
	})
}

func TestNoteService_Modify(t *testing.T) {
	stored := func() *models.Note {
		return &models.Note{Key: "k1", Content: "text", SystemTags: []string{"markdown"}}
	}

	t.Run("Pin adds system tag", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("GetNote", "k1").Return(stored(), nil)
		repo.On("UpdateNote", mock.Anything).Return(true, nil)

		note, err := newTestNoteService(repo).SetPinned("k1", true)
		require.NoError(t, err)
		assert.True(t, note.Pinned)
		assert.Equal(t, []string{"markdown", models.PinnedSystemTag}, note.SystemTags)
	})

	t.Run("Unpin removes system tag", func(t *testing.T) {
		pinned := stored()
		pinned.SetPinned(true)

		repo := new(MockNoteRepository)
		repo.On("GetNote", "k1").Return(pinned, nil)
		repo.On("UpdateNote", mock.Anything).Return(true, nil)

		note, err := newTestNoteService(repo).SetPinned("k1", false)
		require.NoError(t, err)
		assert.False(t, note.Pinned)
		assert.Equal(t, []string{"markdown"}, note.SystemTags)
	})

	t.Run("Trash and restore toggle the soft delete flag", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("GetNote", "k1").Return(stored(), nil).Once()
		repo.On("UpdateNote", mock.MatchedBy(func(n *models.Note) bool { return n.Deleted })).Return(true, nil).Once()

		note, err := newTestNoteService(repo).Trash("k1")
		require.NoError(t, err)
		assert.True(t, note.Deleted)

		repo.On("GetNote", "k1").Return(note, nil).Once()
		repo.On("UpdateNote", mock.MatchedBy(func(n *models.Note) bool { return !n.Deleted })).Return(true, nil).Once()

		note, err = newTestNoteService(repo).Restore("k1")
		require.NoError(t, err)
		assert.False(t, note.Deleted)
		repo.AssertExpectations(t)
	})

	t.Run("Set tags", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("GetNote", "k1").Return(stored(), nil)
		repo.On("UpdateNote", mock.Anything).Return(true, nil)

		note, err := newTestNoteService(repo).SetTags("k1", []string{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, note.Tags)
	})

	t.Run("Missing note", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("GetNote", "k1").Return(nil, nil)

		_, err := newTestNoteService(repo).Trash("k1")
		assert.ErrorIs(t, err, ErrNoteNotFound)
		repo.AssertNotCalled(t, "UpdateNote", mock.Anything)
	})
}

func TestNoteService_Purge(t *testing.T) {
	repo := new(MockNoteRepository)
	repo.On("DeleteNote", "k1").Return(true, nil)
	repo.On("DeleteNote", "k2").Return(false, nil)

	ns := newTestNoteService(repo)
	assert.NoError(t, ns.Purge("k1"))
	assert.ErrorIs(t, ns.Purge("k2"), ErrNoteNotFound)
}

func TestNoteService_EmptyTrash(t *testing.T) {
	t.Run("Removes only trashed notes", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("ListNotes", models.ListOptions{IncludeDeleted: true}).Return(seqOf(
			models.Note{Key: "live"},
			models.Note{Key: "t1", Deleted: true},
			models.Note{Key: "t2", Deleted: true},
		))
		repo.On("DeleteNote", "t1").Return(true, nil)
		repo.On("DeleteNote", "t2").Return(true, nil)

		removed, err := newTestNoteService(repo).EmptyTrash()
		require.NoError(t, err)
		assert.Equal(t, 2, removed)
		repo.AssertNotCalled(t, "DeleteNote", "live")
	})

	t.Run("Listing error", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("ListNotes", mock.Anything).Return(failingSeq(assert.AnError))

		_, err := newTestNoteService(repo).EmptyTrash()
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestNoteService_ListAndSearch(t *testing.T) {
	opts := models.ListOptions{Sort: models.SortContentAsc}

	t.Run("List collects in order", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("ListNotes", opts).Return(seqOf(models.Note{Key: "a"}, models.Note{Key: "b"}))

		notes, err := newTestNoteService(repo).List(opts)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, "a", notes[0].Key)
	})

	t.Run("Empty list is not nil", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("ListNotes", opts).Return(seqOf())

		notes, err := newTestNoteService(repo).List(opts)
		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})

	t.Run("Search passes query through", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("SearchNotes", "hello", opts).Return(seqOf(models.Note{Key: "h"}))

		notes, err := newTestNoteService(repo).Search("hello", opts)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, "h", notes[0].Key)
	})

	t.Run("Error mid-sequence", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("SearchNotes", "x", opts).Return(failingSeq(assert.AnError, models.Note{Key: "partial"}))

		notes, err := newTestNoteService(repo).Search("x", opts)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, notes)
	})

	t.Run("Filter by tag", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("ListNotes", opts).Return(seqOf(
			models.Note{Key: "a", Tags: []string{"Work"}},
			models.Note{Key: "b", Tags: []string{"home"}},
			models.Note{Key: "c", Tags: []string{"home", "work"}},
		))

		notes, err := newTestNoteService(repo).WithTag("work", opts)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, "a", notes[0].Key)
		assert.Equal(t, "c", notes[1].Key)
	})
}

func TestPinnedFirst(t *testing.T) {
	notes := []models.Note{
		{Key: "a"},
		{Key: "b", Pinned: true},
		{Key: "c"},
		{Key: "d", Pinned: true},
	}

	sorted := PinnedFirst(notes)

	keys := make([]string, 0, len(sorted))
	for _, n := range sorted {
		keys = append(keys, n.Key)
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, keys)
	assert.Equal(t, "a", notes[0].Key, "input must not be reordered")
}
