package models

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// Bucket names used by the sync engine
const (
	NoteBucket = "note"
	TagBucket  = "tag"
)

// PinnedSystemTag is the system tag that mirrors Note.Pinned in sync payloads
const PinnedSystemTag = "pinned"

// MaxPreviewLength is the rune limit for Note.ContentPreview
const MaxPreviewLength = 300

type Note struct {
	ID               int64     `json:"-" yaml:"-"`
	Key              string    `json:"simperiumKey" yaml:"simperiumKey" validate:"required,synckey"`
	Title            string    `json:"title" yaml:"title"`
	Content          string    `json:"content" yaml:"content"`
	ContentPreview   string    `json:"contentPreview" yaml:"contentPreview"`
	CreationDate     time.Time `json:"creationDate" yaml:"creationDate"`
	ModificationDate time.Time `json:"modificationDate" yaml:"modificationDate"`
	Deleted          bool      `json:"deleted" yaml:"deleted"`
	LastPosition     int       `json:"lastPosition" yaml:"lastPosition" validate:"gte=0"`
	Pinned           bool      `json:"pinned" yaml:"pinned"`
	ShareURL         string    `json:"shareURL,omitempty" yaml:"shareURL,omitempty" validate:"omitempty,url"`
	SystemTags       []string  `json:"systemTags" yaml:"systemTags"`
	Tags             []string  `json:"tags" yaml:"tags" validate:"dive,tagname"`
}

// SyncKey returns the external identity of the note
func (n *Note) SyncKey() string { return n.Key }

// BucketName returns the sync bucket notes belong to
func (n *Note) BucketName() string { return NoteBucket }

// UpdateTitleAndPreview derives Title and ContentPreview from Content.
// The title is the first non-blank line; the preview is what follows it
// with runs of whitespace collapsed to a single space.
func (n *Note) UpdateTitleAndPreview() {
	content := strings.TrimSpace(n.Content)
	if content == "" {
		n.Title = ""
		n.ContentPreview = ""
		return
	}

	title, rest, _ := strings.Cut(content, "\n")
	n.Title = strings.TrimSpace(title)
	n.ContentPreview = truncateRunes(strings.Join(strings.Fields(rest), " "), MaxPreviewLength)
}

// SetPinned updates the pinned flag and keeps the pinned system tag in step
func (n *Note) SetPinned(pinned bool) {
	n.Pinned = pinned
	has := slices.Contains(n.SystemTags, PinnedSystemTag)
	switch {
	case pinned && !has:
		n.SystemTags = append(n.SystemTags, PinnedSystemTag)
	case !pinned && has:
		n.SystemTags = slices.DeleteFunc(slices.Clone(n.SystemTags), func(t string) bool {
			return t == PinnedSystemTag
		})
	}
}

// HasTag reports whether the note carries the given user tag (case-insensitive)
func (n *Note) HasTag(name string) bool {
	return slices.ContainsFunc(n.Tags, func(t string) bool {
		return strings.EqualFold(t, name)
	})
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

type Tag struct {
	ID    int64  `json:"-" yaml:"-"`
	Key   string `json:"simperiumKey" yaml:"simperiumKey" validate:"required,synckey"`
	Name  string `json:"name" yaml:"name" validate:"required,tagname"`
	Index int    `json:"tagIndex" yaml:"tagIndex" validate:"gte=0"`
}

// SyncKey returns the external identity of the tag
func (t *Tag) SyncKey() string { return t.Key }

// BucketName returns the sync bucket tags belong to
func (t *Tag) BucketName() string { return TagBucket }

// TagKey derives the sync key for a tag name
func TagKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
