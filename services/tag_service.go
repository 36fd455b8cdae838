package services

import (
	"note-cache/models"
)

// TagService handles local tag management
type TagService struct {
	repo     TagRepository
	validate Validator
}

// NewTagService creates a new tag service
func NewTagService(repo TagRepository, validate Validator) *TagService {
	return &TagService{
		repo:     repo,
		validate: validate,
	}
}

// Create adds a tag at the end of the tag order. The key is the lower-cased
// name, so names differing only in case collide.
func (ts *TagService) Create(name string) (*models.Tag, error) {
	tag := &models.Tag{Key: models.TagKey(name), Name: name}
	if err := ts.validate.Validate(tag); err != nil {
		return nil, err
	}

	existing, err := ts.repo.GetTag(tag.Key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrTagAlreadyExists
	}

	if tag.Index, err = ts.repo.NextTagIndex(); err != nil {
		return nil, err
	}

	created, err := ts.repo.CreateTag(tag)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, ErrTagAlreadyExists
	}
	return tag, nil
}

// Rename changes a tag's display name. The key stays the same; notes keep
// whatever names they already list.
func (ts *TagService) Rename(key, name string) (*models.Tag, error) {
	tag, err := ts.repo.GetTag(key)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}

	tag.Name = name
	if err := ts.validate.Validate(tag); err != nil {
		return nil, err
	}

	updated, err := ts.repo.UpdateTag(tag)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrTagNotFound
	}
	return tag, nil
}

// Delete removes a tag
func (ts *TagService) Delete(key string) error {
	deleted, err := ts.repo.DeleteTag(key)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTagNotFound
	}
	return nil
}

// Reorder sets the display order to the given key sequence
func (ts *TagService) Reorder(keys []string) error {
	ok, err := ts.repo.ReorderTags(keys)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTagNotFound
	}
	return nil
}

// List returns all tags in display order
func (ts *TagService) List() ([]models.Tag, error) {
	return ts.repo.ListTags()
}

// Keys returns all tag keys in display order
func (ts *TagService) Keys() ([]string, error) {
	return ts.repo.ListTagKeys()
}
