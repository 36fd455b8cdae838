package storage

import (
	"errors"
	"fmt"
	"io"

	"note-cache/models"

	"gopkg.in/yaml.v3"
)

// Event operations recorded in a sync event log
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpRemove = "remove"
)

// ErrInvalidEvent is returned for events that cannot be applied
var ErrInvalidEvent = errors.New("invalid event")

// Event is one storage call made by the sync engine. Add and update events
// carry exactly one of Note or Tag; remove events carry neither.
type Event struct {
	Op     string       `yaml:"op"`
	Bucket string       `yaml:"bucket"`
	Key    string       `yaml:"key"`
	Note   *models.Note `yaml:"note,omitempty"`
	Tag    *models.Tag  `yaml:"tag,omitempty"`
}

// EventLog is the on-disk form of a recorded event sequence
type EventLog struct {
	Events []Event `yaml:"events"`
}

// ReadEventLog decodes a YAML event log
func ReadEventLog(r io.Reader) (*EventLog, error) {
	var log EventLog
	if err := yaml.NewDecoder(r).Decode(&log); err != nil {
		if errors.Is(err, io.EOF) {
			return &log, nil
		}
		return nil, fmt.Errorf("decode event log: %w", err)
	}
	return &log, nil
}

func (e Event) object() (Syncable, error) {
	switch {
	case e.Note != nil && e.Tag != nil:
		return nil, fmt.Errorf("%w: %s %s/%s carries both a note and a tag", ErrInvalidEvent, e.Op, e.Bucket, e.Key)
	case e.Note != nil:
		if e.Note.Title == "" {
			e.Note.UpdateTitleAndPreview()
		}
		return e.Note, nil
	case e.Tag != nil:
		return e.Tag, nil
	}
	return nil, fmt.Errorf("%w: %s %s/%s has no object", ErrInvalidEvent, e.Op, e.Bucket, e.Key)
}

// Replay applies events to p in order and returns how many were applied.
// It stops at the first event that fails.
func Replay(p Provider, events []Event) (int, error) {
	for i, e := range events {
		if err := apply(p, e); err != nil {
			return i, fmt.Errorf("event %d: %w", i, err)
		}
	}
	return len(events), nil
}

func apply(p Provider, e Event) error {
	if e.Key == "" {
		return fmt.Errorf("%w: %s %s without key", ErrInvalidEvent, e.Op, e.Bucket)
	}

	switch e.Op {
	case OpAdd, OpUpdate:
		object, err := e.object()
		if err != nil {
			return err
		}
		if e.Op == OpAdd {
			return p.AddObject(e.Bucket, e.Key, object)
		}
		return p.UpdateObject(e.Bucket, e.Key, object)
	case OpRemove:
		return p.RemoveObject(e.Bucket, e.Key)
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidEvent, e.Op)
	}
}
