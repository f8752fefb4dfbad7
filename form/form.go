// Package form implements the draft-editing state machine that feeds an
// entity repository: open for create or edit, change fields, submit.
package form

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"

	"resto/entity"
	"resto/model"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotOpen          = errors.New("form is not open")
)

// ValidationError lists the required fields left empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "please fill in all required fields: " + strings.Join(e.Missing, ", ")
}

// Draft holds the values bound to the form inputs, keyed by JSON field name.
type Draft map[string]any

func (d Draft) clone() Draft {
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Sink receives submitted records. entity.Repository satisfies it.
type Sink[T any] interface {
	Add(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id int64, patch entity.Patch) (T, error)
	Remove(ctx context.Context, id int64) error
}

// Spec configures the form of one entity.
type Spec[T any] struct {
	Entity string
	// Fields are the form inputs. Editing copies only these from the record.
	Fields   []string
	Required []string
	Floats   []string
	Integers []string
	// Dates are shown as YYYY-MM-DD in the draft.
	Dates    []string
	Defaults func() Draft
	ID       func(T) int64
	// Permissions needed to add, edit and delete. Empty means none.
	CreatePerm string
	EditPerm   string
	DeletePerm string
}

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Controller is the form of one entity for one operator.
type Controller[T any] struct {
	spec    Spec[T]
	caps    Capabilities
	sink    Sink[T]
	state   State
	draft   Draft
	editing int64
}

func NewController[T any](spec Spec[T], caps Capabilities, sink Sink[T]) *Controller[T] {
	if caps == nil {
		caps = Capabilities{}
	}
	return &Controller[T]{spec: spec, caps: caps, sink: sink}
}

func (c *Controller[T]) State() State {
	return c.state
}

// Editing returns the id of the record being edited.
func (c *Controller[T]) Editing() (int64, bool) {
	return c.editing, c.state == Open && c.editing != 0
}

// Draft returns a copy of the current draft.
func (c *Controller[T]) Draft() Draft {
	return c.draft.clone()
}

func (c *Controller[T]) OpenForCreate() {
	c.reset()
	c.state = Open
}

func (c *Controller[T]) OpenForEdit(rec T) error {
	draft, err := c.toDraft(rec)
	if err != nil {
		return err
	}
	c.draft = draft
	c.editing = c.spec.ID(rec)
	c.state = Open
	return nil
}

func (c *Controller[T]) Cancel() {
	c.reset()
	c.state = Closed
}

// HasField reports whether name is one of the form inputs.
func (c *Controller[T]) HasField(name string) bool {
	return slices.Contains(c.spec.Fields, name)
}

// OnFieldChange stores value under name, coercing numeric fields. An empty
// string is kept as is so the required check can flag it. Names outside the
// form inputs are rejected.
func (c *Controller[T]) OnFieldChange(name string, value any) error {
	if c.state != Open {
		return ErrNotOpen
	}
	if !c.HasField(name) {
		return fmt.Errorf("%s.%s: %w", c.spec.Entity, name, entity.ErrUnknownField)
	}
	if s, ok := value.(string); ok && s == "" {
		c.draft[name] = ""
		return nil
	}
	switch {
	case slices.Contains(c.spec.Floats, name):
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", name, err)
		}
		c.draft[name] = f
	case slices.Contains(c.spec.Integers, name):
		n, err := cast.ToIntE(value)
		if err != nil {
			return fmt.Errorf("%s must be a whole number: %w", name, err)
		}
		c.draft[name] = n
	default:
		c.draft[name] = value
	}
	return nil
}

// SetFields applies OnFieldChange for every entry of values.
func (c *Controller[T]) SetFields(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := c.OnFieldChange(k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

// Submit validates the draft and adds or updates the record. On any error
// the form stays open with the draft intact.
func (c *Controller[T]) Submit(ctx context.Context) (T, error) {
	var zero T
	if c.state != Open {
		return zero, ErrNotOpen
	}
	id, editing := c.Editing()
	perm := c.spec.CreatePerm
	if editing {
		perm = c.spec.EditPerm
	}
	if !c.caps.Has(perm) {
		return zero, fmt.Errorf("%s %s: %w", c.action(editing), c.spec.Entity, ErrPermissionDenied)
	}
	if missing := c.missing(); len(missing) > 0 {
		return zero, &ValidationError{Missing: missing}
	}

	var (
		rec T
		err error
	)
	if editing {
		rec, err = c.sink.Update(ctx, id, entity.Patch(c.draft.clone()))
	} else {
		rec, err = c.decode()
		if err == nil {
			rec, err = c.sink.Add(ctx, rec)
		}
	}
	if err != nil {
		return zero, err
	}
	c.Cancel()
	return rec, nil
}

// Delete removes id once confirm agrees. A declined or missing confirmation
// is a no-op.
func (c *Controller[T]) Delete(ctx context.Context, id int64, confirm func() bool) (bool, error) {
	if !c.caps.Has(c.spec.DeletePerm) {
		return false, fmt.Errorf("delete %s: %w", c.spec.Entity, ErrPermissionDenied)
	}
	if confirm == nil || !confirm() {
		return false, nil
	}
	if err := c.sink.Remove(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Controller[T]) action(editing bool) string {
	if editing {
		return "edit"
	}
	return "add"
}

func (c *Controller[T]) reset() {
	c.editing = 0
	if c.spec.Defaults != nil {
		c.draft = c.spec.Defaults()
	} else {
		c.draft = Draft{}
	}
}

func (c *Controller[T]) missing() []string {
	var out []string
	for _, f := range c.spec.Required {
		v, ok := c.draft[f]
		if !ok || v == nil {
			out = append(out, f)
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			out = append(out, f)
		}
	}
	return out
}

func (c *Controller[T]) decode() (T, error) {
	var rec T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       model.DecodeHook(),
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           &rec,
	})
	if err != nil {
		return rec, err
	}
	if err := dec.Decode(map[string]any(c.draft)); err != nil {
		return rec, fmt.Errorf("%w: decode %s form: %w", entity.ErrInvalid, c.spec.Entity, err)
	}
	return rec, nil
}

// toDraft copies the form fields out of rec, rendering dates for input.
func (c *Controller[T]) toDraft(rec T) (Draft, error) {
	raw, err := jsoniter.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var all map[string]any
	if err := jsoniter.Unmarshal(raw, &all); err != nil {
		return nil, err
	}
	draft := Draft{}
	for _, f := range c.spec.Fields {
		v, ok := all[f]
		if !ok || v == nil {
			draft[f] = ""
			continue
		}
		if slices.Contains(c.spec.Dates, f) {
			d, err := model.ParseDate(cast.ToString(v))
			if err != nil {
				return nil, err
			}
			v = d.Input()
		}
		draft[f] = v
	}
	return draft, nil
}
