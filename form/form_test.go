package form

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto/entity"
	"resto/model"
)

type fakeSink struct {
	added   []model.MenuItem
	patches map[int64]entity.Patch
	removed []int64
	err     error
}

func (s *fakeSink) Add(_ context.Context, rec model.MenuItem) (model.MenuItem, error) {
	if s.err != nil {
		return rec, s.err
	}
	rec.ID = int64(len(s.added) + 1)
	s.added = append(s.added, rec)
	return rec, nil
}

func (s *fakeSink) Update(_ context.Context, id int64, patch entity.Patch) (model.MenuItem, error) {
	if s.err != nil {
		return model.MenuItem{}, s.err
	}
	if s.patches == nil {
		s.patches = map[int64]entity.Patch{}
	}
	s.patches[id] = patch
	return model.MenuItem{ID: id}, nil
}

func (s *fakeSink) Remove(_ context.Context, id int64) error {
	s.removed = append(s.removed, id)
	return nil
}

func menuSpec() Spec[model.MenuItem] {
	return Spec[model.MenuItem]{
		Entity:   "menu",
		Fields:   []string{"name", "quantity", "price", "category"},
		Required: []string{"name", "quantity", "price", "category"},
		Integers: []string{"quantity"},
		Floats:   []string{"price"},
		Defaults: func() Draft {
			return Draft{"name": "", "quantity": "", "price": "", "category": ""}
		},
		ID:         func(m model.MenuItem) int64 { return m.ID },
		EditPerm:   "edit_menu",
		DeletePerm: "delete_menu",
	}
}

func TestCreateFlow(t *testing.T) {
	sink := &fakeSink{}
	c := NewController(menuSpec(), nil, sink)
	assert.Equal(t, Closed, c.State())

	c.OpenForCreate()
	assert.Equal(t, Open, c.State())
	_, editing := c.Editing()
	assert.False(t, editing)

	require.NoError(t, c.SetFields(map[string]any{
		"name":     "Dosa",
		"quantity": "4",
		"price":    "7.5",
		"category": "Indian",
	}))
	assert.Equal(t, 4, c.Draft()["quantity"])
	assert.Equal(t, 7.5, c.Draft()["price"])

	rec, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.MenuItem{ID: 1, Name: "Dosa", Quantity: 4, Price: 7.5, Category: "Indian"}, rec)
	assert.Equal(t, Closed, c.State())
}

func TestMissingFieldsKeepDraft(t *testing.T) {
	c := NewController(menuSpec(), nil, &fakeSink{})
	c.OpenForCreate()
	require.NoError(t, c.OnFieldChange("name", "Dosa"))
	require.NoError(t, c.OnFieldChange("quantity", 0))

	_, err := c.Submit(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"price", "category"}, verr.Missing)
	assert.Equal(t, Open, c.State())
	assert.Equal(t, "Dosa", c.Draft()["name"])
}

func TestBadNumber(t *testing.T) {
	c := NewController(menuSpec(), nil, &fakeSink{})
	c.OpenForCreate()
	assert.Error(t, c.OnFieldChange("price", "cheap"))
}

func TestEditNeedsPermission(t *testing.T) {
	sink := &fakeSink{}
	item := model.MenuItem{ID: 3, Name: "Sushi", Quantity: 5, Price: 22.99, Category: "Japanese"}

	denied := NewController(menuSpec(), NewCapabilities(), sink)
	require.NoError(t, denied.OpenForEdit(item))
	_, err := denied.Submit(context.Background())
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, Open, denied.State())

	allowed := NewController(menuSpec(), NewCapabilities("edit_menu"), sink)
	require.NoError(t, allowed.OpenForEdit(item))
	id, editing := allowed.Editing()
	require.True(t, editing)
	assert.Equal(t, int64(3), id)
	assert.Equal(t, "Sushi", allowed.Draft()["name"])

	require.NoError(t, allowed.OnFieldChange("price", 19.99))
	_, err = allowed.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 19.99, sink.patches[3]["price"])
}

func TestSinkErrorKeepsFormOpen(t *testing.T) {
	c := NewController(menuSpec(), nil, &fakeSink{err: errors.New("save failed")})
	c.OpenForCreate()
	require.NoError(t, c.SetFields(map[string]any{"name": "Dosa", "quantity": 1, "price": 2, "category": "Indian"}))

	_, err := c.Submit(context.Background())
	assert.Error(t, err)
	assert.Equal(t, Open, c.State())
}

func TestDeleteConfirmation(t *testing.T) {
	sink := &fakeSink{}
	c := NewController(menuSpec(), NewCapabilities("delete_menu"), sink)

	deleted, err := c.Delete(context.Background(), 2, func() bool { return false })
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Empty(t, sink.removed)

	deleted, err = c.Delete(context.Background(), 2, func() bool { return true })
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []int64{2}, sink.removed)
}

func TestDeleteWithoutConfirmIsDeclined(t *testing.T) {
	sink := &fakeSink{}
	c := NewController(menuSpec(), NewCapabilities("delete_menu"), sink)

	deleted, err := c.Delete(context.Background(), 2, nil)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Empty(t, sink.removed)
}

func TestUnknownFieldRejected(t *testing.T) {
	sink := &fakeSink{}
	c := NewController(menuSpec(), NewCapabilities("edit_menu"), sink)
	require.NoError(t, c.OpenForEdit(model.MenuItem{ID: 3, Name: "Sushi", Quantity: 5, Price: 22.99, Category: "Japanese"}))

	err := c.SetFields(map[string]any{"price": 20, "id": 99})
	assert.ErrorIs(t, err, entity.ErrUnknownField)
	assert.NotContains(t, c.Draft(), "id")
	assert.False(t, c.HasField("image"))
	assert.True(t, c.HasField("price"))
}

func TestSubmitClosedForm(t *testing.T) {
	c := NewController(menuSpec(), nil, &fakeSink{})
	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, c.OnFieldChange("name", "x"), ErrNotOpen)
}

func TestDateFieldsRenderForInput(t *testing.T) {
	spec := Spec[model.Employee]{
		Entity: "employees",
		Fields: []string{"name", "joinDate"},
		Dates:  []string{"joinDate"},
		ID:     func(e model.Employee) int64 { return e.ID },
	}
	c := NewController(spec, nil, nil)
	require.NoError(t, c.OpenForEdit(model.SeedEmployees()[0]))
	assert.Equal(t, "2023-01-15", c.Draft()["joinDate"])
}

func TestCapabilities(t *testing.T) {
	caps := NewCapabilities("b", "a", "")
	assert.True(t, caps.Has(""))
	assert.True(t, caps.Has("a"))
	assert.False(t, caps.Has("c"))
	assert.Equal(t, []string{"a", "b"}, caps.List())
}
