package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heinz1110/photocat/internal/domain"
	"github.com/heinz1110/photocat/internal/ports"
	"github.com/heinz1110/photocat/pkg/log"
)

// memCatalogRepo is an in-memory ports.CatalogRepository.
type memCatalogRepo struct {
	entries []domain.Entry
	saves   int
}

func (m *memCatalogRepo) Load(ctx context.Context) ([]domain.Entry, error) {
	return append([]domain.Entry(nil), m.entries...), nil
}

func (m *memCatalogRepo) Save(ctx context.Context, entries []domain.Entry) error {
	m.entries = append([]domain.Entry(nil), entries...)
	m.saves++
	return nil
}

// memSchemaRepo is an in-memory ports.CategoryRepository.
type memSchemaRepo struct {
	schema map[string][]string
}

func (m *memSchemaRepo) Load(ctx context.Context) (map[string][]string, error) {
	out := make(map[string][]string, len(m.schema))
	for k, v := range m.schema {
		out[k] = append([]string(nil), v...)
	}
	return out, nil
}

func (m *memSchemaRepo) Save(ctx context.Context, schema map[string][]string) error {
	m.schema = schema
	return nil
}

// fakeProber returns fixed dimensions for every file.
type fakeProber struct {
	info ports.ImageInfo
	err  error
}

func (f fakeProber) Probe(path string) (ports.ImageInfo, error) {
	return f.info, f.err
}

func newTestCatalog(t *testing.T, repo *memCatalogRepo, prober ports.ImageProber) *Catalog {
	t.Helper()

	schema := &memSchemaRepo{schema: map[string][]string{
		"Type":      {"Postcard", "CDV"},
		"Condition": {"Good", "Fair"},
	}}
	c, err := NewCatalog(context.Background(), repo, schema, prober, log.NewNoopLogger())
	require.NoError(t, err)
	return c
}

func filenames(entries []domain.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Filename
	}
	return out
}

func TestCatalog_Add(t *testing.T) {
	t.Run("imports files with probed physical size", func(t *testing.T) {
		repo := &memCatalogRepo{}
		c := newTestCatalog(t, repo, fakeProber{info: ports.ImageInfo{Width: 1063, Height: 1654, DPI: 300}})

		added, err := c.Add(context.Background(), []string{"/lib/scan-001.jpg", "/lib/scan-002.jpg"})

		require.NoError(t, err)
		assert.Equal(t, 2, added)

		entries := c.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "scan-001.jpg", entries[0].Filename)
		assert.Equal(t, "9.0cm x 14.0cm", entries[0].PhysicalSize)
		assert.Equal(t, 1, repo.saves)
	})

	t.Run("skips already cataloged paths", func(t *testing.T) {
		c := newTestCatalog(t, &memCatalogRepo{}, fakeProber{})

		_, err := c.Add(context.Background(), []string{"/lib/a.jpg"})
		require.NoError(t, err)

		added, err := c.Add(context.Background(), []string{"/lib/a.jpg", "/lib/b.jpg"})
		require.NoError(t, err)
		assert.Equal(t, 1, added)
		assert.Len(t, c.Entries(), 2)
	})

	t.Run("defaults dpi when probe finds none", func(t *testing.T) {
		c := newTestCatalog(t, &memCatalogRepo{}, fakeProber{info: ports.ImageInfo{Width: 600, Height: 600}})

		_, err := c.Add(context.Background(), []string{"/lib/a.jpg"})
		require.NoError(t, err)

		e := c.Entries()[0]
		assert.Equal(t, domain.DefaultDPI, e.DPI)
		assert.Equal(t, "5.1cm x 5.1cm", e.PhysicalSize)
	})

	t.Run("imports despite probe failure", func(t *testing.T) {
		c := newTestCatalog(t, &memCatalogRepo{}, fakeProber{err: errors.New("no such file")})

		added, err := c.Add(context.Background(), []string{"/lib/broken.jpg"})
		require.NoError(t, err)
		assert.Equal(t, 1, added)
		assert.Empty(t, c.Entries()[0].PhysicalSize)
	})
}

func TestCatalog_RemoveAndReorder(t *testing.T) {
	seed := func(t *testing.T) *Catalog {
		c := newTestCatalog(t, &memCatalogRepo{}, fakeProber{})
		_, err := c.Add(context.Background(), []string{"/l/a.jpg", "/l/b.jpg", "/l/c.jpg", "/l/d.jpg"})
		require.NoError(t, err)
		return c
	}

	t.Run("remove drops named entries", func(t *testing.T) {
		c := seed(t)

		require.NoError(t, c.Remove(context.Background(), []string{"b.jpg", "d.jpg"}))
		assert.Equal(t, []string{"a.jpg", "c.jpg"}, filenames(c.Entries()))
	})

	t.Run("remove unknown entry fails", func(t *testing.T) {
		c := seed(t)

		err := c.Remove(context.Background(), []string{"nope.jpg"})
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	})

	t.Run("move up shifts block keeping order", func(t *testing.T) {
		c := seed(t)

		require.NoError(t, c.MoveUp(context.Background(), []string{"c.jpg", "d.jpg"}))
		assert.Equal(t, []string{"a.jpg", "c.jpg", "d.jpg", "b.jpg"}, filenames(c.Entries()))
	})

	t.Run("move up at front is a no-op", func(t *testing.T) {
		c := seed(t)

		require.NoError(t, c.MoveUp(context.Background(), []string{"a.jpg", "b.jpg"}))
		assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"}, filenames(c.Entries()))
	})

	t.Run("move down shifts block keeping order", func(t *testing.T) {
		c := seed(t)

		require.NoError(t, c.MoveDown(context.Background(), []string{"a.jpg", "b.jpg"}))
		assert.Equal(t, []string{"c.jpg", "a.jpg", "b.jpg", "d.jpg"}, filenames(c.Entries()))
	})

	t.Run("move down at back is a no-op", func(t *testing.T) {
		c := seed(t)

		require.NoError(t, c.MoveDown(context.Background(), []string{"d.jpg"}))
		assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"}, filenames(c.Entries()))
	})
}

func TestCatalog_Metadata(t *testing.T) {
	seed := func(t *testing.T) *Catalog {
		c := newTestCatalog(t, &memCatalogRepo{}, fakeProber{})
		_, err := c.Add(context.Background(), []string{"/l/a.jpg", "/l/b.jpg"})
		require.NoError(t, err)
		return c
	}

	t.Run("set text and comment apply to all named entries", func(t *testing.T) {
		c := seed(t)
		ctx := context.Background()

		require.NoError(t, c.SetText(ctx, []string{"a.jpg", "b.jpg"}, "Stereoview lot"))
		require.NoError(t, c.SetComment(ctx, []string{"a.jpg"}, "edge wear"))

		entries := c.Entries()
		assert.Equal(t, "Stereoview lot", entries[0].Text)
		assert.Equal(t, "Stereoview lot", entries[1].Text)
		assert.Equal(t, "edge wear", entries[0].Comment)
		assert.Empty(t, entries[1].Comment)
	})

	t.Run("condition must come from the schema", func(t *testing.T) {
		c := seed(t)
		ctx := context.Background()

		require.NoError(t, c.SetCondition(ctx, []string{"a.jpg"}, "Good"))
		assert.Equal(t, "Good", c.Entries()[0].Condition)

		err := c.SetCondition(ctx, []string{"a.jpg"}, "Pristine")
		assert.ErrorIs(t, err, domain.ErrUnknownValue)

		// Empty clears without validation.
		require.NoError(t, c.SetCondition(ctx, []string{"a.jpg"}, ""))
		assert.Empty(t, c.Entries()[0].Condition)
	})

	t.Run("assign category validates group and value", func(t *testing.T) {
		c := seed(t)
		ctx := context.Background()

		require.NoError(t, c.AssignCategory(ctx, []string{"a.jpg"}, "Type", "Postcard"))
		assert.Equal(t, []string{"Postcard"}, c.Entries()[0].Categories["Type"])

		err := c.AssignCategory(ctx, []string{"a.jpg"}, "Region", "Bavaria")
		assert.ErrorIs(t, err, domain.ErrGroupNotFound)

		err = c.AssignCategory(ctx, []string{"a.jpg"}, "Type", "Poster")
		assert.ErrorIs(t, err, domain.ErrUnknownValue)
	})

	t.Run("re-assigning an existing value is not an error", func(t *testing.T) {
		c := seed(t)
		ctx := context.Background()

		require.NoError(t, c.AssignCategory(ctx, []string{"a.jpg"}, "Type", "Postcard"))
		require.NoError(t, c.AssignCategory(ctx, []string{"a.jpg", "b.jpg"}, "Type", "Postcard"))

		assert.Equal(t, []string{"Postcard"}, c.Entries()[0].Categories["Type"])
		assert.Equal(t, []string{"Postcard"}, c.Entries()[1].Categories["Type"])
	})

	t.Run("unassign removes the value", func(t *testing.T) {
		c := seed(t)
		ctx := context.Background()

		require.NoError(t, c.AssignCategory(ctx, []string{"a.jpg"}, "Type", "Postcard"))
		require.NoError(t, c.UnassignCategory(ctx, []string{"a.jpg"}, "Type", "Postcard"))
		assert.Empty(t, c.Entries()[0].Categories)
	})
}

func TestCatalog_Export(t *testing.T) {
	seed := func(t *testing.T) (*Catalog, *memCatalogRepo) {
		repo := &memCatalogRepo{}
		c := newTestCatalog(t, repo, fakeProber{})
		_, err := c.Add(context.Background(), []string{"/l/a.jpg", "/l/b.jpg", "/l/c.jpg"})
		require.NoError(t, err)
		return c, repo
	}

	t.Run("explicit selection is exported in catalog order", func(t *testing.T) {
		c, _ := seed(t)
		var buf bytes.Buffer

		groups, err := c.Export(context.Background(), []string{"c.jpg", "a.jpg"}, domain.ScanPair, 0, &buf)

		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, "a.jpg, c.jpg", groups[0].Filenames())
		assert.Contains(t, buf.String(), "a.jpg, c.jpg")
	})

	t.Run("empty selection falls back to whole catalog for all mode only", func(t *testing.T) {
		c, _ := seed(t)
		var buf bytes.Buffer

		groups, err := c.Export(context.Background(), nil, domain.ScanAll, 0, &buf)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, 3, groups[0].Size())

		buf.Reset()
		groups, err = c.Export(context.Background(), nil, domain.ScanSingle, 0, &buf)
		require.NoError(t, err)
		assert.Empty(t, groups)
		assert.Empty(t, buf.String())
	})

	t.Run("exported entries are marked and restorable", func(t *testing.T) {
		c, repo := seed(t)
		var buf bytes.Buffer

		_, err := c.Export(context.Background(), []string{"a.jpg", "b.jpg"}, domain.ScanSingle, 0, &buf)
		require.NoError(t, err)

		entries := c.Entries()
		assert.True(t, entries[0].Exported)
		assert.True(t, entries[1].Exported)
		assert.False(t, entries[2].Exported)
		assert.True(t, repo.entries[0].Exported, "mark must be persisted")

		require.NoError(t, c.Restore(context.Background(), []string{"a.jpg"}))
		assert.False(t, c.Entries()[0].Exported)
	})

	t.Run("invalid interval propagates", func(t *testing.T) {
		c, _ := seed(t)
		var buf bytes.Buffer

		_, err := c.Export(context.Background(), []string{"a.jpg"}, domain.ScanGroupOfX, 0, &buf)
		assert.ErrorIs(t, err, domain.ErrInvalidInterval)
		assert.Empty(t, buf.String())
	})
}

func TestCatalog_SchemaManagement(t *testing.T) {
	ctx := context.Background()

	t.Run("group lifecycle", func(t *testing.T) {
		c := newTestCatalog(t, &memCatalogRepo{}, fakeProber{})

		require.NoError(t, c.AddCategoryGroup(ctx, "Region"))
		assert.ErrorIs(t, c.AddCategoryGroup(ctx, "Region"), domain.ErrDuplicateValue)

		require.NoError(t, c.AddCategoryValue(ctx, "Region", "Bavaria"))
		assert.ErrorIs(t, c.AddCategoryValue(ctx, "Region", "Bavaria"), domain.ErrDuplicateValue)
		assert.ErrorIs(t, c.AddCategoryValue(ctx, "Nope", "x"), domain.ErrGroupNotFound)

		schema, err := c.Schema(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Bavaria"}, schema["Region"])

		require.NoError(t, c.RemoveCategoryValue(ctx, "Region", "Bavaria"))
		assert.ErrorIs(t, c.RemoveCategoryValue(ctx, "Region", "Bavaria"), domain.ErrUnknownValue)

		require.NoError(t, c.RemoveCategoryGroup(ctx, "Region"))
		assert.ErrorIs(t, c.RemoveCategoryGroup(ctx, "Region"), domain.ErrGroupNotFound)
	})
}
