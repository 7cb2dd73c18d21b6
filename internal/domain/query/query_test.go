package query_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/query"
)

// item entidad mínima para probar el motor sin depender de las entidades reales.
type item struct {
	id    int64
	name  string
	notes string
	group int64
}

func (i *item) FieldValue(field string) (any, bool) {
	switch field {
	case "id":
		return i.id, true
	case "name":
		return i.name, true
	case "notes":
		return i.notes, true
	case "group":
		return i.group, true
	}
	return nil, false
}

var itemSchema = query.Schema[*item]{
	Resource:     "Item",
	SearchFields: []string{"name", "notes"},
	SortFields:   []string{"id", "name"},
	DefaultSort:  query.By("id"),
}

// ── Predicate Builder ────────────────────────────────────────────────────────

func TestBuild_EmptySearchMatchesAll(t *testing.T) {
	rows := []*item{{id: 1, name: "Acme"}, {id: 2, name: "Globex"}}

	for _, search := range []string{"", "   "} {
		q := itemSchema.Build(search, "")
		assert.True(t, q.Where.IsAll(), "search=%q debe coincidir con todo", search)
		for _, r := range rows {
			assert.True(t, q.Where.Matches(r))
		}
	}
}

func TestBuild_SearchIsCaseInsensitiveSubstringOverAnyField(t *testing.T) {
	q := itemSchema.Build("ACM", "")

	assert.True(t, q.Where.Matches(&item{name: "acme corp"}))
	assert.True(t, q.Where.Matches(&item{name: "x", notes: "distribuido por Acme"}))
	assert.False(t, q.Where.Matches(&item{name: "Globex", notes: "nada"}))
}

func TestBuild_SearchFoldsUnicode(t *testing.T) {
	q := itemSchema.Build("ÉLECTRO", "")
	assert.True(t, q.Where.Matches(&item{name: "Électronique SA"}))
}

func TestParseSort(t *testing.T) {
	cases := []struct {
		raw  string
		want query.SortSpec
	}{
		{"", query.By("id")},
		{"name", query.By("name")},
		{"name,desc", query.By("name").Descending()},
		{"name,DESC", query.By("name").Descending()},
		{" name , desc ", query.By("name").Descending()},
		{"name,sideways", query.By("name")},
		{"password,desc", query.By("id")},
		{"name; DROP TABLE vendors,desc", query.By("id")},
		{",desc", query.By("id")},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, itemSchema.ParseSort(tc.raw))
		})
	}
}

func TestParseSort_UnknownFieldIsDeterministic(t *testing.T) {
	first := itemSchema.Build("a", "unknown,desc")
	second := itemSchema.Build("a", "unknown,desc")

	assert.Equal(t, itemSchema.DefaultSort, first.Order)
	assert.Equal(t, first, second)
}

func TestPredicate_AndComposes(t *testing.T) {
	p := query.Search[*item]("ac", "name").And(query.Eq[*item]("group", 3))

	assert.True(t, p.Matches(&item{name: "Acme", group: 3}))
	assert.False(t, p.Matches(&item{name: "Acme", group: 4}))
	assert.False(t, p.Matches(&item{name: "Globex", group: 3}))
	assert.Len(t, p.Conditions(), 2)
}

func TestPredicate_AndWithAllIsIdentity(t *testing.T) {
	p := query.Eq[*item]("group", int64(1))
	assert.Equal(t, p, p.And(query.All[*item]()))
	assert.Equal(t, p.Conditions(), query.All[*item]().And(p).Conditions())
}

func TestPredicate_UnknownFieldNeverMatches(t *testing.T) {
	p := query.Eq[*item]("missing", 1)
	assert.False(t, p.Matches(&item{id: 1}))
}

// ── Page Executor ────────────────────────────────────────────────────────────

// fakeFinder registra lo que recibe y pagina sobre un slice en memoria.
type fakeFinder struct {
	rows        []*item
	gotLimit    int
	gotOffset   int
	countWhere  query.Predicate[*item]
	findWhere   query.Predicate[*item]
	findCalls   int
	countErr    error
	findErr     error
	returnExtra bool
}

func (f *fakeFinder) Count(_ context.Context, where query.Predicate[*item]) (int64, error) {
	f.countWhere = where
	if f.countErr != nil {
		return 0, f.countErr
	}
	var n int64
	for _, r := range f.rows {
		if where.Matches(r) {
			n++
		}
	}
	return n, nil
}

func (f *fakeFinder) FindAll(_ context.Context, q query.Query[*item], limit, offset int) ([]*item, error) {
	f.findCalls++
	f.gotLimit, f.gotOffset, f.findWhere = limit, offset, q.Where
	if f.findErr != nil {
		return nil, f.findErr
	}
	var matched []*item
	for _, r := range f.rows {
		if q.Where.Matches(r) {
			matched = append(matched, r)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := min(offset+limit, len(matched))
	if f.returnExtra {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func fiveItems() []*item {
	return []*item{
		{id: 1, name: "Acme"}, {id: 2, name: "Globex"}, {id: 3, name: "Initech"},
		{id: 4, name: "Umbrella"}, {id: 5, name: "Hooli"},
	}
}

func TestExecute_FirstPageOfFive(t *testing.T) {
	f := &fakeFinder{rows: fiveItems()}

	res, err := query.Execute(context.Background(), f, itemSchema.Build("", ""), query.Page{Num: 1, Size: 2})
	require.NoError(t, err)

	assert.Len(t, res.Items, 2)
	assert.Equal(t, int64(5), res.TotalItems)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 1, res.PageNum)
	assert.Equal(t, 2, res.PageSize)
	assert.Equal(t, 0, f.gotOffset, "pageNum=1 debe ser offset 0")
}

func TestExecute_OffsetConversion(t *testing.T) {
	f := &fakeFinder{rows: fiveItems()}

	res, err := query.Execute(context.Background(), f, itemSchema.Build("", ""), query.Page{Num: 3, Size: 2})
	require.NoError(t, err)

	assert.Equal(t, 4, f.gotOffset)
	assert.Equal(t, 2, f.gotLimit)
	require.Len(t, res.Items, 1)
	assert.Equal(t, int64(5), res.Items[0].id)
}

func TestExecute_EmptyStore(t *testing.T) {
	f := &fakeFinder{}

	res, err := query.Execute(context.Background(), f, itemSchema.Build("x", ""), query.Page{Num: 1, Size: 10})
	require.NoError(t, err)

	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(0), res.TotalItems)
	assert.Equal(t, 0, res.TotalPages)
	assert.Equal(t, 0, f.findCalls, "sin filas no se consulta la página")
}

func TestExecute_PageBeyondEndIsEmptyNotError(t *testing.T) {
	f := &fakeFinder{rows: fiveItems()}

	res, err := query.Execute(context.Background(), f, itemSchema.Build("", ""), query.Page{Num: 9, Size: 2})
	require.NoError(t, err)

	assert.Empty(t, res.Items)
	assert.Equal(t, 9, res.PageNum)
	assert.Equal(t, 3, res.TotalPages)
}

func TestExecute_HugePageNumDoesNotOverflowOffset(t *testing.T) {
	f := &fakeFinder{rows: fiveItems()}

	res, err := query.Execute(context.Background(), f, itemSchema.Build("", ""), query.Page{Num: math.MaxInt64/2 + 2, Size: 2})
	require.NoError(t, err)

	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(5), res.TotalItems)
	assert.Equal(t, 0, f.findCalls, "una página fuera de rango no llega al store")
}

func TestExecute_CountAndFetchShareThePredicate(t *testing.T) {
	f := &fakeFinder{rows: fiveItems()}
	q := itemSchema.Build("o", "name,desc")

	_, err := query.Execute(context.Background(), f, q, query.Page{Num: 1, Size: 10})
	require.NoError(t, err)

	assert.Equal(t, q.Where, f.countWhere)
	assert.Equal(t, f.countWhere, f.findWhere)
}

func TestExecute_NeverMoreThanPageSize(t *testing.T) {
	f := &fakeFinder{rows: fiveItems(), returnExtra: true}

	res, err := query.Execute(context.Background(), f, itemSchema.Build("", ""), query.Page{Num: 1, Size: 2})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
}

func TestExecute_UnfilteredCountEqualsStoreSize(t *testing.T) {
	rows := fiveItems()
	f := &fakeFinder{rows: rows}

	res, err := query.Execute(context.Background(), f, itemSchema.Build("", ""), query.Page{Num: 1, Size: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(len(rows)), res.TotalItems)
	assert.Len(t, res.Items, len(rows))
}

func TestExecute_InvalidPage(t *testing.T) {
	f := &fakeFinder{}
	for _, p := range []query.Page{{Num: 0, Size: 10}, {Num: 1, Size: 0}} {
		_, err := query.Execute(context.Background(), f, itemSchema.Build("", ""), p)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestExecute_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("db down")

	_, err := query.Execute(context.Background(), &fakeFinder{countErr: boom}, itemSchema.Build("", ""), query.Page{Num: 1, Size: 2})
	assert.ErrorIs(t, err, boom)

	_, err = query.Execute(context.Background(), &fakeFinder{rows: fiveItems(), findErr: boom}, itemSchema.Build("", ""), query.Page{Num: 1, Size: 2})
	assert.ErrorIs(t, err, boom)
}

func TestTotalPages(t *testing.T) {
	for _, tc := range []struct {
		total int64
		size  int
		want  int
	}{
		{0, 10, 0}, {1, 10, 1}, {10, 10, 1}, {11, 10, 2}, {5, 2, 3}, {5, 0, 0},
	} {
		assert.Equal(t, tc.want, query.TotalPages(tc.total, tc.size), "total=%d size=%d", tc.total, tc.size)
	}
}

func TestMapItems_KeepsMetadata(t *testing.T) {
	in := &query.Result[*item]{Items: fiveItems()[:2], PageNum: 1, PageSize: 2, TotalItems: 5, TotalPages: 3}

	out := query.MapItems(in, func(i *item) string { return i.name })

	assert.Equal(t, []string{"Acme", "Globex"}, out.Items)
	assert.Equal(t, 3, out.TotalPages)
	assert.Equal(t, int64(5), out.TotalItems)
}
