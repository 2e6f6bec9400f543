package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.json")
	body := `[{"Title":"Inception","Year":"2010","Poster":"https://img/p.jpg","imdbRating":"8.8",
		"Plot":"A thief...","Actors":"Leonardo DiCaprio","Images":["a","b"],"Genre":"Sci-Fi","Language":"English"}]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	movies, err := LoadCatalogFile(path)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Inception", movies[0].Title)
	assert.Equal(t, "8.8", movies[0].ImdbRating)
	assert.Equal(t, []string{"a", "b"}, movies[0].Images)
}

func TestLoadCatalogFile_Errors(t *testing.T) {
	_, err := LoadCatalogFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o644))
	_, err = LoadCatalogFile(path)
	assert.ErrorContains(t, err, "decode catalog file")
}

func TestLoadCatalogFromDB(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{data: [][]any{
		{"Dangal", "2016", "", "8.3", "Wrestler father", "Aamir Khan", []string{}, "Drama", "Hindi"},
		{"Inception", "2010", "p.jpg", "8.8", "Dreams", "Leonardo DiCaprio", []string{"i1"}, "Sci-Fi", "English"},
	}}}

	movies, err := LoadCatalogFromDB(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Dangal", movies[0].Title)
	assert.Equal(t, "Hindi", movies[0].Language)
	assert.Equal(t, []string{"i1"}, movies[1].Images)
	assert.True(t, db.rows.closed)
}

func TestLoadCatalogFromDB_QueryError(t *testing.T) {
	db := &fakeDB{err: errors.New("connection refused")}

	_, err := LoadCatalogFromDB(context.Background(), db)
	assert.ErrorContains(t, err, "query catalog movies")
}

type fakeDB struct {
	rows *fakeRows
	err  error
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeDB) Ping(ctx context.Context) error { return nil }
func (f *fakeDB) Close()                         {}

type fakeRows struct {
	data   [][]any
	idx    int
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return r.data[r.idx-1], nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.idx-1]
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *[]string:
			*p = row[i].([]string)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

func TestLoadCatalogFile_BundledData(t *testing.T) {
	movies, err := LoadCatalogFile("../../../data/movies.json")
	require.NoError(t, err)
	require.NotEmpty(t, movies)

	catalog := NewCatalogRepository(movies, zap.NewNop())
	_, ok := catalog.FindByTitle("inception")
	assert.True(t, ok)
}
