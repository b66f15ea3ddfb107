package store

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomasdelmas/Ecommerce-sub000/entity"
	"github.com/uptrace/bun"
)

func openTestDB(t *testing.T) *bun.DB {
	t.Helper()

	ctx := context.Background()
	db, err := Open(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(ctx, db))
	return db
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func catalogue() []*entity.Product {
	return []*entity.Product{
		{Name: "Desk Lamp", Description: "Adjustable LED lamp", Category: "home", Price: 24.5, Quantity: 40, Currency: "USD", CreatedAt: epoch.Add(1 * time.Minute)},
		{Name: "Standing Desk", Description: "Electric desk", Category: "office", Price: 389, Quantity: 6, Currency: "USD", CreatedAt: epoch.Add(2 * time.Minute)},
		{Name: "Garden Hose", Description: "Expandable 30m hose", Category: "garden", Price: 31.99, Quantity: 18, Currency: "EUR", CreatedAt: epoch.Add(3 * time.Minute)},
		{Name: "Office Chair", Description: "Mesh back", Category: "office", Price: 149, Quantity: 12, Currency: "USD", CreatedAt: epoch.Add(4 * time.Minute)},
		{Name: "100% Cotton Rug", Description: "Hand woven", Category: "home", Price: 60, Quantity: 2, Currency: "USD", CreatedAt: epoch.Add(5 * time.Minute)},
	}
}

func seedCatalogue(t *testing.T, repo *Repository[*entity.Product]) []*entity.Product {
	t.Helper()
	created, err := repo.CreateMany(context.Background(), catalogue())
	require.NoError(t, err)
	require.Len(t, created, 5)
	return created
}

func productNames(products []*entity.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "dsn")
	assert.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, Migrate(context.Background(), db))
}

func TestCreateMany_AssignsIDs(t *testing.T) {
	repo := NewProductRepository(openTestDB(t))
	created := seedCatalogue(t, repo)

	seen := map[uuid.UUID]bool{}
	for _, p := range created {
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}

	empty, err := repo.CreateMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCreateMany_UniqueViolationIsAFault(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(openTestDB(t))
	seedCatalogue(t, repo)

	_, err := repo.CreateMany(ctx, []*entity.Product{
		{Name: "Brand New", Currency: "USD", CreatedAt: epoch},
		{Name: "Desk Lamp", Currency: "USD", CreatedAt: epoch},
	})
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, CategoryStore))

	_, found, err := repo.FindByUniqueField(ctx, "Brand New")
	require.NoError(t, err)
	assert.False(t, found, "a failed batch insert must not leave rows behind")
}

func TestFindByUniqueField(t *testing.T) {
	ctx := context.Background()
	products := NewProductRepository(openTestDB(t))
	seedCatalogue(t, products)

	p, found, err := products.FindByUniqueField(ctx, "Office Chair")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "office", p.Category)

	_, found, err = products.FindByUniqueField(ctx, "office chair")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindByUniqueField_Users(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(openTestDB(t))

	_, err := users.CreateMany(ctx, []*entity.User{{Username: "ada", Role: "admin", SecretHash: "x", CreatedAt: epoch}})
	require.NoError(t, err)

	u, found, err := users.FindByUniqueField(ctx, "ada")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "admin", u.Role)
	assert.Equal(t, "x", u.SecretHash)
}

func TestFindByID(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(openTestDB(t))
	created := seedCatalogue(t, repo)

	p, found, err := repo.FindByID(ctx, created[1].ID.String())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Standing Desk", p.Name)

	_, found, err = repo.FindByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = repo.FindByID(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindManyByIDs_OmitsMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(openTestDB(t))
	created := seedCatalogue(t, repo)

	found, err := repo.FindManyByIDs(ctx, []string{
		created[0].ID.String(),
		uuid.NewString(),
		"garbage",
		created[3].ID.String(),
		created[0].ID.String(),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Desk Lamp", "Office Chair"}, productNames(found))

	none, err := repo.FindManyByIDs(ctx, []string{"garbage"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

// queryRecorder keeps the SQL of every statement the db runs.
type queryRecorder struct {
	mu      sync.Mutex
	queries []string
}

func (r *queryRecorder) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (r *queryRecorder) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, event.Query)
}

func (r *queryRecorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.queries
	r.queries = nil
	return out
}

func TestLookups_IssueOneSelectWithoutCount(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewProductRepository(db)
	created := seedCatalogue(t, repo)

	recorder := &queryRecorder{}
	db.AddQueryHook(recorder)

	lookups := map[string]func() error{
		"find many by ids": func() error {
			_, err := repo.FindManyByIDs(ctx, []string{created[0].ID.String(), created[1].ID.String()})
			return err
		},
		"find by unique field": func() error {
			_, _, err := repo.FindByUniqueField(ctx, "Desk Lamp")
			return err
		},
		"find by id": func() error {
			_, _, err := repo.FindByID(ctx, created[2].ID.String())
			return err
		},
		"find by filter": func() error {
			_, err := repo.FindByFilter(ctx, entity.FilterSpec{}, 1, 2)
			return err
		},
	}

	for name, lookup := range lookups {
		t.Run(name, func(t *testing.T) {
			recorder.take()
			require.NoError(t, lookup())

			queries := recorder.take()
			require.Len(t, queries, 1, "queries: %v", queries)
			assert.NotContains(t, strings.ToLower(queries[0]), "count(")
		})
	}
}

func TestDeleteManyByIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(openTestDB(t))
	created := seedCatalogue(t, repo)

	report, err := repo.DeleteManyByIDs(ctx, []string{created[0].ID.String(), created[2].ID.String(), uuid.NewString()})
	require.NoError(t, err)
	assert.True(t, report.Acknowledged)
	assert.Equal(t, 2, report.DeletedCount)

	left, err := repo.FindManyByIDs(ctx, []string{created[0].ID.String(), created[1].ID.String(), created[2].ID.String()})
	require.NoError(t, err)
	assert.Equal(t, []string{"Standing Desk"}, productNames(left))

	report, err = repo.DeleteManyByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, DeleteReport{Acknowledged: true}, report)
}

func TestFindByFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(openTestDB(t))
	seedCatalogue(t, repo)

	tests := []struct {
		name string
		spec entity.FilterSpec
		want []string
	}{
		{
			name: "no constraints",
			spec: entity.FilterSpec{},
			want: []string{"Desk Lamp", "Standing Desk", "Garden Hose", "Office Chair", "100% Cotton Rug"},
		},
		{
			name: "inclusive price range",
			spec: entity.FilterSpec{Ranges: map[string]entity.Range{"price": {Min: entity.Bound(24.5), Max: entity.Bound(60)}}},
			want: []string{"Desk Lamp", "Garden Hose", "100% Cotton Rug"},
		},
		{
			name: "open ended range",
			spec: entity.FilterSpec{Ranges: map[string]entity.Range{"quantity": {Min: entity.Bound(12)}}},
			want: []string{"Desk Lamp", "Garden Hose", "Office Chair"},
		},
		{
			name: "set membership",
			spec: entity.FilterSpec{In: map[string][]string{"category": {"office", "garden"}}},
			want: []string{"Standing Desk", "Garden Hose", "Office Chair"},
		},
		{
			name: "combined constraints",
			spec: entity.FilterSpec{
				Ranges: map[string]entity.Range{"price": {Max: entity.Bound(200)}},
				In:     map[string][]string{"currency": {"USD"}},
			},
			want: []string{"Desk Lamp", "Office Chair", "100% Cotton Rug"},
		},
		{
			name: "case insensitive text",
			spec: entity.FilterSpec{Text: &entity.TextMatch{Field: "name", Term: "DESK"}},
			want: []string{"Desk Lamp", "Standing Desk"},
		},
		{
			name: "case sensitive text",
			spec: entity.FilterSpec{Text: &entity.TextMatch{Field: "name", Term: "Desk", CaseSensitive: true}},
			want: []string{"Desk Lamp", "Standing Desk"},
		},
		{
			name: "case sensitive text misses",
			spec: entity.FilterSpec{Text: &entity.TextMatch{Field: "name", Term: "desk", CaseSensitive: true}},
			want: []string{},
		},
		{
			name: "wildcards are literal",
			spec: entity.FilterSpec{Text: &entity.TextMatch{Field: "name", Term: "0% c"}},
			want: []string{"100% Cotton Rug"},
		},
		{
			name: "description text",
			spec: entity.FilterSpec{Text: &entity.TextMatch{Field: "description", Term: "hose"}},
			want: []string{"Garden Hose"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindByFilter(ctx, tt.spec, 1, 50)
			require.NoError(t, err)
			assert.Equal(t, tt.want, productNames(got))
		})
	}
}

func TestFindByFilter_Pagination(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(openTestDB(t))
	seedCatalogue(t, repo)

	var pages [][]string
	for page := 1; page <= 3; page++ {
		got, err := repo.FindByFilter(ctx, entity.FilterSpec{}, page, 2)
		require.NoError(t, err)
		pages = append(pages, productNames(got))
	}

	assert.Equal(t, [][]string{
		{"Desk Lamp", "Standing Desk"},
		{"Garden Hose", "Office Chair"},
		{"100% Cotton Rug"},
	}, pages)

	beyond, err := repo.FindByFilter(ctx, entity.FilterSpec{}, 10, 2)
	require.NoError(t, err)
	assert.NotNil(t, beyond)
	assert.Empty(t, beyond)
}

func TestFilterCriteria_LikeEscaping(t *testing.T) {
	assert.Equal(t, `100\% \_x\\`, likeEscaper.Replace(`100% _x\`))
}

func TestParseIDs(t *testing.T) {
	id := uuid.New()
	got := parseIDs([]string{id.String(), "nope", id.String(), ""})
	assert.Equal(t, []uuid.UUID{id}, got)
}
