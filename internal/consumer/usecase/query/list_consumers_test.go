package query

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/consumer-favorites/internal/consumer/domain"
	productdomain "github.com/tair/consumer-favorites/internal/product/domain"
)

// fakeConsumerRepo serves a fixed ordered list of consumers and records the
// pagination arguments it receives.
type fakeConsumerRepo struct {
	consumers  []domain.Consumer
	lastLimit  int
	lastOffset int
}

func (f *fakeConsumerRepo) Create(c *domain.Consumer) error { return nil }

func (f *fakeConsumerRepo) FindByID(id uuid.UUID) (*domain.Consumer, error) {
	for i := range f.consumers {
		if f.consumers[i].ID == id {
			return &f.consumers[i], nil
		}
	}
	return nil, nil
}

func (f *fakeConsumerRepo) FindByEmail(email string) (*domain.Consumer, error) { return nil, nil }
func (f *fakeConsumerRepo) Update(c *domain.Consumer) error                    { return nil }
func (f *fakeConsumerRepo) Delete(id uuid.UUID) error                          { return nil }

func (f *fakeConsumerRepo) FindAll(limit, offset int) ([]domain.Consumer, error) {
	f.lastLimit, f.lastOffset = limit, offset
	if offset >= len(f.consumers) {
		return []domain.Consumer{}, nil
	}
	end := offset + limit
	if end > len(f.consumers) {
		end = len(f.consumers)
	}
	return f.consumers[offset:end], nil
}

func (f *fakeConsumerRepo) Count() (int64, error) {
	return int64(len(f.consumers)), nil
}

// fakeCatalog serves products from memory and counts lookups per id.
type fakeCatalog struct {
	products map[string]productdomain.Product
	getCalls map[string]int
	err      error
}

func newFakeCatalog(ids ...string) *fakeCatalog {
	catalog := &fakeCatalog{
		products: map[string]productdomain.Product{},
		getCalls: map[string]int{},
	}
	for i, id := range ids {
		catalog.products[id] = productdomain.Product{
			ID:    i + 1,
			Title: "Product " + id,
			Price: 10.0,
			Image: "https://img.example/" + id,
		}
	}
	return catalog
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]productdomain.Product, error) {
	return nil, nil
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id string) (*productdomain.Product, error) {
	f.getCalls[id]++
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func makeConsumers(n int) []domain.Consumer {
	consumers := make([]domain.Consumer, n)
	for i := range consumers {
		consumers[i] = domain.Consumer{
			ID:    uuid.New(),
			Name:  fmt.Sprintf("Consumer %02d", i+1),
			Email: fmt.Sprintf("consumer%02d@example.com", i+1),
		}
	}
	return consumers
}

func TestListConsumersPagination(t *testing.T) {
	repo := &fakeConsumerRepo{consumers: makeConsumers(20)}
	handler := NewListConsumersHandler(repo, newFakeCatalog())

	result, err := handler.Handle(context.Background(), ListConsumersQuery{Page: 2, PageSize: 5})
	require.NoError(t, err)

	assert.EqualValues(t, 20, result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 5, result.PageSize)
	assert.Equal(t, 4, result.TotalPages)
	assert.Equal(t, 5, repo.lastLimit)
	assert.Equal(t, 5, repo.lastOffset)

	// Page 2 of size 5 holds items 6 through 10 (1-based).
	require.Len(t, result.Data, 5)
	assert.Equal(t, "Consumer 06", result.Data[0].Name)
	assert.Equal(t, "Consumer 10", result.Data[4].Name)
}

func TestListConsumersEmpty(t *testing.T) {
	repo := &fakeConsumerRepo{}
	handler := NewListConsumersHandler(repo, newFakeCatalog())

	result, err := handler.Handle(context.Background(), ListConsumersQuery{Page: 1, PageSize: 100})
	require.NoError(t, err)

	assert.EqualValues(t, 0, result.Total)
	assert.Equal(t, 1, result.TotalPages, "total_pages is never below 1")
	assert.Empty(t, result.Data)
}

func TestListConsumersHugePageDoesNotOverflow(t *testing.T) {
	repo := &fakeConsumerRepo{consumers: makeConsumers(20)}
	handler := NewListConsumersHandler(repo, newFakeCatalog())

	// A page number this large would wrap the offset multiplication if it
	// were computed unconditionally; past-the-end pages are empty instead.
	result, err := handler.Handle(context.Background(), ListConsumersQuery{Page: 92233720368547760, PageSize: 100})
	require.NoError(t, err)

	assert.Empty(t, result.Data)
	assert.EqualValues(t, 20, result.Total)
	assert.Equal(t, 1, result.TotalPages)
	assert.Zero(t, repo.lastLimit, "no page is read past the end")
}

func TestListConsumersFetchesEachProductOnce(t *testing.T) {
	consumers := makeConsumers(3)
	consumers[0].Favorites = []domain.Favorite{{ProductID: "7"}, {ProductID: "8"}}
	consumers[1].Favorites = []domain.Favorite{{ProductID: "7"}}
	consumers[2].Favorites = []domain.Favorite{{ProductID: "8"}, {ProductID: "7"}}

	repo := &fakeConsumerRepo{consumers: consumers}
	catalog := newFakeCatalog("7", "8")
	handler := NewListConsumersHandler(repo, catalog)

	result, err := handler.Handle(context.Background(), ListConsumersQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, 1, catalog.getCalls["7"], "product 7 fetched once for the whole page")
	assert.Equal(t, 1, catalog.getCalls["8"], "product 8 fetched once for the whole page")

	assert.Len(t, result.Data[0].Favorites, 2)
	assert.Len(t, result.Data[1].Favorites, 1)
	assert.Len(t, result.Data[2].Favorites, 2)
}

func TestListConsumersDropsStaleFavorites(t *testing.T) {
	consumers := makeConsumers(1)
	consumers[0].Favorites = []domain.Favorite{{ProductID: "7"}, {ProductID: "999"}}

	repo := &fakeConsumerRepo{consumers: consumers}
	handler := NewListConsumersHandler(repo, newFakeCatalog("7"))

	result, err := handler.Handle(context.Background(), ListConsumersQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)

	// The favorite whose product vanished upstream is dropped, not an error.
	require.Len(t, result.Data, 1)
	require.Len(t, result.Data[0].Favorites, 1)
	assert.Equal(t, "Product 7", result.Data[0].Favorites[0].Title)
}

func TestListConsumersUpstreamFailurePropagates(t *testing.T) {
	consumers := makeConsumers(1)
	consumers[0].Favorites = []domain.Favorite{{ProductID: "7"}}

	repo := &fakeConsumerRepo{consumers: consumers}
	catalog := newFakeCatalog("7")
	catalog.err = productdomain.ErrUpstreamUnavailable
	handler := NewListConsumersHandler(repo, catalog)

	_, err := handler.Handle(context.Background(), ListConsumersQuery{Page: 1, PageSize: 10})
	assert.ErrorIs(t, err, productdomain.ErrUpstreamUnavailable)
}

func TestGetConsumer(t *testing.T) {
	consumers := makeConsumers(1)
	consumers[0].Favorites = []domain.Favorite{{ProductID: "7"}, {ProductID: "999"}}
	repo := &fakeConsumerRepo{consumers: consumers}
	handler := NewGetConsumerHandler(repo, newFakeCatalog("7"))

	view, err := handler.Handle(context.Background(), GetConsumerQuery{ID: consumers[0].ID})
	require.NoError(t, err)
	assert.Equal(t, consumers[0].Email, view.Email)
	require.Len(t, view.Favorites, 1)
	assert.Equal(t, "Product 7", view.Favorites[0].Title)
}

func TestGetConsumerNotFound(t *testing.T) {
	handler := NewGetConsumerHandler(&fakeConsumerRepo{}, newFakeCatalog())

	_, err := handler.Handle(context.Background(), GetConsumerQuery{ID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrConsumerNotFound)
}
