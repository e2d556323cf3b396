package mudrex

import (
	"context"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogHandler(counter *int) func(method, path string, query url.Values, body any) (any, error) {
	catalog := []any{
		map[string]any{"symbol": "BTCUSDT", "name": "Bitcoin", "max_leverage": "100", "is_active": true},
		map[string]any{"symbol": "ETHUSDT", "name": "Ethereum", "max_leverage": "75", "is_active": true},
		map[string]any{"symbol": "DOGEUSDT", "name": "Dogecoin", "max_leverage": "20", "is_active": false},
	}
	return func(method, path string, query url.Values, body any) (any, error) {
		*counter++
		if offset, _ := strconv.Atoi(query.Get("offset")); offset > 0 {
			return map[string]any{"data": []any{}}, nil
		}
		return map[string]any{"data": catalog}, nil
	}
}

func TestAssetsListAllCaches(t *testing.T) {
	t.Parallel()
	fetches := 0
	client, _ := newTestClient(catalogHandler(&fetches))
	ctx := context.Background()

	first, err := client.Assets.ListAll(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, 1, fetches)

	_, err = client.Assets.ListAll(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches, "second call served from cache")

	_, err = client.Assets.ListAll(ctx, ListOptions{Refresh: true})
	require.NoError(t, err)
	assert.Equal(t, 2, fetches, "refresh bypasses the cache")

	client.Assets.InvalidateCache()
	_, err = client.Assets.ListAll(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, fetches, "invalidation forces a re-fetch")
}

func TestAssetsCachedIndex(t *testing.T) {
	t.Parallel()
	fetches := 0
	client, _ := newTestClient(catalogHandler(&fetches))

	_, ok := client.Assets.Cached("BTCUSDT")
	assert.False(t, ok, "nothing cached before the first drain")

	_, err := client.Assets.ListAll(context.Background(), ListOptions{})
	require.NoError(t, err)

	a, ok := client.Assets.Cached("BTCUSDT")
	require.True(t, ok)
	assert.Equal(t, "Bitcoin", a.Name)
	assert.Equal(t, 1, fetches, "Cached never touches the network")
}

func TestAssetsSortedFromCache(t *testing.T) {
	t.Parallel()
	fetches := 0
	client, _ := newTestClient(catalogHandler(&fetches))
	ctx := context.Background()

	_, err := client.Assets.ListAll(ctx, ListOptions{})
	require.NoError(t, err)

	sorted, err := client.Assets.ListAll(ctx, ListOptions{SortBy: "symbol", SortOrder: "desc"})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches, "sorting a cached catalog is local")
	require.Len(t, sorted, 3)
	assert.Equal(t, "ETHUSDT", sorted[0].Symbol)
	assert.Equal(t, "BTCUSDT", sorted[2].Symbol)
}

func TestAssetsSearch(t *testing.T) {
	t.Parallel()
	fetches := 0
	client, _ := newTestClient(catalogHandler(&fetches))

	matches, err := client.Assets.Search(context.Background(), "doge")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "DOGEUSDT", matches[0].Symbol)

	byName, err := client.Assets.Search(context.Background(), "ether")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "ETHUSDT", byName[0].Symbol)
}

func TestAssetsByLeverageAndActive(t *testing.T) {
	t.Parallel()
	fetches := 0
	client, _ := newTestClient(catalogHandler(&fetches))
	ctx := context.Background()

	high, err := client.Assets.ByLeverage(ctx, 50, 0)
	require.NoError(t, err)
	assert.Len(t, high, 2)

	band, err := client.Assets.ByLeverage(ctx, 50, 80)
	require.NoError(t, err)
	require.Len(t, band, 1)
	assert.Equal(t, "ETHUSDT", band[0].Symbol)

	active, err := client.Assets.Active(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2, "DOGEUSDT is inactive")
}

func TestAssetsGetPrice(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(func(method, path string, query url.Values, body any) (any, error) {
		return map[string]any{"data": map[string]any{"symbol": "BTCUSDT", "price": "105000"}}, nil
	})

	price, err := client.Assets.GetPrice(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, "105000", price)
}
