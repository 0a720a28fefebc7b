// internal/workers/visa/lookup-requirements/handler_test.go
package lookuprequirements

import (
	"context"
	"testing"

	"visa-workers/internal/common/database"
	"visa-workers/internal/common/logger"
	"visa-workers/internal/visa/catalog"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cache := &database.RedisClient{Client: rdb}
	handler := NewHandler(LoadConfig(), catalog.Catalogs(), cache, logger.NewTestLogger(t))
	return handler, mr
}

func TestHandler_Execute_ColdLookup(t *testing.T) {
	handler, _ := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		Destination:  "schengen",
		VisaCategory: "Study",
	})

	require.NoError(t, err)
	assert.Equal(t, "schengen", output.Destination)
	assert.Equal(t, "Study", output.VisaCategory)
	assert.False(t, output.FromCache)
	assert.Equal(t, "Study", output.Requirements.Name)
	assert.NotEmpty(t, output.Requirements.CommonRequirements)
	assert.NotEmpty(t, output.Requirements.SpecificRequirements)
}

func TestHandler_Execute_WarmLookup(t *testing.T) {
	handler, _ := newTestHandler(t)

	first, err := handler.Execute(context.Background(), &Input{
		Destination:  "united-kingdom",
		VisaCategory: "Work",
	})
	require.NoError(t, err)
	require.False(t, first.FromCache)

	second, err := handler.Execute(context.Background(), &Input{
		Destination:  "united-kingdom",
		VisaCategory: "Work",
	})
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Requirements, second.Requirements)
}

func TestHandler_Execute_UnknownCategoryFallsBackToDefault(t *testing.T) {
	handler, _ := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		Destination:  "uae",
		VisaCategory: "Pilgrimage",
	})

	require.NoError(t, err)
	assert.Equal(t, "Work", output.VisaCategory)
	assert.Equal(t, "Work", output.Requirements.Name)
}

func TestHandler_Execute_DestinationCasingNormalized(t *testing.T) {
	handler, _ := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		Destination:  " Schengen ",
		VisaCategory: "Family",
	})

	require.NoError(t, err)
	assert.Equal(t, "schengen", output.Destination)
	assert.Equal(t, "Family", output.VisaCategory)
}

func TestHandler_Execute_UnsupportedDestination(t *testing.T) {
	handler, _ := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		Destination:  "atlantis",
		VisaCategory: "Work",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrUnsupportedDestination)
}

func TestHandler_Execute_CacheDownDegradesToCatalog(t *testing.T) {
	handler, mr := newTestHandler(t)
	mr.Close()

	output, err := handler.Execute(context.Background(), &Input{
		Destination:  "united-states",
		VisaCategory: "Investment",
	})

	require.NoError(t, err)
	assert.False(t, output.FromCache)
	assert.Equal(t, "Investment", output.Requirements.Name)
}

func TestHandler_Execute_CorruptCacheEntryIgnored(t *testing.T) {
	handler, mr := newTestHandler(t)

	require.NoError(t, mr.Set("visa:requirements:schengen:work", "{not json"))

	output, err := handler.Execute(context.Background(), &Input{
		Destination:  "schengen",
		VisaCategory: "Work",
	})

	require.NoError(t, err)
	assert.False(t, output.FromCache)
	assert.Equal(t, "Work", output.Requirements.Name)
}

func TestHandler_Execute_NilCache(t *testing.T) {
	handler := NewHandler(LoadConfig(), catalog.Catalogs(), nil, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Destination:  "schengen",
		VisaCategory: "Work",
	})

	require.NoError(t, err)
	assert.False(t, output.FromCache)
}
