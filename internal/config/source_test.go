package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaosforge/damage-api/internal/config"
	"github.com/chaosforge/damage-api/internal/errors"
	"github.com/chaosforge/damage-api/internal/testutils"
)

func TestFileSourceLoad(t *testing.T) {
	path := testutils.WriteConfigFile(t, testutils.BaselineConfigYAML)

	source, err := config.NewFileSource(path)
	require.NoError(t, err)

	docs, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", docs.Version)
	assert.Len(t, docs.DamageTypes, 3)
}

func TestFileSourceMissingFile(t *testing.T) {
	source, err := config.NewFileSource("/nonexistent/damage.yaml")
	require.NoError(t, err)

	_, err = source.Load(context.Background())
	assert.True(t, errors.IsConfiguration(err))
}

func TestFileSourceRequiresPath(t *testing.T) {
	_, err := config.NewFileSource("")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestFileSourceBadYAML(t *testing.T) {
	path := testutils.WriteConfigFile(t, "version: [unclosed")

	source, err := config.NewFileSource(path)
	require.NoError(t, err)

	_, err = source.Load(context.Background())
	assert.True(t, errors.IsConfiguration(err))
}

func TestRedisSourceLoad(t *testing.T) {
	client, mr, cleanup := testutils.CreateTestRedisClient(t)
	defer cleanup()

	mr.Set("damage:config:documents", testutils.BaselineConfigYAML)

	source, err := config.NewRedisSource(client, "")
	require.NoError(t, err)

	docs, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", docs.Version)
}

func TestRedisSourceMissingKey(t *testing.T) {
	client, _, cleanup := testutils.CreateTestRedisClient(t)
	defer cleanup()

	source, err := config.NewRedisSource(client, "damage:config:other")
	require.NoError(t, err)

	_, err = source.Load(context.Background())
	assert.True(t, errors.IsConfiguration(err))
}

// A comment-only edit changes the stored bytes but not the canonical
// content, so the reload must be a no-op.
func TestRedisSourceCommentOnlyReloadIsNoOp(t *testing.T) {
	client, mr, cleanup := testutils.CreateTestRedisClient(t)
	defer cleanup()

	mr.Set("damage:config:documents", testutils.BaselineConfigYAML)

	source, err := config.NewRedisSource(client, "")
	require.NoError(t, err)

	store, err := config.NewStore(&config.StoreConfig{Source: source})
	require.NoError(t, err)
	require.NoError(t, store.Load(context.Background()))

	updated := testutils.BaselineConfigYAML + "\n# revision bump\n"
	mr.Set("damage:config:documents", updated)
	require.NoError(t, store.Reload(context.Background()))

	assert.Equal(t, uint64(1), store.Snapshot().Generation)
}
