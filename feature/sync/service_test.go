package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"asset-sync/core/metrics"
	"asset-sync/core/notification"
	"asset-sync/core/queue"
	"asset-sync/core/reconcile"
	"asset-sync/feature/sync/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func kinds(actions []reconcile.Action) []reconcile.ActionKind {
	return reconcile.Kinds(actions)
}

func TestProcessNotification_NewAssetPublish(t *testing.T) {
	catalog := &fakeCatalog{products: []*reconcile.ProductView{testProduct("p-1", "SKU-A")}}
	journal := &memoryJournal{}
	resolver := &fakeResolver{assets: map[string]*reconcile.AssetSnapshot{"img_1": testAsset("SKU-A", "yes")}}
	svc := newTestService(resolver, catalog, journal)

	result, err := svc.ProcessNotification(context.Background(), unit(t, "img_1", nil))
	require.NoError(t, err)

	assert.Equal(t, 200, result.Status)
	assert.Equal(t, "SKU-A", result.Body.SKU)
	assert.Nil(t, result.Body.OldAsset)
	require.NotNil(t, result.Body.NewAsset)
	assert.Equal(t, 200, result.Body.NewAsset.Status)
	assert.Equal(t, []reconcile.ActionKind{
		reconcile.ActionSetAttribute,
		reconcile.ActionAddAsset,
		reconcile.ActionAddExternalImage,
		reconcile.ActionPublish,
	}, kinds(result.Body.NewAsset.Body.Actions))

	assert.Equal(t, []string{"locate:SKU-A", "update:p-1"}, catalog.calls)
	assert.Equal(t, []bool{false}, catalog.staged)

	require.Len(t, journal.entries, 1)
	entry := journal.entries[0]
	assert.Equal(t, models.RoleNew, entry.Role)
	assert.Equal(t, "img_1", entry.PublicID)
	assert.Equal(t, "p-1", entry.ProductID)
	assert.Equal(t, int64(2), entry.Version)
	assert.Equal(t, metrics.ResultOK, entry.Result)
	assert.Contains(t, entry.Actions, `"addAsset"`)
}

func TestProcessNotification_DraftStagesWithoutPublishing(t *testing.T) {
	catalog := &fakeCatalog{products: []*reconcile.ProductView{testProduct("p-1", "SKU-A")}}
	resolver := &fakeResolver{assets: map[string]*reconcile.AssetSnapshot{"img_1": testAsset("SKU-A", reconcile.FlagDraft)}}
	svc := newTestService(resolver, catalog, nil)

	result, err := svc.ProcessNotification(context.Background(), unit(t, "img_1", nil))
	require.NoError(t, err)

	assert.NotContains(t, kinds(result.Body.NewAsset.Body.Actions), reconcile.ActionPublish)
	assert.Equal(t, []bool{true}, catalog.staged)
}

func TestProcessNotification_SKUReassignment(t *testing.T) {
	old := testProduct("p-1", "SKU-A")
	old.MasterVariant.Assets = []reconcile.Asset{{ID: "a-1", Sources: []reconcile.AssetSource{{URI: "img_1"}}}}
	old.MasterVariant.Images = []reconcile.Image{{URL: reconcile.ThumbnailURL(reconcile.ResourceImage, secureURL)}}

	catalog := &fakeCatalog{products: []*reconcile.ProductView{old, testProduct("p-2", "SKU-B")}}
	resolver := &fakeResolver{assets: map[string]*reconcile.AssetSnapshot{"img_1": testAsset("SKU-B", "yes")}}
	svc := newTestService(resolver, catalog, nil)

	result, err := svc.ProcessNotification(context.Background(), unit(t, "img_1", map[string]any{"sku": "SKU-A"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"locate:SKU-A", "update:p-1", "locate:SKU-B", "update:p-2"}, catalog.calls)

	require.NotNil(t, result.Body.OldAsset)
	assert.Equal(t, "SKU-A", result.Body.OldAsset.Body.SKU)
	assert.Equal(t, []reconcile.ActionKind{
		reconcile.ActionRemoveAsset,
		reconcile.ActionRemoveImage,
		reconcile.ActionPublish,
	}, kinds(result.Body.OldAsset.Body.Actions))

	require.NotNil(t, result.Body.NewAsset)
	assert.Equal(t, "SKU-B", result.Body.NewAsset.Body.SKU)
	assert.Contains(t, kinds(result.Body.NewAsset.Body.Actions), reconcile.ActionAddAsset)

	assert.Empty(t, catalog.product("p-1").MasterVariant.Assets)
	assert.Empty(t, catalog.product("p-1").MasterVariant.Images)
	assert.Len(t, catalog.product("p-2").MasterVariant.Assets, 1)
}

func TestProcessNotification_SameSKUSkipsOldProduct(t *testing.T) {
	catalog := &fakeCatalog{products: []*reconcile.ProductView{testProduct("p-1", "SKU-A")}}
	resolver := &fakeResolver{assets: map[string]*reconcile.AssetSnapshot{"img_1": testAsset("SKU-A", "yes")}}
	svc := newTestService(resolver, catalog, nil)

	result, err := svc.ProcessNotification(context.Background(), unit(t, "img_1", map[string]any{"sku": "SKU-A"}))
	require.NoError(t, err)

	assert.Nil(t, result.Body.OldAsset)
	assert.Equal(t, []string{"locate:SKU-A", "update:p-1"}, catalog.calls)
}

func TestProcessNotification_NotFound(t *testing.T) {
	t.Run("asset", func(t *testing.T) {
		catalog := &fakeCatalog{}
		svc := newTestService(&fakeResolver{}, catalog, nil)

		result, err := svc.ProcessNotification(context.Background(), unit(t, "img_1", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, result.Status)
		assert.Equal(t, MsgAssetNotFound, result.Body.Error)
		assert.Empty(t, catalog.calls)
	})

	t.Run("publish flag", func(t *testing.T) {
		catalog := &fakeCatalog{}
		resolver := &fakeResolver{assets: map[string]*reconcile.AssetSnapshot{"img_1": testAsset("SKU-A", "")}}
		svc := newTestService(resolver, catalog, nil)

		result, err := svc.ProcessNotification(context.Background(), unit(t, "img_1", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, result.Status)
		assert.Equal(t, MsgFlagNotFound, result.Body.Error)
		assert.Empty(t, catalog.calls)
	})

	for name, products := range map[string][]*reconcile.ProductView{
		"no product":    nil,
		"many products": {testProduct("p-1", "SKU-A"), testProduct("p-2", "SKU-A")},
	} {
		t.Run(name, func(t *testing.T) {
			catalog := &fakeCatalog{products: products}
			journal := &memoryJournal{}
			resolver := &fakeResolver{assets: map[string]*reconcile.AssetSnapshot{"img_1": testAsset("SKU-A", "yes")}}
			svc := newTestService(resolver, catalog, journal)

			result, err := svc.ProcessNotification(context.Background(), unit(t, "img_1", nil))
			require.NoError(t, err)
			assert.Equal(t, 200, result.Status)
			require.NotNil(t, result.Body.NewAsset)
			assert.Equal(t, 404, result.Body.NewAsset.Status)
			assert.Equal(t, MsgProductNotFound, result.Body.NewAsset.Body.Error)

			raw, err := json.Marshal(result.Body.NewAsset.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"sku":"SKU-A","error":"Product not found"}`, string(raw))

			require.Len(t, journal.entries, 1)
			assert.Equal(t, metrics.ResultNotFound, journal.entries[0].Result)
			assert.Equal(t, 404, journal.entries[0].Status)
		})
	}
}

func TestProcessNotification_Idempotent(t *testing.T) {
	t.Run("publish", func(t *testing.T) {
		catalog := &fakeCatalog{products: []*reconcile.ProductView{testProduct("p-1", "SKU-A")}}
		resolver := &fakeResolver{assets: map[string]*reconcile.AssetSnapshot{"img_1": testAsset("SKU-A", "yes")}}
		svc := newTestService(resolver, catalog, nil)

		_, err := svc.ProcessNotification(context.Background(), unit(t, "img_1", nil))
		require.NoError(t, err)
		second, err := svc.ProcessNotification(context.Background(), unit(t, "img_1", nil))
		require.NoError(t, err)

		got := kinds(second.Body.NewAsset.Body.Actions)
		assert.NotContains(t, got, reconcile.ActionAddAsset)
		assert.NotContains(t, got, reconcile.ActionAddExternalImage)
		assert.NotContains(t, got, reconcile.ActionSetAttribute)
		assert.Len(t, catalog.product("p-1").MasterVariant.Assets, 1)
		assert.Len(t, catalog.product("p-1").MasterVariant.Images, 1)
	})

	t.Run("unpublish", func(t *testing.T) {
		product := testProduct("p-1", "SKU-A")
		product.MasterVariant.Assets = []reconcile.Asset{{ID: "a-1", Sources: []reconcile.AssetSource{{URI: "img_1"}}}}
		catalog := &fakeCatalog{products: []*reconcile.ProductView{product}}
		resolver := &fakeResolver{assets: map[string]*reconcile.AssetSnapshot{"img_1": testAsset("SKU-A", reconcile.FlagUnpublish)}}
		svc := newTestService(resolver, catalog, nil)

		_, err := svc.ProcessNotification(context.Background(), unit(t, "img_1", nil))
		require.NoError(t, err)
		second, err := svc.ProcessNotification(context.Background(), unit(t, "img_1", nil))
		require.NoError(t, err)

		assert.Empty(t, second.Body.NewAsset.Body.Actions)
		assert.Equal(t, []string{"locate:SKU-A", "update:p-1", "locate:SKU-A"}, catalog.calls)
	})
}

func TestProcessNotification_Errors(t *testing.T) {
	t.Run("malformed unit", func(t *testing.T) {
		svc := newTestService(&fakeResolver{}, &fakeCatalog{}, nil)
		_, err := svc.ProcessNotification(context.Background(), notification.Notification{})
		assert.ErrorIs(t, err, notification.ErrMalformed)
	})

	t.Run("resolver failure", func(t *testing.T) {
		upstream := &reconcile.UpstreamError{Service: "cloudinary", Err: errors.New("timeout")}
		svc := newTestService(&fakeResolver{err: upstream}, &fakeCatalog{}, nil)
		_, err := svc.ProcessNotification(context.Background(), unit(t, "img_1", nil))
		assert.True(t, reconcile.IsUpstream(err, "cloudinary"))
	})

	t.Run("version conflict", func(t *testing.T) {
		journal := &memoryJournal{}
		catalog := &fakeCatalog{
			products:  []*reconcile.ProductView{testProduct("p-1", "SKU-A")},
			updateErr: fmt.Errorf("product p-1: %w", reconcile.ErrVersionConflict),
		}
		resolver := &fakeResolver{assets: map[string]*reconcile.AssetSnapshot{"img_1": testAsset("SKU-A", "yes")}}
		svc := newTestService(resolver, catalog, journal)

		_, err := svc.ProcessNotification(context.Background(), unit(t, "img_1", nil))
		assert.ErrorIs(t, err, reconcile.ErrVersionConflict)
		require.Len(t, journal.entries, 1)
		assert.Equal(t, metrics.ResultConflict, journal.entries[0].Result)
	})

	t.Run("old product failure stops new product", func(t *testing.T) {
		old := testProduct("p-1", "SKU-A")
		old.MasterVariant.Assets = []reconcile.Asset{{ID: "a-1", Sources: []reconcile.AssetSource{{URI: "img_1"}}}}
		catalog := &fakeCatalog{
			products:  []*reconcile.ProductView{old, testProduct("p-2", "SKU-B")},
			updateErr: errors.New("boom"),
		}
		resolver := &fakeResolver{assets: map[string]*reconcile.AssetSnapshot{"img_1": testAsset("SKU-B", "yes")}}
		svc := newTestService(resolver, catalog, nil)

		_, err := svc.ProcessNotification(context.Background(), unit(t, "img_1", map[string]any{"sku": "SKU-A"}))
		assert.Error(t, err)
		assert.Equal(t, []string{"locate:SKU-A", "update:p-1"}, catalog.calls)
	})

	t.Run("journal failure is not fatal", func(t *testing.T) {
		catalog := &fakeCatalog{products: []*reconcile.ProductView{testProduct("p-1", "SKU-A")}}
		resolver := &fakeResolver{assets: map[string]*reconcile.AssetSnapshot{"img_1": testAsset("SKU-A", "yes")}}
		svc := newTestService(resolver, catalog, &memoryJournal{err: errors.New("disk full")})

		result, err := svc.ProcessNotification(context.Background(), unit(t, "img_1", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, result.Body.NewAsset.Status)
	})
}

func TestHandle(t *testing.T) {
	catalog := &fakeCatalog{products: []*reconcile.ProductView{testProduct("p-1", "SKU-A")}}
	resolver := &fakeResolver{assets: map[string]*reconcile.AssetSnapshot{"img_1": testAsset("SKU-A", "yes")}}
	svc := newTestService(resolver, catalog, nil)

	assert.NoError(t, svc.Handle(context.Background(), unit(t, "img_1", nil)))
	assert.NoError(t, svc.Handle(context.Background(), unit(t, "missing", nil)), "not found results are settled")

	err := svc.Handle(context.Background(), notification.Notification{})
	assert.True(t, queue.IsPermanent(err))

	catalog.updateErr = reconcile.ErrVersionConflict
	catalog.products = []*reconcile.ProductView{testProduct("p-2", "SKU-A")}
	err = svc.Handle(context.Background(), unit(t, "img_1", nil))
	assert.Error(t, err)
	assert.False(t, queue.IsPermanent(err))
}

func TestProcessNotification_Metrics(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	catalog := &fakeCatalog{products: []*reconcile.ProductView{testProduct("p-1", "SKU-A")}}
	resolver := &fakeResolver{assets: map[string]*reconcile.AssetSnapshot{"img_1": testAsset("SKU-A", "yes")}}
	svc := NewService(Dependencies{
		Resolver: resolver,
		Catalog:  catalog,
		Planner:  reconcile.NewPlanner(mapping),
		Metrics:  m,
		Logger:   zap.NewNop(),
	})

	_, err := svc.ProcessNotification(context.Background(), unit(t, "img_1", nil))
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(m.Registry(), "asset_sync_reconciliations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
