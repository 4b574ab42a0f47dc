package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"shoulders/internal/kube/kubefake"
	"shoulders/pkg/apis/shoulders/v1alpha1"
)

func TestDynamicStore_ApplyListDelete(t *testing.T) {
	ctx := context.Background()
	store := NewDynamicStore(kubefake.NewDynamicClient())

	app, err := NewWebApplication(AppOptions{Name: "web", Namespace: "team-a", Image: "nginx:1.27"})
	require.NoError(t, err)
	desired, err := ToUnstructured(app)
	require.NoError(t, err)
	ref := RefFor(v1alpha1.WebApplicationKind, "team-a", "web")

	out, err := Apply(ctx, store, ref, desired)
	require.NoError(t, err)
	assert.Equal(t, ActionCreated, out.Action)

	out, err = Apply(ctx, store, ref, desired)
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, out.Action)

	list, err := store.List(ctx, RefFor(v1alpha1.WebApplicationKind, "team-a", ""))
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "web", list.Items[0].GetName())

	require.NoError(t, store.Delete(ctx, ref))
	_, err = store.Get(ctx, ref)
	assert.True(t, apierrors.IsNotFound(err))
}

func TestDynamicStore_ClusterScoped(t *testing.T) {
	ctx := context.Background()
	store := NewDynamicStore(kubefake.NewDynamicClient())

	ref := RefFor(v1alpha1.WorkspaceKind, "ignored", "team-a")
	assert.Empty(t, ref.Namespace)

	_, err := Apply(ctx, store, ref, workspaceManifest(t, "team-a"))
	require.NoError(t, err)

	got, err := store.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "Workspace", got.GetKind())
}
