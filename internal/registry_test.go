package internal_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modkit/internal"
	"github.com/dmitrymomot/modkit/pkg/eventbus"
	"github.com/dmitrymomot/modkit/pkg/hookchain"
	"github.com/dmitrymomot/modkit/pkg/middleware"
)

func TestRegistryApplyOnce(t *testing.T) {
	t.Parallel()

	t.Run("hooks section", func(t *testing.T) {
		t.Parallel()

		reg := internal.NewRegistry()
		require.NoError(t, reg.AddHook("server.beforeStart", func(ctx context.Context, args []any) ([]any, error) {
			return args, nil
		}))

		chain := hookchain.New()
		require.NoError(t, reg.ApplyHooks(chain))
		require.Equal(t, 1, chain.HandlerCount("server.beforeStart"))

		require.ErrorIs(t, reg.ApplyHooks(hookchain.New()), internal.ErrAlreadyApplied)
	})

	t.Run("events section", func(t *testing.T) {
		t.Parallel()

		reg := internal.NewRegistry()
		require.NoError(t, reg.AddEvent("user.created", func(ctx context.Context, args ...any) {}))

		bus := eventbus.New()
		require.NoError(t, reg.ApplyEvents(bus))
		require.Equal(t, 1, bus.ListenerCount("user.created"))

		require.ErrorIs(t, reg.ApplyEvents(eventbus.New()), internal.ErrAlreadyApplied)
	})

	t.Run("routes section", func(t *testing.T) {
		t.Parallel()

		reg := internal.NewRegistry()
		require.NoError(t, reg.RegisterRoute(internal.RouteDef{
			Method:  "GET",
			Path:    "/ping",
			Handler: func(c internal.Context) error { return nil },
		}))

		var applied []string
		require.NoError(t, reg.ApplyRoutes(func(def internal.RouteDef) {
			applied = append(applied, def.Method+" "+def.Path)
		}))
		require.Equal(t, []string{"GET /ping"}, applied)

		require.ErrorIs(t, reg.ApplyRoutes(func(internal.RouteDef) {}), internal.ErrAlreadyApplied)
	})

	t.Run("middlewares section", func(t *testing.T) {
		t.Parallel()

		reg := internal.NewRegistry()
		require.NoError(t, reg.Use(func(next internal.HandlerFunc) internal.HandlerFunc { return next }))
		require.NoError(t, reg.UseHTTP(nil)) // nil is ignored

		var routerCount int
		chain := middleware.NewChain()
		require.NoError(t, reg.ApplyMiddlewares(func(internal.Middleware) { routerCount++ }, chain))
		require.Equal(t, 1, routerCount)
		require.Zero(t, chain.Len())

		require.ErrorIs(t, reg.ApplyMiddlewares(func(internal.Middleware) {}, chain), internal.ErrAlreadyApplied)
	})
}

func TestRegistryOrderPreserved(t *testing.T) {
	t.Parallel()

	reg := internal.NewRegistry()
	for _, path := range []string{"/a", "/b", "/c"} {
		require.NoError(t, reg.RegisterRoute(internal.RouteDef{
			Method:  "GET",
			Path:    path,
			Handler: func(c internal.Context) error { return nil },
		}))
	}

	var order []string
	require.NoError(t, reg.ApplyRoutes(func(def internal.RouteDef) {
		order = append(order, def.Path)
	}))
	require.Equal(t, []string{"/a", "/b", "/c"}, order)
}

func TestRegistryFreeze(t *testing.T) {
	t.Parallel()

	reg := internal.NewRegistry()
	reg.Freeze()

	require.ErrorIs(t, reg.AddHook("server.onReady", func(ctx context.Context, args []any) ([]any, error) {
		return args, nil
	}), internal.ErrRegistryFrozen)

	require.ErrorIs(t, reg.AddEvent("topic", func(ctx context.Context, args ...any) {}), internal.ErrRegistryFrozen)

	require.ErrorIs(t, reg.RegisterRoute(internal.RouteDef{
		Method:  "GET",
		Path:    "/late",
		Handler: func(c internal.Context) error { return nil },
	}), internal.ErrRegistryFrozen)

	require.ErrorIs(t, reg.Use(func(next internal.HandlerFunc) internal.HandlerFunc { return next }), internal.ErrRegistryFrozen)
}

func TestRegistryRejectsNilRouteHandler(t *testing.T) {
	t.Parallel()

	reg := internal.NewRegistry()
	require.Error(t, reg.RegisterRoute(internal.RouteDef{Method: "GET", Path: "/broken"}))
}

func TestRegistryCounts(t *testing.T) {
	t.Parallel()

	reg := internal.NewRegistry()
	require.NoError(t, reg.AddHook("app.onRequest", func(ctx context.Context, args []any) ([]any, error) {
		return args, nil
	}))
	require.NoError(t, reg.AddEvent("topic", func(ctx context.Context, args ...any) {}))
	require.NoError(t, reg.Use(func(next internal.HandlerFunc) internal.HandlerFunc { return next }))

	hooks, events, routes, mws := reg.Counts()
	require.Equal(t, 1, hooks)
	require.Equal(t, 1, events)
	require.Zero(t, routes)
	require.Equal(t, 1, mws)
}
