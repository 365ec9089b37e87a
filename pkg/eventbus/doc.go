// Package eventbus provides a named-topic publish/subscribe broadcaster
// with fire-and-forget delivery.
//
// Topics are exact-match strings. Each topic owns an ordered list of
// listeners; within a single publish the listeners run sequentially in
// registration order, but the publisher never waits for them and never
// sees their failures. A panicking listener is logged and does not stop
// the listeners after it.
//
//	bus := eventbus.New(eventbus.WithLogger(log))
//	bus.Subscribe("user.created", func(ctx context.Context, args ...any) {
//	    // notify, index, warm caches, ...
//	})
//	bus.Publish(ctx, "user.created", user)
//
// Compare with package hookchain: a hook stage is a sequential transform
// pipeline whose failures propagate to the caller, while a bus topic is a
// fan-out broadcast whose failures are swallowed. Use the bus for
// side effects, the chain for request/lifecycle processing.
//
// Unsubscribe matches listeners by function identity. Two distinct
// closures created from the same function literal share an identity, so
// keep a reference to the exact Listener value you subscribed if you plan
// to remove it later.
package eventbus
