package state

import (
	"context"

	"anoa.com/leadercircle/pkg/outcome"
)

// Load is the shape every load* operation shares: mark field loading, call
// the repository, then write the result unless a newer load of the same
// field has started meanwhile.
func Load[S, T any](
	ctx context.Context,
	b *Base[S],
	field string,
	call func(ctx context.Context) outcome.Outcome[T],
	start func(S) S,
	done func(S, T) S,
	fail func(S, string) S,
) outcome.Outcome[T] {
	ctx, ticket, release := b.Begin(ctx, field)
	defer release()

	b.Update(start)
	result := call(ctx)

	b.Apply(ticket, func(s S) S {
		if value, ok := result.Value(); ok {
			return done(s, value)
		}
		return fail(s, result.Message())
	})
	return result
}

// Submit is the mutation counterpart of Load. Mutations never supersede
// each other, so the result is always written.
func Submit[S, T any](
	ctx context.Context,
	b *Base[S],
	call func(ctx context.Context) outcome.Outcome[T],
	start func(S) S,
	done func(S, T) S,
	fail func(S, string) S,
) outcome.Outcome[T] {
	ctx, release := b.Bind(ctx)
	defer release()

	b.Update(start)
	result := call(ctx)

	b.Update(func(s S) S {
		if value, ok := result.Value(); ok {
			return done(s, value)
		}
		return fail(s, result.Message())
	})
	return result
}
