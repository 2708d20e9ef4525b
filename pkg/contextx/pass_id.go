package contextx

import "context"

// PassID identifies one scoring pass (crawl + sync of both tables).
type PassID string

type contextKeyPassID struct{}

func (p PassID) String() string {
	return string(p)
}

func WithPassID(ctx context.Context, passID PassID) context.Context {
	return context.WithValue(ctx, contextKeyPassID{}, passID)
}

func PassIDFromContext(ctx context.Context) (PassID, error) {
	return valueFromContext[PassID](ctx, contextKeyPassID{}, "pass id")
}
