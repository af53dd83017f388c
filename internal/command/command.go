package command

import "context"

type Client interface {
	// HandleCommand consumes bot updates until ctx is cancelled.
	HandleCommand(ctx context.Context) error
}
