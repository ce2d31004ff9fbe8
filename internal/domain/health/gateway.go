package health

import "context"

// Pinger is a reachability probe for one upstream dependency.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}
