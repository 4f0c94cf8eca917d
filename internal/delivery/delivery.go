// Package delivery defines the contract every transport server implements.
package delivery

import "context"

// Delivery is a long-running server (HTTP, worker, etc.) started by the
// composition root.
type Delivery interface {
	Serve(ctx context.Context) error
}
