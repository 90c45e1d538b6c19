// Package delivery defines the contract every inbound transport implements.
package delivery

import "context"

// Delivery is a serving surface (HTTP today) managed by the application
// lifecycle. Serve blocks until the server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
