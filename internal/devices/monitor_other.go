//go:build !linux

package devices

import "context"

// listenUEvents has no event source outside Linux; it waits for ctx.
func listenUEvents(ctx context.Context, _ chan<- uevent) error {
	<-ctx.Done()
	return nil
}
