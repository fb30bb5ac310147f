package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// Shutdown stops s gracefully and forces it closed once ctx is done, since
// open health Watch streams never end on their own. It reports whether the
// graceful stop finished in time.
func Shutdown(ctx context.Context, s *grpc.Server) bool {
	stopped := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return true
	case <-ctx.Done():
		s.Stop()
		<-stopped
		return false
	}
}
