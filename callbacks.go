package beacon

import "context"

// BeaconFunc is invoked once per recognized (or null, see Recognize) key
// discovered in a validated pair. Returning false tells the caller to
// stop the surrounding loop; this is a graceful shutdown signal, not an
// error.
type BeaconFunc func(ctx context.Context, matched [MemberSize]byte, challenge [8]byte, tag string, source string) (cont bool)

// ChannelFunc is invoked when the listener's host event channel becomes
// ready. Returning false stops the listener loop.
type ChannelFunc func(ctx context.Context) (cont bool)
