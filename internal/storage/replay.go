package storage

import (
	"context"
	"fmt"

	"github.com/vamuq999/oracle.vision.v4/internal/event"
)

// ReplayIntoRing reloads the journal tail into a status ring, so the
// console shows history from before the restart. Returns the highest
// sequence replayed (the controller continues numbering from there).
func ReplayIntoRing(ctx context.Context, j *Journal, ring *event.Ring) (uint64, error) {
	last, err := j.LastSeq(ctx)
	if err != nil {
		return 0, fmt.Errorf("journal last seq: %w", err)
	}
	if last == 0 {
		return 0, nil
	}

	// Only the ring-sized tail matters for display.
	from := uint64(1)
	if size := uint64(ring.Cap()); last > size {
		from = last - size + 1
	}

	events, err := j.LoadEvents(ctx, from)
	if err != nil {
		return 0, fmt.Errorf("journal load: %w", err)
	}
	for _, ev := range events {
		ring.Append(ev)
	}
	return last, nil
}
