package livestatsevents

import (
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// SnapshotUpdated carries a freshly recomputed player aggregate to remote
// scoreboard consumers. Payloads are full snapshots, never deltas, so
// delivery is idempotent.
const SnapshotUpdated = "livestats.snapshot.updated.v1"

// SnapshotUpdatedPayload is the wire form of a pushed aggregate.
type SnapshotUpdatedPayload struct {
	Stats       sharedtypes.PlayerStats `json:"stats"`
	TotalPoints int                     `json:"total_points"`
	TotalFaults int                     `json:"total_faults"`
}
