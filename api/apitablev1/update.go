package apitablev1

import (
	"github.com/google/uuid"

	"github.com/fulldump/virtualtable/coordinator"
	"github.com/fulldump/virtualtable/reconcile"
)

// UpdateResponse is the wire form of an applied update. Lists are never null so
// clients can iterate them blindly.
type UpdateResponse struct {
	Id            string           `json:"id"`
	Generation    uint64           `json:"generation"`
	FullReload    bool             `json:"fullReload"`
	Deletes       []int            `json:"deletes"`
	Inserts       []int            `json:"inserts"`
	Moves         []reconcile.Move `json:"moves"`
	Updates       []int            `json:"updates"`
	ContentHeight float64          `json:"contentHeight"`
	ScrollOffset  float64          `json:"scrollOffset"`
	Anchored      bool             `json:"anchored"`
}

func newUpdateResponse(u coordinator.Update) *UpdateResponse {
	return &UpdateResponse{
		Id:            uuid.NewString(),
		Generation:    u.Generation,
		FullReload:    u.ChangeSet.FullReload,
		Deletes:       orEmpty(u.ChangeSet.Deletes),
		Inserts:       orEmpty(u.ChangeSet.Inserts),
		Moves:         orEmpty(u.ChangeSet.Moves),
		Updates:       orEmpty(u.ChangeSet.Updates),
		ContentHeight: u.ContentHeight,
		ScrollOffset:  u.ScrollOffset,
		Anchored:      u.Anchored,
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
