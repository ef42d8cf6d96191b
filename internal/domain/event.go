package domain

import "encoding/json"

// ChangeEvent is one row-change notification from the database, relayed to
// connected clients so they can refresh stale table views.
type ChangeEvent struct {
	Event string          `json:"event"` // INSERT, UPDATE, DELETE
	Table string          `json:"table"`
	Row   json.RawMessage `json:"row"`
}
