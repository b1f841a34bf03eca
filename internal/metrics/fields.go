package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrRoute    = "route"
	AttrStatus   = "status"
	AttrSource   = "source"
	AttrFilename = "filename"
	AttrGameID   = "game_id"
)
