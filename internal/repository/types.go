package repository

// Setting mirrors one persisted key-value pair.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt int64
}
