package refdata

// Lookup is a name-keyed reference row. Activity types and blood-test units
// share this shape and differ only in the table they live in.
type Lookup struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Input is the create/update payload for a lookup row.
type Input struct {
	Name string `json:"name"`
}
