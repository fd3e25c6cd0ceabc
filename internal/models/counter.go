package models

// Counter holds the last issued sequence value for one entity type.
type Counter struct {
	Name string `bson:"_id" json:"_id"`
	Seq  int64  `bson:"seq" json:"seq"`
}

// CounterStart is the value a fresh counter holds before its first increment.
const CounterStart = 1000

// Counter names and the prefixes of the human-readable IDs they back.
const (
	CounterAlumni      = "alumni"
	CounterAdmin       = "admin"
	CounterEvent       = "event"
	CounterReservation = "reservation"
	CounterPhoto       = "photo"
)

var IDPrefixes = map[string]string{
	CounterAlumni:      "A",
	CounterAdmin:       "AD",
	CounterEvent:       "E",
	CounterReservation: "R",
	CounterPhoto:       "P",
}
