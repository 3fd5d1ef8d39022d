package database

import "time"

// Invocation is one journaled call of an external ImageMagick tool
type Invocation struct {
	ID           string    `db:"id" json:"id"`
	Operation    string    `db:"operation" json:"operation"`
	Args         []string  `db:"args" json:"args"`           // full argument vector, executable first
	ExitCode     int       `db:"exit_code" json:"exitCode"`  // -1 when no process ran
	ErrorKind    string    `db:"error_kind" json:"errorKind,omitempty"`
	ErrorMessage string    `db:"error_message" json:"errorMessage,omitempty"`
	DurationMs   int64     `db:"duration_ms" json:"durationMs"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
