package postgres

import "time"

type statsTableModel struct {
	ID          int64     `db:"id"`
	Competition string    `db:"competition"`
	Kind        string    `db:"kind"`
	Season      string    `db:"season"`
	Category    string    `db:"category"`
	Perspective string    `db:"perspective"`
	Payload     []byte    `db:"payload"`
	ContentHash string    `db:"content_hash"`
	RowCount    int       `db:"row_count"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type statsTableInsertModel struct {
	Competition string    `db:"competition"`
	Kind        string    `db:"kind"`
	Season      string    `db:"season"`
	Category    string    `db:"category"`
	Perspective string    `db:"perspective"`
	Payload     string    `db:"payload"`
	ContentHash string    `db:"content_hash"`
	RowCount    int       `db:"row_count"`
	UpdatedAt   time.Time `db:"updated_at"`
}
