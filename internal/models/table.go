package models

// TableStatus is the occupancy state of a physical table
type TableStatus string

const (
	TableFree     TableStatus = "LIVRE"
	TableOccupied TableStatus = "OCUPADA"
)

// Table (mesa) as listed by /comandas/mesas
type Table struct {
	ID     int64       `json:"id"`
	Number int         `json:"numero"`
	Status TableStatus `json:"status"`
	TabID  int64       `json:"comandaId,omitempty"`
}

func (t Table) IsFree() bool {
	return t.Status == TableFree
}

// HasTab reports whether the table is occupied and linked to a running tab.
func (t Table) HasTab() bool {
	return t.Status == TableOccupied && t.TabID != 0
}
