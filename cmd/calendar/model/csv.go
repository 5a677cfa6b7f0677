package model

// EventCSV is one row of the import/export CSV format.
type EventCSV struct {
	Title      string `csv:"title"`
	Head       string `csv:"head"`
	Importance string `csv:"importance"`
	Location   string `csv:"location"`
	StartTime  string `csv:"start_time"`
	EndTime    string `csv:"end_time"`
}
