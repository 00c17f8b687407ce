package audit

// Audit records who exported which chart.
type Audit interface {
	Write(*ExportData) error
}

type ExportData struct {
	Chart     int
	Format    string
	User      string
	Timestamp int64
}
