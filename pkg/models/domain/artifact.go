package domain

type ExportFormat string

const (
	FormatSpreadsheet ExportFormat = "xlsx"
	FormatDocument    ExportFormat = "docx"
	FormatFlatFile    ExportFormat = "csv"
)

// ExportArtifact is an opaque rendered payload handed back to the
// delivery layer. Produced fresh per export call, never mutated.
type ExportArtifact struct {
	Format   ExportFormat
	MIME     string
	Filename string
	Content  []byte
}
