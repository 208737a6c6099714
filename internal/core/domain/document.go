package domain

import "time"

// DocumentInfo records one successful ingestion. Re-uploading the
// same filename replaces the previous record.
type DocumentInfo struct {
	// Filename identifies the document; also the chunk Source.
	Filename string

	// Chunks is the number of chunks the document produced.
	Chunks int

	// UploadedAt is when the ingestion completed.
	UploadedAt time.Time
}

// UploadReceipt is returned to the caller after a successful
// ingestion.
type UploadReceipt struct {
	// Filename is the ingested document's name.
	Filename string

	// Chunks is the number of chunks stored.
	Chunks int
}
