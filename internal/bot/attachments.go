package bot

// Document mime types eligible for image enrichment. Anything else is
// silently ignored.
const (
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"
)

// attachmentCandidates collects the file references worth uploading, in
// priority order: the highest-resolution photo variant first, then an attached
// document if it is a JPEG or PNG. Returns zero, one, or two entries.
func attachmentCandidates(msg Incoming) []string {
	var candidates []string

	if n := len(msg.PhotoFileIDs); n > 0 {
		// Variants are ordered by resolution; the last one is the original.
		candidates = append(candidates, msg.PhotoFileIDs[n-1])
	}

	if msg.DocumentFileID != "" && (msg.DocumentMIME == mimeJPEG || msg.DocumentMIME == mimePNG) {
		candidates = append(candidates, msg.DocumentFileID)
	}

	return candidates
}
