package report

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/scamsentry/scamsentry-api/internal/pkg/response"
	"github.com/scamsentry/scamsentry-api/internal/pkg/storage"
)

// evidenceUploadResult reports the outcome per file. Individual upload
// failures are non-fatal; the submission proceeds without those files.
type evidenceUploadResult struct {
	Uploaded []*storage.UploadResult `json:"uploaded"`
	Failed   []failedUpload          `json:"failed,omitempty"`
}

type failedUpload struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// UploadEvidence handles POST /evidence (multipart, field "files").
// Up to 5 files, 5MB each, images or PDF.
func (h *Handler) UploadEvidence(w http.ResponseWriter, r *http.Request) {
	if h.evidence == nil {
		response.Error(w, http.StatusServiceUnavailable, "EVIDENCE_DISABLED",
			"Evidence uploads are not configured")
		return
	}

	// One extra MB of headroom for multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, (storage.MaxEvidenceFiles*storage.MaxEvidenceSize)+1024*1024)
	if err := r.ParseMultipartForm(storage.MaxEvidenceSize); err != nil {
		response.BadRequest(w, "Invalid multipart body")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		response.BadRequest(w, "No files provided")
		return
	}
	if len(files) > storage.MaxEvidenceFiles {
		response.BadRequest(w, "Too many files (max 5)")
		return
	}

	result := evidenceUploadResult{Uploaded: []*storage.UploadResult{}}

	for _, fh := range files {
		file, err := fh.Open()
		if err != nil {
			result.Failed = append(result.Failed, failedUpload{Filename: fh.Filename, Reason: "could not read file"})
			continue
		}

		contentType := fh.Header.Get("Content-Type")
		uploaded, err := h.evidence.Upload(r.Context(), file, fh.Filename, contentType, fh.Size)
		file.Close()
		if err != nil {
			log.Warn().Err(err).Str("filename", fh.Filename).Msg("Evidence upload failed")
			result.Failed = append(result.Failed, failedUpload{Filename: fh.Filename, Reason: err.Error()})
			continue
		}

		result.Uploaded = append(result.Uploaded, uploaded)

		// Queue the object for thumbnail processing. Best effort: a
		// failed bookkeeping row only costs the thumbnail.
		if h.repo != nil {
			evidence := &EvidenceFile{
				ID:        uuid.New(),
				ObjectKey: uploaded.Key,
				MimeType:  uploaded.MimeType,
				SizeBytes: uploaded.Size,
				Processed: false,
				CreatedAt: time.Now(),
			}
			if err := h.repo.InsertEvidence(r.Context(), evidence); err != nil {
				log.Error().Err(err).Str("key", uploaded.Key).Msg("Failed to record evidence file")
			}
		}
	}

	response.OK(w, result)
}
