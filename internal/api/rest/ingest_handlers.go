package rest

import (
	"encoding/json"
	"net/http"

	"github.com/mhower/cu-basketball-analytics/internal/ingest/jobs"
)

// IngestHandler proxies API calls to the ingest job service.
type IngestHandler struct {
	service *jobs.Service
}

// NewIngestHandler wires the REST layer to the ingest job service.
func NewIngestHandler(service *jobs.Service) *IngestHandler {
	return &IngestHandler{service: service}
}

type apiIngestRequest struct {
	Directory string   `json:"directory"`
	Files     []string `json:"files"`
}

// HandleIngestRequest handles POST /api/v1/ingest
func (h *IngestHandler) HandleIngestRequest(w http.ResponseWriter, r *http.Request) {
	var req apiIngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	job, err := h.service.Enqueue(r.Context(), jobs.Request{
		Directory: req.Directory,
		Files:     req.Files,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to enqueue ingest job", err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job": jobPayload(job),
	})
}

// HandleIngestStatus handles GET /api/v1/ingest/status
func (h *IngestHandler) HandleIngestStatus(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetStatus(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch status", err)
		return
	}

	respondJSON(w, http.StatusOK, buildStatusPayload(summary))
}

func buildStatusPayload(summary *jobs.StatusSummary) map[string]interface{} {
	response := map[string]interface{}{
		"status":  "idle",
		"message": "No active jobs",
		"history": []map[string]interface{}{},
	}

	if summary.ActiveJob != nil {
		response["status"] = summary.ActiveJob.Status
		if summary.ActiveJob.StatusMessage.Valid {
			response["message"] = summary.ActiveJob.StatusMessage.String
		}
		response["active_job"] = jobPayload(summary.ActiveJob)
	}

	history := make([]map[string]interface{}, 0, len(summary.History))
	for _, job := range summary.History {
		history = append(history, jobPayload(job))
	}

	response["history"] = history
	return response
}

func jobPayload(job *jobs.Job) map[string]interface{} {
	if job == nil {
		return nil
	}

	payload := map[string]interface{}{
		"job_id":           job.JobID,
		"job_type":         job.JobType,
		"status":           job.Status,
		"progress_current": job.ProgressCurrent,
		"progress_total":   job.ProgressTotal,
		"created_at":       job.CreatedAt,
		"updated_at":       job.UpdatedAt,
	}

	if job.StatusMessage.Valid {
		payload["status_message"] = job.StatusMessage.String
	}
	if job.Directory != "" {
		payload["directory"] = job.Directory
	}
	if len(job.Files) > 0 {
		payload["files"] = []string(job.Files)
	}
	if job.StartedAt.Valid {
		payload["started_at"] = job.StartedAt.Time
	}
	if job.CompletedAt.Valid {
		payload["completed_at"] = job.CompletedAt.Time
	}
	if job.LastError.Valid {
		payload["last_error"] = job.LastError.String
	}

	return payload
}
