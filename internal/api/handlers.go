package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/JobDeck-io/jobdeck/internal/database"
	"github.com/JobDeck-io/jobdeck/internal/models"
	"github.com/go-chi/chi/v5"
)

const maxLogoSize = 5 << 20 // 5 MiB

func (api *Api) ListJobsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := models.JobFilters{
		Search:   q.Get("search"),
		Location: q.Get("location"),
		JobType:  q.Get("job_type"),
		Company:  q.Get("company"),
	}

	jobs, err := api.db.ListJobs(filters)
	if err != nil {
		log.Printf("Error fetching jobs: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch jobs")
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	respondJSON(w, http.StatusOK, jobs)
}

func (api *Api) CreateJobHandler(w http.ResponseWriter, r *http.Request) {
	var req models.NewJob
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "Title, company, and description are required")
		return
	}

	job, err := api.db.CreateJob(req)
	if err != nil {
		log.Printf("Error creating job: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	respondJSON(w, http.StatusCreated, job)
}

func (api *Api) GetJobHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := api.db.GetJobByID(id)
	if err == database.ErrJobNotFound {
		respondError(w, http.StatusNotFound, "Job not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching job %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch job")
		return
	}

	respondJSON(w, http.StatusOK, job)
}

func (api *Api) UpdateJobHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var patch models.JobPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	job, err := api.db.UpdateJob(id, patch)
	if err == database.ErrJobNotFound {
		respondError(w, http.StatusNotFound, "Job not found")
		return
	}
	if err != nil {
		log.Printf("Error updating job %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to update job")
		return
	}

	respondJSON(w, http.StatusOK, job)
}

func (api *Api) DeleteJobHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	deleted, err := api.db.DeleteJob(id)
	if err != nil {
		log.Printf("Error deleting job %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to delete job")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Job not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Job deleted successfully"})
}

func (api *Api) GetFiltersHandler(w http.ResponseWriter, r *http.Request) {
	options, err := api.db.FilterOptions()
	if err != nil {
		log.Printf("Error fetching filter options: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch filter options")
		return
	}

	respondJSON(w, http.StatusOK, options)
}

func (api *Api) UploadLogoHandler(w http.ResponseWriter, r *http.Request) {
	if api.uploads == nil {
		respondError(w, http.StatusServiceUnavailable, "Logo uploads are not configured")
		return
	}

	if err := r.ParseMultipartForm(maxLogoSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Logo file is required")
		return
	}
	defer file.Close()

	result, err := api.uploads.UploadLogo(r.Context(), header.Filename, file)
	if err != nil {
		log.Printf("Error uploading logo: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to upload logo")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"url": result.URL,
		"key": result.Key,
	})
}
