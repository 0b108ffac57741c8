package portal

import (
	"log"
	"net/http"
	"strconv"

	"github.com/JobDeck-io/jobdeck/internal/auth"
	"github.com/JobDeck-io/jobdeck/internal/database"
	"github.com/JobDeck-io/jobdeck/internal/models"
	"github.com/go-chi/chi/v5"
)

func (p *Portal) handleHome(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := models.JobFilters{
		Search:   q.Get("search"),
		Location: q.Get("location"),
		JobType:  q.Get("job_type"),
		Company:  q.Get("company"),
	}

	jobs, err := p.db.ListJobs(filters)
	if err != nil {
		log.Printf("Error fetching jobs for listing page: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	options, err := p.db.FilterOptions()
	if err != nil {
		log.Printf("Error fetching filter options: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderTemplate(w, "home.html", "Job Listings", map[string]interface{}{
		"Jobs":    jobs,
		"Filters": filters,
		"Options": options,
	})
}

func (p *Portal) handleJobDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}

	job, err := p.db.GetJobByID(id)
	if err == database.ErrJobNotFound {
		w.WriteHeader(http.StatusNotFound)
		p.renderTemplate(w, "404.html", "Not Found", map[string]interface{}{
			"Path": r.URL.Path,
		})
		return
	}
	if err != nil {
		log.Printf("Error fetching job %d: %v", id, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderTemplate(w, "job.html", job.Title, map[string]interface{}{
		"Job": job,
	})
}

func (p *Portal) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	p.renderTemplate(w, "login.html", "Admin Login", map[string]interface{}{
		"Error": r.URL.Query().Get("error"),
	})
}

func (p *Portal) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/login?error=Invalid+form", http.StatusFound)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		http.Redirect(w, r, "/admin/login?error=Username+and+password+are+required", http.StatusFound)
		return
	}

	admin, err := p.auth.Login(username, password)
	if err == auth.ErrInvalidCredentials {
		http.Redirect(w, r, "/admin/login?error=Invalid+username+or+password", http.StatusFound)
		return
	}
	if err != nil {
		log.Printf("Login error: %v", err)
		http.Redirect(w, r, "/admin/login?error=Internal+error", http.StatusFound)
		return
	}

	token, expiresAt, err := p.auth.CreateSession(admin.ID)
	if err != nil {
		log.Printf("Error creating session: %v", err)
		http.Redirect(w, r, "/admin/login?error=Internal+error", http.StatusFound)
		return
	}
	p.auth.SetSessionCookie(w, token, expiresAt)

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (p *Portal) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := p.auth.Logout(auth.SessionTokenFromRequest(r)); err != nil {
		log.Printf("Error deleting session: %v", err)
	}
	p.auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

func (p *Portal) handleDashboard(w http.ResponseWriter, r *http.Request) {
	jobs, err := p.db.ListJobs(models.JobFilters{})
	if err != nil {
		log.Printf("Error fetching jobs for dashboard: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderTemplate(w, "dashboard.html", "Admin Dashboard", map[string]interface{}{
		"Jobs":  jobs,
		"Error": r.URL.Query().Get("error"),
	})
}

func (p *Portal) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin?error=Invalid+form", http.StatusFound)
		return
	}

	job := models.NewJob{
		Title:        r.FormValue("title"),
		Company:      r.FormValue("company"),
		Description:  r.FormValue("description"),
		CompanyLogo:  formPtr(r.FormValue("company_logo")),
		Location:     formPtr(r.FormValue("location")),
		JobType:      formPtr(r.FormValue("job_type")),
		SalaryRange:  formPtr(r.FormValue("salary_range")),
		Requirements: formPtr(r.FormValue("requirements")),
		FormLink:     formPtr(r.FormValue("form_link")),
		Portal:       formPtr(r.FormValue("portal")),
	}
	if err := job.Validate(); err != nil {
		http.Redirect(w, r, "/admin?error=Title%2C+company%2C+and+description+are+required", http.StatusFound)
		return
	}

	if _, err := p.db.CreateJob(job); err != nil {
		log.Printf("Error creating job: %v", err)
		http.Redirect(w, r, "/admin?error=Failed+to+create+job", http.StatusFound)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (p *Portal) handleEditPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}

	job, err := p.db.GetJobByID(id)
	if err == database.ErrJobNotFound {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("Error fetching job %d: %v", id, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderTemplate(w, "edit.html", "Edit Job", map[string]interface{}{
		"Job": job,
	})
}

func (p *Portal) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin?error=Invalid+form", http.StatusFound)
		return
	}

	// Empty form fields keep their stored values
	patch := models.JobPatch{
		Title:        formPtr(r.FormValue("title")),
		Company:      formPtr(r.FormValue("company")),
		Description:  formPtr(r.FormValue("description")),
		CompanyLogo:  formPtr(r.FormValue("company_logo")),
		Location:     formPtr(r.FormValue("location")),
		JobType:      formPtr(r.FormValue("job_type")),
		SalaryRange:  formPtr(r.FormValue("salary_range")),
		Requirements: formPtr(r.FormValue("requirements")),
		FormLink:     formPtr(r.FormValue("form_link")),
		Portal:       formPtr(r.FormValue("portal")),
	}

	if _, err := p.db.UpdateJob(id, patch); err != nil {
		log.Printf("Error updating job %d: %v", id, err)
		http.Redirect(w, r, "/admin?error=Failed+to+update+job", http.StatusFound)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (p *Portal) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}

	if _, err := p.db.DeleteJob(id); err != nil {
		log.Printf("Error deleting job %d: %v", id, err)
		http.Redirect(w, r, "/admin?error=Failed+to+delete+job", http.StatusFound)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func formPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
