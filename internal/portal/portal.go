package portal

import (
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/JobDeck-io/jobdeck/internal/auth"
	"github.com/JobDeck-io/jobdeck/internal/database"
	"github.com/go-chi/chi/v5"
)

// Portal serves the public listing pages and the admin dashboard
type Portal struct {
	templates map[string]*template.Template
	db        *database.DB
	auth      *auth.Service
}

func New(db *database.DB, authService *auth.Service) (*Portal, error) {
	templates := make(map[string]*template.Template)

	templateDir := "templates/portal"

	pages, err := fs.Glob(os.DirFS(templateDir), "*.html")
	if err != nil {
		log.Printf("Error finding templates: %v", err)
		return nil, err
	}

	// Each page is parsed together with the base layout
	for _, page := range pages {
		if page == "base.html" {
			continue
		}

		ts, err := template.ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, page),
		)
		if err != nil {
			log.Printf("Error parsing template %s: %v", page, err)
			return nil, err
		}
		templates[page] = ts
	}

	return &Portal{
		templates: templates,
		db:        db,
		auth:      authService,
	}, nil
}

func (p *Portal) Routes() http.Handler {
	r := chi.NewRouter()

	fileServer := http.FileServer(http.Dir("static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Public pages
	r.Get("/", p.handleHome)
	r.Get("/job/{id}", p.handleJobDetail)

	// Admin login flow
	r.Get("/admin/login", p.handleLoginPage)
	r.Post("/admin/login", p.handleLoginPost)
	r.Post("/admin/logout", p.handleLogout)

	// Admin dashboard
	r.Group(func(r chi.Router) {
		r.Use(p.requireAdmin)

		r.Get("/admin", p.handleDashboard)
		r.Post("/admin/jobs", p.handleCreateJob)
		r.Get("/admin/jobs/{id}/edit", p.handleEditPage)
		r.Post("/admin/jobs/{id}", p.handleUpdateJob)
		r.Post("/admin/jobs/{id}/delete", p.handleDeleteJob)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		p.renderTemplate(w, "404.html", "Not Found", map[string]interface{}{
			"Path": r.URL.Path,
		})
	})

	return r
}

func (p *Portal) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.SessionTokenFromRequest(r)
		if _, err := p.auth.AdminFromSession(token); err != nil {
			if token != "" {
				p.auth.ClearSessionCookie(w)
			}
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (p *Portal) renderTemplate(w http.ResponseWriter, name, title string, data map[string]interface{}) {
	ts, ok := p.templates[name]
	if !ok {
		log.Printf("Template %s not found", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = map[string]interface{}{}
	}
	data["Title"] = title

	if err := ts.ExecuteTemplate(w, "base", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}
