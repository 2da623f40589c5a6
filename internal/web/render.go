package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/2beens/workouttracker/internal/users"
	"github.com/2beens/workouttracker/pkg"

	log "github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageNames = []string{
	"dashboard",
	"profile",
	"login",
	"register",
	"admin",
	"admin_user",
	"error",
}

// Page is the data every template receives. Data holds the page specific part.
type Page struct {
	Title   string
	User    *users.User
	Flashes []string
	Data    any
}

type Renderer struct {
	cookies *CookieStore
	pages   map[string]*template.Template
}

var funcs = template.FuncMap{
	"num": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	},
	"minutes": func(v any) string {
		switch m := v.(type) {
		case float64:
			return fmt.Sprintf("%.1f", m)
		case *float64:
			if m == nil {
				return "-"
			}
			return fmt.Sprintf("%.1f", *m)
		}
		return "-"
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

func NewRenderer(cookies *CookieStore) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").
			Funcs(funcs).
			ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}

	return &Renderer{
		cookies: cookies,
		pages:   pages,
	}, nil
}

// Render executes the named page and writes it with status. Pending flash
// messages are consumed and shown on the page.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, page Page, status int) {
	t, ok := r.pages[name]
	if !ok {
		log.Errorf("render: unknown page [%s]", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	page.Flashes = append(page.Flashes, r.cookies.Flashes(w, req)...)

	var buf bytes.Buffer
	if err := t.Execute(&buf, page); err != nil {
		log.Errorf("render page [%s]: %s", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.HTML, buf.Bytes(), status)
}

// Error renders the generic error page.
func (r *Renderer) Error(w http.ResponseWriter, req *http.Request, user *users.User, message string, status int) {
	r.Render(w, req, "error", Page{
		Title: "Error",
		User:  user,
		Data:  message,
	}, status)
}

// Redirect stores message as a flash (when not empty) and redirects with 303.
func (r *Renderer) Redirect(w http.ResponseWriter, req *http.Request, url, message string) {
	if message != "" {
		r.cookies.AddFlash(w, req, message)
	}
	http.Redirect(w, req, url, http.StatusSeeOther)
}

func (r *Renderer) Cookies() *CookieStore {
	return r.cookies
}
