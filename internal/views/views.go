// Package views renders the HTML pages. Each page template is parsed
// together with the shared layout into its own set.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin/render"
	"github.com/yosssi/gohtml"

	"careconnect_web/internal/models"
	"careconnect_web/internal/session"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page is the data every template receives.
type Page struct {
	AppName string
	Tagline string
	Title   string
	Path    string
	Session *session.Session
	Nav     []NavItem
	Flashes []Flash
	Errors  map[string]string
	Form    interface{}
	Data    interface{}
}

func (p Page) SignedIn() bool {
	return p.Session.IsAuthenticated()
}

func (p Page) IsElder() bool {
	return p.Session.Role() == models.UserRoleElder
}

func (p Page) IsCaregiver() bool {
	return p.Session.Role() == models.UserRoleCaregiver
}

// FirstName of the signed-in user, "" when anonymous.
func (p Page) FirstName() string {
	if !p.SignedIn() {
		return ""
	}
	return p.Session.User.FirstName
}

func (p Page) ProfilePath() string {
	if !p.SignedIn() {
		return "/login"
	}
	return p.Session.User.ProfilePath()
}

// Renderer implements gin's render.HTMLRender.
type Renderer struct {
	pages  map[string]*template.Template
	pretty bool
}

var _ render.HTMLRender = (*Renderer)(nil)

// New parses the embedded templates. pretty indents the output with gohtml.
func New(pretty bool) (*Renderer, error) {
	layout, err := fs.ReadFile(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("listing page templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files)), pretty: pretty}
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")

		body, err := fs.ReadFile(templateFS, file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}

		t, err := template.New(name).Funcs(Funcs()).Parse(string(layout))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", name, err)
		}
		if _, err := t.Parse(string(body)); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

func (r *Renderer) Instance(name string, data any) render.Render {
	return pageRender{tmpl: r.pages[name], name: name, data: data, pretty: r.pretty}
}

// Static serves the embedded stylesheet and images.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

type pageRender struct {
	tmpl   *template.Template
	name   string
	data   any
	pretty bool
}

var htmlContentType = []string{"text/html; charset=utf-8"}

func (p pageRender) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if val := header["Content-Type"]; len(val) == 0 {
		header["Content-Type"] = htmlContentType
	}
}

func (p pageRender) Render(w http.ResponseWriter) error {
	p.WriteContentType(w)
	if p.tmpl == nil {
		return fmt.Errorf("unknown page %q", p.name)
	}

	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, "layout", p.data); err != nil {
		return fmt.Errorf("executing %s: %w", p.name, err)
	}

	out := buf.Bytes()
	if p.pretty {
		out = gohtml.FormatBytes(out)
	}
	_, err := w.Write(out)
	return err
}
