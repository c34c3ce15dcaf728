package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"f1dash/internal/resource"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

// layout wraps every page; pages are rendered into it with {{embed}}.
const layout = "layout"

// newViews returns the template engine for the embedded pages.
func newViews() *html.Engine {
	pages, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(pages), ".html")
	engine.AddFunc("screens", resource.All)
	engine.AddFunc("add", func(a, b int) int { return a + b })
	return engine
}

type dashboardPage struct {
	Columns       []string
	Rows          [][]string
	DriversLoaded bool
	WinsSVG       template.HTML
	PointsSVG     template.HTML
}

type listRow struct {
	ID    string
	Cells []string
}

type listPage struct {
	Screen  resource.Screen
	Headers []string
	Rows    []listRow
	Total   int
	Page    int
	Pages   int
	Created string
	Deleted string
	Error   string
}

type formPage struct {
	Screen resource.Screen
	Values map[string]string
	Error  string
}

type errorPage struct {
	Status  int
	Message string
}

// render writes page with the given status inside the layout.
func render(c *fiber.Ctx, status int, page string, data any) error {
	return c.Status(status).Render(page, data, layout)
}
