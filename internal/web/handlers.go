package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"

	"f1dash/internal/api"
	"f1dash/internal/chart"
	"f1dash/internal/resource"

	"github.com/gofiber/fiber/v2"
)

const chartWidth = 720

// dashboard renders GET /. Both fetches run at once; a failed fetch leaves
// its panel empty.
func (s *server) dashboard(c *fiber.Ctx) error {
	drivers, standings := s.fetchDashboard(c.UserContext())

	page := dashboardPage{
		Columns:       resource.Labels(resource.TopDriversColumns),
		Rows:          resource.DriverWinsRows(drivers),
		DriversLoaded: drivers != nil,
	}
	var err error
	if page.WinsSVG, err = svg(chart.DriverWins(drivers)); err != nil {
		return err
	}
	if page.PointsSVG, err = svg(chart.ConstructorPoints(standings)); err != nil {
		return err
	}
	return render(c, fiber.StatusOK, "dashboard", page)
}

// fetchDashboard issues the two dashboard requests concurrently, one each.
func (s *server) fetchDashboard(ctx context.Context) ([]api.DriverWinRecord, []api.ConstructorStanding) {
	var (
		wg        sync.WaitGroup
		drivers   []api.DriverWinRecord
		standings []api.ConstructorStanding
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		d, err := s.source.TopDriversByWins(ctx)
		if err != nil {
			s.logger.Error("load top drivers by wins", "err", err)
			return
		}
		drivers = d
	}()
	go func() {
		defer wg.Done()
		st, err := s.source.ConstructorStandings(ctx)
		if err != nil {
			s.logger.Error("load constructor standings", "err", err)
			return
		}
		standings = st
	}()
	wg.Wait()
	return drivers, standings
}

func svg(c *chart.BarChart) (template.HTML, error) {
	var b strings.Builder
	if err := chart.RenderSVG(&b, c, chartWidth); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return template.HTML(b.String()), nil
}

// list renders GET /:resource?page=N.
func (s *server) list(c *fiber.Ctx) error {
	screen, err := lookupScreen(c)
	if err != nil {
		return err
	}
	params := api.ListParams{Page: c.QueryInt("page", 1)}.Normalize()

	page := listPage{
		Screen:  screen,
		Page:    params.Page,
		Created: c.Query("created"),
		Deleted: c.Query("deleted"),
		Headers: screen.Headers(),
	}
	res, err := s.source.GetList(c.UserContext(), screen.Resource, params)
	if err != nil {
		s.logger.Error("load list", "resource", screen.Resource, "page", params.Page, "err", err)
		page.Error = errorText(err)
		return render(c, upstreamStatus(err), "list", page)
	}

	page.Total = res.Total
	page.Pages = max(1, (res.Total+params.PerPage-1)/params.PerPage)
	for _, r := range res.Records {
		page.Rows = append(page.Rows, listRow{ID: r.ID(), Cells: screen.Row(r)})
	}
	return render(c, fiber.StatusOK, "list", page)
}

// createForm renders GET /:resource/create.
func (s *server) createForm(c *fiber.Ctx) error {
	screen, err := lookupWritable(c)
	if err != nil {
		return err
	}
	return render(c, fiber.StatusOK, "form", formPage{Screen: screen, Values: map[string]string{}})
}

// create handles POST /:resource from the create form.
func (s *server) create(c *fiber.Ctx) error {
	screen, err := lookupWritable(c)
	if err != nil {
		return err
	}
	values := make(map[string]string, len(screen.Inputs))
	for _, f := range screen.Inputs {
		values[f.Source] = c.FormValue(f.Source)
	}

	rec, err := s.source.Create(c.UserContext(), screen.Resource, screen.RecordFromInputs(values))
	if err != nil {
		s.logger.Error("create record", "resource", screen.Resource, "err", err)
		return render(c, upstreamStatus(err), "form", formPage{Screen: screen, Values: values, Error: errorText(err)})
	}
	s.logger.Info("record created", "resource", screen.Resource, "id", rec.ID())
	return c.Redirect("/"+screen.Name+"?created="+rec.ID(), fiber.StatusSeeOther)
}

// deleteRecord handles POST /:resource/:id/delete from a list row.
func (s *server) deleteRecord(c *fiber.Ctx) error {
	screen, err := lookupWritable(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	if _, err := s.source.Delete(c.UserContext(), screen.Resource, id); err != nil {
		s.logger.Error("delete record", "resource", screen.Resource, "id", id, "err", err)
		return fiber.NewError(upstreamStatus(err), errorText(err))
	}
	s.logger.Info("record deleted", "resource", screen.Resource, "id", id)
	return c.Redirect("/"+screen.Name+"?deleted="+id, fiber.StatusSeeOther)
}

// chartJSON serves GET /api/charts/:name.
func (s *server) chartJSON(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var bc *chart.BarChart
	switch c.Params("name") {
	case "driver-wins":
		data, err := s.source.TopDriversByWins(ctx)
		if err != nil {
			return fiber.NewError(upstreamStatus(err), errorText(err))
		}
		bc = chart.DriverWins(data)
	case "constructor-points":
		data, err := s.source.ConstructorStandings(ctx)
		if err != nil {
			return fiber.NewError(upstreamStatus(err), errorText(err))
		}
		bc = chart.ConstructorPoints(data)
	default:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown chart"})
	}
	if bc == nil {
		return c.JSON(fiber.Map{"chart": nil})
	}
	return c.JSON(bc)
}

func lookupScreen(c *fiber.Ctx) (resource.Screen, error) {
	screen, ok := resource.Lookup(c.Params("resource"))
	if !ok {
		return resource.Screen{}, fiber.ErrNotFound
	}
	return screen, nil
}

func lookupWritable(c *fiber.Ctx) (resource.Screen, error) {
	screen, err := lookupScreen(c)
	if err != nil {
		return screen, err
	}
	if screen.ReadOnly() {
		return screen, fiber.NewError(fiber.StatusMethodNotAllowed, screen.Title+" is read-only")
	}
	return screen, nil
}

// upstreamStatus passes API 4xx/5xx statuses through; transport failures
// become 502.
func upstreamStatus(err error) int {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) && httpErr.Status >= http.StatusBadRequest {
		return httpErr.Status
	}
	return fiber.StatusBadGateway
}

func errorText(err error) string {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	return err.Error()
}
