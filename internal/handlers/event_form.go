package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventify/eventify-web/internal/api"
)

var eventDateLayouts = []string{"2006-01-02", "2006-01-02T15:04"}

// parseEventForm reads the create and edit event forms. The returned message
// is empty when the form is valid.
func parseEventForm(c echo.Context, withImage bool) (api.EventInput, string) {
	in := api.EventInput{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Location:    strings.TrimSpace(c.FormValue("location")),
	}
	if withImage {
		in.Image = strings.TrimSpace(c.FormValue("image"))
	}

	date := strings.TrimSpace(c.FormValue("date"))
	capacity := strings.TrimSpace(c.FormValue("capacity"))
	price := strings.TrimSpace(c.FormValue("price"))

	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			in.Date = t
			break
		}
	}
	if n, err := strconv.Atoi(capacity); err == nil {
		in.Capacity = n
	}
	if price != "" {
		p, err := strconv.ParseFloat(price, 64)
		if err != nil || p < 0 {
			return in, "Price must be zero or more."
		}
		in.Price = p
	}

	switch {
	case in.Title == "" || in.Description == "" || in.Location == "" || date == "":
		return in, "Please fill in all required fields."
	case in.Date.IsZero():
		return in, "Please enter a valid date."
	case in.Capacity < 1:
		return in, "Capacity must be a positive number."
	}
	return in, ""
}

// eventInputFrom prefills the edit form from an existing event.
func eventInputFrom(ev api.Event) api.EventInput {
	capacity := ev.Capacity
	if ev.MaxAttendees > 0 {
		capacity = ev.MaxAttendees
	}
	return api.EventInput{
		Title:       ev.Title,
		Description: ev.Description,
		Date:        ev.Date,
		Location:    ev.Location,
		Capacity:    capacity,
		Price:       ev.Price,
		Image:       ev.Image,
	}
}
