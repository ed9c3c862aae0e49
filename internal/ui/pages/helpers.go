package pages

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/templui/medtrack/internal/ctxkeys"
	"github.com/templui/medtrack/internal/schedule"
)

const reminderLayout = "Mon 15:04"

func appName(ctx context.Context) string {
	if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppName != "" {
		return cfg.AppName
	}
	return "Medtrack"
}

func pageTitle(ctx context.Context, title string) string {
	if title == "" {
		return appName(ctx)
	}
	return title + " | " + appName(ctx)
}

// csrfHeaders is the hx-headers value that makes htmx send the CSRF token on every request.
func csrfHeaders(ctx context.Context) string {
	b, _ := json.Marshal(map[string]string{"X-CSRF-Token": ctxkeys.CSRFToken(ctx)})
	return string(b)
}

func ariaCurrent(ctx context.Context, href string) string {
	if ctxkeys.URLPath(ctx) == href {
		return "page"
	}
	return "false"
}

func reminderLabel(reminders map[string]schedule.Reminder, id string) string {
	r, ok := reminders[id]
	if !ok {
		return "No reminder pending"
	}
	return fmt.Sprintf("Next reminder %s", r.At.Format(reminderLayout))
}

func toggleURL(id string) string {
	return fmt.Sprintf("/medicines/%s/toggle", id)
}

func dismissURL(slot int) string {
	return fmt.Sprintf("/notifications/%d", slot)
}
