package chi

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"slices"
	"time"

	"github.com/marcelsud/webhook-scheduler/scheduler"
	"github.com/marcelsud/webhook-scheduler/webhook"
	"github.com/rs/zerolog"
)

//go:embed templates/index.html
var templatesFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

/* Represents a response in the dashboard, flattened for the template
 * Newest responses are shown first
 */
type responseView struct {
	ID            string
	Target        string
	StatusCode    int
	StatusMessage string
	Failed        bool
	Title         string
	Content       string
	Error         string
	Timestamp     string
	DurationMS    int64
}

type targetView struct {
	Name       string
	URL        string
	Method     string
	Timeout    string
	Configured bool
}

type dashboardView struct {
	Responses        []responseView
	Targets          []targetView
	SchedulerEnabled bool
	Schedule         []scheduler.Entry
	Error            string
}

// getDashboard handles GET /
func getDashboard(webhookService webhook.UseCase, schedule Schedule, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		view := dashboardView{Responses: []responseView{}}

		history, err := safeHistory(r.Context(), webhookService)
		if err != nil {
			logger.Error().Err(err).Msg("loading dashboard")
			view.Error = fmt.Sprintf("Error loading dashboard: %v", err)
			history = nil
		}
		logger.Debug().Int("responses", len(history)).Msg("displaying webhook responses")

		for _, resp := range slices.Backward(history) {
			view.Responses = append(view.Responses, newResponseView(resp))
		}

		primary, secondary := webhookService.Targets()
		view.Targets = []targetView{newTargetView(primary), newTargetView(secondary)}
		if schedule != nil {
			view.SchedulerEnabled = schedule.Enabled()
			view.Schedule = schedule.Entries()
		}

		var buf bytes.Buffer
		if err := dashboardTemplate.Execute(&buf, view); err != nil {
			logger.Error().Err(err).Msg("rendering dashboard")
			http.Error(w, "rendering dashboard", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	})
}

func newResponseView(resp webhook.Response) responseView {
	view := responseView{
		ID:            resp.ID,
		Target:        resp.Target,
		StatusCode:    resp.StatusCode,
		StatusMessage: resp.StatusMessage,
		Failed:        resp.Failed(),
		Error:         resp.Error,
		Timestamp:     resp.Timestamp.Local().Format(time.DateTime),
		DurationMS:    resp.Duration.Milliseconds(),
	}
	if title, ok := resp.Data["title"].(string); ok {
		view.Title = title
	}
	if content, ok := resp.Data["content"]; ok {
		view.Content = display(content)
	} else if resp.Data != nil {
		view.Content = display(resp.Data)
	}
	return view
}

// display renders strings verbatim and anything else as indented JSON
func display(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func newTargetView(t webhook.Target) targetView {
	return targetView{
		Name:       t.Name,
		URL:        t.URL,
		Method:     t.Method.String(),
		Timeout:    t.Timeout.String(),
		Configured: t.Configured(),
	}
}
