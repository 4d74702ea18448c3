// Package notify forwards page-visit events to a Discord webhook. Delivery
// is best-effort: a failure is recorded in the Result and logged, never
// surfaced to the visitor.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type Visit struct {
	Page      string
	Referrer  string
	UserAgent string
	IP        string
	Country   string
	At        time.Time
}

// Result is the inspectable outcome of one delivery attempt.
type Result struct {
	Delivered bool
	Err       error
}

type Notifier struct {
	webhookURL string
	client     *http.Client
	events     chan Visit
	log        *logrus.Entry

	// results carries delivery outcomes for observability only; callers
	// must not gate behavior on them.
	results chan Result
}

func NewNotifier(webhookURL string, log *logrus.Entry) *Notifier {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		events:     make(chan Visit, 64),
		results:    make(chan Result, 64),
		log:        log,
	}
}

// Track enqueues a visit without blocking. When the buffer is full the event
// is dropped; visit tracking never slows a page load.
func (n *Notifier) Track(v Visit) {
	if v.At.IsZero() {
		v.At = time.Now().UTC()
	}
	select {
	case n.events <- v:
	default:
		n.log.Debug("visit buffer full, dropping event")
	}
}

// Results exposes delivery outcomes for tests and diagnostics.
func (n *Notifier) Results() <-chan Result {
	return n.results
}

// Run drains the event queue until the context is cancelled.
func (n *Notifier) Run(ctx context.Context) {
	n.log.Info("visit notifier started")
	for {
		select {
		case <-ctx.Done():
			return
		case v := <-n.events:
			res := n.deliver(ctx, v)
			if res.Err != nil {
				n.log.WithError(res.Err).Debug("visit notification failed")
			}
			select {
			case n.results <- res:
			default:
			}
		}
	}
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type discordEmbed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Fields    []embedField `json:"fields"`
	Footer    embedFooter  `json:"footer"`
	Timestamp string       `json:"timestamp"`
}

type discordPayload struct {
	ThreadName string         `json:"thread_name"`
	Embeds     []discordEmbed `json:"embeds"`
}

func (n *Notifier) deliver(ctx context.Context, v Visit) Result {
	if n.webhookURL == "" {
		return Result{Err: fmt.Errorf("webhook not configured")}
	}

	page := v.Page
	if page == "" {
		page = "/"
	}
	referrer := v.Referrer
	if referrer == "" {
		referrer = "Direct"
	}
	country := v.Country
	if country == "" {
		country = "Unknown"
	}
	userAgent := v.UserAgent
	if len(userAgent) > 100 {
		userAgent = userAgent[:100]
	}
	if userAgent == "" {
		userAgent = "Unknown"
	}

	payload := discordPayload{
		ThreadName: fmt.Sprintf("Visit: %s - %s", page, v.At.Format("2006-01-02")),
		Embeds: []discordEmbed{{
			Title: "New Website Visit",
			Color: 0xf5f0e8,
			Fields: []embedField{
				{Name: "Page", Value: page, Inline: true},
				{Name: "Country", Value: country, Inline: true},
				{Name: "Time", Value: v.At.Format(time.RFC3339), Inline: true},
				{Name: "Referrer", Value: referrer},
				{Name: "User Agent", Value: userAgent},
			},
			Footer:    embedFooter{Text: "SOL Apparel Analytics"},
			Timestamp: v.At.Format(time.RFC3339),
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return Result{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return Result{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return Result{Err: fmt.Errorf("webhook returned %d: %s", resp.StatusCode, raw)}
	}
	return Result{Delivered: true}
}
