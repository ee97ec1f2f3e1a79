package handlers

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"emailcrawler/internal/app/export"
	"emailcrawler/internal/usecase"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type Handlers struct {
	cr           usecase.Crawler
	store        usecase.HistoryStore
	logger       *zap.Logger
	historyLimit int
}

func NewHandlers(cr usecase.Crawler, store usecase.HistoryStore, logger *zap.Logger, historyLimit int) *Handlers {
	return &Handlers{
		cr:           cr,
		store:        store,
		logger:       logger,
		historyLimit: historyLimit,
	}
}

func (h *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("POST /{$}", h.Index)
	mux.HandleFunc("POST /download", h.Download)
	mux.HandleFunc("GET /history", h.History)
	mux.HandleFunc("GET /api/extract", h.APIExtract)
	return mux
}

type indexView struct {
	URL       string
	Domain    string
	Submitted bool
	Method    string
	Emails    []string
	Error     string
}

// Index serves the form and, on POST, runs one crawl and stores it in history.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	view := indexView{Method: usecase.Static.Label()}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		view.URL = strings.TrimSpace(r.PostFormValue("url"))
		view.Domain = strings.TrimSpace(r.PostFormValue("domain"))
		if view.URL != "" {
			req := usecase.SeedRequest{
				URL:          view.URL,
				DomainFilter: view.Domain,
				Mode:         usecase.Static,
			}
			if r.PostFormValue("use_selenium") != "" {
				req.Mode = usecase.Rendered
			}
			if d := r.PostFormValue("depth"); d != "" {
				depth, err := strconv.Atoi(d)
				if err != nil {
					http.Error(w, "depth must be an integer", http.StatusBadRequest)
					return
				}
				req.Depth = depth
			}
			res := h.cr.Crawl(r.Context(), req)
			h.processResult(r.Context(), view.URL, res)
			view.Submitted = true
			view.Method = req.Mode.Label()
			if res.OK() {
				view.Emails = sortedEmails(res.Emails)
			} else {
				view.Error = res.Err.Error()
			}
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "index.html", view); err != nil {
		h.logger.Error("render index error", zap.Error(err))
	}
}

// processResult logs a finished crawl and appends successful ones to history.
func (h *Handlers) processResult(ctx context.Context, url string, res usecase.CrawlResult) {
	if !res.OK() {
		logMsg := fmt.Sprintf("crawler result return err: %s", res.Err.Error())
		h.logger.Error(logMsg)
		return
	}
	emails := sortedEmails(res.Emails)
	logMsg := fmt.Sprintf("crawler result: [url: %s] emails: %d", res.URL, len(emails))
	h.logger.Info(logMsg)
	if err := h.store.Append(ctx, url, emails); err != nil {
		h.logger.Error("save history error", zap.Error(err))
	}
}

func (h *Handlers) Download(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	f, err := export.Render(r.PostFormValue("format"), r.PostForm["emails"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", f.ContentDisposition())
	if _, err := w.Write(f.Body); err != nil {
		h.logger.Error("write download error", zap.Error(err))
	}
}

func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.Latest(r.Context(), h.historyLimit)
	if err != nil {
		h.logger.Error("read history error", zap.Error(err))
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "history.html", records); err != nil {
		h.logger.Error("render history error", zap.Error(err))
	}
}

type extractResponse struct {
	Emails []string `json:"emails"`
	Error  string   `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// APIExtract runs a crawl for ?url= and answers with JSON. A crawl failure is
// still a 200 carrying the error text next to an empty list.
func (h *Handlers) APIExtract(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	url := strings.TrimSpace(q.Get("url"))
	if url == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing URL"})
		return
	}
	req := usecase.SeedRequest{
		URL:          url,
		DomainFilter: q.Get("domain"),
		Mode:         usecase.Static,
	}
	if strings.ToLower(q.Get("selenium")) == "true" {
		req.Mode = usecase.Rendered
	}
	if d := q.Get("depth"); d != "" {
		depth, err := strconv.Atoi(d)
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "depth must be an integer"})
			return
		}
		req.Depth = depth
	}

	res := h.cr.Crawl(r.Context(), req)
	if errors.Is(res.Err, usecase.ErrInvalidRequest) {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: res.Err.Error()})
		return
	}
	resp := extractResponse{Emails: []string{}}
	if res.OK() {
		resp.Emails = res.Emails.Slice()
	} else {
		h.logger.Error("api extract error", zap.String("url", url), zap.Error(res.Err))
		resp.Error = res.Err.Error()
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("write json response", zap.Int("status", status), zap.Error(err))
	}
}

// sortedEmails gives templates and history a stable listing.
func sortedEmails(set usecase.EmailSet) []string {
	out := set.Slice()
	sort.Strings(out)
	return out
}
