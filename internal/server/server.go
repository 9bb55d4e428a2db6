// Package server serves the web UI and JSON API of the education cost planner.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/education-cost-planner/internal/budget"
	"github.com/iwvelando/education-cost-planner/internal/charts"
	"github.com/iwvelando/education-cost-planner/internal/dataset"
	"github.com/iwvelando/education-cost-planner/internal/policy"
	"github.com/iwvelando/education-cost-planner/pkg/constants"
	"github.com/iwvelando/education-cost-planner/pkg/format"
	"github.com/iwvelando/education-cost-planner/pkg/mathutil"
	"github.com/iwvelando/education-cost-planner/pkg/output"
	"github.com/iwvelando/education-cost-planner/pkg/validation"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFiles embed.FS

// HeaderRequestID carries the request ID on responses.
const HeaderRequestID = "X-Request-ID"

const (
	msgDatasetMissing     = "CSV file not found."
	msgDatasetUnreadable  = "The dataset could not be read."
	msgUniversityNotFound = "Selected university was not found in the dataset."
	msgFormUnreadable     = "The submitted form could not be read."
)

var pageFiles = map[string]string{
	"home":                    "home.html",
	"budget_planning":         "budget_planning.html",
	"policy_analysis":         "policy_analysis.html",
	"economic_research":       "economic_research.html",
	"university_benchmarking": "university_benchmarking.html",
}

// Options configures the handler.
type Options struct {
	DatasetPath   string
	ChartDir      string
	NYBaseline    float64
	InflationRate float64
	MaxFormSize   int64
	Version       string
}

type handler struct {
	logger *zap.Logger
	opts   Options
	pages  map[string]*template.Template
}

type requestIDKey struct{}

// NewHandler constructs the HTTP handler that serves the web UI and JSON API.
// The dataset is read from disk on every request.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DatasetPath == "" {
		opts.DatasetPath = constants.DefaultDatasetFile
	}
	if opts.ChartDir == "" {
		opts.ChartDir = constants.DefaultChartDir
	}
	if opts.MaxFormSize <= 0 {
		opts.MaxFormSize = constants.DefaultMaxFormSizeBytes
	}
	opts.Version = strings.TrimSpace(opts.Version)
	if opts.Version == "" {
		opts.Version = "dev"
	}

	pages, err := parsePages()
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded templates: %v", err))
	}

	h := &handler{logger: logger, opts: opts, pages: pages}

	mux := http.NewServeMux()

	// Web UI
	mux.HandleFunc("/", h.handleHome)
	mux.HandleFunc("/budget-planning", h.handleBudgetPlanning)
	mux.HandleFunc("/policy-analysis", h.handlePolicyAnalysis)
	mux.HandleFunc("/economic-research", h.handleEconomicResearch)
	mux.HandleFunc("/university-benchmarking", h.handleUniversityBenchmarking)

	// JSON API
	mux.HandleFunc("/api/budget", h.handleAPIBudget)
	mux.HandleFunc("/api/policy", h.handleAPIPolicy)
	mux.HandleFunc("/api/version", h.handleVersion)

	// Generated charts
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(opts.ChartDir))))

	return h.withRequestID(mux)
}

func parsePages() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"amount":   format.Amount,
		"currency": format.Currency,
		"percent":  format.Percent,
		"score":    format.Index,
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for name, file := range pageFiles {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFiles, "templates/layout.html", "templates/"+file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withRequestID tags every request with a UUID, reusing a valid incoming
// X-Request-ID, and logs the outcome.
func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

		h.logger.Info("request served",
			zap.String("op", "server.request"),
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) requestLogger(r *http.Request) *zap.Logger {
	if id, ok := r.Context().Value(requestIDKey{}).(string); ok {
		return h.logger.With(zap.String("request_id", id))
	}
	return h.logger
}

type page struct {
	Title string
	Error string
}

func (h *handler) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !allowGet(w, r) {
		return
	}
	h.render(w, r, "home", page{Title: "Education Cost Planner"}, "server.handleHome")
}

type budgetPage struct {
	page
	Universities       []string
	SelectedUniversity string
	NYLivingInput      string
	InflationInput     string
	Program            *dataset.Record
	Result             *budget.Result
	Charts             map[string]string
}

func (h *handler) handleBudgetPlanning(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBudgetPlanning"
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	data := budgetPage{page: page{Title: "Budget planning"}}
	ds, msg := h.loadDataset(r, op)
	if msg != "" {
		data.Error = msg
		h.render(w, r, "budget_planning", data, op)
		return
	}
	data.Universities = ds.Universities()

	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxFormSize)
		if err := r.ParseForm(); err != nil {
			h.requestLogger(r).Warn("failed to parse budget form",
				zap.String("op", op),
				zap.Error(err),
			)
			data.Error = msgFormUnreadable
		} else {
			h.planBudget(r, ds, &data)
		}
	}

	h.render(w, r, "budget_planning", data, op)
}

func (h *handler) planBudget(r *http.Request, ds *dataset.Dataset, data *budgetPage) {
	const op = "server.handleBudgetPlanning"

	data.SelectedUniversity = r.PostFormValue("university")
	data.NYLivingInput = strings.TrimSpace(r.PostFormValue("ny_living"))
	data.InflationInput = strings.TrimSpace(r.PostFormValue("inflation"))

	nyLiving, rate, err := h.budgetInputs(data.NYLivingInput, data.InflationInput)
	if err != nil {
		data.Error = err.Error()
		return
	}
	data.NYLivingInput = strconv.FormatFloat(nyLiving, 'f', -1, 64)
	data.InflationInput = strconv.FormatFloat(mathutil.Round(rate*constants.PercentageMultiplier), 'f', -1, 64)

	rec, ok := dataset.FindUniversity(ds, data.SelectedUniversity)
	if !ok {
		data.Error = msgUniversityNotFound
		return
	}
	result := budget.Compute(rec, nyLiving, rate)
	data.Program = &rec
	data.Result = &result

	files, err := charts.BudgetCharts(result, h.opts.ChartDir, charts.DefaultBudgetBase)
	if err != nil {
		h.requestLogger(r).Warn("failed to render budget charts",
			zap.String("op", op),
			zap.Error(err),
		)
	}
	data.Charts = files
}

// budgetInputs validates the New York baseline and inflation percentage.
// Blank fields fall back to the configured defaults.
func (h *handler) budgetInputs(nyRaw, inflationRaw string) (nyLiving, rate float64, err error) {
	nyLiving = h.opts.NYBaseline
	if nyRaw != "" {
		if nyLiving, err = validation.NYBaseline(nyRaw); err != nil {
			return 0, 0, err
		}
	}
	rate = h.opts.InflationRate
	if inflationRaw != "" {
		if _, rate, err = validation.InflationPercent(inflationRaw); err != nil {
			return 0, 0, err
		}
	}
	return nyLiving, rate, nil
}

type policyPage struct {
	page
	TargetAnnual  string
	TuitionCut    string
	LivingSubsidy string
	NYBaseline    float64
	Levers        policy.Levers
	Insights      *policy.Insights
	TargetGap     *policy.TargetGapTables
	Cheapest      []policy.FrameRow
	Gaps          []policy.ProgramGap
	Charts        map[string]string
}

func (h *handler) handlePolicyAnalysis(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePolicyAnalysis"
	if !allowGet(w, r) {
		return
	}

	q := r.URL.Query()
	data := policyPage{
		page:          page{Title: "Policy analysis"},
		TargetAnnual:  q.Get("target_annual"),
		TuitionCut:    q.Get("tuition_cut"),
		LivingSubsidy: q.Get("living_subsidy"),
		NYBaseline:    h.opts.NYBaseline,
	}

	ds, msg := h.loadDataset(r, op)
	if msg != "" {
		data.Error = msg
		h.render(w, r, "policy_analysis", data, op)
		return
	}

	params, err := h.policyParams(q)
	if err != nil {
		data.Error = err.Error()
		h.render(w, r, "policy_analysis", data, op)
		return
	}

	report, frame := policy.Analyze(ds, params.nyBaseline, params.levers, params.target)
	data.NYBaseline = report.NYBaseline
	data.Levers = report.Levers
	data.Insights = &report.Insights
	data.TargetGap = &report.TargetGap
	data.Cheapest = head(report.Insights.TotalAnnual, constants.DefaultTopPrograms)
	data.Gaps = head(report.TargetGap.Programs, constants.DefaultTopPrograms)
	data.Charts = h.policyCharts(r, frame, op)

	h.render(w, r, "policy_analysis", data, op)
}

type policyParams struct {
	nyBaseline float64
	levers     policy.Levers
	target     *float64
}

// policyParams validates the policy query. Levers are given in percent.
func (h *handler) policyParams(q url.Values) (policyParams, error) {
	params := policyParams{nyBaseline: h.opts.NYBaseline}
	if raw := strings.TrimSpace(q.Get("ny_living")); raw != "" {
		value, err := validation.NYBaseline(raw)
		if err != nil {
			return params, err
		}
		params.nyBaseline = value
	}

	target, err := validation.TargetAnnual(q.Get("target_annual"))
	if err != nil {
		return params, err
	}
	cut, err := validation.PolicyLever("tuition_cut", q.Get("tuition_cut"))
	if err != nil {
		return params, err
	}
	subsidy, err := validation.PolicyLever("living_subsidy", q.Get("living_subsidy"))
	if err != nil {
		return params, err
	}

	params.levers = policy.LeversFrom(cut, subsidy)
	params.target = target
	return params, nil
}

func (h *handler) policyCharts(r *http.Request, frame policy.Frame, op string) map[string]string {
	files, err := charts.PolicyCharts(frame, h.opts.ChartDir, charts.DefaultPolicyBase)
	if err != nil {
		h.requestLogger(r).Warn("failed to render policy charts",
			zap.String("op", op),
			zap.Error(err),
		)
	}
	return files
}

type researchPage struct {
	page
	NYBaseline float64
	Contexts   []policy.CountryContext
	Chart      string
}

func (h *handler) handleEconomicResearch(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEconomicResearch"
	if !allowGet(w, r) {
		return
	}

	data := researchPage{page: page{Title: "Economic research"}, NYBaseline: h.opts.NYBaseline}
	ds, msg := h.loadDataset(r, op)
	if msg != "" {
		data.Error = msg
		h.render(w, r, "economic_research", data, op)
		return
	}

	frame := policy.BuildFrame(ds, h.opts.NYBaseline)
	data.Contexts = policy.EconomicContext(frame)
	data.Chart = h.policyCharts(r, frame, op)[charts.KeyEconomicContext]

	h.render(w, r, "economic_research", data, op)
}

type benchmarkPage struct {
	page
	Top    policy.Frame
	Levels []policy.LevelMedian
	Charts map[string]string
}

func (h *handler) handleUniversityBenchmarking(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUniversityBenchmarking"
	if !allowGet(w, r) {
		return
	}

	data := benchmarkPage{page: page{Title: "University benchmarking"}}
	ds, msg := h.loadDataset(r, op)
	if msg != "" {
		data.Error = msg
		h.render(w, r, "university_benchmarking", data, op)
		return
	}

	frame := policy.BuildFrame(ds, h.opts.NYBaseline)
	data.Top = policy.TopByTotal(frame, constants.DefaultTopPrograms)
	data.Levels = policy.LevelMedians(frame)

	data.Charts = map[string]string{}
	files := h.policyCharts(r, frame, op)
	for _, key := range []string{charts.KeyCostComponents, charts.KeyInstitutionProgram} {
		if name, ok := files[key]; ok {
			data.Charts[key] = name
		}
	}

	h.render(w, r, "university_benchmarking", data, op)
}

func (h *handler) handleAPIBudget(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAPIBudget"
	if !allowGet(w, r) {
		return
	}

	q := r.URL.Query()
	nyLiving, rate, err := h.budgetInputs(strings.TrimSpace(q.Get("ny_living")), strings.TrimSpace(q.Get("inflation")))
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	ds, status, msg := h.loadDatasetAPI(r, op)
	if msg != "" {
		h.respondErrorWithOp(w, r, status, msg, op)
		return
	}

	rec, ok := dataset.FindUniversity(ds, q.Get("university"))
	if !ok {
		h.respondErrorWithOp(w, r, http.StatusNotFound, msgUniversityNotFound, op)
		return
	}

	h.writeJSON(w, r, http.StatusOK, output.BudgetDocument{
		Program: rec,
		Budget:  budget.Compute(rec, nyLiving, rate),
	})
}

func (h *handler) handleAPIPolicy(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAPIPolicy"
	if !allowGet(w, r) {
		return
	}

	params, err := h.policyParams(r.URL.Query())
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	ds, status, msg := h.loadDatasetAPI(r, op)
	if msg != "" {
		h.respondErrorWithOp(w, r, status, msg, op)
		return
	}

	report, _ := policy.Analyze(ds, params.nyBaseline, params.levers, params.target)
	h.writeJSON(w, r, http.StatusOK, report)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"version": h.opts.Version,
	})
}

// loadDataset reads the dataset for a page. A non-empty message is meant for
// the user.
func (h *handler) loadDataset(r *http.Request, op string) (*dataset.Dataset, string) {
	ds, _, msg := h.loadDatasetAPI(r, op)
	return ds, msg
}

func (h *handler) loadDatasetAPI(r *http.Request, op string) (*dataset.Dataset, int, string) {
	logger := h.requestLogger(r)
	ds, err := dataset.Load(logger, h.opts.DatasetPath)
	if err == nil {
		return ds, http.StatusOK, ""
	}
	if errors.Is(err, dataset.ErrDatasetMissing) {
		logger.Warn("dataset missing",
			zap.String("op", op),
			zap.String("path", h.opts.DatasetPath),
		)
		return nil, http.StatusServiceUnavailable, msgDatasetMissing
	}
	logger.Error("failed to load dataset",
		zap.String("op", op),
		zap.String("path", h.opts.DatasetPath),
		zap.Error(err),
	)
	return nil, http.StatusInternalServerError, msgDatasetUnreadable
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, name string, data interface{}, op string) {
	var buf bytes.Buffer
	if err := h.pages[name].Execute(&buf, data); err != nil {
		h.requestLogger(r).Error("failed to render page",
			zap.String("op", op),
			zap.String("page", name),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.requestLogger(r).Warn("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, r, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.requestLogger(r).Error("failed to write JSON response", zap.Error(err))
	}
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}

func head[T any](rows []T, n int) []T {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}
