// Package pipeline runs the two-phase résumé generation pipeline.
//
// Start parses a job description and proposes a relevance selection for human
// review. Confirm takes the (possibly edited) selection, generates the résumé,
// scores it, writes a cover letter and persists the result. One run is in
// flight at a time; a second caller is rejected, never queued.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/resu/internal/ats"
	"github.com/jonathan/resu/internal/db"
	"github.com/jonathan/resu/internal/ingestion"
	"github.com/jonathan/resu/internal/llm"
	"github.com/jonathan/resu/internal/normalize"
	"github.com/jonathan/resu/internal/observability"
	"github.com/jonathan/resu/internal/pipeline/steps"
	"github.com/jonathan/resu/internal/profile"
	"github.com/jonathan/resu/internal/types"
)

// PromptVersion is stored on every record to tie it to the prompts that produced it
const PromptVersion = "v1"

// DefaultStepTimeout bounds each Completion Service call
const DefaultStepTimeout = 120 * time.Second

// minJDChars applies to the raw text and again after markup is stripped
const minJDChars = 50

// Operation labels used in logs and metrics
const (
	opStart   = "start"
	opConfirm = "confirm"
)

// Options configures an Orchestrator
type Options struct {
	Client  llm.Client
	Profile profile.Source
	Store   db.ResumeStore
	// Lease defaults to a LocalLease
	Lease   Lease
	Logger  *zap.Logger
	Metrics *observability.Metrics
	// StepTimeout defaults to DefaultStepTimeout
	StepTimeout time.Duration
}

// Orchestrator drives pipeline runs
type Orchestrator struct {
	client      llm.Client
	profile     profile.Source
	store       db.ResumeStore
	lease       Lease
	logger      *zap.Logger
	metrics     *observability.Metrics
	stepTimeout time.Duration

	mu      sync.RWMutex
	state   State
	lastErr error
}

// New creates an Orchestrator
func New(opts Options) (*Orchestrator, error) {
	if opts.Client == nil {
		return nil, errors.New("pipeline: completion client is required")
	}
	if opts.Profile == nil {
		return nil, errors.New("pipeline: profile source is required")
	}
	if opts.Store == nil {
		return nil, errors.New("pipeline: resume store is required")
	}

	o := &Orchestrator{
		client:      opts.Client,
		profile:     opts.Profile,
		store:       opts.Store,
		lease:       opts.Lease,
		logger:      observability.WithFields(opts.Logger, zap.String("component", "pipeline")),
		metrics:     opts.Metrics,
		stepTimeout: opts.StepTimeout,
		state:       StateIdle,
	}
	if o.lease == nil {
		o.lease = NewLocalLease()
	}
	if o.metrics == nil {
		o.metrics = observability.NewMetrics()
	}
	if o.stepTimeout <= 0 {
		o.stepTimeout = DefaultStepTimeout
	}

	names := make([]string, len(steps.Order))
	for i, name := range steps.Order {
		names[i] = string(name)
	}
	o.metrics.InitSteps(names...)
	return o, nil
}

// StartRequest begins a run from raw job description text
type StartRequest struct {
	JDText string                  `json:"jdText" validate:"required,min=50"`
	Config *types.GenerationConfig `json:"config"`
}

// ReviewResult is what the human reviews at the checkpoint.
// TokenUsage covers the parse and select steps.
type ReviewResult struct {
	JDText             string                      `json:"jdText"`
	ParsedJD           *types.ParsedJobDescription `json:"parsedJD"`
	RelevanceSelection *types.RelevanceSelection   `json:"relevanceSelection"`
	Config             types.GenerationConfig      `json:"config"`
	TokenUsage         types.TokenUsage            `json:"tokenUsage"`
}

// ConfirmRequest resumes a run after review
type ConfirmRequest struct {
	JDText             string                      `json:"jdText" validate:"required"`
	ParsedJD           *types.ParsedJobDescription `json:"parsedJD" validate:"required"`
	RelevanceSelection *types.RelevanceSelection   `json:"relevanceSelection" validate:"required"`
	Config             *types.GenerationConfig     `json:"config"`
}

// ConfirmResult is the outcome of a completed run.
// TokenUsage covers the generate and cover-letter steps.
type ConfirmResult struct {
	ID          string                 `json:"id"`
	ResumeData  *types.ResumeData      `json:"resumeData"`
	CoverLetter *types.CoverLetterData `json:"coverLetter"`
	ATSScore    types.ATSScoreResult   `json:"atsScore"`
	TokenUsage  types.TokenUsage       `json:"tokenUsage"`
}

// Status is a point-in-time view of the orchestrator.
// Busy comes from the lease and may be held by another process; Running is
// true only while this orchestrator is inside a step.
type Status struct {
	State     State  `json:"state"`
	Busy      bool   `json:"busy"`
	Running   bool   `json:"running"`
	LastError string `json:"lastError,omitempty"`
}

// State returns the current stage
func (o *Orchestrator) State() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Busy reports whether a run holds the lease
func (o *Orchestrator) Busy(ctx context.Context) (bool, error) {
	return o.lease.Busy(ctx)
}

// Status returns the current stage, lease state and the error of the last failed run
func (o *Orchestrator) Status(ctx context.Context) (Status, error) {
	busy, err := o.lease.Busy(ctx)
	if err != nil {
		return Status{}, err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()
	st := Status{State: o.state, Busy: busy, Running: o.state.InFlight()}
	if o.lastErr != nil {
		st.LastError = o.lastErr.Error()
	}
	return st, nil
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	if s != StateError {
		o.lastErr = nil
	}
	o.mu.Unlock()
}

// enter moves the run into the state its next step runs in
func (o *Orchestrator) enter(step steps.Name) {
	o.setState(stepStates[step])
}

func (o *Orchestrator) fail(err error) {
	o.mu.Lock()
	o.state = StateError
	o.lastErr = err
	o.mu.Unlock()
}

// acquire takes the lease, then validates req. A busy pipeline rejects a
// request before its body is looked at.
func (o *Orchestrator) acquire(ctx context.Context, op string, req any) (func(), error) {
	release, err := o.lease.TryAcquire(ctx)
	if err != nil {
		if errors.Is(err, ErrConcurrencyRejected) {
			o.logger.Info("run rejected, another is in flight", zap.String("operation", op))
			o.metrics.ObserveRun(op, observability.OutcomeRejected)
		} else {
			o.metrics.ObserveRun(op, observability.OutcomeFailure)
		}
		return nil, err
	}

	if err := ValidateRequest(req); err != nil {
		release()
		o.metrics.ObserveRun(op, observability.OutcomeFailure)
		return nil, err
	}

	o.metrics.InFlight.Set(1)
	return func() {
		o.metrics.InFlight.Set(0)
		release()
	}, nil
}

// finish records the outcome of an operation that held the lease
func (o *Orchestrator) finish(op string, started time.Time, err error) {
	if err != nil {
		o.fail(err)
		o.metrics.ObserveRun(op, observability.OutcomeFailure)
		o.logger.Error("run failed", zap.String("operation", op), zap.Duration("elapsed", time.Since(started)), zap.Error(err))
		return
	}
	o.metrics.ObserveRun(op, observability.OutcomeSuccess)
	o.logger.Info("run finished", zap.String("operation", op), zap.Duration("elapsed", time.Since(started)))
}

// Start parses the job description and proposes a relevance selection.
// The run stops at the reviewing state; nothing is persisted.
func (o *Orchestrator) Start(ctx context.Context, req StartRequest) (result *ReviewResult, err error) {
	release, err := o.acquire(ctx, opStart, req)
	if err != nil {
		return nil, err
	}
	defer release()

	jdText := ingestion.PrepareText(req.JDText)
	if n := utf8.RuneCountInString(jdText); n < minJDChars {
		o.metrics.ObserveRun(opStart, observability.OutcomeFailure)
		return nil, &RequestError{
			Field:   "jdText",
			Message: fmt.Sprintf("must be at least %d characters once markup is removed, got %d", minJDChars, n),
		}
	}

	started := time.Now()
	defer func() { o.finish(opStart, started, err) }()

	cfg := req.Config.WithDefaults()
	o.logger.Info("run started", zap.String("operation", opStart), zap.Int("jd_chars", len(jdText)))

	o.enter(steps.Parse)
	parsed, parseCall, err := runStep(ctx, o, steps.Parse, cfg, func() (string, error) {
		return steps.ParseInput(jdText, cfg), nil
	}, normalize.JobDescription)
	if err != nil {
		return nil, err
	}

	o.enter(steps.Select)
	prof, err := o.loadProfile(ctx, steps.Select)
	if err != nil {
		return nil, err
	}
	selection, selectCall, err := runStep(ctx, o, steps.Select, cfg, func() (string, error) {
		return steps.SelectInput(prof, parsed, cfg)
	}, normalize.RelevanceSelection)
	if err != nil {
		return nil, err
	}
	if err := CheckSelection(prof, selection); err != nil {
		return nil, stepError(steps.Select, KindValidation, err, "selection references unknown profile content")
	}

	o.setState(StateReviewing)
	return &ReviewResult{
		JDText:             jdText,
		ParsedJD:           parsed,
		RelevanceSelection: selection,
		Config:             cfg,
		TokenUsage: types.TokenUsage{
			ParseTokens:  parseCall.Usage.Total(),
			SelectTokens: selectCall.Usage.Total(),
			TotalCost:    parseCall.Cost + selectCall.Cost,
		},
	}, nil
}

// Confirm generates, scores and persists the résumé for a reviewed selection.
func (o *Orchestrator) Confirm(ctx context.Context, req ConfirmRequest) (result *ConfirmResult, err error) {
	release, err := o.acquire(ctx, opConfirm, req)
	if err != nil {
		return nil, err
	}
	defer release()

	started := time.Now()
	defer func() { o.finish(opConfirm, started, err) }()

	cfg := req.Config.WithDefaults()
	jd, sel := req.ParsedJD, req.RelevanceSelection
	o.logger.Info("run started", zap.String("operation", opConfirm),
		zap.String("company", jd.CompanyName), zap.String("role", jd.RoleTitle))

	o.enter(steps.Generate)
	prof, err := o.loadProfile(ctx, steps.Generate)
	if err != nil {
		return nil, err
	}
	if err := CheckSelection(prof, sel); err != nil {
		// Confirm sends originalText, so a drifted index only matters for auditing
		o.logger.Warn("selection no longer matches the profile", zap.Error(err))
	}

	resume, generateCall, err := runStep(ctx, o, steps.Generate, cfg, func() (string, error) {
		return steps.GenerateInput(prof, jd, sel, cfg)
	}, normalize.ResumeData)
	if err != nil {
		return nil, err
	}

	o.enter(steps.Score)
	scoreStarted := time.Now()
	score := ats.Score(resume, jd)
	o.metrics.ObserveStep(string(steps.Score), observability.OutcomeSuccess, time.Since(scoreStarted))
	o.logger.Debug("resume scored", zap.Int("score", score.Score), zap.Int("suggestions", len(score.Suggestions)))

	o.enter(steps.CoverLetter)
	letter, letterCall, err := runStep(ctx, o, steps.CoverLetter, cfg, func() (string, error) {
		return steps.CoverLetterInput(prof, jd, sel, cfg)
	}, normalize.CoverLetter)
	if err != nil {
		return nil, err
	}

	usage := types.TokenUsage{
		GenerateTokens:    generateCall.Usage.Total(),
		CoverLetterTokens: letterCall.Usage.Total(),
		TotalCost:         generateCall.Cost + letterCall.Cost,
	}

	o.enter(steps.Persist)
	rec, err := o.persist(ctx, &types.ResumeRecord{
		Company:            jd.CompanyName,
		JobTitle:           jd.RoleTitle,
		JDText:             req.JDText,
		ParsedJD:           *jd,
		GenerationConfig:   cfg,
		RelevanceSelection: *sel,
		ResumeData:         *resume,
		CoverLetter:        letter,
		ATSScore:           score,
		TemplateID:         cfg.TemplateID,
		PromptVersion:      PromptVersion,
		TokenUsage:         usage,
	})
	if err != nil {
		return nil, err
	}

	o.setState(StateComplete)
	return &ConfirmResult{
		ID:          rec.ID,
		ResumeData:  resume,
		CoverLetter: letter,
		ATSScore:    score,
		TokenUsage:  usage,
	}, nil
}

func (o *Orchestrator) loadProfile(ctx context.Context, step steps.Name) (*types.Profile, error) {
	prof, err := o.profile.Profile(ctx)
	if err != nil {
		return nil, stepError(step, KindInternal, err, "failed to load profile")
	}
	return prof, nil
}

func (o *Orchestrator) persist(ctx context.Context, rec *types.ResumeRecord) (*types.ResumeRecord, error) {
	started := time.Now()
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.stepTimeout)
	defer cancel()

	saved, err := o.store.CreateResume(persistCtx, rec)
	if err != nil {
		o.metrics.ObserveStep(string(steps.Persist), observability.OutcomeFailure, time.Since(started))
		return nil, stepError(steps.Persist, KindInternal, err, "failed to save resume")
	}
	o.metrics.ObserveStep(string(steps.Persist), observability.OutcomeSuccess, time.Since(started))
	o.logger.Info("resume saved", zap.String("id", saved.ID))
	return saved, nil
}

// runStep issues one Completion Service call and normalizes its output.
// The call runs on a context detached from ctx's cancellation and bounded by
// the step timeout; ctx is only checked before the call is issued.
func runStep[T any](
	ctx context.Context,
	o *Orchestrator,
	name steps.Name,
	cfg types.GenerationConfig,
	input func() (string, error),
	normalizeFn func(any) (*T, error),
) (*T, *llm.Completion, error) {
	logger := o.logger.With(zap.String("step", string(name)))
	started := time.Now()
	outcome := observability.OutcomeFailure
	defer func() {
		o.metrics.ObserveStep(string(name), outcome, time.Since(started))
	}()

	if err := ctx.Err(); err != nil {
		return nil, nil, stepError(name, KindInternal, err, "run canceled before step")
	}

	def, err := steps.Get(name)
	if err != nil {
		return nil, nil, stepError(name, KindInternal, err, "unknown step")
	}
	msg, err := input()
	if err != nil {
		return nil, nil, stepError(name, KindInternal, err, "failed to build input")
	}
	req, err := def.Request(cfg, msg)
	if err != nil {
		return nil, nil, stepError(name, KindInternal, err, "failed to build prompt")
	}

	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.stepTimeout)
	defer cancel()

	logger.Debug("calling completion service", zap.String("tier", string(req.Tier)))
	completion, err := o.client.Complete(callCtx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, stepError(name, KindExternal, err, "completion timed out after %s", o.stepTimeout)
		}
		return nil, nil, stepError(name, KindExternal, err, "completion failed")
	}
	if completion == nil || completion.Text == "" {
		return nil, nil, stepError(name, KindExternal, llm.ErrEmptyCompletion, "completion failed")
	}
	o.metrics.ObserveUsage(string(name), completion.Usage.PromptTokens, completion.Usage.CompletionTokens, completion.Cost)
	logger.Info("completion received", observability.CompletionFields(completion)...)

	raw, err := normalize.Decode(completion.Text)
	if err != nil {
		logger.Debug("undecodable completion", zap.String("text", observability.Truncate(completion.Text, 200)))
		return nil, nil, stepError(name, KindValidation, err, "invalid completion")
	}
	out, err := normalizeFn(raw)
	if err != nil {
		return nil, nil, stepError(name, KindValidation, err, "invalid completion")
	}

	outcome = observability.OutcomeSuccess
	return out, completion, nil
}

// CheckSelection verifies that every selected bullet refers to an existing
// profile experience and an in-range bullet index.
func CheckSelection(prof *types.Profile, sel *types.RelevanceSelection) error {
	for _, se := range sel.SelectedExperiences {
		for _, b := range se.SelectedBullets {
			expID := b.ExperienceID
			if expID == "" {
				expID = se.ExperienceID
			}
			exp, ok := prof.FindExperience(expID)
			if !ok {
				return fmt.Errorf("experience %q does not exist in the profile", expID)
			}
			if b.BulletIndex < 0 || b.BulletIndex >= len(exp.Bullets) {
				return fmt.Errorf("bullet index %d is out of range for experience %q (%d bullets)", b.BulletIndex, expID, len(exp.Bullets))
			}
		}
	}
	return nil
}
