package compression

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"arithma_tech/entity"
	"arithma_tech/pkg/logger"
)

const traceName = "compression"

// NoFileLabel is shown when file mode has no selection.
const NoFileLabel = "No file selected"

// StatusListener receives status line updates. It is called without the controller lock held.
type StatusListener func(Status)

// Metrics counts controller outcomes.
type Metrics interface {
	OperationAccepted(kind entity.OperationKind, mode entity.InputMode)
	ValidationRejected(kind entity.OperationKind, reason entity.ErrorKind)
	HistoryWriteFailed()
}

type noopMetrics struct{}

func (noopMetrics) OperationAccepted(entity.OperationKind, entity.InputMode)  {}
func (noopMetrics) ValidationRejected(entity.OperationKind, entity.ErrorKind) {}
func (noopMetrics) HistoryWriteFailed()                                       {}

// Snapshot is a copy of the controller state.
type Snapshot struct {
	Mode      entity.InputMode
	FilePath  string
	Text      string
	FileLabel string
	Busy      bool
	Kind      entity.OperationKind
	Percent   int
	Status    Status
}

// Controller owns the input mode, the staged selection and the operation guard.
// An accepted request is logged to the history and then advanced by Tick until it completes.
type Controller struct {
	mu sync.Mutex

	history     entity.HistoryRepository
	l           logger.Interface
	formats     *FormatMatcher
	newProgress ProgressFactory
	intervals   map[entity.OperationKind]time.Duration
	listener    StatusListener
	metrics     Metrics

	mode     entity.InputMode
	filePath string
	text     string

	inProgress bool
	kind       entity.OperationKind
	progress   Progress
	percent    int
	status     Status
}

// Option -.
type Option func(*Controller)

func WithStatusListener(fn StatusListener) Option {
	return func(c *Controller) {
		c.listener = fn
	}
}

func WithProgressFactory(f ProgressFactory) Option {
	return func(c *Controller) {
		c.newProgress = f
	}
}

func WithFormats(m *FormatMatcher) Option {
	return func(c *Controller) {
		c.formats = m
	}
}

func WithMetrics(m Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithTickIntervals sets the tick period per operation kind. Non-positive values keep the default.
func WithTickIntervals(compress, decompress time.Duration) Option {
	return func(c *Controller) {
		if compress > 0 {
			c.intervals[entity.Compress] = compress
		}
		if decompress > 0 {
			c.intervals[entity.Decompress] = decompress
		}
	}
}

// NewController starts in file mode with nothing selected.
func NewController(history entity.HistoryRepository, l logger.Interface, opts ...Option) *Controller {
	c := &Controller{
		history:     history,
		l:           l,
		formats:     MustFormatMatcher(DefaultFormats),
		newProgress: SimulatedFactory(DefaultStep),
		intervals: map[entity.OperationKind]time.Duration{
			entity.Compress:   DefaultCompressInterval,
			entity.Decompress: DefaultDecompressInterval,
		},
		metrics: noopMetrics{},
		mode:    entity.ModeFile,
		kind:    entity.Compress,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.status = Status{Code: StatusReady, Mode: c.mode}
	return c
}

// SwitchMode activates m and clears the data staged for the other mode.
func (c *Controller) SwitchMode(m entity.InputMode) error {
	c.mu.Lock()
	if c.inProgress {
		c.mu.Unlock()
		return entity.ErrOperationInProgress
	}

	c.mode = m
	code := StatusFileMode
	if m == entity.ModeText {
		c.filePath = ""
		code = StatusTextMode
	} else {
		c.text = ""
	}
	st := c.setStatus(Status{Code: code, Mode: m})
	c.mu.Unlock()

	c.l.Debug("input mode switched to %s", m)
	c.emit(st)
	return nil
}

// SetText replaces the text buffer. Ignored outside text mode.
func (c *Controller) SetText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inProgress {
		return entity.ErrOperationInProgress
	}
	if c.mode != entity.ModeText {
		return nil
	}
	c.text = text
	return nil
}

// SelectFile stages path in file mode. A cancelled picker passes an empty path and changes nothing.
func (c *Controller) SelectFile(path string) error {
	c.mu.Lock()
	if c.inProgress {
		c.mu.Unlock()
		return entity.ErrOperationInProgress
	}
	if c.mode != entity.ModeFile || path == "" {
		c.mu.Unlock()
		return nil
	}
	if !c.formats.Match(path) {
		c.mu.Unlock()
		return &entity.ValidationError{
			Kind:    entity.UnsupportedFormat,
			Value:   filepath.Base(path),
			Formats: c.formats.Formats(),
		}
	}

	c.filePath = path
	name := filepath.Base(path)
	st := c.setStatus(Status{Code: StatusFileSelected, Mode: c.mode, Name: name})
	c.mu.Unlock()

	c.l.Debug("file selected: %s", path)
	c.emit(st)
	return nil
}

// ClearSelection drops the staged file. Ignored outside file mode.
func (c *Controller) ClearSelection() error {
	c.mu.Lock()
	if c.inProgress {
		c.mu.Unlock()
		return entity.ErrOperationInProgress
	}
	if c.mode != entity.ModeFile {
		c.mu.Unlock()
		return nil
	}

	c.filePath = ""
	st := c.setStatus(Status{Code: StatusFileCleared, Mode: c.mode})
	c.mu.Unlock()

	c.emit(st)
	return nil
}

// SelectedFileLabel is the base name of the staged file or NoFileLabel.
func (c *Controller) SelectedFileLabel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fileLabel()
}

func (c *Controller) fileLabel() string {
	if c.filePath == "" {
		return NoFileLabel
	}
	return filepath.Base(c.filePath)
}

// RequestCompress -.
func (c *Controller) RequestCompress(ctx context.Context) (bool, error) {
	return c.Request(ctx, entity.Compress)
}

// RequestDecompress -.
func (c *Controller) RequestDecompress(ctx context.Context) (bool, error) {
	return c.Request(ctx, entity.Decompress)
}

// Request starts kind on the staged selection.
//
// A request made while another operation runs is dropped: it returns false and a nil error.
// Invalid input returns false and a *entity.ValidationError without touching any state.
// Once accepted the request is logged to the history; a failed write is returned as a
// *entity.StoreError but the operation still runs and accepted stays true.
func (c *Controller) Request(ctx context.Context, kind entity.OperationKind) (accepted bool, err error) {
	ctx, span := otel.Tracer(traceName).Start(ctx, "Request")
	defer span.End()

	span.SetAttributes(attribute.String("operation", string(kind)))

	c.mu.Lock()
	if c.inProgress {
		c.mu.Unlock()
		span.AddEvent("dropped: operation in progress")
		c.l.Debug("%s request dropped, operation in progress", kind)
		return false, nil
	}

	sel := entity.Selection{Mode: c.mode, FilePath: c.filePath, Text: c.text}
	if verr := validate(sel, kind); verr != nil {
		c.mu.Unlock()
		c.metrics.ValidationRejected(kind, verr.Kind)
		span.AddEvent("rejected: " + verr.Kind.String())
		return false, verr
	}

	c.inProgress = true
	c.kind = kind
	c.progress = nil
	c.percent = 0
	c.mu.Unlock()

	span.SetAttributes(attribute.String("mode", sel.Mode.String()))

	record := entity.NewOperationRecord(sel, kind)
	if insertErr := c.history.Insert(ctx, &record); insertErr != nil {
		span.RecordError(insertErr)
		c.metrics.HistoryWriteFailed()
		c.l.Error(insertErr, "compression - Request - history.Insert")
		err = asStoreError(insertErr)
	}

	c.mu.Lock()
	c.progress = c.newProgress(kind)
	st := c.setStatus(Status{Code: runningStatus(kind), Mode: sel.Mode, Name: sel.DisplayName()})
	c.mu.Unlock()

	c.metrics.OperationAccepted(kind, sel.Mode)
	c.l.Info("%s started: %s", kind, sel.DisplayName())
	c.emit(st)

	return true, err
}

func validate(sel entity.Selection, kind entity.OperationKind) *entity.ValidationError {
	if !sel.Empty() {
		return nil
	}
	if sel.Mode == entity.ModeText {
		return &entity.ValidationError{Kind: entity.EmptyInput, Operation: kind}
	}
	return &entity.ValidationError{Kind: entity.NoFileSelected, Operation: kind}
}

func asStoreError(err error) error {
	if entity.IsStoreError(err) {
		return err
	}
	return &entity.StoreError{Kind: entity.WriteFailed, Op: "insert", Err: err}
}

// Tick advances the running operation by one step and returns the percentage and whether
// this tick completed it. It is a no-op while idle.
func (c *Controller) Tick() (percent int, completed bool) {
	c.mu.Lock()
	if !c.inProgress || c.progress == nil {
		percent = c.percent
		c.mu.Unlock()
		return percent, false
	}

	c.percent = c.progress.Advance()
	c.status.Percent = c.percent
	if !c.progress.Complete() {
		percent = c.percent
		c.mu.Unlock()
		return percent, false
	}

	c.inProgress = false
	c.progress = nil
	kind := c.kind
	st := c.setStatus(Status{Code: completedStatus(kind), Mode: c.mode, Name: c.status.Name, Percent: c.percent})
	percent = c.percent
	c.mu.Unlock()

	c.l.Info("%s completed: %s", kind, st.Name)
	c.emit(st)
	return percent, true
}

// TickInterval is the tick period of the running (or last) operation.
func (c *Controller) TickInterval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.intervals[c.kind]
}

// Busy reports whether an operation is in progress.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inProgress
}

// Status returns the current status line.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Mode:      c.mode,
		FilePath:  c.filePath,
		Text:      c.text,
		FileLabel: c.fileLabel(),
		Busy:      c.inProgress,
		Kind:      c.kind,
		Percent:   c.percent,
		Status:    c.status,
	}
}

// Formats returns the extension matcher used by SelectFile.
func (c *Controller) Formats() *FormatMatcher {
	return c.formats
}

// setStatus must be called with c.mu held.
func (c *Controller) setStatus(st Status) Status {
	c.status = st
	return st
}

func (c *Controller) emit(st Status) {
	if c.listener != nil {
		c.listener(st)
	}
}
