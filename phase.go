package noteshub

// BuildPhase represents a stage in the build pipeline.
// Phases execute in order: Discover → Transform → Generate → Finalize
type BuildPhase int

const (
	// PhaseDiscover creates the output layout and finds all source files
	PhaseDiscover BuildPhase = iota

	// PhaseTransform copies images into the output tree
	PhaseTransform

	// PhaseGenerate renders one page per markdown, document and PDF file
	PhaseGenerate

	// PhaseFinalize runs after all pages exist (index, stylesheets, sitemap)
	PhaseFinalize
)

func (p BuildPhase) String() string {
	switch p {
	case PhaseDiscover:
		return "Discover"
	case PhaseTransform:
		return "Transform"
	case PhaseGenerate:
		return "Generate"
	case PhaseFinalize:
		return "Finalize"
	default:
		return "Unknown"
	}
}

// BuildContext holds state that persists across phases during a single build.
type BuildContext struct {
	Site         *Site
	BuildID      string
	CurrentPhase BuildPhase

	// Everything found in the Discover phase
	Collection *Collection

	// Index entries in processing order
	Entries []*IndexEntry

	// All paths (relative to the output root) written so far
	Outputs []string

	// Per-file failures accumulated during build
	Errors []*FileError

	// Hooks for observation
	hooks *HookRegistry
}

// AddError records a failure against file.
func (ctx *BuildContext) AddError(file string, err error) {
	if err != nil {
		ctx.Errors = append(ctx.Errors, &FileError{File: file, Err: err})
	}
}

// HookRegistry manages lightweight hooks for build observation.
// Hooks are always called from the goroutine running the build.
type HookRegistry struct {
	onPhaseStart  map[BuildPhase][]func(*BuildContext)
	onPhaseEnd    map[BuildPhase][]func(*BuildContext)
	onFileProcess []func(*BuildContext, *Resource, RenderResult)
}

// NewHookRegistry creates a new hook registry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{
		onPhaseStart: make(map[BuildPhase][]func(*BuildContext)),
		onPhaseEnd:   make(map[BuildPhase][]func(*BuildContext)),
	}
}

// OnPhaseStart registers a callback to run when a phase starts.
func (h *HookRegistry) OnPhaseStart(phase BuildPhase, fn func(*BuildContext)) {
	h.onPhaseStart[phase] = append(h.onPhaseStart[phase], fn)
}

// OnPhaseEnd registers a callback to run when a phase ends.
func (h *HookRegistry) OnPhaseEnd(phase BuildPhase, fn func(*BuildContext)) {
	h.onPhaseEnd[phase] = append(h.onPhaseEnd[phase], fn)
}

// OnFileProcessed registers a callback to run after each source file is processed.
// Callbacks see files in processing order, once all files of a phase are done.
func (h *HookRegistry) OnFileProcessed(fn func(*BuildContext, *Resource, RenderResult)) {
	h.onFileProcess = append(h.onFileProcess, fn)
}

func (h *HookRegistry) emitPhaseStart(ctx *BuildContext) {
	if h == nil {
		return
	}
	for _, fn := range h.onPhaseStart[ctx.CurrentPhase] {
		fn(ctx)
	}
}

func (h *HookRegistry) emitPhaseEnd(ctx *BuildContext) {
	if h == nil {
		return
	}
	for _, fn := range h.onPhaseEnd[ctx.CurrentPhase] {
		fn(ctx)
	}
}

func (h *HookRegistry) emitFileProcessed(ctx *BuildContext, res *Resource, result RenderResult) {
	if h == nil {
		return
	}
	for _, fn := range h.onFileProcess {
		fn(ctx, res, result)
	}
}
