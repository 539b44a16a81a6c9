package noteshub

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	gut "github.com/panyam/goutils/utils"
	"github.com/radovskyb/watcher"
	"github.com/sigroup/noteshub/logfields"
	"github.com/sigroup/noteshub/metrics"
	"golang.org/x/sync/errgroup"
)

// Site is the top level object that holds everything needed to build the
// notes hub from a content root.
type Site struct {
	// ContentRoot is the root directory where the source notes are located.
	ContentRoot string

	// OutputDir is the directory where the generated site is written.
	OutputDir string

	// Landing page header and footer text
	Title    string
	Subtitle string
	Footer   string

	// When set a sitemap.xml with absolute links under this URL is written
	BaseURL string

	// Optional folder with note.html and index.html overriding the built in templates
	ThemeDir string

	// Maximum number of files processed at the same time (default runtime.NumCPU())
	Concurrency int

	// Extra directory names (any depth) and file names (content root only)
	// to skip, on top of the defaults.
	ExcludeDirs  []string
	ExcludeFiles []string

	// Converter command ("auto", "none" or an executable) and its arguments.
	// Only used when Converter is nil.
	ConverterCommand string
	ConverterArgs    []string

	Converter DocumentConverter
	Renderer  PageRenderer
	Output    *OutputWriter

	// Rules for page sources, looked up by kind
	Rules     []Rule
	ImageRule Rule

	Hooks    *HookRegistry
	Recorder metrics.Recorder

	// Clock used for dates on generated pages
	Now func() time.Time

	// How often the watcher checks for changes (default 1s)
	BuildFrequency time.Duration

	initialized   bool
	buildMu       sync.Mutex
	filesRouter   *mux.Router
	reloadWatcher *watcher.Watcher
}

// BuildResult is the outcome of one full build.
type BuildResult struct {
	ID        string
	OutputDir string

	// Cards on the landing page in processing order
	Entries []*IndexEntry

	// Files that could not be processed
	Errors []*FileError

	Pages    int
	Subjects int
	Duration time.Duration
}

// Initializes the Site
func (s *Site) Init() *Site {
	s.ContentRoot = absPath(gut.ExpandUserPath(s.ContentRoot))
	if s.OutputDir == "" {
		s.OutputDir = filepath.Join(s.ContentRoot, "dist")
	}
	s.OutputDir = absPath(gut.ExpandUserPath(s.OutputDir))
	if s.Title == "" {
		s.Title = DefaultSiteTitle
	}
	if s.Subtitle == "" {
		s.Subtitle = DefaultSiteSubtitle
	}
	if s.Footer == "" {
		s.Footer = s.Title
	}
	if s.Concurrency <= 0 {
		s.Concurrency = runtime.NumCPU()
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	if s.Recorder == nil {
		s.Recorder = metrics.NoopRecorder{}
	}
	if s.Output == nil {
		s.Output = &OutputWriter{Root: s.OutputDir}
	}
	if s.Renderer == nil {
		if s.ThemeDir != "" {
			s.Renderer = NewTemplarPageRenderer(gut.ExpandUserPath(s.ThemeDir))
		} else {
			renderer, err := NewDefaultPageRenderer()
			if err != nil {
				panic(err)
			}
			s.Renderer = renderer
		}
	}
	if s.Converter == nil {
		command := s.ConverterCommand
		if command == "" {
			command = "auto"
		}
		s.Converter = DetectConverter(command, s.ConverterArgs)
	}
	if len(s.Rules) == 0 {
		// processing order: markdown, then documents, then pdfs
		s.Rules = []Rule{&MarkdownRule{}, &DocumentRule{}, &PDFRule{}}
	}
	if s.ImageRule == nil {
		s.ImageRule = &CopyRule{}
	}
	if s.BaseURL != "" {
		(&SitemapGenerator{BaseURL: s.BaseURL}).Register(s)
	}
	s.initialized = true
	return s
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func (s *Site) collector() *Collector {
	c := NewCollector()
	c.ExcludeDirs = append(c.ExcludeDirs, s.ExcludeDirs...)
	c.ExcludeFiles = append(c.ExcludeFiles, s.ExcludeFiles...)
	c.IgnoreDirFunc = func(dirpath string) bool {
		// never read back our own output
		return filepath.Clean(dirpath) == s.OutputDir
	}
	return c
}

// Build runs a full build.  Per-file failures are reported in the result;
// an error is only returned when no usable site could be produced.
func (s *Site) Build(ctx context.Context) (*BuildResult, error) {
	if !s.initialized {
		s.Init()
	}
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	start := time.Now()
	bctx := &BuildContext{Site: s, BuildID: uuid.NewString(), hooks: s.Hooks}
	logger := slog.With(logfields.BuildID(bctx.BuildID))
	logger.Info("Starting build", logfields.Path(s.ContentRoot))

	err := s.runPhase(bctx, PhaseDiscover, func() error {
		if err := s.Output.EnsureLayout(); err != nil {
			return err
		}
		collection, err := s.collector().Collect(s.ContentRoot)
		if err != nil {
			return err
		}
		bctx.Collection = collection
		logger.Info("Collected files", logfields.Count(collection.PageSources()),
			slog.Int("images", len(collection.Images)))
		bctx.Errors = append(bctx.Errors, collection.Errors...)
		return nil
	})
	if err == nil {
		err = s.runPhase(bctx, PhaseTransform, func() error {
			images := bctx.Collection.Images
			results := s.processAll(ctx, images, func(*Resource) Rule { return s.ImageRule })
			s.gather(bctx, images, results)
			return ctx.Err()
		})
	}
	if err == nil {
		err = s.runPhase(bctx, PhaseGenerate, func() error {
			sources := s.pageSources(bctx.Collection)
			results := s.processAll(ctx, sources, s.ruleFor)
			s.gather(bctx, sources, results)
			return ctx.Err()
		})
	}
	if err == nil {
		err = s.runPhase(bctx, PhaseFinalize, func() error {
			if err := s.writeIndex(bctx.Entries); err != nil {
				return err
			}
			if err := s.Output.WriteStylesheets(); err != nil {
				return err
			}
			bctx.Outputs = append(bctx.Outputs, "index.html", IndexStylesheet, NoteStylesheet)
			return nil
		})
	}

	duration := time.Since(start)
	s.Recorder.ObserveBuildDuration(duration)
	if err != nil {
		s.Recorder.IncBuildOutcome("failed")
		logger.Error("Build failed", logfields.Error(err))
		return nil, err
	}

	result := &BuildResult{
		ID:        bctx.BuildID,
		OutputDir: s.OutputDir,
		Entries:   bctx.Entries,
		Errors:    bctx.Errors,
		Pages:     len(bctx.Entries),
		Subjects:  countSubjects(bctx.Entries),
		Duration:  duration,
	}
	outcome := "success"
	if len(result.Errors) > 0 {
		outcome = "partial"
	}
	s.Recorder.IncBuildOutcome(outcome)
	s.Recorder.SetPagesGenerated(result.Pages)
	logger.Info("Build finished", logfields.Count(result.Pages),
		slog.Int("errors", len(result.Errors)),
		logfields.DurationMS(float64(duration.Microseconds())/1000))
	return result, nil
}

func (s *Site) runPhase(bctx *BuildContext, phase BuildPhase, fn func() error) error {
	bctx.CurrentPhase = phase
	start := time.Now()
	slog.Debug("Phase started", logfields.BuildID(bctx.BuildID), logfields.Phase(phase.String()))
	bctx.hooks.emitPhaseStart(bctx)
	if err := fn(); err != nil {
		return err
	}
	bctx.hooks.emitPhaseEnd(bctx)
	s.Recorder.ObservePhaseDuration(phase.String(), time.Since(start))
	return nil
}

func (s *Site) pageSources(c *Collection) (out []*Resource) {
	for _, rule := range s.Rules {
		switch rule.Kind() {
		case KindMarkdown:
			out = append(out, c.Markdown...)
		case KindDocument:
			out = append(out, c.Documents...)
		case KindPDF:
			out = append(out, c.PDFs...)
		}
	}
	return
}

func (s *Site) ruleFor(res *Resource) Rule {
	for _, rule := range s.Rules {
		if rule.Kind() == res.Kind {
			return rule
		}
	}
	return nil
}

// processAll runs the rule for each resource with at most Concurrency files
// in flight.  Results are in the same order as resources.  Resources that
// write to the same output path run one after the other in processing order,
// so the last one always wins.
func (s *Site) processAll(ctx context.Context, resources []*Resource, ruleFor func(*Resource) Rule) []RenderResult {
	results := make([]RenderResult, len(resources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)
	for _, indexes := range groupByOutput(resources) {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			for _, i := range indexes {
				res := resources[i]
				rule := ruleFor(res)
				if rule == nil {
					results[i] = Failed(res, fmt.Errorf("no rule for %s files", res.Kind))
					continue
				}
				results[i] = RunRule(gctx, rule, s, res)
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// outputPaths are the paths (relative to the output root) a resource writes.
func outputPaths(res *Resource) []string {
	switch res.Kind {
	case KindImage:
		return []string{path.Join(ImagesDir, res.RelPath)}
	case KindPDF:
		return []string{NotePagePath(res.Meta().Base), path.Join(PDFsDir, res.Name())}
	case KindDocument:
		return []string{NotePagePath(res.Meta().Base), path.Join(DocsDir, res.Name())}
	default:
		return []string{NotePagePath(res.Meta().Base)}
	}
}

// groupByOutput partitions resource indexes so that resources sharing any
// output path are in the same group.  Groups are ordered by their first
// member and indexes within a group are ascending.
func groupByOutput(resources []*Resource) [][]int {
	parent := make([]int, len(resources))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	owner := map[string]int{}
	for i, res := range resources {
		for _, out := range outputPaths(res) {
			j, ok := owner[out]
			if !ok {
				owner[out] = i
				continue
			}
			ri, rj := find(i), find(j)
			if ri == rj {
				continue
			}
			// keep the smaller index as root
			if ri < rj {
				parent[rj] = ri
			} else {
				parent[ri] = rj
			}
		}
	}

	var groups [][]int
	slot := map[int]int{}
	for i := range resources {
		root := find(i)
		n, ok := slot[root]
		if !ok {
			n = len(groups)
			slot[root] = n
			groups = append(groups, nil)
		}
		groups[n] = append(groups[n], i)
	}
	return groups
}

// gather folds the results of a phase into the build context in order.
func (s *Site) gather(bctx *BuildContext, resources []*Resource, results []RenderResult) {
	for i, result := range results {
		res := resources[i]
		bctx.hooks.emitFileProcessed(bctx, res, result)
		bctx.Outputs = append(bctx.Outputs, result.Outputs...)
		if result.Failed() {
			slog.Warn("Skipping file", logfields.BuildID(bctx.BuildID), logfields.File(res.RelPath), logfields.Error(result.Failure.Err))
			s.Recorder.IncFileResult(res.Kind.String(), metrics.ResultFailed)
			bctx.Errors = append(bctx.Errors, result.Failure)
			panicOrError(result.Failure)
			continue
		}
		s.Recorder.IncFileResult(res.Kind.String(), metrics.ResultSuccess)
		if result.Entry != nil {
			bctx.Entries = append(bctx.Entries, result.Entry)
		}
	}
}

func countSubjects(entries []*IndexEntry) int {
	seen := map[string]bool{}
	for _, e := range entries {
		seen[e.Subject] = true
	}
	return len(seen)
}

// Returns a Router instance that serves the generated site.  Nothing is
// rendered on request; only files already in OutputDir are served.
func (s *Site) GetRouter() *mux.Router {
	if !s.initialized {
		s.Init()
	}
	if s.filesRouter == nil {
		s.filesRouter = mux.NewRouter()
		fileServer := http.FileServer(http.Dir(s.OutputDir))
		s.filesRouter.PathPrefix("/").Handler(fileServer)
	}
	return s.filesRouter
}

// The base entry point for a serving a site - also implementing the
// http.Handler interface
func (s *Site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.GetRouter().ServeHTTP(w, r)
}
