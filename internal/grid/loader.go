package grid

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/dshills/gridkey/internal/action"
	"github.com/dshills/gridkey/internal/script"
)

// Loader converts grid definition JSON into an action matrix.
type Loader struct {
	log    zerolog.Logger
	runner *script.Runner
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the warning logger for degraded cells.
func WithLogger(log zerolog.Logger) LoaderOption {
	return func(l *Loader) {
		l.log = log
	}
}

// WithScripts enables "run" and "script" cells, executed through the
// given runner. Without it those cells degrade to spacers.
func WithScripts(r *script.Runner) LoaderOption {
	return func(l *Loader) {
		l.runner = r
	}
}

// NewLoader creates a loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile reads and parses a grid definition file.
func (l *Loader) LoadFile(path string) (action.Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grid file: %w", err)
	}
	m, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("grid file %s: %w", path, err)
	}
	return m, nil
}

// Parse converts grid definition JSON into a matrix with stable IDs
// assigned.
func (l *Loader) Parse(data []byte) (action.Matrix, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}

	root := gjson.ParseBytes(data)
	m, err := l.parseGrid(root, "")
	if err != nil {
		return nil, err
	}
	m.EnsureIDs()
	return m, nil
}

func (l *Loader) parseGrid(root gjson.Result, path string) (action.Matrix, error) {
	rows := root.Get("rows")
	if !rows.IsArray() {
		return nil, fmt.Errorf("missing rows array at %q", displayPath(path))
	}

	var m action.Matrix
	rows.ForEach(func(_, row gjson.Result) bool {
		r := len(m)
		if !row.IsArray() {
			l.log.Warn().Str("grid", displayPath(path)).Int("row", r+1).Msg("row is not an array, dropped")
			m = append(m, nil)
			return true
		}

		var cells []*action.Action
		row.ForEach(func(_, cell gjson.Result) bool {
			cells = append(cells, l.parseCell(cell, fmt.Sprintf("%sr%dc%d", path, r+1, len(cells)+1)))
			return true
		})
		m = append(m, cells)
		return true
	})
	return m, nil
}

// parseCell builds one action. Anything malformed degrades to a
// spacer so the rest of the grid still loads.
func (l *Loader) parseCell(cell gjson.Result, at string) *action.Action {
	if !cell.IsObject() {
		l.log.Warn().Str("cell", at).Msg("cell is not an object, degraded to spacer")
		return spacer()
	}

	spec := action.Spec{
		Key:         cell.Get("key").String(),
		Mods:        stringList(cell.Get("mods")),
		Description: cell.Get("desc").String(),
		App:         cell.Get("app").String(),
		File:        cell.Get("file").String(),
		IconPath:    cell.Get("icon").String(),
		Empty:       cell.Get("empty").Bool(),
		Missing:     cell.Get("missing").Bool(),
		ID:          cell.Get("id").String(),
	}

	if sub := cell.Get("grid"); sub.Exists() {
		child, err := l.parseGrid(sub, at+"/")
		if err != nil {
			l.log.Warn().Err(err).Str("cell", at).Msg("nested grid invalid, degraded to spacer")
			return spacer()
		}
		spec.Submenu = &child
	}

	if run := cell.Get("run"); run.Exists() {
		if l.runner == nil {
			l.log.Warn().Str("cell", at).Msg("run cell without script support, degraded to spacer")
			return spacer()
		}
		spec.Handler = l.runner.Handler(at, run.String())
	} else if file := cell.Get("script"); file.Exists() {
		if l.runner == nil {
			l.log.Warn().Str("cell", at).Msg("script cell without script support, degraded to spacer")
			return spacer()
		}
		spec.Handler = l.runner.FileHandler(file.String())
	}

	a, err := action.New(spec)
	if err != nil {
		l.log.Warn().Err(err).Str("cell", at).Msg("cell invalid, degraded to spacer")
		return spacer()
	}
	return a
}

func spacer() *action.Action {
	a, _ := action.New(action.Spec{})
	return a
}

func stringList(res gjson.Result) []string {
	if !res.IsArray() {
		return nil
	}
	var out []string
	res.ForEach(func(_, v gjson.Result) bool {
		out = append(out, v.String())
		return true
	})
	return out
}

func displayPath(path string) string {
	if path == "" {
		return "root"
	}
	return path
}
