package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Level orders log severities
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// Component tags the pipeline stage a line comes from
type Component string

const (
	ComponentApp      Component = "app"
	ComponentChannel  Component = "channel"
	ComponentDownload Component = "download"
	ComponentMedia    Component = "media"
)

// Format selects the line encoding
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatColor
)

// TimeLayout is the timestamp layout of text lines
const TimeLayout = "2006-01-02 15:04:05"

// Config holds logger configuration
type Config struct {
	Level     Level
	Format    Format
	Output    io.Writer
	Timestamp bool
}

// DefaultConfig returns INFO text logging to stderr with timestamps
func DefaultConfig() *Config {
	return &Config{
		Level:     LevelInfo,
		Format:    FormatText,
		Output:    os.Stderr,
		Timestamp: true,
	}
}

// palette colors the parts of a line in FormatColor
type palette struct {
	time, component, key, value lipgloss.Style
	levels                      map[Level]lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }
	return &palette{
		time:      fg("8"),
		component: fg("6"),
		key:       fg("3"),
		value:     fg("2"),
		levels: map[Level]lipgloss.Style{
			LevelDebug: fg("12"),
			LevelInfo:  fg("10"),
			LevelWarn:  fg("11"),
			LevelError: fg("9").Bold(true),
		},
	}
}

// Logger writes leveled lines for components; it is safe for concurrent use
type Logger struct {
	mu      sync.Mutex
	cfg     Config
	palette *palette
	now     func() time.Time
}

// New creates a logger; nil config means DefaultConfig
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	l := &Logger{cfg: *cfg, now: time.Now}
	if l.cfg.Output == nil {
		l.cfg.Output = os.Stderr
	}
	if l.cfg.Format == FormatColor {
		l.palette = newPalette(l.cfg.Output)
	}
	return l
}

// WithComponent binds the logger to a component
func (l *Logger) WithComponent(component Component) *ComponentLogger {
	return &ComponentLogger{logger: l, component: component}
}

func (l *Logger) write(level Level, component Component, message string, fields map[string]interface{}) {
	if level < l.cfg.Level {
		return
	}

	var line string
	switch l.cfg.Format {
	case FormatJSON:
		line = l.jsonLine(level, component, message, fields)
	default:
		line = l.textLine(level, component, message, fields)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.cfg.Output, line)
}

// textLine renders "[LEVEL] [component] message k=v ..." with keys sorted
func (l *Logger) textLine(level Level, component Component, message string, fields map[string]interface{}) string {
	paint := func(s lipgloss.Style, text string) string {
		if l.palette == nil {
			return text
		}
		return s.Render(text)
	}
	var p palette
	if l.palette != nil {
		p = *l.palette
	}

	var b strings.Builder
	if l.cfg.Timestamp {
		b.WriteString(paint(p.time, l.now().Format(TimeLayout)))
		b.WriteByte(' ')
	}
	b.WriteString(paint(p.levels[level], "["+level.String()+"]"))
	b.WriteByte(' ')
	b.WriteString(paint(p.component, "["+string(component)+"]"))
	b.WriteByte(' ')
	b.WriteString(message)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(paint(p.key, k))
		b.WriteByte('=')
		b.WriteString(paint(p.value, fmt.Sprint(fields[k])))
	}
	return b.String()
}

func (l *Logger) jsonLine(level Level, component Component, message string, fields map[string]interface{}) string {
	record := map[string]interface{}{
		"time":      l.now().UTC().Format(time.RFC3339),
		"level":     level.String(),
		"component": component,
		"message":   message,
	}
	if len(fields) > 0 {
		encoded := make(map[string]interface{}, len(fields))
		for k, v := range fields {
			if err, ok := v.(error); ok {
				v = err.Error()
			}
			encoded[k] = v
		}
		record["fields"] = encoded
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Sprintf(`{"level":"ERROR","message":%q}`, "encode log line: "+err.Error())
	}
	return string(data)
}

// ComponentLogger logs on behalf of one component
type ComponentLogger struct {
	logger    *Logger
	component Component
}

// Debug logs at DEBUG
func (cl *ComponentLogger) Debug(message string, fields ...map[string]interface{}) {
	cl.logger.write(LevelDebug, cl.component, message, mergeFields(fields))
}

// Info logs at INFO
func (cl *ComponentLogger) Info(message string, fields ...map[string]interface{}) {
	cl.logger.write(LevelInfo, cl.component, message, mergeFields(fields))
}

// Warn logs at WARN
func (cl *ComponentLogger) Warn(message string, fields ...map[string]interface{}) {
	cl.logger.write(LevelWarn, cl.component, message, mergeFields(fields))
}

// Error logs at ERROR
func (cl *ComponentLogger) Error(message string, fields ...map[string]interface{}) {
	cl.logger.write(LevelError, cl.component, message, mergeFields(fields))
}

// mergeFields flattens field maps; later maps win on duplicate keys
func mergeFields(maps []map[string]interface{}) map[string]interface{} {
	if len(maps) == 1 {
		return maps[0]
	}
	merged := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}

var (
	globalMu     sync.RWMutex
	globalLogger = New(DefaultConfig())
)

// SetGlobalLogger replaces the process-wide logger
func SetGlobalLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// GetGlobalLogger returns the process-wide logger
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// WithComponent returns a component logger bound to the global logger
func WithComponent(component Component) *ComponentLogger {
	return GetGlobalLogger().WithComponent(component)
}
