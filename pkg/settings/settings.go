// Package settings holds the wikitext configuration record consulted by
// rules and renderers (spec.md §6 "Settings").
package settings

// Mode selects a named preset of defaults, the way Wikidot varies
// behavior by content context (a full page vs. a forum post vs. a
// draft preview). Grounded on the teacher's NewLogger(Config) value-struct
// constructor shape (pkg/log/log.go) rather than functional options,
// which the teacher never uses.
type Mode int

const (
	ModePage Mode = iota
	ModeDraft
	ModeForumPost
)

// WikitextSettings is a plain value record; every field is read-only once
// constructed. Recognized options per spec.md §6 (non-exhaustive there,
// complete here).
type WikitextSettings struct {
	Mode Mode

	// NoConditionals bypasses tag/variable conditionals (always include
	// the body of iftags/ifexpr-like blocks).
	NoConditionals bool

	// NoModules skips module rendering (emit empty output without
	// invoking the callback at all).
	NoModules bool

	// UseTrueIDs emits heading anchors from the raw title instead of a
	// normalized slug.
	UseTrueIDs bool

	// AllowLocalPaths permits local-file image/link resolution.
	AllowLocalPaths bool

	InterwikiPrefix string
	SiteSlug        string
	Locale          string

	// EnableBlockNames/DisableBlockNames are static filters on the rule
	// table: if EnableBlockNames is non-empty, only those block names are
	// registered; DisableBlockNames removes names from whatever set
	// EnableBlockNames left (or from the full set, if it was empty).
	EnableBlockNames  []string
	DisableBlockNames []string

	// MaxRecursionDepth bounds parser.depth (spec.md §5). Zero selects
	// the default of 100.
	MaxRecursionDepth int

	// StepWatchdogLimit bounds consecutive non-advancing rule attempts
	// in the paragraph gatherer before NoRulesMatch aborts (spec.md
	// §4.2). Zero selects the default of 100.
	StepWatchdogLimit int
}

// NewWikitextSettings returns the defaults for mode.
func NewWikitextSettings(mode Mode) *WikitextSettings {
	s := &WikitextSettings{
		Mode:              mode,
		MaxRecursionDepth: 100,
		StepWatchdogLimit: 100,
		Locale:            "en",
	}
	switch mode {
	case ModeDraft:
		s.NoModules = true
	case ModeForumPost:
		s.NoConditionals = true
		s.NoModules = true
	}
	return s
}

// BlockNameAllowed reports whether a block rule named name should be
// registered under these settings.
func (s *WikitextSettings) BlockNameAllowed(name string) bool {
	if len(s.EnableBlockNames) > 0 && !contains(s.EnableBlockNames, name) {
		return false
	}
	if contains(s.DisableBlockNames, name) {
		return false
	}
	return true
}

func contains(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}

func (s *WikitextSettings) maxDepth() int {
	if s.MaxRecursionDepth <= 0 {
		return 100
	}
	return s.MaxRecursionDepth
}

// MaxDepth exposes maxDepth for package parsing.
func (s *WikitextSettings) MaxDepth() int { return s.maxDepth() }

func (s *WikitextSettings) stepWatchdogLimit() int {
	if s.StepWatchdogLimit <= 0 {
		return 100
	}
	return s.StepWatchdogLimit
}

// StepWatchdog exposes stepWatchdogLimit for package parsing.
func (s *WikitextSettings) StepWatchdog() int { return s.stepWatchdogLimit() }
