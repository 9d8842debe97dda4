package rules

import (
	"fmt"
	"log/slog"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/darklint/pkg/classname"
	"github.com/gnana997/darklint/pkg/config"
)

// Engine runs the enabled rules over class strings. It is immutable after
// construction and safe for concurrent use.
type Engine struct {
	rules       []Rule
	all         []Rule
	resolver    *classname.Resolver
	iconContext *regexp.Regexp

	// memo caches findings per distinct class string and icon context.
	memo *lru.Cache[string, []Finding]

	logger *slog.Logger
}

// NewEngine compiles the rule tables in cfg.
func NewEngine(cfg config.RuleConfig, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	backdrops := make([]*regexp.Regexp, 0, len(cfg.BackdropPatterns))
	for _, p := range cfg.BackdropPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid backdrop pattern %q: %w", p, err)
		}
		backdrops = append(backdrops, re)
	}

	var icon *regexp.Regexp
	if cfg.IconContextPattern != "" {
		var err error
		if icon, err = regexp.Compile(cfg.IconContextPattern); err != nil {
			return nil, fmt.Errorf("invalid icon context pattern: %w", err)
		}
	}

	suggest := &suggester{table: cfg.Suggestions}
	all := []Rule{
		newLowContrastRule(cfg.LightPalette, cfg.DarkPalette, suggest),
		newMissingDarkVariantRule(cfg.CheckedFamilies, cfg.AllowList, cfg.AccentFamilies, suggest),
		newTextWhiteRule(backdrops, cfg.TextWhiteExemptClasses),
		proseRule{},
		&gradientRule{gradients: cfg.Gradients},
	}

	disabled := toSet(cfg.Disabled)
	for id := range disabled {
		if !isKnownPattern(PatternID(id)) {
			return nil, fmt.Errorf("unknown rule %q in disabled list", id)
		}
	}

	e := &Engine{
		all:         all,
		resolver:    classname.NewResolver(cfg.InteractiveVariants),
		iconContext: icon,
		logger:      logger,
	}
	for _, r := range all {
		if disabled[string(r.ID())] {
			logger.Debug("rule disabled", "rule", r.ID())
			continue
		}
		e.rules = append(e.rules, r)
	}

	if cfg.MemoSize > 0 {
		memo, err := lru.New[string, []Finding](cfg.MemoSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create findings memo: %w", err)
		}
		e.memo = memo
	}

	return e, nil
}

// Rules returns the enabled rules in evaluation order.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// RuleInfo describes one rule for listings.
type RuleInfo struct {
	ID          PatternID `json:"id" yaml:"id"`
	Description string    `json:"description" yaml:"description"`
	Enabled     bool      `json:"enabled" yaml:"enabled"`
}

// Catalog lists every known rule in evaluation order, disabled ones
// included.
func (e *Engine) Catalog() []RuleInfo {
	out := make([]RuleInfo, 0, len(e.all))
	for _, r := range e.all {
		enabled := false
		for _, on := range e.rules {
			if on.ID() == r.ID() {
				enabled = true
				break
			}
		}
		out = append(out, RuleInfo{ID: r.ID(), Description: r.Description(), Enabled: enabled})
	}
	return out
}

// IconContext reports whether line renders a check or close icon, which
// exempts text-white on that line.
func (e *Engine) IconContext(line string) bool {
	return e.iconContext != nil && e.iconContext.MatchString(line)
}

// Check evaluates a class string found on line. Findings depend only on the
// value and the icon context, so the class string carries no source and
// memo entries are shared across extraction sources.
func (e *Engine) Check(value, line string) []Finding {
	icon := e.IconContext(line)

	key := memoKey(value, icon)
	if e.memo != nil {
		if found, ok := e.memo.Get(key); ok {
			return found
		}
	}

	found := e.CheckClassString(classname.NewClassString(value, ""), icon)
	if e.memo != nil {
		e.memo.Add(key, found)
	}
	return found
}

// CheckClassString runs every enabled rule over cs. Findings with the same
// rule, mode and matched text are reported once.
func (e *Engine) CheckClassString(cs classname.ClassString, iconContext bool) []Finding {
	subject := &Subject{
		Class:       cs,
		Light:       e.resolver.Resolve(cs.Tokens, classname.ModeLight),
		Dark:        e.resolver.Resolve(cs.Tokens, classname.ModeDark),
		IconContext: iconContext,
	}

	type key struct {
		id    PatternID
		mode  classname.Mode
		match string
	}
	seen := make(map[key]bool)

	var out []Finding
	for _, r := range e.rules {
		for _, f := range r.Check(subject) {
			k := key{f.PatternID, f.Mode, f.Match}
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, f)
		}
	}
	return out
}

func memoKey(value string, icon bool) string {
	if icon {
		return value + "\x00i"
	}
	return value + "\x00"
}

func isKnownPattern(id PatternID) bool {
	for _, p := range AllPatterns {
		if p == id {
			return true
		}
	}
	return false
}
