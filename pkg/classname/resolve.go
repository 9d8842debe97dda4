package classname

// Mode is a color scheme a class string is rendered in.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Modes lists every mode in evaluation order.
var Modes = []Mode{ModeLight, ModeDark}

// DefaultInteractiveVariants are state modifiers excluded from resting
// contrast resolution.
var DefaultInteractiveVariants = []string{"hover", "focus", "active", "group-hover"}

// ResolvedPair holds the background and text tokens in effect for one mode.
// Either side may be nil.
type ResolvedPair struct {
	Background *ClassToken
	Text       *ClassToken
}

// Complete reports whether both sides resolved.
func (p ResolvedPair) Complete() bool {
	return p.Background != nil && p.Text != nil
}

// Resolver picks effective tokens per mode.
type Resolver struct {
	interactive map[string]bool
}

// NewResolver creates a resolver that ignores tokens carrying any of the
// given interactive variants.
func NewResolver(interactive []string) *Resolver {
	r := &Resolver{interactive: make(map[string]bool, len(interactive))}
	for _, v := range interactive {
		r.interactive[v] = true
	}
	return r
}

// DefaultResolver uses DefaultInteractiveVariants.
func DefaultResolver() *Resolver {
	return NewResolver(DefaultInteractiveVariants)
}

// Resolve computes the pair in effect for mode.
func (r *Resolver) Resolve(tokens []ClassToken, mode Mode) ResolvedPair {
	return ResolvedPair{
		Background: r.pick(tokens, KindBackground, mode),
		Text:       r.pick(tokens, KindText, mode),
	}
}

func (r *Resolver) pick(tokens []ClassToken, kind UtilityKind, mode Mode) *ClassToken {
	var fallback *ClassToken
	for i := range tokens {
		tok := &tokens[i]
		if tok.Kind != kind || r.isInteractive(tok) {
			continue
		}
		if tok.IsDark() {
			// Dark overrides win regardless of position.
			if mode == ModeDark {
				return tok
			}
			continue
		}
		if fallback == nil {
			fallback = tok
			if mode == ModeLight {
				return fallback
			}
		}
	}
	return fallback
}

func (r *Resolver) isInteractive(tok *ClassToken) bool {
	for _, v := range tok.Variants {
		if r.interactive[v] {
			return true
		}
	}
	return false
}

// Resolve is a convenience wrapper around DefaultResolver.
func Resolve(tokens []ClassToken, mode Mode) ResolvedPair {
	return DefaultResolver().Resolve(tokens, mode)
}
