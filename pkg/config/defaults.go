package config

import "fmt"

// Default returns the compiled-in configuration. Each call returns a fresh
// copy that callers may modify.
func Default() *Config {
	return &Config{
		Version:     CurrentVersion,
		Directories: []string{"pages", "src/components", "app", "content/blog"},
		Extensions:  []string{".tsx", ".ts", ".json"},
		Exclude: []string{
			"**/node_modules",
			"**/.next",
			"**/.git",
			"**/dist",
			"**/build",
			"**/.swc",
			"**/__tests__",
			"**/e2e",
		},
		Extractors: []string{
			ExtractorDirect,
			ExtractorJSONEscaped,
			ExtractorHelperCall,
			ExtractorTemplateLiteral,
		},
		Helpers: []string{"cn", "clsx"},
		Rules:   DefaultRules(),
	}
}

// DefaultRules returns the compiled-in rule tables.
func DefaultRules() RuleConfig {
	return RuleConfig{
		InteractiveVariants: []string{"hover", "focus", "active", "group-hover"},
		LightPalette:        []string{"white", "gray-50", "gray-100", "gray-200", "gray-300", "gray-400"},
		DarkPalette:         []string{"black", "gray-700", "gray-800", "gray-900", "gray-950"},
		CheckedFamilies: []string{
			"gray", "red", "green", "blue", "yellow", "purple", "pink", "indigo",
			"orange", "teal", "emerald", "cyan", "sky", "violet", "fuchsia", "rose", "amber",
		},
		AllowList:      defaultAllowList(),
		AccentFamilies: []string{"green", "blue", "red", "purple", "indigo", "pink", "orange", "yellow"},
		BackdropPatterns: []string{
			`^bg-[a-z]+-(600|700|800|900|950)$`,
			`^bg-black$`,
			`^bg-\[#`,
			`^bg-gradient`,
			`^backdrop-blur`,
			`^bg-white/\d+$`,
			`^bg-transparent$`,
		},
		TextWhiteExemptClasses: []string{"italic"},
		IconContextPattern:     `Check|XIcon|CheckIcon|CheckCircle`,
		Gradients: []Gradient{
			{Direction: "bg-gradient-to-r", From: "from-green-50", To: "to-emerald-50"},
		},
		Suggestions: defaultSuggestions(),
		MemoSize:    4096,
	}
}

// defaultAllowList holds accent text and saturated backgrounds that keep
// enough contrast against both light and dark surfaces.
func defaultAllowList() []string {
	allow := []string{"text-green-600", "text-green-500", "text-red-500", "text-blue-500"}

	solid := []string{
		"green", "red", "blue", "purple", "indigo", "yellow", "pink", "orange",
		"emerald", "teal", "cyan", "sky", "violet", "fuchsia", "rose", "amber",
	}
	for _, family := range solid {
		for _, shade := range []int{600, 700, 800, 900} {
			allow = append(allow, fmt.Sprintf("bg-%s-%d", family, shade))
		}
	}

	return append(allow,
		"bg-green-400", "bg-blue-400", "bg-green-500", "bg-blue-500", "bg-red-500", "bg-purple-500",
	)
}

func defaultSuggestions() map[string]string {
	s := map[string]string{
		"text-gray-900": "dark:text-gray-50",
		"text-gray-800": "dark:text-gray-100",
		"text-gray-700": "dark:text-gray-200",
		"text-gray-600": "dark:text-gray-300",
		"text-gray-500": "dark:text-gray-400",
		"text-gray-400": "dark:text-gray-500",
		"text-gray-300": "dark:text-gray-400",
		"text-gray-200": "dark:text-gray-300",
		"text-black":    "dark:text-white",

		"bg-white":    "dark:bg-gray-900",
		"bg-gray-50":  "dark:bg-gray-800",
		"bg-gray-100": "dark:bg-gray-700",
		"bg-gray-200": "dark:bg-gray-600",

		"border-gray-100": "dark:border-gray-800",
		"border-gray-200": "dark:border-gray-700",
		"border-gray-300": "dark:border-gray-600",
	}

	for _, family := range []string{"green", "blue", "purple", "orange", "red"} {
		s["text-"+family+"-600"] = "dark:text-" + family + "-400"
		s["text-"+family+"-700"] = "dark:text-" + family + "-300"
		s["text-"+family+"-800"] = "dark:text-" + family + "-200"
	}
	for _, family := range []string{"blue", "green", "red", "yellow"} {
		s["bg-"+family+"-100"] = "dark:bg-" + family + "-900/30"
	}

	return s
}
