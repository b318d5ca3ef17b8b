package model

import "sort"

// Icon names one entry of the fixed icon catalog.
type Icon string

// DefaultIcon stands in for any unknown or missing icon name.
const DefaultIcon Icon = "Tag"

var iconGlyphs = map[Icon]string{
	"Home":         "🏠",
	"ShoppingCart": "🛒",
	"Zap":          "⚡",
	"Car":          "🚗",
	"CreditCard":   "💳",
	"Stethoscope":  "🩺",
	"Smile":        "🙂",
	"Clapperboard": "🎬",
	"Utensils":     "🍴",
	"PiggyBank":    "🐷",
	"Landmark":     "🏛",
	"BookOpen":     "📖",
	"Baby":         "👶",
	"ShieldCheck":  "🛡",
	"Gift":         "🎁",
	"Plane":        "✈",
	"Dumbbell":     "🏋",
	"Dog":          "🐕",
	"Briefcase":    "💼",
	"Laptop":       "💻",
	"TrendingUp":   "📈",
	"Building":     "🏢",
	"Award":        "🏆",
	"Percent":      "％",
	"Wallet":       "👛",
	"Coins":        "🪙",
	"Phone":        "📱",
	"Wifi":         "📶",
	"Shirt":        "👕",
	"Coffee":       "☕",
	"Fuel":         "⛽",
	"Train":        "🚆",
	"Music":        "🎵",
	"Heart":        "❤",
	"Tag":          "🏷",
}

// Known reports whether i is part of the icon catalog.
func (i Icon) Known() bool {
	_, ok := iconGlyphs[i]
	return ok
}

// Glyph returns the terminal symbol drawn for the icon.
func (i Icon) Glyph() string {
	if g, ok := iconGlyphs[i]; ok {
		return g
	}
	return iconGlyphs[DefaultIcon]
}

// ResolveIcon maps a stored icon name to a catalog entry.
func ResolveIcon(name string) Icon {
	if i := Icon(name); i.Known() {
		return i
	}
	return DefaultIcon
}

// Icons returns every catalog icon sorted by name.
func Icons() []Icon {
	out := make([]Icon, 0, len(iconGlyphs))
	for i := range iconGlyphs {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}
