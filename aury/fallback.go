package aury

import (
	"math/rand"
	"strings"
)

// fallbackPool maps a category family to its canned responses. Families
// are matched in order as substrings of the lowercased category label.
type fallbackPool struct {
	Family    string
	Responses []string
}

// Fallbacks is the static pool of pre-written remarks used whenever the
// external generator is unconfigured or fails. Immutable after creation.
type Fallbacks struct {
	Pools   []fallbackPool
	Default []string
}

// DefaultFallbacks returns the production response pools.
func DefaultFallbacks() Fallbacks {
	return Fallbacks{
		Pools: []fallbackPool{
			{"comida", []string{
				"¿Otra vez gastando en comida? 🤔 Tu cartera tiene más hambre que tú.",
				"Parece que tu relación con la comida es más seria que con tus ahorros...",
				"¿Pizza otra vez? Tu futuro yo te está mirando con desilusión. 😏",
				"Otro gasto en comida. Al menos tu estómago está contento, ¿tu cuenta bancaria? No tanto.",
			}},
			{"transporte", []string{
				"¿Taxi otra vez? Tu racha de caminar está en peligro. 🚶",
				"El transporte público existe, sabes... pero bueno, la comodidad tiene precio.",
			}},
			{"ocio", []string{
				"Netflix y gastar dinero. La combinación perfecta para no ahorrar nunca. 📺",
				"El ocio cuesta, pero los recuerdos... bueno, los recuerdos también cuestan. 💸",
			}},
		},
		Default: []string{
			"¡Otro gasto registrado! Tu cuenta bancaria está tomando notas... 📝",
			"Gasto anotado. Tu futuro yo te lo agradecerá... o no. 🤷",
			"Registrado. ¿Sabías que cada euro cuenta? Literalmente. 💰",
			"Gasto guardado. La racha sigue viva... por ahora. 🔥",
		},
	}
}

// Pick selects a canned response for the given category label, falling
// back to the generic pool. Always returns a non-empty string.
func (f Fallbacks) Pick(category string) string {
	lower := strings.ToLower(category)
	for _, pool := range f.Pools {
		if strings.Contains(lower, pool.Family) && len(pool.Responses) > 0 {
			return pool.Responses[rand.Intn(len(pool.Responses))]
		}
	}
	if len(f.Default) == 0 {
		return "Gasto registrado. 📝"
	}
	return f.Default[rand.Intn(len(f.Default))]
}
