package timeline

import (
	"sort"

	"github.com/tanema/gween/ease"
)

var eases = map[string]ease.TweenFunc{
	"linear":        ease.Linear,
	"in-quad":       ease.InQuad,
	"out-quad":      ease.OutQuad,
	"in-out-quad":   ease.InOutQuad,
	"in-cubic":      ease.InCubic,
	"out-cubic":     ease.OutCubic,
	"in-out-cubic":  ease.InOutCubic,
	"in-sine":       ease.InSine,
	"out-sine":      ease.OutSine,
	"in-out-sine":   ease.InOutSine,
	"in-expo":       ease.InExpo,
	"out-expo":      ease.OutExpo,
	"in-out-expo":   ease.InOutExpo,
	"in-back":       ease.InBack,
	"out-back":      ease.OutBack,
	"in-out-back":   ease.InOutBack,
	"in-elastic":    ease.InElastic,
	"out-elastic":   ease.OutElastic,
	"in-bounce":     ease.InBounce,
	"out-bounce":    ease.OutBounce,
	"in-out-bounce": ease.InOutBounce,
}

// lookupEase resolves an ease name. The empty name is linear.
func lookupEase(name string) (ease.TweenFunc, bool) {
	if name == "" {
		return ease.Linear, true
	}
	fn, ok := eases[name]
	return fn, ok
}

// EaseNames returns the supported ease names, sorted.
func EaseNames() []string {
	names := make([]string, 0, len(eases))
	for n := range eases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
