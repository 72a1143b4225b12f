package topdown

import (
	"github.com/Carmen-Shannon/oxy-topdown/engine/input"
)

// PluginOption is a functional option for configuring the top-down plugin.
type PluginOption func(p *plugin)

// WithFollowToggleKey makes a binding toggle follow mode when it is pressed.
//
// Parameters:
//   - b: the binding, e.g. input.KeyBinding(common.KeyF)
//
// Returns:
//   - PluginOption: functional option to set the toggle binding
func WithFollowToggleKey(b input.Binding) PluginOption {
	return func(p *plugin) {
		p.toggleKey = b
		p.hasToggleKey = true
	}
}
