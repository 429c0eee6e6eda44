package preview

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the scrubber key bindings
type KeyMap struct {
	Back     key.Binding
	Forward  key.Binding
	PageBack key.Binding
	PageFwd  key.Binding
	Start    key.Binding
	End      key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Back: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "step back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "step forward"),
		),
		PageBack: key.NewBinding(
			key.WithKeys("H", "pgup", "shift+left"),
			key.WithHelp("H", "page back"),
		),
		PageFwd: key.NewBinding(
			key.WithKeys("L", "pgdown", "shift+right"),
			key.WithHelp("L", "page forward"),
		),
		Start: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to start"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to end"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Forward, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Back, k.Forward, k.PageBack, k.PageFwd},
		{k.Start, k.End, k.Help, k.Quit},
	}
}
