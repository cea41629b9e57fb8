package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	left    key.Binding
	right   key.Binding
	enter   key.Binding
	esc     key.Binding
	tab     key.Binding
	backtab key.Binding
	space   key.Binding
	quit    key.Binding
	logout  key.Binding
	support key.Binding
	deals   key.Binding
	listing key.Binding
	offer   key.Binding
	profile key.Binding
	copy    key.Binding
	refresh key.Binding
	resend  key.Binding
	skip    key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k")),
	down:    key.NewBinding(key.WithKeys("down", "j")),
	left:    key.NewBinding(key.WithKeys("left", "h")),
	right:   key.NewBinding(key.WithKeys("right", "l")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	tab:     key.NewBinding(key.WithKeys("tab")),
	backtab: key.NewBinding(key.WithKeys("shift+tab")),
	space:   key.NewBinding(key.WithKeys(" ")),
	quit:    key.NewBinding(key.WithKeys("ctrl+c")),
	logout:  key.NewBinding(key.WithKeys("ctrl+l")),
	support: key.NewBinding(key.WithKeys("ctrl+s")),
	deals:   key.NewBinding(key.WithKeys("d")),
	listing: key.NewBinding(key.WithKeys("n")),
	offer:   key.NewBinding(key.WithKeys("o")),
	profile: key.NewBinding(key.WithKeys("p")),
	copy:    key.NewBinding(key.WithKeys("c")),
	refresh: key.NewBinding(key.WithKeys("r")),
	resend:  key.NewBinding(key.WithKeys("ctrl+r")),
	skip:    key.NewBinding(key.WithKeys("s")),
}
