package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the gallery bindings and feeds the help bar.
type keyMap struct {
	PrevPage  key.Binding
	NextPage  key.Binding
	PrevThumb key.Binding
	NextThumb key.Binding
	First     key.Binding
	Last      key.Binding
	Jump      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "swipe back"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "swipe forward"),
		),
		PrevThumb: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous thumbnail"),
		),
		NextThumb: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next thumbnail"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "last"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-9/0", "jump to thumbnail"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.Jump, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevPage, k.NextPage},
		{k.PrevThumb, k.NextThumb, k.Jump},
		{k.First, k.Last},
		{k.Help, k.Quit},
	}
}

// jumpIndex maps a digit key to a thumbnail index: 1-9 are the first nine,
// 0 is the tenth.
func jumpIndex(s string) (int, bool) {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	if s[0] == '0' {
		return 9, true
	}
	return int(s[0] - '1'), true
}
