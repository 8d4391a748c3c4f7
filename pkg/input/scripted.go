package input

// Scripted is an Oracle driven by code. Set the desired command states, then
// call Advance once per frame to derive the edges.
type Scripted struct {
	next     [commandCount]bool
	current  [commandCount]bool
	previous [commandCount]bool
}

// NewScripted creates a scripted oracle with every command up.
func NewScripted() *Scripted {
	return &Scripted{}
}

// Set marks c as down or up from the next Advance on.
func (s *Scripted) Set(c Command, down bool) {
	if c < 0 || c >= commandCount {
		return
	}
	s.next[c] = down
}

// Hold marks every given command down and every other command up.
func (s *Scripted) Hold(commands ...Command) {
	s.next = [commandCount]bool{}
	for _, c := range commands {
		s.Set(c, true)
	}
}

// Advance moves to the next frame.
func (s *Scripted) Advance() {
	s.previous = s.current
	s.current = s.next
}

// Held implements Oracle.
func (s *Scripted) Held(c Command) bool {
	return c >= 0 && c < commandCount && s.current[c]
}

// Pressed implements Oracle.
func (s *Scripted) Pressed(c Command) bool {
	return c >= 0 && c < commandCount && s.current[c] && !s.previous[c]
}

// Released implements Oracle.
func (s *Scripted) Released(c Command) bool {
	return c >= 0 && c < commandCount && !s.current[c] && s.previous[c]
}
