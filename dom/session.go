package dom

// CallbackID names one callback binding within a frame.
type CallbackID uint64

// Session owns the counters that give nodes their identities: hit-test
// tags, per-frame callback ids and external texture ids. A window keeps
// one Session for its lifetime and passes it to builder calls.
//
// Session is not safe for concurrent use.
type Session struct {
	nextTag      Tag
	nextCallback CallbackID
	nextTexture  uint64
}

// NewSession creates a session whose counters start at one.
func NewSession() *Session {
	return &Session{}
}

// NextTag returns a fresh hit-test tag. Tags are never zero.
func (s *Session) NextTag() Tag {
	s.nextTag++
	return s.nextTag
}

// NextCallbackID returns a fresh callback id.
func (s *Session) NextCallbackID() CallbackID {
	s.nextCallback++
	return s.nextCallback
}

// NextTextureID returns a fresh id for an external texture.
func (s *Session) NextTextureID() uint64 {
	s.nextTexture++
	return s.nextTexture
}
