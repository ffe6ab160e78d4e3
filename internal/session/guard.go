package session

// Guard is the outcome of Require: either the value to proceed with or the
// path to redirect to.
type Guard struct {
	Value    string
	Redirect string
}

// OK reports whether the required key was present.
func (g Guard) OK() bool { return g.Redirect == "" }

// Require looks up key and, when it is missing, tells the caller to redirect
// to fallback. It never mutates or saves the session.
func Require(sess *Session, key, fallback string) Guard {
	if v, ok := sess.Get(key); ok {
		return Guard{Value: v}
	}
	return Guard{Redirect: fallback}
}
