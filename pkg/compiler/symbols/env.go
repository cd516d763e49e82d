package symbols

// Symbol records the declared type of one identifier.
type Symbol struct {
	Name string
	Type string
	Line int
}

type scope struct {
	parent int
	table  map[string]*Symbol
}

// Env is a chain of lexical scopes. Scopes live in an arena and refer to
// their parent by index; cur is -1 outside of any block.
type Env struct {
	scopes []scope
	cur    int
}

// Mark identifies the scope that was active before an Enter.
type Mark int

// NewEnv returns an empty scope chain with no active scope.
func NewEnv() *Env {
	return &Env{cur: -1}
}

// Enter pushes a fresh scope nested in the current one. The returned mark
// must be handed to Leave, typically with defer.
func (e *Env) Enter() Mark {
	m := Mark(e.cur)
	e.scopes = append(e.scopes, scope{parent: e.cur, table: make(map[string]*Symbol)})
	e.cur = len(e.scopes) - 1
	return m
}

// Leave discards every scope opened since the matching Enter and makes the
// marked scope current again.
func (e *Env) Leave(m Mark) {
	e.cur = int(m)
	e.scopes = e.scopes[:e.cur+1]
}

// Depth returns the number of open scopes.
func (e *Env) Depth() int {
	return len(e.scopes)
}

// Put binds name in the current scope, overwriting an earlier binding in
// the same scope. It is a no-op when no scope is open.
func (e *Env) Put(name string, sym *Symbol) {
	if e.cur < 0 {
		return
	}
	e.scopes[e.cur].table[name] = sym
}

// Get returns the nearest binding of name, walking outward, or nil.
func (e *Env) Get(name string) *Symbol {
	for i := e.cur; i >= 0; i = e.scopes[i].parent {
		if sym, ok := e.scopes[i].table[name]; ok {
			return sym
		}
	}
	return nil
}
