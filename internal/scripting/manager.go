package scripting

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/dice"
	"github.com/cory-johannsen/biosim/internal/game/effect"
)

// Manager owns one sandboxed LState holding every effect hook.
//
// Manager serialises all calls into the VM and is safe for concurrent use.
type Manager struct {
	mu     sync.Mutex
	L      *lua.LState
	limit  int
	roller *dice.Roller
	logger *zap.Logger

	// cur is the character and effect of the hook being run. nil outside
	// EffectTick, which turns engine.char.* into no-ops.
	cur *binding
}

type binding struct {
	c *character.Character
	a *effect.Active
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: roller and logger must be non-nil.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil {
		panic("scripting: NewManager requires a roller")
	}
	if logger == nil {
		panic("scripting: NewManager requires a logger")
	}
	return &Manager{roller: roller, logger: logger}
}

// Load replaces the VM with one running every *.lua file in scriptDir in
// lexicographic order.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: on error the previous VM stays in place.
func (m *Manager) Load(scriptDir string, instLimit int) error {
	return m.LoadFS(os.DirFS(scriptDir), instLimit)
}

// LoadFS is Load over an fs.FS root, such as content.Scripts().
func (m *Manager) LoadFS(fsys fs.FS, instLimit int) error {
	L := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		L.Close()
		return fmt.Errorf("scripting: reading script dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".lua" {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: reading %q: %w", name, err)
		}
		cancel := Arm(L, instLimit)
		err = L.DoString(string(src))
		cancel()
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", name, err)
		}
	}

	m.mu.Lock()
	if m.L != nil {
		m.L.Close()
	}
	m.L = L
	m.limit = instLimit
	m.mu.Unlock()
	m.logger.Info("scripts loaded", zap.Int("files", len(files)))
	return nil
}

// CallHook calls the named Lua global function. Returns (LNil, nil) if the
// hook is not defined or nothing is loaded. Lua runtime errors are logged at
// Warn level and never propagated.
//
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.call(hook, args...), nil
}

// EffectTick runs hook for one active effect on c. The hook receives a table
// {id, part, duration, intensity}; changes it makes to duration and intensity
// are written back to a.
func (m *Manager) EffectTick(hook string, c *character.Character, a *effect.Active) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L == nil {
		return
	}
	m.cur = &binding{c: c, a: a}
	defer func() { m.cur = nil }()

	t := m.L.NewTable()
	t.RawSetString("id", lua.LString(a.ID()))
	t.RawSetString("part", lua.LString(a.Part.String()))
	t.RawSetString("duration", lua.LNumber(a.Duration))
	t.RawSetString("intensity", lua.LNumber(a.Intensity))
	m.call(hook, t)

	if n, ok := t.RawGetString("duration").(lua.LNumber); ok {
		a.Duration = int(n)
	}
	if n, ok := t.RawGetString("intensity").(lua.LNumber); ok {
		a.SetIntensity(int(n))
	}
}

// call runs hook with m.mu held.
func (m *Manager) call(hook string, args ...lua.LValue) lua.LValue {
	if m.L == nil {
		m.logger.Info("scripting: no scripts loaded", zap.String("hook", hook))
		return lua.LNil
	}
	fn := m.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil
	}

	cancel := Arm(m.L, m.limit)
	defer cancel()
	if err := m.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil
	}
	ret := m.L.Get(-1)
	m.L.Pop(1)
	return ret
}

// Close releases the VM. Later calls are no-ops.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L != nil {
		m.L.Close()
		m.L = nil
	}
}
