package scripting_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/biosim/internal/content"
	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/dice"
	"github.com/cory-johannsen/biosim/internal/game/effect"
	"github.com/cory-johannsen/biosim/internal/scripting"
)

func newTestManager(t testing.TB, src dice.Source) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	roller := dice.NewLoggedRoller(src, logger)
	return scripting.NewManager(roller, logger), logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
	return dir
}

func newChar(t *testing.T) *character.Character {
	t.Helper()
	cat, err := content.Default()
	require.NoError(t, err)
	return character.New(cat, "Tess", nil)
}

func TestManager_Load_CallsHook(t *testing.T) {
	mgr, _ := newTestManager(t, dice.NewCryptoSource())
	dir := writeTempLua(t, "hooks.lua", `
		function test_hook(a, b)
			return a + b
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))
	ret, err := mgr.CallHook("test_hook", lua.LNumber(3), lua.LNumber(4))
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(7), ret)
}

func TestManager_CallHook_MissingHook_NoOp(t *testing.T) {
	mgr, _ := newTestManager(t, dice.NewCryptoSource())
	require.NoError(t, mgr.Load(writeTempLua(t, "empty.lua", `-- no functions`), 0))
	ret, err := mgr.CallHook("nonexistent_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_CallHook_NothingLoaded_LogsInfo(t *testing.T) {
	mgr, logs := newTestManager(t, dice.NewCryptoSource())
	ret, err := mgr.CallHook("some_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.Equal(t, 1, logs.FilterMessage("scripting: no scripts loaded").Len())
}

func TestManager_CallHook_RuntimeError_WarnLogNoPanic(t *testing.T) {
	mgr, logs := newTestManager(t, dice.NewCryptoSource())
	require.NoError(t, mgr.Load(writeTempLua(t, "bad.lua", `
		function bad_hook()
			error("intentional error")
		end
	`), 0))
	ret, err := mgr.CallHook("bad_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestManager_Load_InvalidLua_KeepsPreviousVM(t *testing.T) {
	mgr, _ := newTestManager(t, dice.NewCryptoSource())
	require.NoError(t, mgr.Load(writeTempLua(t, "ok.lua", `function keep() return 1 end`), 0))
	err := mgr.Load(writeTempLua(t, "bad.lua", `this is not valid lua @@@@`), 0)
	assert.Error(t, err)
	ret, err := mgr.CallHook("keep")
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(1), ret)
}

func TestManager_Load_MissingDir_ReturnsError(t *testing.T) {
	mgr, _ := newTestManager(t, dice.NewCryptoSource())
	assert.Error(t, mgr.Load(filepath.Join(t.TempDir(), "absent"), 0))
}

func TestManager_Load_MultipleFiles_OrderedByName(t *testing.T) {
	mgr, _ := newTestManager(t, dice.NewCryptoSource())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`base_val = 10`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`
		function get_val() return base_val end
	`), 0644))
	require.NoError(t, mgr.Load(dir, 0))
	ret, err := mgr.CallHook("get_val")
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(10), ret)
}

func TestManager_BudgetIsPerCall(t *testing.T) {
	mgr, _ := newTestManager(t, dice.NewCryptoSource())
	require.NoError(t, mgr.Load(writeTempLua(t, "loop.lua", `
		function busy()
			local n = 0
			for i = 1, 200 do n = n + i end
			return n
		end
	`), 2000))
	for i := 0; i < 50; i++ {
		ret, err := mgr.CallHook("busy")
		require.NoError(t, err)
		require.Equal(t, lua.LNumber(20100), ret, "call %d", i)
	}
}

func TestManager_Close_ReleasesVM(t *testing.T) {
	mgr, _ := newTestManager(t, dice.NewCryptoSource())
	require.NoError(t, mgr.Load(writeTempLua(t, "init.lua", `function get_x() return 1 end`), 0))
	mgr.Close()
	ret, err := mgr.CallHook("get_x")
	assert.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestNewManager_PanicsOnNilRoller(t *testing.T) {
	assert.Panics(t, func() { scripting.NewManager(nil, zap.NewNop()) })
}

func TestNewManager_PanicsOnNilLogger(t *testing.T) {
	roller := dice.NewLoggedRoller(dice.NewCryptoSource(), zap.NewNop())
	assert.Panics(t, func() { scripting.NewManager(roller, nil) })
}

func TestEffectTick_WritesBackEffectTable(t *testing.T) {
	mgr, _ := newTestManager(t, dice.Never)
	require.NoError(t, mgr.Load(writeTempLua(t, "tick.lua", `
		function shrink(e)
			if e.id ~= "formication" or e.part ~= "arms" then error("bad effect table") end
			e.duration = e.duration - 5
			e.intensity = 99
		end
	`), 0))
	c := newChar(t)
	a := c.AddEffect(effect.Formication, body.Arms, 20, 1, false)
	require.NotNil(t, a)

	mgr.EffectTick("shrink", c, a)
	assert.Equal(t, 15, a.Duration)
	assert.Equal(t, a.Def.Max(), a.Intensity)
}

func TestEmbeddedFormication_TiresTheAwake(t *testing.T) {
	mgr, _ := newTestManager(t, dice.FixedSource(0))
	require.NoError(t, mgr.LoadFS(content.Scripts(), 0))
	c := newChar(t)
	a := c.AddEffect(effect.Formication, body.Arms, 20, 2, false)
	before := c.Fatigue

	mgr.EffectTick("formication_tick", c, a)
	assert.Equal(t, before+1, c.Fatigue)
}

func TestEmbeddedFormication_WakesHeavySleepers(t *testing.T) {
	mgr, _ := newTestManager(t, dice.FixedSource(0))
	require.NoError(t, mgr.LoadFS(content.Scripts(), 0))
	c := newChar(t)
	c.FallAsleep(100)
	require.True(t, c.Asleep())
	a := c.AddEffect(effect.Formication, body.Arms, 20, 3, false)

	mgr.EffectTick("formication_tick", c, a)
	assert.False(t, c.Asleep())
}

func TestProperty_CallHookConcurrent_NoRace(t *testing.T) {
	mgr, _ := newTestManager(t, dice.NewCryptoSource())
	require.NoError(t, mgr.Load(writeTempLua(t, "hooks.lua", `
		function concurrent_hook(a, b)
			return a + b
		end
	`), 0))

	rapid.Check(t, func(rt *rapid.T) {
		goroutines := rapid.IntRange(1, 8).Draw(rt, "goroutines")
		var wg sync.WaitGroup
		wg.Add(goroutines)
		for i := 0; i < goroutines; i++ {
			go func() {
				defer wg.Done()
				ret, err := mgr.CallHook("concurrent_hook", lua.LNumber(1), lua.LNumber(2))
				assert.NoError(t, err)
				assert.Equal(t, lua.LNumber(3), ret)
			}()
		}
		wg.Wait()
	})
}
