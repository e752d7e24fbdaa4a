package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/dice"
	"github.com/cory-johannsen/biosim/internal/game/effect"
	"github.com/cory-johannsen/biosim/internal/game/trait"
)

// RegisterModules registers the engine.log, engine.dice and engine.char
// tables into L.
//
// Precondition: L must be from NewSandboxedState.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.logModule(L))
	L.SetField(engine, "dice", m.diceModule(L))
	L.SetField(engine, "char", m.charModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) logModule(L *lua.LState) *lua.LTable {
	level := func(fn func(string, ...zap.Field)) lua.LGFunction {
		return func(L *lua.LState) int {
			fn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}
	}
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"debug": level(m.logger.Debug),
		"info":  level(m.logger.Info),
		"warn":  level(m.logger.Warn),
		"error": level(m.logger.Error),
	})
}

func (m *Manager) diceModule(L *lua.LState) *lua.LTable {
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		// roll("2d6+1") -> {total, dice, modifier}
		"roll": func(L *lua.LState) int {
			res, err := m.roller.RollExpr(L.CheckString(1))
			if err != nil {
				L.RaiseError("engine.dice.roll: %s", err.Error())
				return 0
			}
			sum := 0
			for _, d := range res.Dice {
				sum += d
			}
			t := L.NewTable()
			t.RawSetString("total", lua.LNumber(res.Total()))
			t.RawSetString("dice", lua.LNumber(sum))
			t.RawSetString("modifier", lua.LNumber(res.Modifier))
			L.Push(t)
			return 1
		},
		"one_in": func(L *lua.LState) int {
			L.Push(lua.LBool(dice.OneIn(m.roller.Source(), L.CheckInt(1))))
			return 1
		},
		"rng": func(L *lua.LState) int {
			L.Push(lua.LNumber(dice.Rng(m.roller.Source(), L.CheckInt(1), L.CheckInt(2))))
			return 1
		},
	})
}

// counter returns the address of the named scalar on c, or nil.
func counter(c *character.Character, name string) *int {
	switch name {
	case "hunger":
		return &c.Hunger
	case "thirst":
		return &c.Thirst
	case "fatigue":
		return &c.Fatigue
	case "stim":
		return &c.Stim
	case "pain":
		return &c.Pain
	case "pkill":
		return &c.PKill
	case "radiation":
		return &c.Radiation
	case "health":
		return &c.Health
	}
	return nil
}

var messageKinds = map[string]character.MessageKind{
	"info":    character.Info,
	"good":    character.Good,
	"bad":     character.Bad,
	"warning": character.Warning,
}

func (m *Manager) charModule(L *lua.LState) *lua.LTable {
	// bound wraps fn so it only runs inside EffectTick.
	bound := func(fn func(L *lua.LState, b *binding) int) lua.LGFunction {
		return func(L *lua.LState) int {
			if m.cur == nil {
				L.Push(lua.LNil)
				return 1
			}
			return fn(L, m.cur)
		}
	}
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"name": bound(func(L *lua.LState, b *binding) int {
			L.Push(lua.LString(b.c.Name))
			return 1
		}),
		"get": bound(func(L *lua.LState, b *binding) int {
			name := L.CheckString(1)
			if name == "morale" {
				L.Push(lua.LNumber(b.c.MoraleLevel()))
				return 1
			}
			p := counter(b.c, name)
			if p == nil {
				L.ArgError(1, "unknown counter "+name)
				return 0
			}
			L.Push(lua.LNumber(*p))
			return 1
		}),
		"mod": bound(func(L *lua.LState, b *binding) int {
			name, n := L.CheckString(1), L.CheckInt(2)
			if name == "pain" {
				b.c.ModPain(n)
				return 0
			}
			p := counter(b.c, name)
			if p == nil {
				L.ArgError(1, "unknown counter "+name)
				return 0
			}
			*p += n
			return 0
		}),
		"notify": bound(func(L *lua.LState, b *binding) int {
			kind, ok := messageKinds[L.CheckString(1)]
			if !ok {
				kind = character.Info
			}
			b.c.Notify(kind, "%s", L.CheckString(2))
			return 0
		}),
		"asleep": bound(func(L *lua.LState, b *binding) int {
			L.Push(lua.LBool(b.c.Asleep()))
			return 1
		}),
		"wake": bound(func(L *lua.LState, b *binding) int {
			b.c.WakeUp()
			return 0
		}),
		"has_trait": bound(func(L *lua.LState, b *binding) int {
			L.Push(lua.LBool(b.c.Traits.Has(trait.ID(L.CheckString(1)))))
			return 1
		}),
		"has_effect": bound(func(L *lua.LState, b *binding) int {
			L.Push(lua.LBool(b.c.Effects.Has(effect.ID(L.CheckString(1)))))
			return 1
		}),
		// add_effect(id, part, duration, intensity) -> bool
		"add_effect": bound(func(L *lua.LState, b *binding) int {
			part, err := body.ParsePart(L.OptString(2, ""))
			if err != nil {
				L.ArgError(2, err.Error())
				return 0
			}
			a := b.c.AddEffect(effect.ID(L.CheckString(1)), part, L.OptInt(3, 1), L.OptInt(4, 1), false)
			L.Push(lua.LBool(a != nil))
			return 1
		}),
	})
}
