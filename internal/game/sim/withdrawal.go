package sim

import (
	"github.com/cory-johannsen/biosim/internal/game/addiction"
	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/dice"
	"github.com/cory-johannsen/biosim/internal/game/effect"
	"github.com/cory-johannsen/biosim/internal/game/morale"
)

// withdrawalTable maps each substance to its per-turn withdrawal routine.
var withdrawalTable = map[addiction.Type]func(w *withdrawing){
	addiction.Nicotine:    nicotineWithdrawal,
	addiction.Caffeine:    caffeineWithdrawal,
	addiction.Alcohol:     depressantWithdrawal(morale.CravingAlcohol, "You could use a drink."),
	addiction.Diazepam:    depressantWithdrawal(morale.CravingDiazepam, "You could use some diazepam."),
	addiction.SleepPills:  sleepPillWithdrawal,
	addiction.Opiates:     opiateWithdrawal,
	addiction.Amphetamine: amphetamineWithdrawal,
	addiction.Cocaine:     cocaineWithdrawal(morale.CravingCocaine, "You feel like you need a bump."),
	addiction.Crack:       cocaineWithdrawal(morale.CravingCrack, "You're shivering, you need some crack."),
	addiction.Mutagen:     mutagenWithdrawal,
}

// withdrawing is the state one withdrawal routine works on.
type withdrawing struct {
	c   *character.Character
	a   *addiction.Addiction
	src dice.Source
}

func (w *withdrawing) oneIn(n int) bool { return dice.OneIn(w.src, max(n, 1)) }

// crave refreshes the craving morale penalty, deeper for stronger habits.
func (w *withdrawing) crave(typ morale.Type, per, most int) {
	w.c.Morale.Add(typ, -per, -min(most, per*w.a.Intensity), 10, 5, false, "")
}

// withdrawal returns the callback handed to the addiction tracker for c.
func (s *Simulator) withdrawal(c *character.Character) addiction.WithdrawalFunc {
	return func(a *addiction.Addiction) {
		fn, ok := withdrawalTable[a.Type]
		if !ok {
			return
		}
		fn(&withdrawing{c: c, a: a, src: s.src})
	}
}

func nicotineWithdrawal(w *withdrawing) {
	in := w.a.Intensity
	if w.oneIn(2000 - 20*in) {
		w.c.Notify(character.Warning, "You need some nicotine.")
		w.crave(morale.CravingNicotine, 5, 30)
	}
	if w.oneIn(800 - 50*in) {
		w.c.Fatigue++
	}
	if w.c.Stim > -5*in && w.oneIn(400-20*in) {
		w.c.Stim--
	}
}

func caffeineWithdrawal(w *withdrawing) {
	in := w.a.Intensity
	if w.oneIn(2000 - 20*in) {
		w.c.Notify(character.Warning, "You want some caffeine.")
		w.crave(morale.CravingCaffeine, 3, 30)
	}
	if w.c.Stim > -5*in && w.oneIn(400-20*in) {
		w.c.Notify(character.Bad, "Your hands start shaking... you need it bad!")
		w.c.AddEffect(effect.Shakes, body.Whole, 20, 1, false)
	}
}

func depressantWithdrawal(typ morale.Type, msg string) func(w *withdrawing) {
	return func(w *withdrawing) {
		in := w.a.Intensity
		w.crave(typ, 35, 35*in)
		switch {
		case w.oneIn(800 - 50*in):
			w.c.AddEffect(effect.Shakes, body.Whole, 50, 1, false)
		case w.c.HealthMod > -100 && w.oneIn(1200-50*in):
			w.c.HealthMod--
		}
		if w.oneIn(20000 - 500*in) {
			w.c.Notify(character.Warning, "%s", msg)
			w.c.AddEffect(effect.Hallu, body.Whole, 3600, 1, false)
		}
	}
}

func sleepPillWithdrawal(w *withdrawing) {
	in := w.a.Intensity
	if w.oneIn(3600 - 90*in) {
		w.c.Notify(character.Warning, "You feel anxious. You need your sleeping pills.")
		w.crave(morale.CravingDiazepam, 5, 30)
	}
	if w.c.Asleep() && w.oneIn(3600-80*in) {
		w.c.Notify(character.Bad, "You can't sleep without your pills.")
		w.c.WakeUp()
	}
}

func opiateWithdrawal(w *withdrawing) {
	in := w.a.Intensity
	w.crave(morale.CravingOpiate, 15, 15*in)
	if w.oneIn(900 - 30*in) {
		w.c.Notify(character.Bad, "Your hands start shaking... you need some painkillers.")
		w.c.AddEffect(effect.Shakes, body.Whole, 20+40*in, 1, false)
	}
	if w.oneIn(20*in) && w.c.PKill == 0 {
		w.c.ModPain(1)
	}
	if w.oneIn(2400 - 80*in) {
		w.c.Notify(character.Bad, "You feel nauseous.")
		w.c.Vomit(20, 20)
	}
}

func amphetamineWithdrawal(w *withdrawing) {
	in := w.a.Intensity
	w.crave(morale.CravingSpeed, 25, 25*in)
	if w.c.Stim > -10*in && w.oneIn(300-10*in) {
		w.c.Stim--
	}
	if w.oneIn(100) {
		w.c.Fatigue += in
	}
}

func cocaineWithdrawal(typ morale.Type, msg string) func(w *withdrawing) {
	return func(w *withdrawing) {
		in := w.a.Intensity
		w.crave(typ, 20, 20*in)
		if w.c.Stim > -5*in && w.oneIn(150-5*in) {
			w.c.Stim--
		}
		if w.oneIn(1200 - 30*in) {
			w.c.Notify(character.Warning, "%s", msg)
		}
	}
}

func mutagenWithdrawal(w *withdrawing) {
	in := w.a.Intensity
	if w.oneIn(3600 - 100*in) {
		w.c.Notify(character.Warning, "You daydream about the changes you could undergo.")
		w.crave(morale.CravingMutagen, 10, 30)
	}
	if w.oneIn(10000 - 300*in) {
		w.c.Notify(character.Bad, "Your body feels wrong without mutagen.")
		w.c.ModPain(5)
	}
}
