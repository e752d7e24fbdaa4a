// Package save encodes characters as versioned, compressed blobs.
//
// A blob is a zstd stream holding one JSON header line followed by the gob
// encoding of CharacterV1. The header can be read without decoding the body.
package save

import (
	"bufio"
	"bytes"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/cory-johannsen/biosim/internal/content"
	"github.com/cory-johannsen/biosim/internal/game/addiction"
	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/effect"
	"github.com/cory-johannsen/biosim/internal/game/inventory"
	"github.com/cory-johannsen/biosim/internal/game/morale"
	"github.com/cory-johannsen/biosim/internal/game/trait"
	"github.com/cory-johannsen/biosim/internal/game/world"
)

// Version is the blob format written by Encode.
const Version = 1

// ErrUnsupportedVersion is returned for blobs written by an unknown format.
var ErrUnsupportedVersion = errors.New("save: unsupported version")

// Header is the uncompressed-JSON first line of a blob.
type Header struct {
	Version int    `json:"version"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Turn    int    `json:"turn"`
	Dead    bool   `json:"dead,omitempty"`
}

// EffectV1 is one saved effect.
type EffectV1 struct {
	ID        string
	Part      body.Part
	Duration  int
	Intensity int
	Permanent bool
}

// CharacterV1 is the complete saved state of a character.
type CharacterV1 struct {
	Header Header

	ID   uuid.UUID
	Name string
	Turn int
	X, Y int

	Base  character.Stats
	Cur   character.Stats
	Bonus character.Bonuses

	BaseSpeed int
	Speed     int

	HP    [body.NumHPParts]int
	HPMax [body.NumHPParts]int

	Health    int
	HealthMod int
	Hunger    int
	Thirst    int
	Fatigue   int
	Stim      int
	Pain      int
	PKill     int
	Radiation int

	Temp      [body.NumParts]int
	TempConv  [body.NumParts]int
	Frostbite [body.NumParts]int
	Wetness   [body.NumParts]int

	Traits      []string
	Bionics     map[string]bool
	Style       character.Style
	Morale      []morale.Entry
	Effects     []EffectV1
	Diseases    []effect.Disease
	Addictions  []addiction.Addiction
	MissReasons []character.MissReason

	Worn     []string
	Tools    map[string]int
	Wielding bool

	Dead         bool
	CauseOfDeath string
}

// HeaderOf returns the header Encode would write for c.
func HeaderOf(c *character.Character) Header {
	return Header{Version: Version, ID: c.ID.String(), Name: c.Name, Turn: c.Turn, Dead: c.Dead}
}

// Snapshot copies c into its saved form.
//
// Postcondition: the result shares no mutable state with c.
func Snapshot(c *character.Character) CharacterV1 {
	s := CharacterV1{
		Header:       HeaderOf(c),
		ID:           c.ID,
		Name:         c.Name,
		Turn:         c.Turn,
		X:            c.Pos.X,
		Y:            c.Pos.Y,
		Base:         c.Base,
		Cur:          c.Cur,
		Bonus:        c.Bonus,
		BaseSpeed:    c.BaseSpeed,
		Speed:        c.Speed,
		HP:           c.HP,
		HPMax:        c.HPMax,
		Health:       c.Health,
		HealthMod:    c.HealthMod,
		Hunger:       c.Hunger,
		Thirst:       c.Thirst,
		Fatigue:      c.Fatigue,
		Stim:         c.Stim,
		Pain:         c.Pain,
		PKill:        c.PKill,
		Radiation:    c.Radiation,
		Temp:         c.Temp,
		TempConv:     c.TempConv,
		Frostbite:    c.Frostbite,
		Wetness:      c.Wetness,
		Bionics:      make(map[string]bool, len(c.Bionics)),
		Style:        c.Style,
		Morale:       c.Morale.Entries(),
		Addictions:   c.Addictions.All(),
		MissReasons:  c.MissReasons(),
		Wielding:     c.Wielding,
		Dead:         c.Dead,
		CauseOfDeath: c.CauseOfDeath,
	}
	for _, id := range c.Traits.Sorted() {
		s.Traits = append(s.Traits, string(id))
	}
	for k, v := range c.Bionics {
		s.Bionics[k] = v
	}
	for _, a := range c.Effects.All() {
		s.Effects = append(s.Effects, EffectV1{
			ID:        string(a.ID()),
			Part:      a.Part,
			Duration:  a.Duration,
			Intensity: a.Intensity,
			Permanent: a.Permanent,
		})
	}
	for _, d := range c.Diseases.All() {
		s.Diseases = append(s.Diseases, *d)
	}
	if eq, ok := c.Equip.(*inventory.Equipment); ok {
		for _, w := range eq.Worn {
			s.Worn = append(s.Worn, w.Def.ID)
		}
		s.Tools = make(map[string]int, len(eq.Tools))
		for k, v := range eq.Tools {
			s.Tools[k] = v
		}
	}
	return s
}

// Restore rebuilds a character from s against cat. Entries that no longer
// resolve in the catalog are dropped and logged.
//
// Precondition: cat must not be nil.
func Restore(s CharacterV1, cat *content.Catalog, logger *zap.Logger) *character.Character {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := character.New(cat, s.Name, logger)
	c.ID = s.ID
	c.Turn = s.Turn
	c.Pos = world.Point{X: s.X, Y: s.Y}
	c.Base, c.Cur, c.Bonus = s.Base, s.Cur, s.Bonus
	c.BaseSpeed, c.Speed = s.BaseSpeed, s.Speed
	c.HP, c.HPMax = s.HP, s.HPMax
	c.Health, c.HealthMod = s.Health, s.HealthMod
	c.Hunger, c.Thirst, c.Fatigue = s.Hunger, s.Thirst, s.Fatigue
	c.Stim, c.Pain, c.PKill, c.Radiation = s.Stim, s.Pain, s.PKill, s.Radiation
	c.Temp, c.TempConv = s.Temp, s.TempConv
	c.Frostbite, c.Wetness = s.Frostbite, s.Wetness
	c.Style = s.Style
	c.Wielding = s.Wielding
	c.Dead, c.CauseOfDeath = s.Dead, s.CauseOfDeath
	for k, v := range s.Bionics {
		c.Bionics[k] = v
	}

	warn := func(what, id string) {
		logger.Warn("dropping unknown saved entry",
			zap.String("character", s.ID.String()),
			zap.String("kind", what),
			zap.String("id", id),
		)
	}
	for _, id := range s.Traits {
		if _, ok := cat.Traits.Get(trait.ID(id)); !ok {
			warn("trait", id)
			continue
		}
		c.Traits.Add(trait.ID(id))
	}
	for _, e := range s.Morale {
		c.Morale.Restore(e)
	}
	for _, e := range s.Effects {
		def, ok := cat.Effects.Get(effect.ID(e.ID))
		if !ok {
			warn("effect", e.ID)
			continue
		}
		c.Effects.Restore(&effect.Active{
			Def:       def,
			Part:      e.Part,
			Duration:  e.Duration,
			Intensity: min(max(e.Intensity, 1), def.Max()),
			Permanent: e.Permanent,
		})
	}
	for _, d := range s.Diseases {
		if _, ok := cat.Diseases[d.Type]; !ok {
			warn("disease", string(d.Type))
			continue
		}
		c.Diseases.Add(d)
	}
	for _, a := range s.Addictions {
		c.Addictions.Restore(a)
	}
	for _, m := range s.MissReasons {
		c.AddMissReason(m.Reason, m.Weight)
	}

	eq := inventory.NewEquipment()
	for _, id := range s.Worn {
		def, ok := cat.Clothing.Clothing(id)
		if !ok {
			warn("clothing", id)
			continue
		}
		eq.Wear(def)
	}
	for k, v := range s.Tools {
		eq.Tools[k] = v
	}
	c.Equip = eq
	c.Clamp()
	return c
}

// Encode writes c to w as a compressed blob.
func Encode(w io.Writer, c *character.Character) error {
	snap := Snapshot(c)
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("save: zstd writer: %w", err)
	}
	bw := bufio.NewWriter(enc)

	hb, err := json.Marshal(snap.Header)
	if err != nil {
		_ = enc.Close()
		return fmt.Errorf("save: header: %w", err)
	}
	hb = append(hb, '\n')
	if _, err := bw.Write(hb); err != nil {
		_ = enc.Close()
		return fmt.Errorf("save: header: %w", err)
	}
	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		_ = enc.Close()
		return fmt.Errorf("save: gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return fmt.Errorf("save: flush: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("save: zstd close: %w", err)
	}
	return nil
}

// Decode reads a blob written by Encode and rebuilds the character.
//
// Postcondition: returns ErrUnsupportedVersion for unknown header versions.
func Decode(r io.Reader, cat *content.Catalog, logger *zap.Logger) (*character.Character, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("save: zstd reader: %w", err)
	}
	defer dec.Close()
	br := bufio.NewReader(dec)

	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	var snap CharacterV1
	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return nil, fmt.Errorf("save: gob decode: %w", err)
	}
	return Restore(snap, cat, logger), nil
}

// ReadHeader returns only the header line of a blob.
func ReadHeader(r io.Reader) (Header, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return Header{}, fmt.Errorf("save: zstd reader: %w", err)
	}
	defer dec.Close()
	return readHeader(bufio.NewReader(dec))
}

// Marshal returns the blob for c.
func Marshal(c *character.Character) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal rebuilds a character from a blob returned by Marshal.
func Unmarshal(data []byte, cat *content.Catalog, logger *zap.Logger) (*character.Character, error) {
	return Decode(bytes.NewReader(data), cat, logger)
}

func readHeader(br *bufio.Reader) (Header, error) {
	line, err := br.ReadBytes('\n')
	if err != nil {
		return Header{}, fmt.Errorf("save: header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return Header{}, fmt.Errorf("save: header: %w", err)
	}
	return h, nil
}
