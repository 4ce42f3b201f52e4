package tui

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"matchgames/internal/dnd"
	"matchgames/internal/game"
	"matchgames/internal/journal"
	"matchgames/internal/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/sirupsen/logrus"
)

const (
	defaultFrameInterval = time.Second / 60
	flashStepInterval    = 80 * time.Millisecond
	noticeTimeout        = 4 * time.Second
)

// Start picks the game to open. An empty Game opens the picker.
type Start struct {
	Game game.Kind
	// Level is the fraction level or the times table. Zero means the first.
	Level int
	Round int
}

type Options struct {
	Catalog       *game.Catalog
	Start         Start
	Seed          uint64
	FrameInterval time.Duration
	Glyphs        string
	Journal       *journal.Journal
	Log           *logrus.Logger
	Context       context.Context
}

type appModel struct {
	ctx           context.Context
	cat           *game.Catalog
	rng           *rand.Rand
	log           *logrus.Logger
	journal       *journal.Journal
	frameInterval time.Duration

	width  int
	height int
	// The first WindowSizeMsg is initial sizing, not a resize.
	seenWindowSize bool
	resizing       bool
	resizeSeq      int

	view   view
	picker list.Model
	keys   keyMap
	help   help.Model

	match game.Match
	snap  game.Snapshot
	frame frame
	index *dnd.Index

	session  dnd.Session
	gate     dnd.FrameGate
	frameSeq int

	flashItemID string
	flashSeq    int
	flashStep   int

	notice    string
	noticeSeq int

	roundsDone int
}

func newAppModel(opts Options) (appModel, error) {
	if opts.Catalog == nil {
		c, err := game.DefaultCatalog()
		if err != nil {
			return appModel{}, err
		}
		opts.Catalog = c
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	m := appModel{
		ctx:           opts.Context,
		cat:           opts.Catalog,
		rng:           rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		log:           opts.Log,
		journal:       opts.Journal,
		frameInterval: opts.FrameInterval,
		picker:        newPicker(opts.Catalog),
		keys:          newKeyMap(),
		help:          help.New(),
		index:         dnd.NewIndex(nil),
		view:          viewPicker,
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.log == nil {
		m.log = logging.Discard()
	}
	if m.frameInterval <= 0 {
		m.frameInterval = defaultFrameInterval
	}
	if opts.Start.Game != "" {
		if err := m.startMatch(opts.Start); err != nil {
			return appModel{}, err
		}
	}
	return m, nil
}

func newMatch(c *game.Catalog, st Start, rng *rand.Rand) (game.Match, error) {
	switch st.Game {
	case game.KindFraction:
		level, round := max(st.Level, 1), max(st.Round, 1)
		fm, err := game.NewFractionMatch(c, level, round, rng)
		if err != nil {
			return nil, err
		}
		return fm, nil
	case game.KindTimes:
		table := st.Level
		if table == 0 {
			table = c.Times.Min
		}
		tm, err := game.NewTimesMatch(c, table, rng)
		if err != nil {
			return nil, err
		}
		return tm, nil
	default:
		return nil, game.NotFoundError{Kind: "game", ID: string(st.Game)}
	}
}

func (m *appModel) startMatch(st Start) error {
	mt, err := newMatch(m.cat, st, m.rng)
	if err != nil {
		return err
	}
	m.match = mt
	m.view = viewGame
	level, round := mt.Labels()
	m.logger().WithFields(logrus.Fields{"level": level, "round": round}).Info("match started")
	m.roundChanged()
	return nil
}

// logger carries the current round's identity.
func (m *appModel) logger() *logrus.Entry {
	if m.match == nil {
		return logrus.NewEntry(m.log)
	}
	level, round := m.match.Labels()
	return m.log.WithFields(logrus.Fields{
		"game":  string(m.match.Kind()),
		"level": level,
		"round": round,
	})
}

func (m *appModel) roundChanged() {
	m.flashItemID = ""
	m.flashStep = 0
	m.snap = m.match.Round().Snapshot()
	m.relayout()
}

// relayout recomputes geometry and the hit-test cache from the snapshot.
func (m *appModel) relayout() {
	if m.match == nil {
		m.frame = frame{}
		m.index.Rebuild(nil)
		return
	}
	m.keys.Next.SetEnabled(m.snap.Completed())
	m.frame = layoutFrame(m.snap, m.chrome(), m.width, m.height)
	m.index.Rebuild(m.frame)
}

func (m *appModel) chrome() chrome {
	b := m.snap.Board
	wrap := max(m.width-4, 20)
	ch := chrome{
		title:        b.Title,
		progress:     m.match.Progress(),
		instructions: renderMarkdown(b.Instructions, wrap),
		hint:         b.Hint,
		nextLabel:    m.match.NextLabel(),
	}
	level, _ := m.match.Labels()
	ch.current = level
	switch m.match.Kind() {
	case game.KindFraction:
		ch.selectLabel = "Level"
		for i := range m.cat.Fraction.Levels {
			ch.selectors = append(ch.selectors, i+1)
		}
	case game.KindTimes:
		ch.selectLabel = "Table"
		for n := m.cat.Times.Min; n <= m.cat.Times.Max; n++ {
			ch.selectors = append(ch.selectors, n)
		}
	}
	if c := m.match.Congratulations(); c != "" {
		ch.congrats = renderMarkdown(c, min(wrap, 48))
	}
	return ch
}

func (m *appModel) meta() journal.Meta {
	level, round := m.match.Labels()
	return journal.Meta{Game: m.match.Kind(), Level: level, Round: round}
}

func (m *appModel) record(evs []game.Event) {
	if m.journal == nil || len(evs) == 0 {
		return
	}
	if err := m.journal.Record(m.ctx, m.meta(), evs...); err != nil {
		m.logger().WithError(err).Warn("journal record failed")
	}
}

func (m *appModel) scoreLine() string {
	c := m.snap.Counts
	return fmt.Sprintf("Placed %d/%d  %s  Correct %d  %s  Incorrect %d  %s  Tries missed %d  %s  Rounds this session %d",
		c.Filled, c.Total, glyphSep(), c.Correct, glyphSep(), c.Incorrect, glyphSep(), c.Rejected, glyphSep(), m.roundsDone)
}
