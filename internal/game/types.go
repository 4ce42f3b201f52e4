package game

// Kind names one of the two games.
type Kind string

const (
	KindFraction Kind = "fraction"
	KindTimes    Kind = "times"
)

// ItemType tags what a card shows. Fraction table zones are typed by column.
type ItemType string

const (
	TypeFraction ItemType = "fraction"
	TypeDecimal  ItemType = "decimal"
	TypePercent  ItemType = "percent"
	TypeProduct  ItemType = "product"
)

func (t ItemType) Label() string {
	switch t {
	case TypeFraction:
		return "Fraction"
	case TypeDecimal:
		return "Decimal"
	case TypePercent:
		return "Percent"
	case TypeProduct:
		return "Product"
	default:
		return string(t)
	}
}

// Item is a draggable card.
type Item struct {
	ID    string   `json:"id"`
	Value string   `json:"value"`
	Type  ItemType `json:"type"`
	// Group identifies the equivalence class the value belongs to: the
	// fraction of its row for the fraction game, the product for times.
	Group string `json:"group"`
}

// Zone is a drop target.
type Zone struct {
	ID     string   `json:"id"`
	Row    int      `json:"row"`
	Column ItemType `json:"column"`
	// Expected is empty when the zone is graded as part of its row.
	Expected string `json:"expected,omitempty"`
}

// Cell is one slot of a board row: either fixed text or a drop zone.
type Cell struct {
	Text   string
	ZoneID string
	Type   ItemType
}

// Row is a line of the board as the host layout shows it.
type Row struct {
	Cells []Cell
	// Blank rows only pad the layout (the times table for 3 has one).
	Blank bool
}

// Board is everything a round needs from the level content: the bank, the
// zones and how the host should arrange them.
type Board struct {
	Kind         Kind
	Title        string
	Instructions string
	Hint         string
	Header       []string
	Rows         []Row
	Items        []Item
	Zones        []Zone
}

// Location is where an item currently is. The zero value is the bank.
type Location struct {
	ZoneID string `json:"zoneId,omitempty"`
}

var Bank = Location{}

func (l Location) InBank() bool { return l.ZoneID == "" }

func (l Location) String() string {
	if l.InBank() {
		return "bank"
	}
	return l.ZoneID
}

// Verdict is the grading state of a single zone.
type Verdict int

const (
	VerdictEmpty Verdict = iota
	// VerdictPending: filled but not yet gradable (incomplete mixed row).
	VerdictPending
	VerdictCorrect
	VerdictIncorrect
)

func (v Verdict) String() string {
	switch v {
	case VerdictPending:
		return "pending"
	case VerdictCorrect:
		return "correct"
	case VerdictIncorrect:
		return "incorrect"
	default:
		return "empty"
	}
}

// Phase is the round state machine:
// empty -> partial -> filled (some incorrect) -> all correct -> completed.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhasePartial
	PhaseFilledWithErrors
	PhaseAllCorrect
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhasePartial:
		return "partial"
	case PhaseFilledWithErrors:
		return "filled-with-errors"
	case PhaseAllCorrect:
		return "all-correct"
	case PhaseCompleted:
		return "completed"
	default:
		return "empty"
	}
}

// Counts is the scoreboard of a round.
type Counts struct {
	Total     int `json:"total"`
	Filled    int `json:"filled"`
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Rejected  int `json:"rejected"`
}
