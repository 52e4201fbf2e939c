package commands

type Command interface {
	Name() string
}

// DealCard records a card seen at the table. Key is the raw key press.
// Card, when set, names the exact card instead ("10♥", "Qs").
type DealCard struct {
	Key  string `json:"key"`
	Card string `json:"card,omitempty"`
}

func (d DealCard) Name() string { return "DEAL_CARD" }

type ResetShoe struct{}

func (r ResetShoe) Name() string { return "RESET_SHOE" }

// ReplaySession rebuilds the session counter from its stored history.
type ReplaySession struct{}

func (r ReplaySession) Name() string { return "REPLAY_SESSION" }

type GetSnapshot struct{}

func (g GetSnapshot) Name() string { return "GET_SNAPSHOT" }
