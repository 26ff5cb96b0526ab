package jackpot

import (
	"fmt"

	"jackpotsim/internal/betting"
)

type SessionMessage struct {
	Type    string          `json:"type"`
	Game    string          `json:"game,omitempty"`
	Outcome betting.Outcome `json:"outcome,omitempty"`
}

type SessionReply struct {
	Type       string                       `json:"type"`
	Success    bool                         `json:"success"`
	Message    string                       `json:"message,omitempty"`
	Selections betting.Selections           `json:"game_selections,omitempty"`
	Validation *betting.Result              `json:"validation,omitempty"`
	Blocked    map[string][]betting.Outcome `json:"blocked,omitempty"`
}

// Session is the live slip behind one dashboard connection. It is not safe for
// concurrent use; the connection's read loop is its only writer.
type Session struct {
	jackpot    *Jackpot
	rules      betting.Rules
	rng        betting.Rand
	selections betting.Selections
}

func NewSession(jp *Jackpot, rules betting.Rules, rng betting.Rand) *Session {
	return &Session{
		jackpot:    jp,
		rules:      rules,
		rng:        rng,
		selections: betting.NewSelections(jp.TotalMatches),
	}
}

func (s *Session) Selections() betting.Selections {
	return s.selections.Clone()
}

// Handle applies one client message and reports the resulting slip.
func (s *Session) Handle(msg SessionMessage) SessionReply {
	switch msg.Type {
	case "ping":
		return SessionReply{Type: "pong", Success: true}

	case "toggle":
		if err := betting.CheckRange(betting.Selections{msg.Game: nil}, s.jackpot.TotalMatches); err != nil {
			return SessionReply{Type: msg.Type, Message: err.Error()}
		}
		next, err := betting.Toggle(s.selections, msg.Game, msg.Outcome)
		if err != nil {
			return SessionReply{Type: msg.Type, Message: err.Error()}
		}
		s.selections = next

	case "reset":
		s.selections = betting.NewSelections(s.jackpot.TotalMatches)

	case "randomize":
		s.selections = betting.Randomize(s.jackpot.TotalMatches, s.rng, s.rules)

	case "smart":
		s.selections = betting.SmartSelect(s.jackpot.Odds(), s.rules)

	case "validate":

	default:
		return SessionReply{Type: "error", Message: fmt.Sprintf("unknown message type %q", msg.Type)}
	}

	return s.reply(msg.Type)
}

func (s *Session) reply(msgType string) SessionReply {
	res, err := betting.Validate(s.selections, s.rules)
	if err != nil {
		return SessionReply{Type: msgType, Message: err.Error()}
	}
	return SessionReply{
		Type:       msgType,
		Success:    true,
		Selections: s.Selections(),
		Validation: &res,
		Blocked:    s.blocked(),
	}
}

// blocked lists, per game, the outcomes whose toggle would break the rules.
func (s *Session) blocked() map[string][]betting.Outcome {
	out := make(map[string][]betting.Outcome)
	for _, game := range s.selections.Games() {
		for _, o := range betting.Outcomes {
			if !betting.WouldBeValid(s.selections, game, o, s.rules) {
				out[game] = append(out[game], o)
			}
		}
	}
	return out
}
