package subscriptions

import (
	"context"
	"strings"
)

// Keyword is the class of an inbound SMS body
type Keyword string

const (
	KeywordNone  Keyword = "none"
	KeywordStop  Keyword = "stop"
	KeywordStart Keyword = "start"
	KeywordHelp  Keyword = "help"
)

var keywords = map[string]Keyword{
	"STOP":        KeywordStop,
	"STOPALL":     KeywordStop,
	"UNSUBSCRIBE": KeywordStop,
	"CANCEL":      KeywordStop,
	"END":         KeywordStop,
	"QUIT":        KeywordStop,
	"START":       KeywordStart,
	"UNSTOP":      KeywordStart,
	"YES":         KeywordStart,
	"HELP":        KeywordHelp,
	"INFO":        KeywordHelp,
}

// ParseKeyword classifies a message body. Only a body that is exactly one
// keyword (ignoring case and surrounding space) matches.
func ParseKeyword(body string) Keyword {
	if k, ok := keywords[strings.ToUpper(strings.TrimSpace(body))]; ok {
		return k
	}
	return KeywordNone
}

// Replies sent back to the handset for each keyword
const (
	ReplyStop  = "Civiq: You have been unsubscribed and will receive no further messages. Reply START to resubscribe."
	ReplyStart = "Civiq City Notifications: You are subscribed to issue updates and city notifications. Msg frequency varies. Msg & data rates may apply. Reply HELP for help, STOP to cancel."
	ReplyHelp  = "Civiq City Notifications: For help email support@civiq.ai. Msg frequency varies. Msg & data rates may apply. Reply STOP to cancel."
)

// HandleInbound applies a keyword from the number in from and returns the
// reply text. Unknown bodies produce an empty reply. The STOP reply is sent
// even if the number could not be matched, as carriers require.
func (s *Service) HandleInbound(ctx context.Context, from, body string) (Keyword, string, error) {
	kw := ParseKeyword(body)

	switch kw {
	case KeywordStop:
		_, err := s.OptOut(ctx, from)
		return kw, ReplyStop, err
	case KeywordStart:
		if _, err := s.Resubscribe(ctx, from); err != nil {
			return kw, "", err
		}
		return kw, ReplyStart, nil
	case KeywordHelp:
		return kw, ReplyHelp, nil
	default:
		return kw, "", nil
	}
}
