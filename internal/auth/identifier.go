package auth

import "strings"

type IdentifierKind int

const (
	IdentifierEmail IdentifierKind = iota + 1
	IdentifierPhone
)

func (k IdentifierKind) String() string {
	switch k {
	case IdentifierEmail:
		return "email"
	case IdentifierPhone:
		return "phone"
	default:
		return "unknown"
	}
}

// Identifier is what the user typed into the login box, already told
// apart as an email address or a phone number.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

// ClassifyIdentifier treats anything containing "@" as an email address
// and everything else as a phone number.
func ClassifyIdentifier(s string) (Identifier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Identifier{}, ErrEmptyIdentifier
	}
	if strings.Contains(s, "@") {
		return Identifier{Kind: IdentifierEmail, Value: s}, nil
	}
	return Identifier{Kind: IdentifierPhone, Value: s}, nil
}
