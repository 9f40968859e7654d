package parser

import (
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/termindex/pkg/errors"
)

type Operator int

const (
	OpAND Operator = iota
	OpOR
)

func (op Operator) String() string {
	switch op {
	case OpAND:
		return "AND"
	case OpOR:
		return "OR"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether op is one of the defined operators.
func (op Operator) Valid() bool {
	return op == OpAND || op == OpOR
}

// ParseOperator accepts "and" or "or" in any case.
func ParseOperator(s string) (Operator, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AND":
		return OpAND, nil
	case "OR":
		return OpOR, nil
	}
	return 0, apperrors.Newf(apperrors.ErrInvalidArgument, "unknown operator %q", s)
}

// Normalizer turns a raw word into index terms.
type Normalizer interface {
	Process(text string) []string
}

type QueryPlan struct {
	Left     string
	Right    string
	Op       Operator
	RawQuery string
}

// Parse reads "<word> AND|OR <word>". Each word goes through n so that it
// matches the terms stored in the index; a word that normalizes to nothing
// becomes an empty term, which matches no document. A word that normalizes
// to more than one term is rejected.
func Parse(query string, n Normalizer) (*QueryPlan, error) {
	words := strings.Fields(query)
	if len(words) != 3 {
		return nil, apperrors.Newf(apperrors.ErrInvalidArgument,
			"query %q: expected <term> AND|OR <term>", query)
	}
	op, err := ParseOperator(words[1])
	if err != nil {
		return nil, err
	}
	left, err := singleTerm(n, words[0])
	if err != nil {
		return nil, err
	}
	right, err := singleTerm(n, words[2])
	if err != nil {
		return nil, err
	}
	return &QueryPlan{
		Left:     left,
		Right:    right,
		Op:       op,
		RawQuery: query,
	}, nil
}

func singleTerm(n Normalizer, word string) (string, error) {
	terms := n.Process(word)
	switch len(terms) {
	case 0:
		return "", nil
	case 1:
		return terms[0], nil
	}
	return "", apperrors.Newf(apperrors.ErrInvalidArgument,
		"word %q yields %d terms %v; query one term per operand", word, len(terms), terms)
}
