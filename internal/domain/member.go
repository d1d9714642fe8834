package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Member is a registered customer. One member owns many orders.
type Member struct {
	ID   int64
	Name string
}

func NewMember(name string) (*Member, error) {
	m := &Member{}
	if err := m.Rename(name); err != nil {
		return nil, err
	}
	return m, nil
}

// Rename replaces the member name after validating it.
func (m *Member) Rename(name string) error {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 1 || n > 100 {
		return fmt.Errorf("member name must be 1-100 characters: %w", ErrValidation)
	}
	m.Name = name
	return nil
}
