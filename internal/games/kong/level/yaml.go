package level

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-kong/internal/games/kong/sim"
)

// YAMLLevel is the on-disk form of a level.
type YAMLLevel struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Goal  string   `yaml:"goal,omitempty"`
	Throw *bool    `yaml:"throw,omitempty"` // antagonist throws barrels; default true
	Rows  []string `yaml:"rows"`
}

var (
	ErrNoRows        = errors.New("level: map has no rows")
	ErrNoCharacter   = errors.New("level: map has no character")
	ErrManyCharacter = errors.New("level: map has more than one character")
	ErrNoPrincess    = errors.New("level: rescue goal without a princess")
)

// ParseYAML parses and validates a level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("level: yaml unmarshal: %w", err)
	}

	lvl := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Goal:     Goal(strings.TrimSpace(yl.Goal)),
		CanThrow: yl.Throw == nil || *yl.Throw,
		Rows:     yl.Rows,
	}
	if lvl.Name == "" {
		lvl.Name = lvl.ID
	}
	if err := Validate(lvl); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

// Validate checks that a level can be loaded and completed.
func Validate(l Level) error {
	if len(l.Rows) == 0 {
		return ErrNoRows
	}
	if l.Goal != "" {
		if _, err := l.Goal.Predicate(); err != nil {
			return err
		}
	}

	chars, princesses := 0, 0
	for _, row := range l.Rows {
		chars += strings.Count(row, string(sim.SymCharacter))
		princesses += strings.Count(row, string(sim.SymPrincess))
	}
	switch {
	case chars == 0:
		return ErrNoCharacter
	case chars > 1:
		return ErrManyCharacter
	case l.Goal == GoalRescue && princesses == 0:
		return ErrNoPrincess
	}
	return nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
