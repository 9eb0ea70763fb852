package geo

import "fmt"

// Level is the administrative scope of a feed view or post.
type Level string

const (
	LevelHome         Level = "home"
	LevelCounty       Level = "county"
	LevelConstituency Level = "constituency"
	LevelWard         Level = "ward"
)

func ValidLevel(s string) bool {
	switch Level(s) {
	case LevelHome, LevelCounty, LevelConstituency, LevelWard:
		return true
	}
	return false
}

// Selector is a validated (level, value) pair. The zero value is the home
// selector. Constructors keep the value consistent with the level: home
// carries no value, every other level requires one.
type Selector struct {
	level Level
	value string
}

func Home() Selector {
	return Selector{level: LevelHome}
}

func CountyOf(name string) Selector {
	return Selector{level: LevelCounty, value: name}
}

func ConstituencyOf(name string) Selector {
	return Selector{level: LevelConstituency, value: name}
}

func WardOf(name string) Selector {
	return Selector{level: LevelWard, value: name}
}

// ParseSelector validates untrusted level strings at the API boundary.
func ParseSelector(levelType, levelValue string) (Selector, error) {
	switch Level(levelType) {
	case LevelHome, "":
		return Home(), nil
	case LevelCounty, LevelConstituency, LevelWard:
		if levelValue == "" {
			return Selector{}, fmt.Errorf("levelValue required for level %q", levelType)
		}
		return Selector{level: Level(levelType), value: levelValue}, nil
	}
	return Selector{}, fmt.Errorf("unknown level type %q", levelType)
}

func (s Selector) Level() Level {
	if s.level == "" {
		return LevelHome
	}
	return s.level
}

func (s Selector) Value() string { return s.value }

func (s Selector) IsHome() bool { return s.Level() == LevelHome }
