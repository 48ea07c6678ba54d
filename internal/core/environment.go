package core

import "strings"

// Environment names the stage the tool runs in. It only changes how logs are
// written: JSON at info level in production, coloured debug output elsewhere.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// aliases maps every accepted spelling, short forms included.
var aliases = map[string]Environment{
	"development": Development,
	"dev":         Development,
	"staging":     Staging,
	"stage":       Staging,
	"testing":     Testing,
	"test":        Testing,
	"production":  Production,
	"prod":        Production,
}

func (e Environment) String() string {
	return string(e)
}

func (e Environment) IsProduction() bool {
	return e == Production
}

// ParseEnvironment reads ENVIRONMENT case-insensitively. Unset or unknown
// values mean Development.
func ParseEnvironment(v string) Environment {
	if env, ok := aliases[strings.ToLower(strings.TrimSpace(v))]; ok {
		return env
	}
	return Development
}
