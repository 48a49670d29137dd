package railway

import (
	"strconv"
	"strings"
	"time"
)

// SearchFilter is used by resources that only support free-text search.
type SearchFilter struct {
	Search string
}

type TrainFilter struct {
	Name      string
	TrainType string
	Search    string
}

type RouteFilter struct {
	Source      string
	Destination string
	Search      string
}

type JourneyFilter struct {
	Source          string
	Destination     string
	TrainType       string
	DepartureAfter  *time.Time
	DepartureBefore *time.Time
	Search          string
}

// conditions accumulates WHERE clauses; each "?" in a clause is bound to the
// argument added with it, so one argument may be referenced several times.
type conditions struct {
	clauses []string
	args    []any
}

func (c *conditions) add(clause string, arg any) {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(c.args))))
}

// contains adds a case-insensitive substring match when value is non-empty.
func (c *conditions) contains(clause, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	c.add(clause, likePattern(value))
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
