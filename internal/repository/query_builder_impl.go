package repository

import (
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

type rangeCondition struct {
	min *int
	max *int
}

type searchCondition struct {
	term string
	keys []string
}

type queryBuilderImpl struct {
	conditions map[string]interface{}
	ranges     map[string]rangeCondition
	searches   []searchCondition
}

func NewQueryBuilder() QueryBuilder {
	return &queryBuilderImpl{
		conditions: make(map[string]interface{}),
		ranges:     make(map[string]rangeCondition),
	}
}

func (q *queryBuilderImpl) AddCondition(key string, value interface{}) {
	q.conditions[key] = value
}

func (q *queryBuilderImpl) AddRange(key string, min, max *int) {
	if min == nil && max == nil {
		return
	}
	q.ranges[key] = rangeCondition{min: min, max: max}
}

// AddSearch matches term case-insensitively against any of the given
// columns.
func (q *queryBuilderImpl) AddSearch(term string, keys ...string) {
	if term == "" || len(keys) == 0 {
		return
	}
	q.searches = append(q.searches, searchCondition{term: term, keys: keys})
}

func (q *queryBuilderImpl) BuildConditions(aliases map[string]string) []exp.Expression {
	var expressions []exp.Expression

	for key, value := range q.conditions {
		expressions = append(expressions, goqu.Ex{resolveAlias(key, aliases): value})
	}

	for key, rng := range q.ranges {
		column := goqu.I(resolveAlias(key, aliases))
		if rng.min != nil {
			expressions = append(expressions, column.Gte(*rng.min))
		}
		if rng.max != nil {
			expressions = append(expressions, column.Lte(*rng.max))
		}
	}

	for _, search := range q.searches {
		pattern := "%" + search.term + "%"
		ors := make([]exp.Expression, 0, len(search.keys))
		for _, key := range search.keys {
			ors = append(ors, goqu.I(resolveAlias(key, aliases)).ILike(pattern))
		}
		expressions = append(expressions, goqu.Or(ors...))
	}

	return expressions
}

func resolveAlias(key string, aliases map[string]string) string {
	if alias, ok := aliases[key]; ok {
		return alias
	}
	return key
}
