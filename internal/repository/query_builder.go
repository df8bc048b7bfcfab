package repository

import "github.com/doug-martin/goqu/v9/exp"

// QueryBuilder collects list filters from handlers and turns them into
// goqu expressions with table-alias translation at the repository.
type QueryBuilder interface {
	AddCondition(key string, value interface{})
	AddRange(key string, min, max *int)
	AddSearch(term string, keys ...string)
	BuildConditions(aliases map[string]string) []exp.Expression
}
