package dataprocessing

import "strings"

// Role is the semantic meaning a dataset column can play in an analysis.
type Role string

const (
	RolePrice  Role = "price"
	RoleDemand Role = "demand"
	RoleYear   Role = "year"
	RoleArea   Role = "area"
)

// roleCandidates lists, per role, the substrings tried in priority order.
var roleCandidates = map[Role][]string{
	RolePrice:  {"flat - weighted average rate", "weighted average rate", "avg price", "price"},
	RoleDemand: {"total sold - igr", "total sold", "total_sales - igr"},
	RoleYear:   {"year"},
	RoleArea:   {"area", "local", "location"},
}

// ColumnRoles holds the resolved column name per role. Empty means unresolved.
type ColumnRoles struct {
	Price  string
	Demand string
	Year   string
	Area   string
}

// ResolveColumn returns the first column whose lowercased name contains a
// candidate, trying candidates in priority order and columns in sheet order.
func ResolveColumn(columns []string, candidates []string) (string, bool) {
	for _, cand := range candidates {
		needle := strings.ToLower(cand)
		for _, col := range columns {
			if strings.Contains(strings.ToLower(col), needle) {
				return col, true
			}
		}
	}
	return "", false
}

// ResolveAreaColumn returns the first column, in sheet order, whose name
// contains any area keyword.
func ResolveAreaColumn(columns []string) (string, bool) {
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, kw := range roleCandidates[RoleArea] {
			if strings.Contains(lower, kw) {
				return col, true
			}
		}
	}
	return "", false
}

// ResolveRole resolves a single role against the given columns.
func ResolveRole(columns []string, role Role) (string, bool) {
	if role == RoleArea {
		return ResolveAreaColumn(columns)
	}
	return ResolveColumn(columns, roleCandidates[role])
}

// ResolveRoles resolves every role at once.
func ResolveRoles(columns []string) ColumnRoles {
	var roles ColumnRoles
	roles.Price, _ = ResolveRole(columns, RolePrice)
	roles.Demand, _ = ResolveRole(columns, RoleDemand)
	roles.Year, _ = ResolveRole(columns, RoleYear)
	roles.Area, _ = ResolveRole(columns, RoleArea)
	return roles
}
