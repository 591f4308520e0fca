package entity

import "sort"

// Route is one entry of the externally configured route table.
type Route struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// RouteTable is a lookup set of valid route endpoint codes. It is
// read-only data supplied at call time, not owned by the store.
type RouteTable map[string]Route

// NewRouteTable builds a lookup table from the configured routes.
func NewRouteTable(routes []Route) RouteTable {
	t := make(RouteTable, len(routes))
	for _, r := range routes {
		t[r.Code] = r
	}
	return t
}

// Contains reports whether code is a valid route endpoint.
func (t RouteTable) Contains(code string) bool {
	_, ok := t[code]
	return ok
}

// Codes returns the endpoint codes in lexical order.
func (t RouteTable) Codes() []string {
	codes := make([]string, 0, len(t))
	for c := range t {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
