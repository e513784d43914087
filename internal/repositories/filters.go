package repositories

import (
	"strconv"
	"strings"
)

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func joinConds(conds []string) string {
	return strings.Join(conds, " AND ")
}
