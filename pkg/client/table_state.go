package client

import (
	"sync"

	"blog-admin-be/internal/dto"
)

const DefaultPageSize = 10

// SortRule is one column of a table's sort order.
type SortRule struct {
	Id   string
	Desc bool
}

// TableState is the pagination, filter and sort state of a data table.
// PageIndex is zero-based like the dashboard table; queries are one-based.
type TableState struct {
	mu            sync.RWMutex
	pageIndex     int
	pageSize      int
	globalFilter  string
	columnFilters map[string]string
	sorting       []SortRule
}

func NewTableState() *TableState {
	return &TableState{
		pageSize:      DefaultPageSize,
		columnFilters: make(map[string]string),
	}
}

func (t *TableState) SetPageIndex(index int) {
	if index < 0 {
		index = 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pageIndex = index
}

func (t *TableState) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pageSize = size
}

func (t *TableState) SetGlobalFilter(filter string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.globalFilter = filter
}

// SetColumnFilter sets one column filter; an empty value clears it.
func (t *TableState) SetColumnFilter(column, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if value == "" {
		delete(t.columnFilters, column)
		return
	}
	t.columnFilters[column] = value
}

func (t *TableState) SetColumnFilters(filters map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.columnFilters = make(map[string]string, len(filters))
	for k, v := range filters {
		if v != "" {
			t.columnFilters[k] = v
		}
	}
}

func (t *TableState) SetSorting(sorting []SortRule) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sorting = append([]SortRule(nil), sorting...)
}

func (t *TableState) PageIndex() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pageIndex
}

func (t *TableState) PageSize() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pageSize
}

func (t *TableState) GlobalFilter() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.globalFilter
}

func (t *TableState) Sorting() []SortRule {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]SortRule(nil), t.sorting...)
}

// primarySort returns the first sort rule. The API sorts by one column.
func (t *TableState) primarySort() (string, bool) {
	if len(t.sorting) == 0 {
		return "", false
	}
	return t.sorting[0].Id, t.sorting[0].Desc
}

func (t *TableState) PostQuery() dto.PostListQuery {
	t.mu.RLock()
	defer t.mu.RUnlock()
	sort, desc := t.primarySort()
	return dto.PostListQuery{
		Page:     t.pageIndex + 1,
		PageSize: t.pageSize,
		Q:        t.globalFilter,
		Sort:     sort,
		Desc:     desc,
		Category: t.columnFilters["category"],
		Status:   t.columnFilters["status"],
		UserId:   t.columnFilters["user_id"],
	}
}

func (t *TableState) UserQuery() dto.UserListQuery {
	t.mu.RLock()
	defer t.mu.RUnlock()
	sort, desc := t.primarySort()
	return dto.UserListQuery{
		Page:     t.pageIndex + 1,
		PageSize: t.pageSize,
		Q:        t.globalFilter,
		Sort:     sort,
		Desc:     desc,
		Role:     t.columnFilters["role"],
	}
}
