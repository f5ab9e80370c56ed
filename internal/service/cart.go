package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/beanhouse-cafe/api/internal/enum"
	"github.com/beanhouse-cafe/api/internal/store"
)

// cartWindow is the bucket width used by the legacy window grouping mode.
const cartWindow = 5 * time.Minute

// CartGroup is a dashboard-side reconstruction of one checkout: all pending
// rows that were written together, ready for a single complete/cancel action.
type CartGroup struct {
	Table     string        `json:"table"`
	Notes     string        `json:"notes"`
	CreatedAt time.Time     `json:"created_at"`
	Orders    []store.Order `json:"orders"`
}

// OrderIDs returns the member ids the group action targets.
func (g CartGroup) OrderIDs() []string {
	ids := make([]string, len(g.Orders))
	for i, o := range g.Orders {
		ids[i] = o.ID
	}
	return ids
}

// GroupPending partitions pending orders into logical carts. Every order lands
// in exactly one group.
//
// GroupModeSubmission keys on the submission id written at checkout; rows
// without one (legacy data) fall back to exact (table, created_at), which the
// write path guarantees is shared across a checkout. GroupModeWindow is the
// legacy heuristic keying on table + day + 5-minute bucket and is only used
// when selected explicitly; the two modes are never mixed.
func GroupPending(orders []store.Order, mode string) []CartGroup {
	groups := make(map[string]*CartGroup)
	keys := []string{}

	for _, o := range orders {
		table := o.Table
		if table == "" {
			table = enum.TableWalkIn
		}

		key := groupKey(o, table, mode)
		g, ok := groups[key]
		if !ok {
			g = &CartGroup{Table: table, Notes: o.Notes, CreatedAt: o.CreatedAt}
			groups[key] = g
			keys = append(keys, key)
		}
		if o.CreatedAt.Before(g.CreatedAt) {
			g.CreatedAt = o.CreatedAt
		}
		if g.Notes == "" {
			g.Notes = o.Notes
		}
		g.Orders = append(g.Orders, o)
	}

	result := make([]CartGroup, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		sort.SliceStable(g.Orders, func(i, j int) bool {
			return g.Orders[i].CreatedAt.Before(g.Orders[j].CreatedAt)
		})
		result = append(result, *g)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func groupKey(o store.Order, table, mode string) string {
	if mode == enum.GroupModeWindow {
		created := o.CreatedAt.UTC()
		bucket := created.Unix() / int64(cartWindow/time.Second)
		return fmt.Sprintf("%s_%s_%d", table, created.Format("2006-01-02"), bucket)
	}
	if o.SubmissionID != "" {
		return "sub_" + o.SubmissionID
	}
	return fmt.Sprintf("%s_%d", table, o.CreatedAt.UTC().UnixNano())
}
