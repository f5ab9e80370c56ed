package service

import (
	"sort"

	"github.com/beanhouse-cafe/api/internal/enum"
	"github.com/beanhouse-cafe/api/internal/store"
)

const (
	topItemsLimit     = 5
	recentOrdersLimit = 10
)

// ItemCount is one entry in the popular-items ranking.
type ItemCount struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// Summary holds the dashboard analytics aggregates.
type Summary struct {
	TotalOrders int           `json:"total_orders"`
	Completed   int           `json:"completed"`
	Pending     int           `json:"pending"`
	Canceled    int           `json:"canceled"`
	TopItems    []ItemCount   `json:"top_items"`
	Recent      []store.Order `json:"recent"`
}

// Summarize computes read-only aggregates over the full order feed, which is
// expected newest-created-first (the ListAll ordering). Top items rank
// completed orders by summed quantity, ties broken by name ascending so the
// output is deterministic.
func Summarize(orders []store.Order) Summary {
	sum := Summary{TotalOrders: len(orders), TopItems: []ItemCount{}, Recent: []store.Order{}}

	counts := make(map[string]int)
	for _, o := range orders {
		switch o.Status {
		case enum.OrderStatusCompleted:
			sum.Completed++
			counts[o.Name] += o.Qty
		case enum.OrderStatusPending:
			sum.Pending++
		case enum.OrderStatusCanceled:
			sum.Canceled++
		}
	}

	for name, qty := range counts {
		sum.TopItems = append(sum.TopItems, ItemCount{Name: name, Qty: qty})
	}
	sort.Slice(sum.TopItems, func(i, j int) bool {
		if sum.TopItems[i].Qty != sum.TopItems[j].Qty {
			return sum.TopItems[i].Qty > sum.TopItems[j].Qty
		}
		return sum.TopItems[i].Name < sum.TopItems[j].Name
	})
	if len(sum.TopItems) > topItemsLimit {
		sum.TopItems = sum.TopItems[:topItemsLimit]
	}

	recent := orders
	if len(recent) > recentOrdersLimit {
		recent = recent[:recentOrdersLimit]
	}
	sum.Recent = append(sum.Recent, recent...)

	return sum
}
