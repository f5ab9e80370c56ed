package service_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanhouse-cafe/api/internal/enum"
	"github.com/beanhouse-cafe/api/internal/service"
	"github.com/beanhouse-cafe/api/internal/store"
)

func analyticsOrder(name, status string, qty int) store.Order {
	return store.Order{ID: name + "-" + status, Name: name, Qty: qty, Status: status}
}

func TestSummarizeCounts(t *testing.T) {
	orders := []store.Order{
		analyticsOrder("Latte", enum.OrderStatusCompleted, 1),
		analyticsOrder("Latte", enum.OrderStatusCompleted, 1),
		analyticsOrder("Latte", enum.OrderStatusCompleted, 1),
		analyticsOrder("Mocha", enum.OrderStatusPending, 1),
	}

	sum := service.Summarize(orders)
	assert.Equal(t, 4, sum.TotalOrders)
	assert.Equal(t, 3, sum.Completed)
	assert.Equal(t, 1, sum.Pending)
	assert.Equal(t, 0, sum.Canceled)

	require.Len(t, sum.TopItems, 1, "only completed orders rank")
	assert.Equal(t, service.ItemCount{Name: "Latte", Qty: 3}, sum.TopItems[0])
}

func TestSummarizeTopItemsTieBreakAndLimit(t *testing.T) {
	orders := []store.Order{
		analyticsOrder("Espresso", enum.OrderStatusCompleted, 2),
		analyticsOrder("Cappuccino", enum.OrderStatusCompleted, 2),
		analyticsOrder("Latte", enum.OrderStatusCompleted, 5),
		analyticsOrder("Mocha", enum.OrderStatusCompleted, 1),
		analyticsOrder("Green Tea", enum.OrderStatusCompleted, 1),
		analyticsOrder("Croissant", enum.OrderStatusCompleted, 1),
	}

	sum := service.Summarize(orders)
	require.Len(t, sum.TopItems, 5)

	assert.Equal(t, "Latte", sum.TopItems[0].Name)
	// Equal quantities order alphabetically so the ranking is stable.
	assert.Equal(t, "Cappuccino", sum.TopItems[1].Name)
	assert.Equal(t, "Espresso", sum.TopItems[2].Name)
	assert.Equal(t, "Croissant", sum.TopItems[3].Name)
	assert.Equal(t, "Green Tea", sum.TopItems[4].Name)
}

func TestSummarizeRecentKeepsFeedOrder(t *testing.T) {
	now := time.Now()
	orders := make([]store.Order, 15)
	for i := range orders {
		orders[i] = store.Order{
			ID:        fmt.Sprintf("o%02d", i),
			Name:      "Latte",
			Qty:       1,
			Status:    enum.OrderStatusPending,
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		}
	}

	sum := service.Summarize(orders)
	require.Len(t, sum.Recent, 10)
	assert.Equal(t, "o00", sum.Recent[0].ID, "newest first, as the feed delivers them")
	assert.Equal(t, "o09", sum.Recent[9].ID)
}

func TestSummarizeEmpty(t *testing.T) {
	sum := service.Summarize(nil)
	assert.Equal(t, 0, sum.TotalOrders)
	assert.Empty(t, sum.TopItems)
	assert.Empty(t, sum.Recent)
}
