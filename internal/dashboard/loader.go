package dashboard

import (
	"context"
	"fmt"
	"sort"

	"logichain-web/internal/apiclient"
	"logichain-web/internal/models"

	"golang.org/x/sync/errgroup"
)

const (
	recentLimit       = 5
	lowAvailableStock = 10
)

type Stat struct {
	Label string
	Value string
}

type Summary struct {
	Variant      Variant
	Stats        []Stat
	RecentOrders []models.Order
	LowStock     []models.InventoryItem
	Products     []models.Product
}

// Loader fetches everything a dashboard needs in parallel. Results are
// merged by name once every call has returned, never in arrival order.
type Loader struct {
	api *apiclient.Client
}

func NewLoader(api *apiclient.Client) *Loader {
	return &Loader{api: api}
}

func (l *Loader) Load(ctx context.Context, v Variant, p models.Principal) (Summary, error) {
	switch v {
	case Admin:
		return l.admin(ctx)
	case WarehouseManager:
		return l.warehouse(ctx)
	case CustomerSupport:
		return l.support(ctx)
	case Customer:
		return l.customer(ctx, p)
	case ProductManager:
		return l.product(ctx)
	default:
		return Summary{}, fmt.Errorf("no dashboard for variant %d", v)
	}
}

func (l *Loader) admin(ctx context.Context) (Summary, error) {
	var (
		users      []models.User
		orders     []models.Order
		lowStock   []models.InventoryItem
		shipments  []models.Shipment
		warehouses []models.Warehouse
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { env, err := l.api.Users.List(ctx); users = env.Data; return err })
	g.Go(func() error { env, err := l.api.Orders.List(ctx); orders = env.Data; return err })
	g.Go(func() error { env, err := l.api.Inventory.LowStock(ctx); lowStock = env.Data; return err })
	g.Go(func() error { env, err := l.api.Shipments.List(ctx); shipments = env.Data; return err })
	g.Go(func() error { env, err := l.api.Warehouses.List(ctx); warehouses = env.Data; return err })
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("load admin dashboard: %w", err)
	}

	return Summary{
		Variant: Admin,
		Stats: []Stat{
			{"Users", itoa(len(users))},
			{"Orders", itoa(len(orders))},
			{"Pending orders", itoa(countOrders(orders, models.OrderPending))},
			{"Revenue", money(revenue(orders))},
			{"Shipments in transit", itoa(countShipments(shipments, models.ShipmentInTransit, models.ShipmentOutForDelivery))},
			{"Warehouses", itoa(len(warehouses))},
			{"Low-stock items", itoa(len(lowStock))},
		},
		RecentOrders: recent(orders),
		LowStock:     lowStock,
	}, nil
}

func (l *Loader) warehouse(ctx context.Context) (Summary, error) {
	var (
		inventory  []models.InventoryItem
		lowStock   []models.InventoryItem
		shipments  []models.Shipment
		warehouses []models.Warehouse
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { env, err := l.api.Inventory.List(ctx); inventory = env.Data; return err })
	g.Go(func() error { env, err := l.api.Inventory.LowStock(ctx); lowStock = env.Data; return err })
	g.Go(func() error { env, err := l.api.Shipments.List(ctx); shipments = env.Data; return err })
	g.Go(func() error { env, err := l.api.Warehouses.List(ctx); warehouses = env.Data; return err })
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("load warehouse dashboard: %w", err)
	}

	units := 0
	for _, item := range inventory {
		units += item.Quantity
	}
	return Summary{
		Variant: WarehouseManager,
		Stats: []Stat{
			{"Warehouses", itoa(len(warehouses))},
			{"Inventory lines", itoa(len(inventory))},
			{"Units in stock", itoa(units)},
			{"Low-stock items", itoa(len(lowStock))},
			{"Active shipments", itoa(len(shipments) - countShipments(shipments, models.ShipmentDelivered, models.ShipmentFailed))},
		},
		LowStock: lowStock,
	}, nil
}

func (l *Loader) support(ctx context.Context) (Summary, error) {
	var (
		orders  []models.Order
		returns []models.Return
		users   []models.User
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { env, err := l.api.Orders.List(ctx); orders = env.Data; return err })
	g.Go(func() error { env, err := l.api.Returns.List(ctx); returns = env.Data; return err })
	g.Go(func() error { env, err := l.api.Users.List(ctx); users = env.Data; return err })
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("load support dashboard: %w", err)
	}

	pendingReturns := 0
	for _, r := range returns {
		if r.ReturnStatus == models.ReturnRequested {
			pendingReturns++
		}
	}
	customers := 0
	for _, u := range users {
		if u.Role == models.RoleCustomer {
			customers++
		}
	}
	return Summary{
		Variant: CustomerSupport,
		Stats: []Stat{
			{"Orders", itoa(len(orders))},
			{"Pending orders", itoa(countOrders(orders, models.OrderPending))},
			{"Open returns", itoa(pendingReturns)},
			{"Customers", itoa(customers)},
		},
		RecentOrders: recent(orders),
	}, nil
}

func (l *Loader) customer(ctx context.Context, p models.Principal) (Summary, error) {
	env, err := l.api.Orders.ByCustomer(ctx, p.ID)
	if err != nil {
		return Summary{}, fmt.Errorf("load customer dashboard: %w", err)
	}
	orders := env.Data

	active := len(orders) - countOrders(orders, models.OrderDelivered, models.OrderCancelled)
	return Summary{
		Variant: Customer,
		Stats: []Stat{
			{"My orders", itoa(len(orders))},
			{"Active orders", itoa(active)},
			{"Delivered", itoa(countOrders(orders, models.OrderDelivered))},
			{"Total spent", money(revenue(orders))},
		},
		RecentOrders: recent(orders),
	}, nil
}

func (l *Loader) product(ctx context.Context) (Summary, error) {
	env, err := l.api.Products.Mine(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load product dashboard: %w", err)
	}
	products := env.Data

	low := 0
	value := 0.0
	categories := make(map[string]struct{})
	for _, p := range products {
		if p.AvailableStock < lowAvailableStock {
			low++
		}
		value += p.Price * float64(p.TotalStock)
		if p.Category != "" {
			categories[p.Category] = struct{}{}
		}
	}
	return Summary{
		Variant: ProductManager,
		Stats: []Stat{
			{"My products", itoa(len(products))},
			{"Categories", itoa(len(categories))},
			{"Low availability", itoa(low)},
			{"Stock value", money(value)},
		},
		Products: products,
	}, nil
}

func countOrders(orders []models.Order, statuses ...models.OrderStatus) int {
	n := 0
	for _, o := range orders {
		for _, s := range statuses {
			if o.OrderStatus == s {
				n++
				break
			}
		}
	}
	return n
}

func countShipments(shipments []models.Shipment, statuses ...models.ShipmentStatus) int {
	n := 0
	for _, s := range shipments {
		for _, want := range statuses {
			if s.ShipmentStatus == want {
				n++
				break
			}
		}
	}
	return n
}

// revenue ignores cancelled orders.
func revenue(orders []models.Order) float64 {
	total := 0.0
	for _, o := range orders {
		if o.OrderStatus != models.OrderCancelled {
			total += o.TotalAmount
		}
	}
	return total
}

// recent returns the newest orders first, newest meaning the highest id.
func recent(orders []models.Order) []models.Order {
	out := append([]models.Order(nil), orders...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > recentLimit {
		out = out[:recentLimit]
	}
	return out
}

func itoa(n int) string { return fmt.Sprintf("%d", n) }

func money(v float64) string { return fmt.Sprintf("$%.2f", v) }
