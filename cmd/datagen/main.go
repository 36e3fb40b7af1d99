package main

import (
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/smallretail/legacy-api/internal/config"
	orderdomain "github.com/smallretail/legacy-api/internal/order/domain"
	productdomain "github.com/smallretail/legacy-api/internal/product/domain"
	"github.com/smallretail/legacy-api/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	productCount = 100
	orderCount   = 50
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()
	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}

	if err := conn.AutoMigrate(&productdomain.Product{}, &orderdomain.Order{}, &orderdomain.OrderItem{}); err != nil {
		log.Fatal("migrate schema", zap.Error(err))
	}

	var existing int64
	if err := conn.Model(&productdomain.Product{}).Count(&existing).Error; err != nil {
		log.Fatal("count products", zap.Error(err))
	}
	if existing > 0 {
		log.Info("database already seeded, skipping", zap.Int64("products", existing))
		return
	}

	products := generateProducts()
	if err := conn.Create(&products).Error; err != nil {
		log.Fatal("insert products", zap.Error(err))
	}
	log.Info("generated products", zap.Int("count", len(products)))

	orders := generateOrders(products)
	itemCount := 0
	if err := conn.Transaction(func(tx *gorm.DB) error {
		for i := range orders {
			items := orders[i].Items
			orders[i].Items = nil
			if err := tx.Create(&orders[i]).Error; err != nil {
				return err
			}
			for j := range items {
				items[j].OrderID = orders[i].ID
				if err := tx.Omit("Product").Create(&items[j]).Error; err != nil {
					return err
				}
			}
			itemCount += len(items)
		}
		return nil
	}); err != nil {
		log.Fatal("insert orders", zap.Error(err))
	}

	log.Info("generated orders", zap.Int("orders", len(orders)), zap.Int("items", itemCount))
}

func generateProducts() []productdomain.Product {
	products := make([]productdomain.Product, 0, productCount)
	for i := 0; i < productCount; i++ {
		created := gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()).UTC()
		products = append(products, productdomain.Product{
			Name:          gofakeit.ProductName(),
			Description:   gofakeit.ProductDescription(),
			Price:         decimal.NewFromFloat(gofakeit.Float64Range(1, 1000)).Round(2),
			StockQuantity: gofakeit.Number(0, 1000),
			Category:      gofakeit.ProductCategory(),
			CreatedAt:     created,
			UpdatedAt:     created.Add(time.Duration(rand.Intn(30*24)) * time.Hour),
		})
	}
	return products
}

func generateOrders(products []productdomain.Product) []orderdomain.Order {
	orders := make([]orderdomain.Order, 0, orderCount)
	for i := 0; i < orderCount; i++ {
		orderDate := gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now()).UTC()
		order := orderdomain.Order{
			CustomerName:    gofakeit.Name(),
			CustomerEmail:   gofakeit.Email(),
			CustomerAddress: gofakeit.Address().Address,
			OrderDate:       orderDate,
			Status:          orderdomain.Status(rand.Intn(5)),
			CreatedAt:       orderDate,
			UpdatedAt:       orderDate.Add(time.Duration(rand.Intn(5*24)) * time.Hour),
		}

		total := decimal.Zero
		for _, product := range pickProducts(products, rand.Intn(5)+1) {
			quantity := rand.Intn(4) + 1
			// Unit price varies up to 20% either way from the catalog price.
			variation := decimal.NewFromFloat(0.8 + rand.Float64()*0.4)
			unitPrice := product.Price.Mul(variation).Round(2)
			totalPrice := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)

			order.Items = append(order.Items, orderdomain.OrderItem{
				ProductID:  product.ID,
				Quantity:   quantity,
				UnitPrice:  unitPrice,
				TotalPrice: totalPrice,
			})
			total = total.Add(totalPrice)
		}
		order.TotalAmount = total

		orders = append(orders, order)
	}
	return orders
}

func pickProducts(products []productdomain.Product, n int) []productdomain.Product {
	picked := make([]productdomain.Product, len(products))
	copy(picked, products)
	rand.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	if n > len(picked) {
		n = len(picked)
	}
	return picked[:n]
}
