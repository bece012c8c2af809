package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/medghazdali/product-trial-master/internal/cart"
	"github.com/medghazdali/product-trial-master/internal/domain"
	"github.com/medghazdali/product-trial-master/internal/remote"
	"github.com/medghazdali/product-trial-master/internal/wishlist"
)

func main() {
	_ = godotenv.Load()

	apiBaseURL := getEnv("API_BASE_URL", "http://localhost:3000")
	loadTimeout := 10 * time.Second

	catalog := remote.NewCatalogClient(apiBaseURL, nil)
	wishlistClient := remote.NewWishlistClient(apiBaseURL, nil)

	shoppingCart := cart.New()
	wl := wishlist.New(wishlistClient)

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	wl.Load(ctx)
	cancel()
	log.Printf("wishlist loaded with %d items", wl.Len())

	cartSub := shoppingCart.Subscribe(func(items []domain.LineItem) {
		log.Printf("cart: %d line items, %d units", len(items), countUnits(items))
	})
	defer cartSub.Cancel()

	wishSub := wl.Subscribe(func(items []domain.LineItem) {
		log.Printf("wishlist: %d items", len(items))
	})
	defer wishSub.Cancel()

	fmt.Println("storefront session, type 'help' for commands")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			break
		}
		runCommand(catalog, shoppingCart, wl, fields)
	}
	fmt.Println("bye")
}

func runCommand(catalog *remote.CatalogClient, shoppingCart *cart.Cart, wl *wishlist.Adapter, fields []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch fields[0] {
	case "help":
		fmt.Println("products | add <id> [qty] | set <id> <qty> | rm <id> | cart | total | clear")
		fmt.Println("wish <id> | unwish <id> | wishlist | quit")

	case "products":
		products, err := catalog.ListProducts(ctx)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		for _, p := range products {
			fmt.Printf("%-26s %-30s %8s %s\n", p.ID, p.Name, p.Price.StringFixed(2), p.InventoryStatus)
		}

	case "add":
		if len(fields) < 2 {
			fmt.Println("usage: add <id> [qty]")
			return
		}
		qty := 1
		if len(fields) > 2 {
			qty, _ = strconv.Atoi(fields[2])
		}
		product, err := catalog.GetProduct(ctx, fields[1])
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		item, err := shoppingCart.AddItem(product, qty)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		fmt.Printf("%s x%d\n", item.Product.Name, item.Quantity)

	case "set":
		if len(fields) < 3 {
			fmt.Println("usage: set <id> <qty>")
			return
		}
		qty, err := strconv.Atoi(fields[2])
		if err != nil {
			fmt.Println("usage: set <id> <qty>")
			return
		}
		if _, err := shoppingCart.SetQuantity(fields[1], qty); err != nil {
			fmt.Printf("error: %v\n", err)
		}

	case "rm":
		if len(fields) < 2 {
			fmt.Println("usage: rm <id>")
			return
		}
		shoppingCart.RemoveItem(fields[1])

	case "cart":
		for _, item := range shoppingCart.Items() {
			fmt.Printf("%-26s %-30s x%-3d %8s\n",
				item.Product.ID, item.Product.Name, item.Quantity, item.Subtotal().StringFixed(2))
		}

	case "total":
		fmt.Printf("total: %s\n", shoppingCart.Total().StringFixed(2))

	case "clear":
		shoppingCart.Clear()

	case "wish":
		if len(fields) < 2 {
			fmt.Println("usage: wish <id>")
			return
		}
		product, err := catalog.GetProduct(ctx, fields[1])
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		done, err := wl.Add(ctx, product)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		go reportOutcome("wish "+product.ID, done)

	case "unwish":
		if len(fields) < 2 {
			fmt.Println("usage: unwish <id>")
			return
		}
		done, err := wl.Remove(ctx, fields[1])
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		go reportOutcome("unwish "+fields[1], done)

	case "wishlist":
		for _, item := range wl.Items() {
			fmt.Printf("%-26s %s\n", item.Product.ID, item.Product.Name)
		}

	default:
		fmt.Printf("unknown command %q, type 'help'\n", fields[0])
	}
}

func reportOutcome(what string, done <-chan error) {
	if err := <-done; err != nil {
		log.Printf("%s failed and was reverted: %v", what, err)
	}
}

func countUnits(items []domain.LineItem) int {
	units := 0
	for _, item := range items {
		units += item.Quantity
	}
	return units
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
