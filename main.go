package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/oren0115/ecommerce-sub000/client"
	"github.com/oren0115/ecommerce-sub000/initializers"
	"github.com/oren0115/ecommerce-sub000/models"
	"github.com/oren0115/ecommerce-sub000/session"
	"github.com/oren0115/ecommerce-sub000/storefront"
)

const usage = `Usage: storefront <command> [flags]

Commands:
  health                        Check the backend is reachable
  signup                        Create an account
  login                         Log in and store the session
  logout                        Discard the stored session
  whoami                        Show the logged-in profile
  products [-page -limit -q]    Browse the catalog
  product -id                   Show one product
  buy -id [-qty]                Add a product to the cart and sync it
  wishlist -id                  Toggle a product's wishlist membership
  orders [-status]              List your orders
  blogs                         List blog posts
  banners                       List carousel slides`

func main() {
	initializers.LoadEnv()
	cfg, err := initializers.LoadConfig()
	if err != nil {
		log.Fatalln(err)
	}

	store, err := session.NewFileStore(cfg.SessionFile)
	if err != nil {
		log.Fatalln(err)
	}

	api := client.New(cfg, store, client.WithAuthFailureHandler(func() {
		fmt.Println("Your session has expired. Please log in again.")
	}))

	counter := storefront.NewCounter()
	cart := storefront.NewCart(api, counter)
	wishlist := storefront.NewWishlist(api, counter, func() {
		fmt.Println("Please log in first.")
	})
	defer wishlist.Close()

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	ctx := context.Background()
	command, args := os.Args[1], os.Args[2:]

	switch command {
	case "health":
		if err := api.Health(ctx); err != nil {
			log.Fatalln("Backend is not healthy:", err)
		}
		fmt.Println("Backend is healthy.")

	case "signup":
		runSignup(ctx, api, args)

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		identifier := fs.String("user", "", "email or username")
		password := fs.String("password", "", "password")
		fs.Parse(args)
		sess, err := api.Login(ctx, *identifier, *password)
		if err != nil {
			log.Fatalln("Login failed:", err)
		}
		wishlist.Reset()
		fmt.Printf("Logged in as %s (%s)\n", sess.User.Username, sess.User.Role)

	case "logout":
		if err := api.Logout(); err != nil {
			log.Fatalln("Logout failed:", err)
		}
		wishlist.Reset()
		fmt.Println("Logged out.")

	case "whoami":
		user, ok := api.CurrentUser()
		if !ok {
			fmt.Println("Not logged in.")
			return
		}
		fmt.Printf("%s <%s> role=%s\n", user.Username, user.Email, user.Role)

	case "products":
		fs := flag.NewFlagSet("products", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		limit := fs.Int("limit", 12, "page size")
		search := fs.String("q", "", "search by name")
		fs.Parse(args)
		list, err := api.GetProducts(ctx, *page, *limit, *search)
		if err != nil {
			log.Fatalln("Failed to fetch products:", err)
		}
		for _, p := range list.Products {
			fmt.Printf("#%d  %-30s %10.2f  stock=%d\n", p.ID, p.Name, p.UnitPrice(), p.Stock)
		}
		fmt.Printf("page %d of %d products\n", list.Metadata.Page, list.Metadata.Total)

	case "product":
		fs := flag.NewFlagSet("product", flag.ExitOnError)
		id := fs.Int("id", 0, "product id")
		fs.Parse(args)
		product, err := api.GetProduct(ctx, *id)
		if err != nil {
			log.Fatalln("Failed to fetch product:", err)
		}
		fmt.Printf("%s by %s\n%s\nPrice: %.2f  Stock: %d\n",
			product.Name, product.Brand, product.Description, product.UnitPrice(), product.Stock)
		inWishlist, _ := wishlist.Check(ctx, product.ID)
		if inWishlist {
			fmt.Println("This product is in your wishlist.")
		}

	case "buy":
		fs := flag.NewFlagSet("buy", flag.ExitOnError)
		id := fs.Int("id", 0, "product id")
		qty := fs.Int("qty", 1, "quantity")
		fs.Parse(args)
		product, err := api.GetProduct(ctx, *id)
		if err != nil {
			log.Fatalln("Failed to fetch product:", err)
		}
		item, err := cart.Add(product, *qty)
		if err != nil {
			log.Fatalln("Could not add to cart:", err)
		}
		fmt.Printf("%s x%d in cart (%d items, subtotal %.2f)\n",
			item.ProductName, item.ProductQuantity, cart.Count(), cart.Subtotal())
		if err := cart.SyncToServer(ctx); err != nil {
			log.Println("Cart kept locally; server sync failed:", err)
		}

	case "wishlist":
		fs := flag.NewFlagSet("wishlist", flag.ExitOnError)
		id := fs.Int("id", 0, "product id")
		fs.Parse(args)
		product, err := api.GetProduct(ctx, *id)
		if err != nil {
			log.Fatalln("Failed to fetch product:", err)
		}
		member, err := wishlist.Toggle(ctx, product)
		if err != nil {
			log.Fatalln("Wishlist update failed:", err)
		}
		if member {
			fmt.Printf("Added %s to your wishlist.\n", product.Name)
		} else {
			fmt.Printf("Removed %s from your wishlist.\n", product.Name)
		}

	case "orders":
		fs := flag.NewFlagSet("orders", flag.ExitOnError)
		status := fs.String("status", "", "filter by status")
		fs.Parse(args)
		user, ok := api.CurrentUser()
		if !ok {
			log.Fatalln("Please log in first.")
		}
		orders, err := api.GetOrdersByUser(ctx, user.ID)
		if err != nil {
			log.Fatalln("Failed to fetch orders:", err)
		}
		for _, o := range client.FilterOrdersByStatus(orders, *status) {
			fmt.Printf("#%d  %-12s %-10s %10.2f\n", o.ID, o.Status, o.PaymentStatus, o.Total)
		}

	case "blogs":
		list, err := api.GetBlogs(ctx, 1, 10)
		if err != nil {
			log.Fatalln("Failed to fetch blogs:", err)
		}
		for _, b := range list.Blogs {
			fmt.Printf("#%d  %s by %s\n", b.ID, b.Title, b.Author)
		}

	case "banners":
		slides, err := api.GetBannerSlides(ctx)
		if err != nil {
			log.Fatalln("Failed to fetch banners:", err)
		}
		for _, s := range slides {
			fmt.Printf("%d. %s (%s)\n", s.Position, s.Title, s.LinkUrl)
		}

	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

func runSignup(ctx context.Context, api *client.Client, args []string) {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	fullname := fs.String("name", "", "full name")
	username := fs.String("user", "", "username")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (min 8 characters)")
	fs.Parse(args)

	message, err := api.Signup(ctx, models.SignupData{
		Fullname:    *fullname,
		Username:    *username,
		Email:       *email,
		Password:    *password,
		AcceptTerms: true,
	})
	if err != nil {
		log.Fatalln("Signup failed:", err)
	}
	fmt.Println(message)
}
