package cli

import (
	"context"
	"fmt"

	"github.com/ecopoints/ecopoints/internal/client/models"
)

// Products prints the store catalog.
func (a *App) Products(ctx context.Context) error {
	products, err := a.storeService.Products(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}

	if len(products) == 0 {
		printlnFn("No products available right now.")
		return nil
	}

	for _, p := range products {
		printlnFn(fmt.Sprintf("%s  %-20s %4d pts  (stock: %d)", p.ID, p.Name, p.Price, p.Stock))
	}
	return nil
}

// Redeem exchanges points for the product named by the first argument.
func (a *App) Redeem(ctx context.Context, args []string) error {
	productID := args[0]

	products, err := a.storeService.Products(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}

	var product models.Product
	found := false
	for _, p := range products {
		if p.ID == productID {
			product = p
			found = true
			break
		}
	}
	if !found {
		printlnFn("Unknown product:", productID)
		return nil
	}

	user, err := a.storeService.Redeem(ctx, product)
	if err != nil {
		a.reportError(err)
		return err
	}

	printlnFn(fmt.Sprintf("Redeemed %s for %d points. New balance: %d", product.Name, product.Price, user.Points))
	return nil
}
