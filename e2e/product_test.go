//go:build e2e

package e2e

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
)

// TestProductPage_SkeletonThenDetail tests on-demand generation of a product page
// Feature: Product Detail
//
//	As a customer
//	I want to open any product, even one that was never built
//	So that I can see its price and buy it
func TestProductPage_SkeletonThenDetail(t *testing.T) {
	// Scenario: Open a product nobody has visited yet
	//   Given the product page has never been generated
	//   When I open it
	//   Then I should see a loading skeleton without product details
	//   And then I should see the product with its price and a "Comprar agora" button

	page := newPage(t)

	// When I open it
	if _, err := page.Goto(baseURL + "/product/prod_fresh"); err != nil {
		t.Fatalf("Failed to navigate to product page: %v", err)
	}

	// Then I should see a loading skeleton without product details
	visible, err := page.Locator("[data-testid=product-skeleton]").IsVisible()
	if err != nil {
		t.Fatalf("Failed to check skeleton: %v", err)
	}
	if !visible {
		t.Error("Expected loading skeleton on first visit")
	}
	count, err := page.Locator("button:has-text('Comprar agora')").Count()
	if err != nil {
		t.Fatalf("Failed to count buy buttons: %v", err)
	}
	if count != 0 {
		t.Error("Skeleton and product detail rendered together")
	}

	// And then I should see the product with its price
	err = page.Locator("[data-testid=product-detail]").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(10000),
	})
	if err != nil {
		t.Fatalf("Product detail never rendered: %v", err)
	}

	title, err := page.Locator("h1").TextContent()
	if err != nil {
		t.Fatalf("Failed to find product name: %v", err)
	}
	if title != "Camiseta prod_fresh" {
		t.Errorf("Expected product name 'Camiseta prod_fresh', got '%s'", title)
	}

	price, err := page.Locator(".price").TextContent()
	if err != nil {
		t.Fatalf("Failed to find price: %v", err)
	}
	if strings.TrimSpace(price) != "R$ 19,90" {
		t.Errorf("Expected price 'R$ 19,90', got '%s'", price)
	}

	skeletons, err := page.Locator("[data-testid=product-skeleton]").Count()
	if err != nil {
		t.Fatalf("Failed to count skeletons: %v", err)
	}
	if skeletons != 0 {
		t.Error("Skeleton still present next to product detail")
	}
}

// TestProductPage_NotFound tests a product that does not exist
func TestProductPage_NotFound(t *testing.T) {
	// Scenario: Open an unknown product
	//   Given the catalog has no product "prod_missing"
	//   When I open it
	//   Then after the skeleton I should see a not found page

	page := newPage(t)

	if _, err := page.Goto(baseURL + "/product/prod_missing"); err != nil {
		t.Fatalf("Failed to navigate to product page: %v", err)
	}

	err := page.Locator("[data-testid=error-page]").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(10000),
	})
	if err != nil {
		t.Fatalf("Error page never rendered: %v", err)
	}

	status, err := page.Locator("[data-testid=error-page]").GetAttribute("data-status")
	if err != nil {
		t.Fatalf("Failed to read status: %v", err)
	}
	if status != "404" {
		t.Errorf("Expected status 404, got '%s'", status)
	}
}

// TestHomePage tests the product listing
func TestHomePage(t *testing.T) {
	page := newPage(t)

	if _, err := page.Goto(baseURL + "/"); err != nil {
		t.Fatalf("Failed to navigate to homepage: %v", err)
	}

	card := page.Locator("[data-testid=product-card]")
	if err := card.Click(); err != nil {
		t.Fatalf("Failed to open product from listing: %v", err)
	}

	if err := page.WaitForURL(baseURL + "/product/prod_home"); err != nil {
		t.Errorf("Expected to land on the product page: %v", err)
	}
}
