package features

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/nikolayk812/broka-order/internal/domain"
	"golang.org/x/text/currency"
)

type cartTestContext struct {
	items map[string]domain.MenuItem
	cart  domain.Cart
}

func (c *cartTestContext) reset() {
	c.items = make(map[string]domain.MenuItem)
	c.cart = domain.Cart{Currency: currency.BRL}
}

func (c *cartTestContext) theMenuItemPricedWithAddOn(name, price, addOnID, addOnName, addOnPrice string) error {
	c.items[name] = domain.MenuItem{
		ID:    name,
		Name:  name,
		Price: domain.BRL(price),
		AddOns: []domain.MenuAddOn{
			{ID: addOnID, Name: addOnName, Price: domain.BRL(addOnPrice)},
		},
	}
	return nil
}

func (c *cartTestContext) theMenuItemPriced(name, price string) error {
	c.items[name] = domain.MenuItem{ID: name, Name: name, Price: domain.BRL(price), AddOns: []domain.MenuAddOn{}}
	return nil
}

func (c *cartTestContext) anEmptyCart() error {
	c.cart = domain.Cart{Currency: currency.BRL}
	return nil
}

func (c *cartTestContext) iAddOfWithAddOns(quantity int, name, addOnIDs string) error {
	item, ok := c.items[name]
	if !ok {
		return fmt.Errorf("unknown item %q", name)
	}

	var addOns []domain.MenuAddOn
	for _, id := range strings.Split(addOnIDs, ",") {
		addOn, ok := item.AddOn(strings.TrimSpace(id))
		if !ok {
			return fmt.Errorf("item %q has no add-on %q", name, id)
		}
		addOns = append(addOns, addOn)
	}

	c.cart.Add(item, addOns, quantity)
	return nil
}

func (c *cartTestContext) iAddOfWithNoAddOns(quantity int, name string) error {
	item, ok := c.items[name]
	if !ok {
		return fmt.Errorf("unknown item %q", name)
	}
	c.cart.Add(item, nil, quantity)
	return nil
}

func (c *cartTestContext) iSetTheQuantityOfLineTo(line, quantity int) error {
	if !c.cart.HasLine(line - 1) {
		return fmt.Errorf("no line %d", line)
	}
	c.cart.SetQuantity(line-1, quantity)
	return nil
}

func (c *cartTestContext) iRemoveLine(line int) error {
	if !c.cart.HasLine(line - 1) {
		return fmt.Errorf("no line %d", line)
	}
	c.cart.Remove(line - 1)
	return nil
}

func (c *cartTestContext) theCartTotalIs(want string) error {
	if got := c.cart.Total().Fixed(); got != want {
		return fmt.Errorf("expected cart total %s, got %s", want, got)
	}
	return nil
}

func (c *cartTestContext) theItemCountIs(want int) error {
	if got := c.cart.ItemCount(); got != want {
		return fmt.Errorf("expected item count %d, got %d", want, got)
	}
	return nil
}

func (c *cartTestContext) lineTotals(line int, want string) error {
	if !c.cart.HasLine(line - 1) {
		return fmt.Errorf("no line %d", line)
	}
	if got := domain.LineTotal(c.cart.Lines[line-1]).Fixed(); got != want {
		return fmt.Errorf("expected line %d total %s, got %s", line, want, got)
	}
	return nil
}

func (c *cartTestContext) lineHasQuantity(line, want int) error {
	if !c.cart.HasLine(line - 1) {
		return fmt.Errorf("no line %d", line)
	}
	if got := c.cart.Lines[line-1].Quantity; got != want {
		return fmt.Errorf("expected line %d quantity %d, got %d", line, want, got)
	}
	return nil
}

func (c *cartTestContext) theCartHasLines(want int) error {
	if got := c.cart.Len(); got != want {
		return fmt.Errorf("expected %d lines, got %d", want, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the menu item "([^"]*)" priced (\d+\.\d{2}) with add-on "([^"]*)" named "([^"]*)" priced (\d+\.\d{2})$`, tc.theMenuItemPricedWithAddOn)
	ctx.Step(`^the menu item "([^"]*)" priced (\d+\.\d{2})$`, tc.theMenuItemPriced)
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)

	ctx.Step(`^I add (\d+) of "([^"]*)" with add-ons "([^"]*)"$`, tc.iAddOfWithAddOns)
	ctx.Step(`^I add (\d+) of "([^"]*)" with no add-ons$`, tc.iAddOfWithNoAddOns)
	ctx.Step(`^I set the quantity of line (\d+) to (-?\d+)$`, tc.iSetTheQuantityOfLineTo)
	ctx.Step(`^I remove line (\d+)$`, tc.iRemoveLine)

	ctx.Step(`^the cart total is (\d+\.\d{2})$`, tc.theCartTotalIs)
	ctx.Step(`^the item count is (\d+)$`, tc.theItemCountIs)
	ctx.Step(`^line (\d+) totals (\d+\.\d{2})$`, tc.lineTotals)
	ctx.Step(`^line (\d+) has quantity (\d+)$`, tc.lineHasQuantity)
	ctx.Step(`^the cart has (\d+) lines$`, tc.theCartHasLines)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
