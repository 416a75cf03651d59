package app

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vladislavdragonenkov/pizzeria/internal/domain"
	"github.com/vladislavdragonenkov/pizzeria/internal/service/orders"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func formatToppings(toppings []string) string {
	if len(toppings) == 0 {
		return "-"
	}
	return strings.Join(toppings, ",")
}

func printOrders(w io.Writer, orderList []domain.Order) error {
	if len(orderList) == 0 {
		_, err := fmt.Fprintln(w, "no orders")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "NAME\tSIZE\tTOPPINGS\tQTY\tSUBTOTAL\tTIMESTAMP")
	for _, o := range orderList {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			o.Name, o.Size, formatToppings(o.Toppings), o.Quantity, o.Subtotal, o.Timestamp)
	}
	return tw.Flush()
}

func printRegistered(w io.Writer, result orders.RegisterResult) error {
	o := result.Order
	if _, err := fmt.Fprintf(w, "registered %s: %s x%d [%s] subtotal=%d at %s\n",
		o.Name, o.Size, o.Quantity, formatToppings(o.Toppings), o.Subtotal, o.Timestamp); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "orders stored: %d, next order for %s\n", len(result.Orders), result.Form.Name)
	return err
}

func printForm(w io.Writer, form domain.OrderForm) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "name\t%s\n", form.Name)
	fmt.Fprintf(tw, "size\t%s\n", form.Size)
	fmt.Fprintf(tw, "quantity\t%d\n", form.Quantity)
	if err := tw.Flush(); err != nil {
		return err
	}
	for i, topping := range domain.ToppingCatalog() {
		mark := " "
		if i < len(form.ToppingFlags) && form.ToppingFlags[i] {
			mark = "x"
		}
		if _, err := fmt.Fprintf(w, "[%s] %s\n", mark, topping); err != nil {
			return err
		}
	}
	return nil
}

func printTotals(w io.Writer, totals domain.Totals) error {
	if len(totals) == 0 {
		_, err := fmt.Fprintln(w, "no orders")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "NAME\tTOTAL")
	for _, t := range totals {
		fmt.Fprintf(tw, "%s\t%d\n", t.Name, t.Total)
	}
	return tw.Flush()
}
