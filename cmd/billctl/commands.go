package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"billbook/internal/amqp"
	"billbook/internal/client"
	"billbook/internal/core"

	"github.com/shopspring/decimal"
)

type globalFlags struct {
	server  string
	jsonOut bool
}

func parseGlobal(args []string) (globalFlags, []string, error) {
	var g globalFlags
	fs := flag.NewFlagSet("billctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&g.server, "server", envOr("BILLBOOK_URL", "http://localhost:8081"), "billbook server base URL")
	fs.BoolVar(&g.jsonOut, "json", false, "print raw JSON instead of tables")
	if err := fs.Parse(args); err != nil {
		return g, nil, fmt.Errorf("%v: %w", err, errUsage)
	}
	return g, fs.Args(), nil
}

func (g globalFlags) client() (*client.Client, error) {
	return client.New(g.server)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseSort turns "amount:desc,time" into ToggleSort actions: one toggle
// gives asc, two give desc.
func parseSort(spec string) ([]core.Action, error) {
	var actions []core.Action
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		field, dir, _ := strings.Cut(part, ":")
		toggle := core.ToggleSort{Field: core.SortField(strings.ToLower(field))}
		switch strings.ToLower(dir) {
		case "", "asc":
			actions = append(actions, toggle)
		case "desc":
			actions = append(actions, toggle, toggle)
		default:
			return nil, fmt.Errorf("sort %q: direction must be asc or desc", part)
		}
	}
	return actions, nil
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func runSearch(ctx context.Context, c *client.Client, g globalFlags, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	page := fs.Int("page", 0, "page index, from 0")
	size := fs.Int("size", core.DefaultPageSize, "page size")
	billType := fs.String("type", "", "EXPENDITURE or REVENUE")
	categories := fs.String("category", "", "comma separated category ids")
	start := fs.String("start", "", "start time, RFC 3339 or YYYY-MM-DD")
	end := fs.String("end", "", "end time, RFC 3339 or YYYY-MM-DD")
	sort := fs.String("sort", "", "sort keys, e.g. amount:desc,time")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}

	sorts, err := parseSort(*sort)
	if err != nil {
		return err
	}
	req := core.Reduce(core.NewSearchRequest(), core.SetCriteria{
		CategoryIDs: splitList(*categories),
		Type:        *billType,
		StartTime:   *start,
		EndTime:     *end,
	})
	req = core.Reduce(req, core.SetPageSize{Size: *size})
	for _, a := range sorts {
		req = core.Reduce(req, a)
	}
	req = core.Reduce(req, core.SetPage{Index: *page})

	res, err := c.Search(ctx, req)
	if err != nil {
		return err
	}
	if g.jsonOut {
		return printJSON(out, res)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tTYPE\tCATEGORY\tAMOUNT")
	for _, b := range res.List {
		printBillRow(tw, b)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\npage %d of %d\n", *page+1, res.PageCount)
	fmt.Fprintf(out, "expenses: %s\n", formatTotal(res.TotalExpenses))
	fmt.Fprintf(out, "revenue:  %s\n", formatTotal(res.TotalRevenue))
	fmt.Fprintf(out, "balance:  %s\n", core.FormatDecimal(res.Balance()))
	return nil
}

func formatTotal(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return core.FormatDecimal(d.Decimal)
}

func printBillRow(w io.Writer, b core.Bill) {
	category := "-"
	if b.CategoryID != nil {
		category = *b.CategoryID
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", b.ID, b.Time.Format(time.RFC3339), b.Type, category, core.FormatDecimal(b.Amount))
}

// billFlags registers the flags shared by create and update.
func billFlags(fs *flag.FlagSet) func() (core.BillInput, error) {
	billType := fs.String("type", "", "EXPENDITURE or REVENUE (required)")
	when := fs.String("time", "", "RFC 3339 timestamp or YYYY-MM-DD (default now)")
	category := fs.String("category", "", "category id")
	amount := fs.String("amount", "", "amount, e.g. 12.50 (required)")
	return func() (core.BillInput, error) {
		in := core.BillInput{Type: *billType, Time: *when}
		if in.Time == "" {
			in.Time = time.Now().UTC().Format(time.RFC3339)
		}
		if *category != "" {
			in.CategoryID = category
		}
		if *amount != "" {
			d, err := core.ParseAmount(*amount)
			if err != nil {
				return core.BillInput{}, fmt.Errorf("amount %q: %w", *amount, err)
			}
			in.Amount = &d
		}
		return in, nil
	}
}

func runCreate(ctx context.Context, c *client.Client, g globalFlags, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	input := billFlags(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	in, err := input()
	if err != nil {
		return err
	}
	b, err := c.CreateBill(ctx, in)
	if err != nil {
		return describe(err)
	}
	return printBill(out, g, b)
}

func runUpdate(ctx context.Context, c *client.Client, g globalFlags, args []string, out io.Writer) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("update needs a bill id: %w", errUsage)
	}
	id := args[0]
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	input := billFlags(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	in, err := input()
	if err != nil {
		return err
	}
	b, err := c.UpdateBill(ctx, id, in)
	if err != nil {
		return describe(err)
	}
	return printBill(out, g, b)
}

func runGet(ctx context.Context, c *client.Client, g globalFlags, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("get needs exactly one bill id: %w", errUsage)
	}
	b, err := c.GetBill(ctx, args[0])
	if err != nil {
		return describe(err)
	}
	return printBill(out, g, b)
}

func runDelete(ctx context.Context, c *client.Client, g globalFlags, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("delete needs exactly one bill id: %w", errUsage)
	}
	b, err := c.DeleteBill(ctx, args[0])
	if err != nil {
		return describe(err)
	}
	return printBill(out, g, b)
}

func runCategories(ctx context.Context, c *client.Client, g globalFlags, out io.Writer) error {
	cats, err := c.Categories(ctx)
	if err != nil {
		return err
	}
	if g.jsonOut {
		return printJSON(out, cats)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE")
	for _, cat := range cats {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", cat.ID, cat.Name, cat.Type)
	}
	return tw.Flush()
}

// runWatch prints bill events until interrupted.
func runWatch(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	url := fs.String("amqp-url", os.Getenv("AMQP_URL"), "AMQP broker URL")
	exchange := fs.String("exchange", envOr("AMQP_EXCHANGE", "billbook"), "exchange name")
	queue := fs.String("queue", envOr("AMQP_QUEUE", "bill_events"), "queue name")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	if *url == "" {
		return errors.New("watch needs -amqp-url or AMQP_URL")
	}

	ac, err := amqp.NewClient(*url, *exchange, *queue)
	if err != nil {
		return fmt.Errorf("connect to broker: %w", err)
	}
	defer ac.Close()

	return ac.ConsumeBillEvents(ctx, func(msg *amqp.BillEventMessage) error {
		_, err := fmt.Fprintln(out, formatEvent(msg.BillEvent))
		return err
	})
}

func formatEvent(ev core.BillEvent) string {
	category := ""
	if ev.CategoryID != nil {
		category = " category=" + *ev.CategoryID
	}
	return fmt.Sprintf("%s %-7s %s %s %s%s",
		ev.Timestamp.Format(time.RFC3339), ev.Op, ev.ID, ev.Type, core.FormatDecimal(ev.Amount), category)
}

func printBill(out io.Writer, g globalFlags, b core.Bill) error {
	if g.jsonOut {
		return printJSON(out, b)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tTYPE\tCATEGORY\tAMOUNT")
	printBillRow(tw, b)
	return tw.Flush()
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describe adds the per-field detail of a rejected write.
func describe(err error) error {
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		return fmt.Errorf("rejected: %s", strings.TrimPrefix(ve.Error(), "validation failed: "))
	}
	var biz *core.BizError
	if errors.As(err, &biz) {
		return fmt.Errorf("rejected: %s", biz.Message)
	}
	return err
}
