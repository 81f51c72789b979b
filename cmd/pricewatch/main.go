package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/you/skin-arb/internal/config"
	"github.com/you/skin-arb/internal/connectors/pricelist"
	"github.com/you/skin-arb/internal/connectors/redisfeed"
	"github.com/you/skin-arb/internal/detector"
	"github.com/you/skin-arb/internal/marketdata"
	"github.com/you/skin-arb/internal/risk"
	"github.com/you/skin-arb/internal/types"
	"go.uber.org/zap"
)

type options struct {
	cfgPath    string
	top        int
	profitable bool
	publish    bool
	fromRedis  bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.cfgPath, "config", "./config.yaml", "path to config file")
	flag.IntVar(&o.top, "top", 20, "how many rows to print")
	flag.BoolVar(&o.profitable, "profitable", false, "only print profitable items")
	flag.BoolVar(&o.publish, "publish", false, "mirror the batch to redis")
	flag.BoolVar(&o.fromRedis, "from-redis", false, "read the ranking from redis instead of fetching")
	flag.Parse()
	return o
}

func main() {
	o := parseFlags()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		<-ch
		fmt.Println("[sys] signal received, exiting")
		cancel()
	}()

	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	if o.fromRedis {
		if cfg.Redis.Addr == "" {
			fmt.Fprintln(os.Stderr, "redis.addr is not configured")
			os.Exit(1)
		}
		c := redisfeed.NewConsumer(cfg)
		defer c.Close()
		rows, err := readRanking(ctx, c, o.top, o.profitable)
		if err != nil {
			fmt.Fprintln(os.Stderr, "redis:", err)
			os.Exit(1)
		}
		printTable(os.Stdout, rows)
		return
	}

	log := zap.NewNop()
	fmt.Println("[feeds] fetching buff163 and csfloat price lists")
	snap := marketdata.FetchSnapshot(ctx, pricelist.NewClient(cfg, log), log)
	for feed, err := range snap.Errors {
		fmt.Printf("[feeds] %s failed: %v\n", feed, err)
	}
	fmt.Printf("[feeds] buff163=%d csfloat=%d items\n", len(snap.Buff163), len(snap.CSFloat))

	batch := detector.NewBatch(cfg.Fees, snap)
	printTable(os.Stdout, selectRows(batch.Opportunities, o.top, o.profitable))

	if o.publish {
		if cfg.Redis.Addr == "" {
			fmt.Fprintln(os.Stderr, "redis.addr is not configured")
			os.Exit(1)
		}
		pub := redisfeed.NewPublisher(cfg)
		defer pub.Close()
		alerts := risk.NewEngine(cfg).Filter(batch.Opportunities)
		if err := pub.PublishBatch(ctx, batch, alerts); err != nil {
			fmt.Fprintln(os.Stderr, "redis:", err)
			os.Exit(1)
		}
		fmt.Printf("[redis] published batch %s: %d items, %d alerts\n", batch.ID, len(batch.Opportunities), len(alerts))
	}
}

type ranking interface {
	TopByROI(ctx context.Context, n int64) ([]types.Opportunity, error)
	AllByROI(ctx context.Context) ([]types.Opportunity, error)
}

// readRanking reads the redis ranking with the same -top and -profitable
// semantics as the fetch mode. Filtering needs the whole ranking, since
// unprofitable items can sit between profitable ones.
func readRanking(ctx context.Context, r ranking, top int, profitableOnly bool) ([]types.Opportunity, error) {
	var (
		opps []types.Opportunity
		err  error
	)
	if top > 0 && !profitableOnly {
		opps, err = r.TopByROI(ctx, int64(top))
	} else {
		opps, err = r.AllByROI(ctx)
	}
	if err != nil {
		return nil, err
	}
	return selectRows(opps, top, profitableOnly), nil
}

// selectRows orders by bestROI descending, ties by name, and keeps the first n.
func selectRows(opps []types.Opportunity, n int, profitableOnly bool) []types.Opportunity {
	rows := make([]types.Opportunity, 0, len(opps))
	for _, o := range opps {
		if profitableOnly && !o.Profitable {
			continue
		}
		rows = append(rows, o)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].BestROI != rows[j].BestROI {
			return rows[i].BestROI > rows[j].BestROI
		}
		return rows[i].ItemName < rows[j].ItemName
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

func printTable(w io.Writer, rows []types.Opportunity) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ITEM\tBUFF163\tCSFLOAT\tDIR\tNET $\tROI %\tQTY\tREL\t")
	for _, o := range rows {
		qty := "-"
		if o.CSFloatQty != nil {
			qty = fmt.Sprint(*o.CSFloatQty)
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%s\t%.2f\t%.2f\t%s\t%s\t\n",
			o.ItemName, o.Buff163Price, o.CSFloatPrice, o.BestDirection,
			o.BestProfit, o.BestROI, qty, o.Reliability)
	}
	_ = tw.Flush()
}
