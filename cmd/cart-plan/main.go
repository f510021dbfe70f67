package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/cartopt/cartopt"
)

func main() {
	app := &cli.App{
		Name:  "cart-plan",
		Usage: "Utility for planning cheapest shopping cart fulfillment",
		Commands: []*cli.Command{
			planCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

var planCmd = &cli.Command{
	Name:    "plan",
	Usage:   "Compute the optimal purchase plan for a cart",
	Aliases: []string{"p"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "cart",
			Required: true,
			Usage:    "specify the input cart.json",
		},
		&cli.StringFlag{
			Name:     "out",
			Required: false,
			Usage:    "write the resulting plan.json",
		},
		&cli.Int64Flag{
			Name:  "small-fee",
			Value: cartopt.DefaultSmallFee,
			Usage: "delivery fee of the small tier (cents)",
		},
		&cli.Int64Flag{
			Name:  "medium-fee",
			Value: cartopt.DefaultMediumFee,
			Usage: "delivery fee of the medium tier (cents)",
		},
		&cli.Int64Flag{
			Name:  "large-fee",
			Value: cartopt.DefaultLargeFee,
			Usage: "delivery fee of the large tier (cents)",
		},
		&cli.Int64Flag{
			Name:  "small-max",
			Value: cartopt.DefaultSmallMax,
			Usage: "last unit count of the small tier",
		},
		&cli.Int64Flag{
			Name:  "medium-max",
			Value: cartopt.DefaultMediumMax,
			Usage: "last unit count of the medium tier",
		},
		&cli.DurationFlag{
			Name:  "duration",
			Value: 30 * time.Second,
			Usage: "solver time limit",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "print availability and solver progress",
		},
	},
	Action: func(ctx *cli.Context) error {
		tiers := cartopt.TierTable{
			SmallFee:  ctx.Int64("small-fee"),
			MediumFee: ctx.Int64("medium-fee"),
			LargeFee:  ctx.Int64("large-fee"),
			SmallMax:  ctx.Int64("small-max"),
			MediumMax: ctx.Int64("medium-max"),
		}
		if err := tiers.Validate(); err != nil {
			return err
		}
		if ctx.Duration("duration") <= 0 {
			return errors.New("invalid duration")
		}
		return doPlan(ctx.Context, ctx.String("cart"), ctx.String("out"),
			tiers, ctx.Duration("duration"), ctx.Bool("verbose"))
	},
}
